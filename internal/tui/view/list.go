package view

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/glabrego/pulse-cli/internal/render/caption"
	"github.com/glabrego/pulse-cli/internal/social"
	tuitheme "github.com/glabrego/pulse-cli/internal/tui/theme"
)

var reANSICodes = regexp.MustCompile(`\x1b\[[0-9;]*m`)

type ItemLineParams struct {
	Item   social.Item
	Now    time.Time
	Active bool
	Width  int
}

func RenderItemLine(p ItemLineParams, th tuitheme.Theme) string {
	cursorMarker := " "
	if p.Active {
		cursorMarker = ">"
	}
	heart := "♡"
	if p.Item.Liked {
		heart = th.Liked.Render("♥")
	}
	prefix := fmt.Sprintf("  %s %s ", cursorMarker, heart)
	author := "@" + strings.TrimSpace(p.Item.Author)
	if author == "@" {
		author = "@unknown"
	}
	right := fmt.Sprintf("%d♥ %d✎ [%s]", p.Item.Likes, p.Item.Comments, RelativeTimeLabel(p.Now, p.Item.CreatedAt))

	available := p.Width - visibleLen(prefix) - visibleLen(author) - 2 - visibleLen(right)
	if available < 1 {
		available = 1
	}
	label := firstLine(caption.ToText(p.Item.Caption))
	if label == "" {
		label = "(no caption)"
	}
	label = truncateRunes(label, available)

	left := prefix + th.StyleAuthor(p.Item, author) + " " + label
	gap := p.Width - visibleLen(left) - visibleLen(right)
	if gap < 1 {
		gap = 1
	}
	return th.RenderActiveLine(p.Active, left+strings.Repeat(" ", gap)+th.MetaValue.Render(right))
}

func RenderSummaryLine(s social.Summary, active bool, width int, th tuitheme.Theme) string {
	cursorMarker := " "
	if active {
		cursorMarker = ">"
	}
	left := fmt.Sprintf("  %s %s", cursorMarker, strings.TrimSpace(s.Title))
	if s.Subtitle == "" {
		return th.RenderActiveLine(active, truncateRunes(left, width))
	}
	available := width - visibleLen(left) - 3
	if available < 1 {
		return th.RenderActiveLine(active, truncateRunes(left, width))
	}
	sub := truncateRunes(caption.ToText(s.Subtitle), available)
	return th.RenderActiveLine(active, left+" - "+th.Muted.Render(sub))
}

// ItemDetailLines renders the selected item below the list.
func ItemDetailLines(item social.Item, width int) []string {
	lines := make([]string, 0, 8)
	header := "@" + item.Author
	if item.Following {
		header += " (following)"
	}
	lines = append(lines, header)
	lines = append(lines, strings.Repeat("-", max(1, min(width, utf8.RuneCountInString(header)))))
	if text := caption.ToText(item.Caption); text != "" {
		lines = append(lines, caption.Wrap(text, width)...)
	}
	if item.MediaURL != "" {
		lines = append(lines, caption.Wrap("Media: "+item.MediaURL, width)...)
	}
	return lines
}

func RelativeTimeLabel(now, then time.Time) string {
	if now.IsZero() {
		now = time.Now()
	}
	if then.IsZero() {
		return "unknown"
	}
	if then.After(now) {
		return "just now"
	}
	d := now.Sub(then)
	if d < time.Minute {
		return "just now"
	}
	if d < time.Hour {
		n := int(d / time.Minute)
		if n == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", n)
	}
	if d < 24*time.Hour {
		n := int(d / time.Hour)
		if n == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", n)
	}
	n := int(d / (24 * time.Hour))
	if n == 1 {
		return "1 day ago"
	}
	return fmt.Sprintf("%d days ago", n)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func truncateRunes(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return strings.Repeat(".", maxLen)
	}
	runes := []rune(s)
	return string(runes[:maxLen-3]) + "..."
}

func visibleLen(s string) int {
	return utf8.RuneCountInString(stripANSIText(s))
}

func stripANSIText(s string) string {
	return reANSICodes.ReplaceAllString(s, "")
}
