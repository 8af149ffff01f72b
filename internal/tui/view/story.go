package view

import (
	"fmt"
	"strings"

	"github.com/glabrego/pulse-cli/internal/social"
	tuitheme "github.com/glabrego/pulse-cli/internal/tui/theme"
)

type StoryFrame struct {
	Story   social.Story
	Index   int
	Total   int
	Paused  bool
	Preview string
	Width   int
}

// Progress draws one segment per story with the current one highlighted.
func Progress(index, total int) string {
	if total <= 0 {
		return ""
	}
	segs := make([]string, total)
	for i := range segs {
		switch {
		case i < index:
			segs[i] = "━"
		case i == index:
			segs[i] = "●"
		default:
			segs[i] = "─"
		}
	}
	return strings.Join(segs, " ")
}

func RenderStory(f StoryFrame, th tuitheme.Theme) string {
	lines := make([]string, 0, 24)
	lines = append(lines, th.Title.Render(fmt.Sprintf("Story %d/%d", f.Index+1, f.Total))+"  "+th.MetaValue.Render(Progress(f.Index, f.Total)))

	author := strings.TrimSpace(f.Story.Author)
	if author == "" {
		author = "unknown"
	}
	lines = append(lines, th.MetaLabel.Render("by")+" "+th.MetaValue.Render("@"+author))

	if f.Story.IsVideo() {
		state := "▶ playing"
		if f.Paused {
			state = "❚❚ paused"
		}
		lines = append(lines, "", th.Section.Render("video")+" "+th.MetaValue.Render(state))
	} else if f.Preview != "" {
		lines = append(lines, "", f.Preview)
	}

	width := f.Width
	if width < 10 {
		width = 60
	}
	lines = append(lines, "", th.Muted.Render(truncateRunes(f.Story.MediaURL, width)))
	return strings.Join(lines, "\n")
}
