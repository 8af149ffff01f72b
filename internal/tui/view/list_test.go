package view

import (
	"strings"
	"testing"
	"time"

	"github.com/glabrego/pulse-cli/internal/social"
	tuitheme "github.com/glabrego/pulse-cli/internal/tui/theme"
)

func TestRenderItemLine_RightAlignsCounts(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	th := tuitheme.Dark()

	line := RenderItemLine(ItemLineParams{
		Item: social.Item{
			ID:        1,
			Author:    "ana",
			Caption:   "<b>sunset</b> at the pier",
			Likes:     12,
			Comments:  3,
			CreatedAt: now.Add(-2 * time.Hour),
		},
		Now:    now,
		Active: true,
		Width:  70,
	}, th)
	plain := stripANSI(line)
	if !strings.HasPrefix(plain, "  > ♡ @ana sunset at the pier") {
		t.Fatalf("unexpected line start: %q", plain)
	}
	if !strings.HasSuffix(plain, "12♥ 3✎ [2 hours ago]") {
		t.Fatalf("expected counts at right edge, got %q", plain)
	}
}

func TestRenderItemLine_TruncatesCaption(t *testing.T) {
	line := stripANSI(RenderItemLine(ItemLineParams{
		Item:  social.Item{Author: "ana", Caption: strings.Repeat("word ", 40), Liked: true},
		Now:   time.Now(),
		Width: 50,
	}, tuitheme.Dark()))
	if !strings.Contains(line, "...") {
		t.Fatalf("expected truncated caption, got %q", line)
	}
	if !strings.Contains(line, "♥ @ana") {
		t.Fatalf("expected liked marker, got %q", line)
	}
}

func TestRenderSummaryLine(t *testing.T) {
	th := tuitheme.Dark()
	got := stripANSI(RenderSummaryLine(social.Summary{Title: "bo", Subtitle: "see you <i>soon</i>"}, true, 60, th))
	if got != "  > bo - see you soon" {
		t.Fatalf("unexpected summary line: %q", got)
	}
	got = stripANSI(RenderSummaryLine(social.Summary{Title: "cy"}, false, 60, th))
	if got != "    cy" {
		t.Fatalf("unexpected bare summary line: %q", got)
	}
}

func TestItemDetailLines(t *testing.T) {
	lines := ItemDetailLines(social.Item{Author: "ana", Following: true, Caption: "one two three", MediaURL: "https://cdn.example.com/a.jpg"}, 40)
	if lines[0] != "@ana (following)" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	joined := strings.Join(lines, "\n")
	if !strings.Contains(joined, "one two three") || !strings.Contains(joined, "Media: https://cdn.example.com/a.jpg") {
		t.Fatalf("unexpected detail lines: %q", joined)
	}
}

func TestRelativeTimeLabel(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		then time.Time
		want string
	}{
		{then: now.Add(-30 * time.Second), want: "just now"},
		{then: now.Add(-1 * time.Minute), want: "1 minute ago"},
		{then: now.Add(-3 * time.Minute), want: "3 minutes ago"},
		{then: now.Add(-1 * time.Hour), want: "1 hour ago"},
		{then: now.Add(-7 * time.Hour), want: "7 hours ago"},
		{then: now.Add(-1 * 24 * time.Hour), want: "1 day ago"},
		{then: now.Add(-7 * 24 * time.Hour), want: "7 days ago"},
		{then: time.Time{}, want: "unknown"},
	}
	for _, tc := range cases {
		if got := RelativeTimeLabel(now, tc.then); got != tc.want {
			t.Fatalf("RelativeTimeLabel(%s) = %q, want %q", tc.then.UTC().Format(time.RFC3339), got, tc.want)
		}
	}
}

func TestStoryRendering(t *testing.T) {
	if got := Progress(1, 3); got != "━ ● ─" {
		t.Fatalf("unexpected progress: %q", got)
	}
	th := tuitheme.Dark()
	video := stripANSI(RenderStory(StoryFrame{
		Story:  social.Story{Author: "ana", MediaURL: "https://cdn.example.com/s.mp4"},
		Index:  0,
		Total:  2,
		Paused: true,
		Width:  60,
	}, th))
	for _, want := range []string{"Story 1/2", "@ana", "paused"} {
		if !strings.Contains(video, want) {
			t.Fatalf("expected %q in story view, got %q", want, video)
		}
	}
	image := stripANSI(RenderStory(StoryFrame{
		Story:   social.Story{Author: "bo", MediaURL: "https://cdn.example.com/s.jpg"},
		Total:   1,
		Preview: "#####",
	}, th))
	if !strings.Contains(image, "#####") || strings.Contains(image, "playing") {
		t.Fatalf("unexpected image story view: %q", image)
	}
}
