package view

import (
	"strings"
	"testing"

	"github.com/glabrego/pulse-cli/internal/social"
	tuitheme "github.com/glabrego/pulse-cli/internal/tui/theme"
)

func TestProgress(t *testing.T) {
	if got := Progress(1, 3); got != "━ ● ─" {
		t.Fatalf("unexpected progress %q", got)
	}
	if got := Progress(0, 0); got != "" {
		t.Fatalf("expected empty progress, got %q", got)
	}
}

func TestRenderStory_VideoShowsPlaybackState(t *testing.T) {
	frame := StoryFrame{
		Story:  social.Story{Author: "bea", MediaURL: "https://cdn.example.com/s.mp4"},
		Index:  0,
		Total:  2,
		Paused: true,
		Width:  60,
	}
	got := stripANSI(RenderStory(frame, tuitheme.Dark()))
	for _, want := range []string{"Story 1/2", "@bea", "paused", "s.mp4"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in %q", want, got)
		}
	}
}

func TestRenderStory_ImageUsesPreview(t *testing.T) {
	frame := StoryFrame{
		Story:   social.Story{MediaURL: "https://cdn.example.com/s.jpg"},
		Total:   1,
		Preview: "[preview]",
	}
	got := stripANSI(RenderStory(frame, tuitheme.Light()))
	if !strings.Contains(got, "[preview]") || !strings.Contains(got, "@unknown") {
		t.Fatalf("unexpected story frame %q", got)
	}
}
