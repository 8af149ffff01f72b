package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/glabrego/pulse-cli/internal/social"
)

type Theme struct {
	Dark bool

	Title      lipgloss.Style
	Tab        lipgloss.Style
	TabActive  lipgloss.Style
	Section    lipgloss.Style
	ActiveLine lipgloss.Style
	MetaLabel  lipgloss.Style
	MetaValue  lipgloss.Style
	StateIdle  lipgloss.Style
	StateWarn  lipgloss.Style
	StateLoad  lipgloss.Style
	Alert      lipgloss.Style
	Modal      lipgloss.Style

	AuthorFollowed lipgloss.Style
	AuthorOther    lipgloss.Style
	Liked          lipgloss.Style
	Muted          lipgloss.Style
}

type palette struct {
	accent, accentAlt, red, peach, yellow, green, teal lipgloss.Color
	text, subtext, overlay, surface                    lipgloss.Color
}

// Dark is the catppuccin mocha palette.
func Dark() Theme {
	return build(true, palette{
		accent:    lipgloss.Color("#cba6f7"),
		accentAlt: lipgloss.Color("#b4befe"),
		red:       lipgloss.Color("#f38ba8"),
		peach:     lipgloss.Color("#fab387"),
		yellow:    lipgloss.Color("#f9e2af"),
		green:     lipgloss.Color("#a6e3a1"),
		teal:      lipgloss.Color("#94e2d5"),
		text:      lipgloss.Color("#cdd6f4"),
		subtext:   lipgloss.Color("#a6adc8"),
		overlay:   lipgloss.Color("#7f849c"),
		surface:   lipgloss.Color("#313244"),
	})
}

// Light is the catppuccin latte palette.
func Light() Theme {
	return build(false, palette{
		accent:    lipgloss.Color("#8839ef"),
		accentAlt: lipgloss.Color("#7287fd"),
		red:       lipgloss.Color("#d20f39"),
		peach:     lipgloss.Color("#fe640b"),
		yellow:    lipgloss.Color("#df8e1d"),
		green:     lipgloss.Color("#40a02b"),
		teal:      lipgloss.Color("#179299"),
		text:      lipgloss.Color("#4c4f69"),
		subtext:   lipgloss.Color("#6c6f85"),
		overlay:   lipgloss.Color("#8c8fa1"),
		surface:   lipgloss.Color("#ccd0da"),
	})
}

func For(dark bool) Theme {
	if dark {
		return Dark()
	}
	return Light()
}

func build(dark bool, p palette) Theme {
	return Theme{
		Dark:       dark,
		Title:      lipgloss.NewStyle().Bold(true).Foreground(p.accent),
		Tab:        lipgloss.NewStyle().Foreground(p.subtext).Padding(0, 1),
		TabActive:  lipgloss.NewStyle().Bold(true).Foreground(p.accentAlt).Background(p.surface).Padding(0, 1),
		Section:    lipgloss.NewStyle().Bold(true).Foreground(p.teal),
		ActiveLine: lipgloss.NewStyle().Background(p.surface).Foreground(p.text),
		MetaLabel:  lipgloss.NewStyle().Foreground(p.overlay),
		MetaValue:  lipgloss.NewStyle().Foreground(p.subtext),
		StateIdle:  lipgloss.NewStyle().Foreground(p.green),
		StateWarn:  lipgloss.NewStyle().Foreground(p.red),
		StateLoad:  lipgloss.NewStyle().Foreground(p.peach),
		Alert:      lipgloss.NewStyle().Bold(true).Foreground(p.red),
		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.accent).
			Padding(0, 1),
		AuthorFollowed: lipgloss.NewStyle().Bold(true).Foreground(p.text),
		AuthorOther:    lipgloss.NewStyle().Foreground(p.subtext),
		Liked:          lipgloss.NewStyle().Foreground(p.yellow),
		Muted:          lipgloss.NewStyle().Foreground(p.overlay),
	}
}

func (t Theme) StyleAuthor(item social.Item, name string) string {
	if name == "" {
		return name
	}
	if item.Following {
		return t.AuthorFollowed.Render(name)
	}
	return t.AuthorOther.Render(name)
}

func (t Theme) RenderActiveLine(active bool, line string) string {
	if !active {
		return line
	}
	return t.ActiveLine.Render(line)
}
