package tui

import (
	"fmt"
	"strings"

	"github.com/glabrego/pulse-cli/internal/nav"
	tuistate "github.com/glabrego/pulse-cli/internal/tui/state"
	tuiview "github.com/glabrego/pulse-cli/internal/tui/view"
)

const detailRows = 8

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.theme.Title.Render("Pulse"))
	b.WriteString("  ")
	b.WriteString(tuiview.Tabs(m.screen.section, m.theme))
	b.WriteString("\n")
	b.WriteString(tuiview.Toolbar(m.screen.section, m.screen.modal))
	b.WriteString("\n\n")

	switch {
	case m.screen.modal == nav.ModalStory:
		b.WriteString(m.theme.Modal.Render(m.storyView()))
	case m.form != nil:
		b.WriteString(m.theme.Modal.Render(m.form.view(m.theme)))
	default:
		b.WriteString(m.sectionView())
	}
	b.WriteString("\n\n")
	b.WriteString(m.messagePanel())
	b.WriteString("\n")
	b.WriteString(m.footer())
	b.WriteString("\n")
	return b.String()
}

func (m Model) storyView() string {
	index, _ := m.nav.StoryIndex()
	story := m.screen.story
	return tuiview.RenderStory(tuiview.StoryFrame{
		Story:   story,
		Index:   index,
		Total:   len(m.nav.Stories()),
		Paused:  m.screen.paused,
		Preview: m.previews[story.MediaURL],
		Width:   m.contentWidth() - 4,
	}, m.theme)
}

func (m Model) sectionView() string {
	if _, _, ok := m.activeFeed(); ok {
		return m.feedView()
	}
	switch m.screen.section {
	case nav.SectionNone:
		if m.busy() {
			return "Checking session..."
		}
		return "Nothing loaded yet."
	case nav.SectionProfile:
		return m.profileView()
	case nav.SectionSearch:
		return m.theme.MetaLabel.Render("search: ") + m.query.View() + "\n\n" + m.listView()
	}
	return m.listView()
}

func (m Model) feedView() string {
	_, items, _ := m.activeFeed()
	section := m.screen.section
	lines := make([]string, 0, len(items)+detailRows+2)
	if section == nav.SectionHome {
		if stories := m.nav.Stories(); len(stories) > 0 {
			pick := tuistate.ClampCursor(m.storyPick, len(stories))
			author := stories[pick].Author
			if author == "" {
				author = "unknown"
			}
			lines = append(lines, m.theme.Section.Render(fmt.Sprintf("%d stories", len(stories)))+"  "+
				tuiview.Progress(pick, len(stories))+"  @"+author+" "+m.theme.Muted.Render("([ ] pick, s to view)"))
		}
	}
	if section == nav.SectionNone {
		lines = append(lines, m.theme.Muted.Render("Showing saved posts"))
	}

	if len(items) == 0 {
		if m.busy() {
			lines = append(lines, "Loading posts...")
		} else {
			lines = append(lines, "Nothing here yet.")
		}
		return strings.Join(lines, "\n")
	}

	cursor := tuistate.ClampCursor(m.cursor[section], len(items))
	now := m.nowFn()
	width := m.contentWidth()
	start, end := tuistate.CenteredWindow(len(items), cursor, m.listHeight(detailRows+1))
	for i := start; i < end; i++ {
		lines = append(lines, tuiview.RenderItemLine(tuiview.ItemLineParams{
			Item:   items[i],
			Now:    now,
			Active: i == cursor,
			Width:  width,
		}, m.theme))
	}

	detail := tuiview.ItemDetailLines(items[cursor], width-2)
	if len(detail) > detailRows {
		detail = detail[:detailRows]
	}
	lines = append(lines, "")
	lines = append(lines, detail...)
	return strings.Join(lines, "\n")
}

func (m Model) listView() string {
	rows := m.listRows()
	if len(rows) == 0 {
		switch {
		case m.busy():
			return "Loading..."
		case m.screen.section == nav.SectionSearch:
			return m.theme.Muted.Render("Type a query and press enter.")
		}
		return "Nothing here yet."
	}
	section := m.screen.section
	cursor := tuistate.ClampCursor(m.cursor[section], len(rows))
	start, end := tuistate.CenteredWindow(len(rows), cursor, m.listHeight(0))
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, tuiview.RenderSummaryLine(rows[i], i == cursor, m.contentWidth(), m.theme))
	}
	return strings.Join(lines, "\n")
}

func (m Model) profileView() string {
	if m.profile == nil {
		if m.busy() {
			return "Loading profile..."
		}
		return "Profile unavailable."
	}
	p := m.profile
	name := p.DisplayName
	if name == "" {
		name = p.Username
	}
	lines := []string{
		m.theme.Title.Render(name) + " " + m.theme.Muted.Render("@"+p.Username),
		"",
		fmt.Sprintf("%s %s  %s %s",
			m.theme.MetaValue.Render(fmt.Sprintf("%d", p.Followers)), m.theme.MetaLabel.Render("followers"),
			m.theme.MetaValue.Render(fmt.Sprintf("%d", p.Following)), m.theme.MetaLabel.Render("following")),
	}
	if bio := strings.TrimSpace(p.Bio); bio != "" {
		lines = append(lines, "", bio)
	}
	if p.IsAdmin {
		lines = append(lines, "", m.theme.Section.Render("admin"))
	}
	return strings.Join(lines, "\n")
}

// listHeight is the number of list rows that fit after the chrome and reserved lines.
func (m Model) listHeight(reserved int) int {
	if m.height <= 0 {
		return 0
	}
	h := tuistate.PageStep(m.height, m.status != "") - reserved
	if h < 3 {
		h = 3
	}
	return h
}

func (m Model) messagePanel() string {
	msg := tuiview.Message(m.busy(), m.screen.alert, m.status, m.warning, m.theme)
	if m.busy() {
		return m.spinner.View() + " " + msg
	}
	return msg
}

func (m Model) footer() string {
	section := m.screen.section
	page, exhausted := 0, false
	if kind, ok := section.FeedKind(); ok {
		st := m.nav.PagerState(kind)
		page, exhausted = st.Page, st.Exhausted
	}
	return tuiview.Footer(section, page, m.rowCount(), exhausted, m.theme)
}
