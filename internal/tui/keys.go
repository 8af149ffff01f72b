package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/pulse-cli/internal/nav"
	"github.com/glabrego/pulse-cli/internal/social"
	tuiactions "github.com/glabrego/pulse-cli/internal/tui/actions"
	tuiplatform "github.com/glabrego/pulse-cli/internal/tui/platform"
	tuistate "github.com/glabrego/pulse-cli/internal/tui/state"
	tuitheme "github.com/glabrego/pulse-cli/internal/tui/theme"
	tuiview "github.com/glabrego/pulse-cli/internal/tui/view"
)

const reportReason = "inappropriate"

type menuEntry struct {
	label string
	modal nav.Modal
	run   func(m Model) (Model, tea.Cmd)
}

var menuEntries = []menuEntry{
	{label: "Edit profile", modal: nav.ModalEditProfile},
	{label: "Create group", modal: nav.ModalCreateGroup},
	{label: "Toggle theme", run: Model.toggleTheme},
	{label: "Sign out", run: Model.logout},
}

var addEntries = []menuEntry{
	{label: "New post", modal: nav.ModalCreatePost},
	{label: "New reel", modal: nav.ModalCreateReel},
	{label: "New group", modal: nav.ModalCreateGroup},
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}
	m.screen.alert = ""

	if m.form != nil {
		return m.handleFormKey(msg)
	}
	if m.screen.modal == nav.ModalStory {
		return m.handleStoryKey(key)
	}
	if m.searching {
		return m.handleSearchKey(msg)
	}

	if section, ok := sectionForKey(key); ok {
		return m.navigate(section)
	}
	switch key {
	case "q":
		return m, tea.Quit
	case "D":
		return m.toggleTheme()
	case "L":
		return m.logout()
	case "up", "k":
		return m.moveCursor(-1)
	case "down", "j":
		return m.moveCursor(1)
	case "pgup", "ctrl+b":
		return m.moveCursor(-tuistate.PageStep(m.height, m.status != ""))
	case "pgdown", "ctrl+f":
		return m.moveCursor(tuistate.PageStep(m.height, m.status != ""))
	case "g":
		return m.moveCursor(-m.cursor[m.screen.section])
	}

	switch m.screen.section {
	case nav.SectionHome, nav.SectionReels:
		return m.handleFeedKey(key)
	case nav.SectionSearch:
		if key == "/" {
			m.searching = true
			return m, m.query.Focus()
		}
	case nav.SectionInbox, nav.SectionFriends:
		if row, ok := m.currentRow(); ok {
			switch key {
			case "enter":
				return m.gated(nav.ModalChat, row.ID)
			case "G":
				return m.gated(nav.ModalGroupChat, row.ID)
			}
		}
	case nav.SectionAdmin:
		if row, ok := m.currentRow(); ok {
			switch key {
			case "x":
				return m.startLoading(m.runner.Moderate(row.ID, "remove"))
			case "d":
				return m.startLoading(m.runner.Moderate(row.ID, "dismiss"))
			}
		}
	case nav.SectionMenu, nav.SectionAddTo:
		if key == "enter" {
			entries := m.menuRows()
			if len(entries) == 0 {
				return m, nil
			}
			entry := entries[tuistate.ClampCursor(m.cursor[m.screen.section], len(entries))]
			if entry.run != nil {
				return entry.run(m)
			}
			return m.gated(entry.modal, 0)
		}
	}
	return m, nil
}

func sectionForKey(key string) (nav.Section, bool) {
	switch key {
	case "m":
		return nav.SectionMenu, true
	case "a":
		return nav.SectionAddTo, true
	}
	if len(key) == 1 && key[0] >= '1' && key[0] <= '8' {
		return tuiview.TabSections[key[0]-'1'], true
	}
	return nav.SectionNone, false
}

func (m Model) handleFeedKey(key string) (Model, tea.Cmd) {
	switch key {
	case "s":
		n := len(m.nav.Stories())
		if n == 0 {
			return m, m.setStatus("No stories right now")
		}
		pick := tuistate.ClampCursor(m.storyPick, n)
		return m.checkSession(tuiactions.Target{Modal: nav.ModalStory, Story: pick})
	case "[", "]":
		n := len(m.nav.Stories())
		if n == 0 {
			return m, nil
		}
		delta := 1
		if key == "[" {
			delta = -1
		}
		m.storyPick = tuistate.ClampCursor(m.storyPick+delta, n)
		return m, nil
	}

	item, ok := m.currentItem()
	if !ok {
		return m, nil
	}
	switch key {
	case "l":
		return m, m.runner.ToggleLike(item.ID, item.Liked)
	case "f":
		return m, m.runner.ToggleFollow(item.AuthorID, item.Following)
	case "c", "enter":
		return m.gated(nav.ModalComment, item.ID)
	case "+":
		return m.gated(nav.ModalAddTo, item.ID)
	case "R":
		return m.startLoading(m.runner.Report(item.ID, reportReason))
	case "o":
		return m.openMedia(item.MediaURL)
	case "y":
		url, err := tuiplatform.ValidateMediaURL(item.MediaURL)
		if err != nil {
			m.warning = err.Error()
			return m, nil
		}
		return m, tuiactions.CopyURLCmd(url, m.copyURLFn)
	}
	return m, nil
}

func (m Model) handleStoryKey(key string) (Model, tea.Cmd) {
	switch key {
	case "esc", "q":
		m.nav.CloseStory()
		return m, nil
	case "h", "left":
		m.nav.AdvanceStory(nav.Prev)
		return m, m.previewCmd()
	case "l", "right":
		m.nav.AdvanceStory(nav.Next)
		return m, m.previewCmd()
	case "o":
		return m.openMedia(m.screen.story.MediaURL)
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.query.Blur()
		return m, nil
	case "enter":
		m.searching = false
		m.query.Blur()
		m.cursor[nav.SectionSearch] = 0
		return m.startLoading(m.runner.LoadSection(nav.SectionSearch, m.query.Value()))
	}
	var cmd tea.Cmd
	m.query, cmd = m.query.Update(msg)
	return m, cmd
}

func (m Model) handleFormKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	f := m.form
	switch msg.String() {
	case "esc":
		modal := f.modal
		m.closeForm(modal)
		if modal == nav.ModalRegister || modal == nav.ModalForgot || modal == nav.ModalReset {
			m.nav.OpenModal(nav.ModalLogin, nav.Anonymous)
		}
		return m, nil
	case "tab", "down":
		f.move(1)
		return m, nil
	case "shift+tab", "up":
		f.move(-1)
		return m, nil
	case "enter":
		if !f.lastField() {
			f.move(1)
			return m, nil
		}
		return m.submitForm()
	}

	if f.modal == nav.ModalLogin || f.modal == nav.ModalForgot {
		switch msg.String() {
		case "ctrl+r":
			return m.gated(nav.ModalRegister, 0)
		case "ctrl+f":
			return m.gated(nav.ModalForgot, 0)
		case "ctrl+t":
			return m.gated(nav.ModalReset, 0)
		}
	}
	return m, f.update(msg)
}

func (m Model) submitForm() (Model, tea.Cmd) {
	f := m.form
	if f.submitting {
		return m, nil
	}
	f.submitting = true
	values := f.values()
	switch f.modal {
	case nav.ModalLogin:
		return m.startLoading(m.runner.Login(values["username"], values["password"]))
	case nav.ModalComment:
		return m.startLoading(m.runner.Comment(f.target, values["text"]))
	}
	return m.startLoading(m.runner.Submit(f.modal, f.path(), values, f.spec.done))
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if m.screen.modal != nav.ModalStory {
		return m, nil
	}
	// Some terminals report releases without the button.
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.nav.StoryTouch(msg.X, msg.Y)
		}
	case tea.MouseActionRelease:
		switch m.nav.StoryRelease(msg.X, msg.Y) {
		case nav.GestureNext, nav.GesturePrev:
			return m, m.previewCmd()
		}
	}
	return m, nil
}

func (m Model) moveCursor(delta int) (Model, tea.Cmd) {
	section := m.screen.section
	size := m.rowCount()
	if size == 0 {
		return m, nil
	}
	m.cursor[section] = tuistate.ClampCursor(m.cursor[section]+delta, size)

	kind, ok := section.FeedKind()
	if !ok || delta <= 0 {
		return m, nil
	}
	t, ok := m.nav.OnScroll(kind, tuistate.RemainingRows(m.cursor[section], size))
	if !ok {
		return m, nil
	}
	return m.startLoading(m.runner.LoadFeed(t))
}

func (m Model) rowCount() int {
	if _, items, ok := m.activeFeed(); ok {
		return len(items)
	}
	switch m.screen.section {
	case nav.SectionMenu, nav.SectionAddTo:
		return len(m.menuRows())
	}
	return len(m.rows)
}

func (m Model) menuRows() []menuEntry {
	switch m.screen.section {
	case nav.SectionMenu:
		return menuEntries
	case nav.SectionAddTo:
		return addEntries
	}
	return nil
}

// listRows is the summary list of the active list section.
func (m Model) listRows() []social.Summary {
	entries := m.menuRows()
	if entries == nil {
		return m.rows
	}
	out := make([]social.Summary, len(entries))
	for i, e := range entries {
		out[i] = social.Summary{ID: int64(i), Title: e.label}
	}
	return out
}

func (m Model) openMedia(raw string) (Model, tea.Cmd) {
	url, err := tuiplatform.ValidateMediaURL(raw)
	if err != nil {
		m.warning = err.Error()
		return m, nil
	}
	return m, tuiactions.OpenURLCmd(url, m.openURLFn, m.copyURLFn)
}

func (m Model) toggleTheme() (Model, tea.Cmd) {
	dark := !m.theme.Dark
	m.theme = tuitheme.For(dark)
	save := m.savePreferencesFn
	if save == nil {
		return m, nil
	}
	return m, tuiactions.SavePreferencesCmd(func() error { return save(dark) })
}

func (m Model) logout() (Model, tea.Cmd) {
	return m.startLoading(m.runner.Logout())
}
