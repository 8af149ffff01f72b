package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/glabrego/pulse-cli/internal/nav"
	"github.com/glabrego/pulse-cli/internal/social"
	tuiactions "github.com/glabrego/pulse-cli/internal/tui/actions"
	tuiplatform "github.com/glabrego/pulse-cli/internal/tui/platform"
	tuistate "github.com/glabrego/pulse-cli/internal/tui/state"
	tuitheme "github.com/glabrego/pulse-cli/internal/tui/theme"
)

const statusTTL = 4 * time.Second

type Options struct {
	Nav     nav.Options
	Timeout time.Duration
	Dark    bool
	// Cached seeds the home feed until the first page arrives.
	Cached []social.Item
	// Preview renders image stories; nil disables previews.
	Preview         func(ctx context.Context, url string, width int) (string, error)
	SavePreferences func(dark bool) error
	Logger          *zap.Logger
}

type clearStatusMsg struct {
	id int
}

type Model struct {
	runner tuiactions.Runner
	nav    *nav.Navigator
	screen *screen
	theme  tuitheme.Theme
	logger *zap.Logger

	cursor  map[nav.Section]int
	rows    []social.Summary
	cached  []social.Item
	profile *social.Profile

	query     textinput.Model
	searching bool
	form      *form
	// formTarget is the id the next form modal acts on.
	formTarget int64
	storyPick  int

	spinner  spinner.Model
	loading  bool
	checking bool
	status   string
	statusID int
	warning  string

	width  int
	height int

	previews          map[string]string
	previewFn         func(ctx context.Context, url string, width int) (string, error)
	openURLFn         func(string) error
	copyURLFn         func(string) error
	savePreferencesFn func(dark bool) error
	nowFn             func() time.Time
}

func NewModel(service tuiactions.Service, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	navOpts := opts.Nav
	navOpts.Logger = logger

	sc := newScreen()
	var prober nav.Prober
	if service != nil {
		prober = service
	}
	navigator := nav.New(prober, sc, navOpts)

	query := textinput.New()
	query.Placeholder = "search people and posts"
	query.CharLimit = 100

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		runner:            tuiactions.Runner{Service: service, Gate: navigator, Timeout: opts.Timeout},
		nav:               navigator,
		screen:            sc,
		theme:             tuitheme.For(opts.Dark),
		logger:            logger,
		cursor:            make(map[nav.Section]int),
		cached:            append([]social.Item(nil), opts.Cached...),
		query:             query,
		spinner:           sp,
		checking:          service != nil,
		previews:          make(map[string]string),
		previewFn:         opts.Preview,
		openURLFn:         tuiplatform.OpenURLInBrowser,
		copyURLFn:         tuiplatform.CopyURLToClipboard,
		savePreferencesFn: opts.SavePreferences,
		nowFn:             time.Now,
	}
}

func (m Model) Init() tea.Cmd {
	if m.runner.Service == nil {
		return nil
	}
	return tea.Batch(m.spinner.Tick, m.runner.CheckSession(tuiactions.Target{Section: nav.SectionHome}))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	next.syncForm()
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case clearStatusMsg:
		if msg.id == m.statusID {
			m.status = ""
		}
		return m, nil
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tuiactions.SessionCheckedMsg:
		return m.applySession(msg)
	case tuiactions.FeedLoadedMsg:
		return m.applyFeed(msg)
	case tuiactions.SectionLoadedMsg:
		m.loading = false
		if msg.Section == m.nav.ActiveSection() {
			m.rows = msg.Rows
			m.cursor[msg.Section] = tuistate.ClampCursor(m.cursor[msg.Section], len(m.rows))
		}
		return m, nil
	case tuiactions.SectionLoadErrorMsg:
		m.loading = false
		m.nav.HandleActionError(msg.Err)
		return m, nil
	case tuiactions.ProfileLoadedMsg:
		m.loading = false
		p := msg.Profile
		m.profile = &p
		return m, nil
	case tuiactions.ProfileLoadErrorMsg:
		m.loading = false
		m.nav.HandleActionError(msg.Err)
		return m, nil

	case tuiactions.LikeToggledMsg:
		m.screen.updateItems(func(item *social.Item) {
			if item.ID != msg.PostID || item.Liked == msg.Liked {
				return
			}
			item.Liked = msg.Liked
			if msg.Liked {
				item.Likes++
			} else if item.Likes > 0 {
				item.Likes--
			}
		})
		return m, m.setStatus(msg.Status)
	case tuiactions.FollowToggledMsg:
		m.screen.updateItems(func(item *social.Item) {
			if item.AuthorID == msg.UserID {
				item.Following = msg.Following
			}
		})
		return m, m.setStatus(msg.Status)
	case tuiactions.ActionDoneMsg:
		m.loading = false
		if msg.Modal != nav.ModalNone {
			m.closeForm(msg.Modal)
		}
		switch msg.Modal {
		case nav.ModalRegister, nav.ModalReset:
			m.nav.OpenModal(nav.ModalLogin, nav.Anonymous)
		case nav.ModalForgot:
			m.nav.OpenModal(nav.ModalReset, nav.Anonymous)
		}
		if msg.Modal == nav.ModalComment {
			m.screen.updateItems(func(item *social.Item) {
				if item.ID == m.formTarget {
					item.Comments++
				}
			})
		}
		return m, m.setStatus(msg.Status)
	case tuiactions.ActionErrorMsg:
		m.loading = false
		if m.form != nil {
			m.form.submitting = false
		}
		m.nav.HandleActionError(msg.Err)
		return m, nil
	case tuiactions.LoggedInMsg:
		m.loading = false
		m.nav.CloseModal(nav.ModalLogin)
		var cmd tea.Cmd
		m, cmd = m.checkSession(tuiactions.Target{Section: nav.SectionHome})
		return m, tea.Batch(m.setStatus("Signed in"), cmd)
	case tuiactions.LoginErrorMsg:
		m.loading = false
		if m.form != nil {
			m.form.submitting = false
		}
		if nav.Classify(msg.Err) == nav.KindUnauthenticated {
			m.screen.ShowAlert("Invalid username or password")
			return m, nil
		}
		m.nav.HandleActionError(msg.Err)
		return m, nil
	case tuiactions.LoggedOutMsg:
		m.loading = false
		m.profile = nil
		m.rows = nil
		var cmd tea.Cmd
		m, cmd = m.checkSession(tuiactions.Target{Section: nav.SectionHome})
		return m, tea.Batch(m.setStatus("Signed out"), cmd)

	case tuiactions.PreviewLoadedMsg:
		if msg.Err != nil {
			m.logger.Debug("story preview unavailable", zap.String("url", msg.URL), zap.Error(msg.Err))
			return m, nil
		}
		m.previews[msg.URL] = msg.Preview
		return m, nil
	case tuiactions.OpenURLSuccessMsg:
		return m, m.setStatus(msg.Status)
	case tuiactions.OpenURLErrorMsg:
		m.warning = msg.Err.Error()
		return m, nil
	case tuiactions.PreferenceSaveErrorMsg:
		m.warning = "Could not save theme: " + msg.Err.Error()
		return m, nil
	}
	return m, nil
}

func (m Model) applySession(msg tuiactions.SessionCheckedMsg) (Model, tea.Cmd) {
	m.checking = false
	target := msg.Target
	switch {
	case target.Modal == nav.ModalStory:
		if msg.Status != nav.Authenticated {
			m.nav.OpenModal(nav.ModalStory, msg.Status)
			return m, nil
		}
		if err := m.nav.OpenStory(target.Story); err != nil {
			m.warning = fmt.Sprintf("Story %d is no longer available", target.Story+1)
			return m, nil
		}
		return m, m.previewCmd()
	case target.Modal != nav.ModalNone:
		m.nav.OpenModal(target.Modal, msg.Status)
		return m, nil
	case target.Section != nav.SectionNone:
		return m.enterSection(target.Section, msg.Status)
	}
	return m, nil
}

func (m Model) enterSection(section nav.Section, status nav.Status) (Model, tea.Cmd) {
	entry := m.nav.Enter(section, status)
	if !entry.Allowed {
		return m, nil
	}
	m.cursor[section] = 0
	m.rows = nil
	m.warning = ""
	m.searching = false
	m.query.Blur()

	if entry.Load {
		return m.startLoading(m.runner.LoadFeed(entry.Ticket))
	}
	switch section {
	case nav.SectionProfile:
		return m.startLoading(m.runner.LoadProfile())
	case nav.SectionSearch:
		if m.query.Value() == "" {
			m.searching = true
			return m, m.query.Focus()
		}
		return m.startLoading(m.runner.LoadSection(section, m.query.Value()))
	case nav.SectionFriends, nav.SectionInbox, nav.SectionNotifications, nav.SectionAdmin:
		return m.startLoading(m.runner.LoadSection(section, ""))
	}
	return m, nil
}

func (m Model) applyFeed(msg tuiactions.FeedLoadedMsg) (Model, tea.Cmd) {
	m.loading = false
	out := m.nav.CompleteFeed(msg.Ticket, msg.Page, msg.Err)
	switch {
	case out.Stale:
		return m, nil
	case out.Failed:
		return m, nil
	}
	if msg.HasStories {
		m.nav.SetStories(msg.Stories)
	}
	if msg.Ticket.Page == 1 && msg.Ticket.Kind == social.KindPosts {
		m.cached = nil
	}
	m.logger.Debug("feed page loaded",
		zap.String("kind", string(msg.Ticket.Kind)),
		zap.Int("page", msg.Ticket.Page),
		zap.Duration("duration", msg.Duration))
	return m, nil
}

func (m Model) startLoading(cmd tea.Cmd) (Model, tea.Cmd) {
	m.loading = true
	return m, tea.Batch(cmd, m.spinner.Tick)
}

// gated runs a session check before opening a modal that needs a session.
func (m Model) gated(modal nav.Modal, target int64) (Model, tea.Cmd) {
	m.formTarget = target
	if modal.Public() {
		m.nav.OpenModal(modal, nav.Anonymous)
		return m, nil
	}
	return m.checkSession(tuiactions.Target{Modal: modal})
}

func (m Model) navigate(section nav.Section) (Model, tea.Cmd) {
	return m.checkSession(tuiactions.Target{Section: section})
}

// checkSession starts a probe. applySession clears only the probe's flag.
func (m Model) checkSession(target tuiactions.Target) (Model, tea.Cmd) {
	m.checking = true
	return m, tea.Batch(m.runner.CheckSession(target), m.spinner.Tick)
}

func (m Model) busy() bool {
	return m.loading || m.checking
}

func (m *Model) closeForm(modal nav.Modal) {
	m.nav.CloseModal(modal)
	m.form = nil
}

// syncForm keeps the form in step with whichever modal the navigator shows.
func (m *Model) syncForm() {
	modal := m.screen.modal
	if _, ok := formSpecs[modal]; !ok {
		m.form = nil
		return
	}
	if m.form != nil && m.form.modal == modal {
		return
	}
	m.form = newForm(modal, m.formTarget)
}

func (m *Model) setStatus(status string) tea.Cmd {
	m.statusID++
	m.status = status
	m.warning = ""
	return clearStatusCmd(m.statusID, statusTTL)
}

func clearStatusCmd(id int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return clearStatusMsg{id: id}
	})
}

func (m Model) previewCmd() tea.Cmd {
	story := m.screen.story
	if m.previewFn == nil || story.MediaURL == "" || story.IsVideo() {
		return nil
	}
	if _, ok := m.previews[story.MediaURL]; ok {
		return nil
	}
	return m.runner.Preview(story.MediaURL, m.contentWidth()-4, m.previewFn)
}

func (m Model) activeFeed() (social.FeedKind, []social.Item, bool) {
	section := m.screen.section
	if section == nav.SectionNone && len(m.cached) > 0 {
		return social.KindPosts, m.cached, true
	}
	kind, ok := section.FeedKind()
	if !ok {
		return "", nil, false
	}
	return kind, m.screen.feeds[kind], true
}

func (m Model) currentItem() (social.Item, bool) {
	_, items, ok := m.activeFeed()
	if !ok || len(items) == 0 {
		return social.Item{}, false
	}
	return items[tuistate.ClampCursor(m.cursor[m.screen.section], len(items))], true
}

func (m Model) currentRow() (social.Summary, bool) {
	rows := m.listRows()
	if len(rows) == 0 {
		return social.Summary{}, false
	}
	return rows[tuistate.ClampCursor(m.cursor[m.screen.section], len(rows))], true
}

func (m Model) contentWidth() int {
	if m.width <= 0 {
		return 100
	}
	return m.width
}

// ApplyPreferences sets the theme without persisting it.
func (m *Model) ApplyPreferences(dark bool) {
	m.theme = tuitheme.For(dark)
}
