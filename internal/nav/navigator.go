package nav

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/glabrego/pulse-cli/internal/social"
)

// ViewModel is implemented by the rendering layer. The navigator calls it after
// every state transition; implementations only paint.
type ViewModel interface {
	SetActiveSection(Section)
	SetActiveModal(Modal)
	ResetFeed(social.FeedKind)
	AppendFeedItems(social.FeedKind, []social.Item)
	ShowStory(index int, story social.Story)
	SetPlayback(paused bool)
	ShowAlert(message string)
}

type Options struct {
	ScrollThreshold  int
	SwipeThreshold   int
	DismissThreshold int
	StoryPolicy      Policy
	Logger           *zap.Logger
}

// Entry is the result of entering a section.
type Entry struct {
	Allowed bool
	// Load is set when the section owns a feed and Ticket must be fetched.
	Load   bool
	Ticket Ticket
}

// Navigator composes the session gate, router, feed pagers and story carousel.
type Navigator struct {
	gate     *SessionGate
	router   *Router
	pagers   map[social.FeedKind]*Pager
	carousel *Carousel
	strip    []social.Story
	view     ViewModel
	logger   *zap.Logger
}

func New(prober Prober, view ViewModel, opts Options) *Navigator {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Navigator{
		gate:   NewSessionGate(prober, logger),
		router: NewRouter(),
		pagers: map[social.FeedKind]*Pager{
			social.KindPosts: NewPager(social.KindPosts, opts.ScrollThreshold),
			social.KindReels: NewPager(social.KindReels, opts.ScrollThreshold),
		},
		carousel: NewCarousel(opts.StoryPolicy, opts.SwipeThreshold, opts.DismissThreshold),
		view:     view,
		logger:   logger,
	}
}

// CheckSession probes the backend. Callers on an event loop run it off-loop and
// hand the result to Enter or OpenModal.
func (n *Navigator) CheckSession(ctx context.Context) Status {
	return n.gate.Check(ctx)
}

// Navigate gates and enters s in one blocking call.
func (n *Navigator) Navigate(ctx context.Context, s Section) Entry {
	return n.Enter(s, n.gate.Check(ctx))
}

// Enter applies a gate decision for s. Anonymous forces the login modal and
// nothing else changes. Entering a feed section resets its pager and claims page 1.
func (n *Navigator) Enter(s Section, st Status) Entry {
	if st != Authenticated {
		n.requireLogin(nil)
		return Entry{}
	}
	n.router.ShowSection(s)
	n.view.SetActiveSection(s)
	n.view.SetActiveModal(ModalNone)
	if n.carousel.IsOpen() {
		n.carousel.Close()
	}
	n.logger.Debug("section shown", zap.Stringer("section", s))

	kind, ok := s.FeedKind()
	if !ok {
		return Entry{Allowed: true}
	}
	pager := n.pagers[kind]
	pager.Reset()
	n.view.ResetFeed(kind)
	t, ok := pager.Begin()
	return Entry{Allowed: true, Load: ok, Ticket: t}
}

func (n *Navigator) BeginFeed(kind social.FeedKind) (Ticket, bool) {
	pager, ok := n.pagers[kind]
	if !ok {
		return Ticket{}, false
	}
	return pager.Begin()
}

// OnScroll claims the next page when the remaining distance drops below the threshold.
func (n *Navigator) OnScroll(kind social.FeedKind, remaining int) (Ticket, bool) {
	pager, ok := n.pagers[kind]
	if !ok || !pager.ShouldLoad(remaining) {
		return Ticket{}, false
	}
	return pager.Begin()
}

// CompleteFeed applies a fetch result. Failures of any kind route to login.
func (n *Navigator) CompleteFeed(t Ticket, page social.FeedPage, err error) Outcome {
	pager, ok := n.pagers[t.Kind]
	if !ok {
		return Outcome{Stale: true}
	}
	out := pager.Complete(t, page, err)
	switch {
	case out.Stale:
		n.logger.Debug("stale feed reply dropped", zap.String("kind", string(t.Kind)), zap.Int("page", t.Page))
	case out.Failed:
		n.requireLogin(out.Err)
	default:
		n.view.AppendFeedItems(t.Kind, out.Items)
		n.logger.Debug("feed page appended",
			zap.String("kind", string(t.Kind)),
			zap.Int("page", t.Page),
			zap.Int("items", len(out.Items)),
			zap.Bool("exhausted", out.Exhausted))
	}
	return out
}

// LoadNext claims, fetches and applies the next page in one blocking call.
func (n *Navigator) LoadNext(ctx context.Context, kind social.FeedKind, src FeedSource) (Outcome, bool) {
	t, ok := n.BeginFeed(kind)
	if !ok {
		return Outcome{}, false
	}
	page, err := src.FetchPage(ctx, t.Kind, t.Page)
	return n.CompleteFeed(t, page, err), true
}

func (n *Navigator) PagerState(kind social.FeedKind) PagerState {
	pager, ok := n.pagers[kind]
	if !ok {
		return PagerState{}
	}
	return pager.State()
}

// OpenModal shows m after a gate decision. Auth modals are always reachable.
func (n *Navigator) OpenModal(m Modal, st Status) bool {
	if !m.Public() && st != Authenticated {
		n.requireLogin(nil)
		return false
	}
	n.router.ShowModal(m)
	n.view.SetActiveModal(m)
	return true
}

func (n *Navigator) CloseModal(m Modal) {
	if !n.router.CloseModal(m) {
		return
	}
	if m == ModalStory {
		n.carousel.Close()
	}
	n.view.SetActiveModal(ModalNone)
}

func (n *Navigator) ActiveSection() Section {
	return n.router.ActiveSection()
}

func (n *Navigator) ActiveModal() Modal {
	return n.router.ActiveModal()
}

// SetStories stores the story strip fetched with the home section.
func (n *Navigator) SetStories(stories []social.Story) {
	n.strip = append([]social.Story(nil), stories...)
}

func (n *Navigator) Stories() []social.Story {
	return n.strip
}

// OpenStory shows the story modal at index. The carousel works on its own copy
// of the strip, discarded again when the modal closes.
func (n *Navigator) OpenStory(index int) error {
	if !n.carousel.IsOpen() {
		n.carousel.Load(n.strip)
	}
	if err := n.carousel.Open(index); err != nil {
		if !n.carousel.IsOpen() {
			n.carousel.Close()
		}
		return err
	}
	n.router.ShowModal(ModalStory)
	n.view.SetActiveModal(ModalStory)
	n.showCurrentStory()
	return nil
}

func (n *Navigator) AdvanceStory(dir Direction) bool {
	if !n.carousel.Advance(dir) {
		return false
	}
	n.showCurrentStory()
	return true
}

func (n *Navigator) StoryIndex() (int, bool) {
	return n.carousel.Index(), n.carousel.IsOpen()
}

func (n *Navigator) StoryTouch(x, y int) {
	if n.carousel.Touch(x, y) {
		n.view.SetPlayback(true)
	}
}

func (n *Navigator) StoryRelease(x, y int) GestureAction {
	action, resume := n.carousel.Release(x, y)
	switch action {
	case GestureNext:
		n.AdvanceStory(Next)
	case GesturePrev:
		n.AdvanceStory(Prev)
	case GestureClose:
		n.CloseModal(ModalStory)
	default:
		if resume {
			n.view.SetPlayback(false)
		}
	}
	return action
}

func (n *Navigator) CloseStory() {
	n.CloseModal(ModalStory)
}

// HandleActionError reports an action failure: rejected actions surface their
// message, everything else is treated as a lost session.
func (n *Navigator) HandleActionError(err error) ErrorKind {
	kind := Classify(err)
	switch kind {
	case KindValidation:
		var verr *social.ValidationError
		errors.As(err, &verr)
		n.view.ShowAlert(verr.Message)
	case KindUnauthenticated, KindNetwork:
		n.requireLogin(err)
	}
	return kind
}

func (n *Navigator) showCurrentStory() {
	story, ok := n.carousel.Current()
	if !ok {
		return
	}
	n.view.ShowStory(n.carousel.Index(), story)
	n.view.SetPlayback(false)
}

func (n *Navigator) requireLogin(cause error) {
	if n.carousel.IsOpen() {
		n.carousel.Close()
	}
	n.router.ShowModal(ModalLogin)
	n.view.SetActiveModal(ModalLogin)
	if cause != nil {
		n.logger.Warn("routing to login", zap.String("kind", Classify(cause).String()), zap.Error(cause))
		return
	}
	n.logger.Debug("routing to login")
}
