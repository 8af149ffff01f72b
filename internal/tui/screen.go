package tui

import (
	"github.com/glabrego/pulse-cli/internal/nav"
	"github.com/glabrego/pulse-cli/internal/social"
	tuistate "github.com/glabrego/pulse-cli/internal/tui/state"
)

// screen is what the navigator drives. Model copies share one screen, and it is
// only touched from Update.
type screen struct {
	section nav.Section
	modal   nav.Modal
	feeds   map[social.FeedKind][]social.Item

	storyIndex int
	story      social.Story
	paused     bool

	alert string
}

var _ nav.ViewModel = (*screen)(nil)

func newScreen() *screen {
	return &screen{feeds: make(map[social.FeedKind][]social.Item)}
}

func (s *screen) SetActiveSection(section nav.Section) {
	s.section = section
}

func (s *screen) SetActiveModal(m nav.Modal) {
	s.modal = m
	if m != nav.ModalStory {
		s.story = social.Story{}
		s.paused = false
	}
}

func (s *screen) ResetFeed(kind social.FeedKind) {
	s.feeds[kind] = nil
}

func (s *screen) AppendFeedItems(kind social.FeedKind, items []social.Item) {
	s.feeds[kind] = tuistate.MergeItems(s.feeds[kind], items)
}

func (s *screen) ShowStory(index int, story social.Story) {
	s.storyIndex = index
	s.story = story
}

func (s *screen) SetPlayback(paused bool) {
	s.paused = paused
}

func (s *screen) ShowAlert(message string) {
	s.alert = message
}

// updateItems applies fn to every loaded item in both feeds.
func (s *screen) updateItems(fn func(*social.Item)) {
	for kind, items := range s.feeds {
		for i := range items {
			fn(&items[i])
		}
		s.feeds[kind] = items
	}
}
