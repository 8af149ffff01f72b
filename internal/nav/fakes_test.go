package nav

import (
	"context"
	"errors"
	"sync"

	"github.com/glabrego/pulse-cli/internal/social"
)

type fakeView struct {
	section  Section
	modal    Modal
	feeds    map[social.FeedKind][]int64
	resets   map[social.FeedKind]int
	story    social.Story
	storyIdx int
	paused   bool
	alerts   []string
}

func newFakeView() *fakeView {
	return &fakeView{
		feeds:  make(map[social.FeedKind][]int64),
		resets: make(map[social.FeedKind]int),
	}
}

func (v *fakeView) SetActiveSection(s Section) { v.section = s }
func (v *fakeView) SetActiveModal(m Modal)     { v.modal = m }
func (v *fakeView) ResetFeed(kind social.FeedKind) {
	v.feeds[kind] = nil
	v.resets[kind]++
}
func (v *fakeView) AppendFeedItems(kind social.FeedKind, items []social.Item) {
	for _, item := range items {
		v.feeds[kind] = append(v.feeds[kind], item.ID)
	}
}
func (v *fakeView) ShowStory(index int, story social.Story) {
	v.storyIdx = index
	v.story = story
}
func (v *fakeView) SetPlayback(paused bool) { v.paused = paused }
func (v *fakeView) ShowAlert(message string) { v.alerts = append(v.alerts, message) }

type fakeProber struct {
	mu    sync.Mutex
	err   error
	calls int
}

func (p *fakeProber) Profile(context.Context) (social.Profile, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.err != nil {
		return social.Profile{}, p.err
	}
	return social.Profile{ID: 1, Username: "ada"}, nil
}

func (p *fakeProber) fail(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
}

// scriptedSource replies with pages in order; an entry with err set fails.
type scriptedSource struct {
	mu      sync.Mutex
	replies []scriptedReply
	pages   []int
	release chan struct{}
}

type scriptedReply struct {
	page social.FeedPage
	err  error
}

func (s *scriptedSource) FetchPage(ctx context.Context, kind social.FeedKind, page int) (social.FeedPage, error) {
	s.mu.Lock()
	s.pages = append(s.pages, page)
	release := s.release
	s.mu.Unlock()

	if release != nil {
		select {
		case <-release:
		case <-ctx.Done():
			return social.FeedPage{}, ctx.Err()
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.replies) == 0 {
		return social.FeedPage{}, errors.New("no scripted reply")
	}
	reply := s.replies[0]
	s.replies = s.replies[1:]
	return reply.page, reply.err
}

func (s *scriptedSource) requested() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.pages...)
}

func items(ids ...int64) []social.Item {
	out := make([]social.Item, 0, len(ids))
	for _, id := range ids {
		out = append(out, social.Item{ID: id, Author: "ada"})
	}
	return out
}
