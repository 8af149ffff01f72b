package nav

import (
	"context"
	"sync"

	"github.com/glabrego/pulse-cli/internal/social"
)

// FeedSource fetches one page of a feed.
type FeedSource interface {
	FetchPage(ctx context.Context, kind social.FeedKind, page int) (social.FeedPage, error)
}

// Ticket identifies the single outstanding request of a Pager.
type Ticket struct {
	Kind       social.FeedKind
	Page       int
	Generation uint64
}

// Outcome is the result of completing a Ticket.
type Outcome struct {
	Items     []social.Item
	Exhausted bool
	Failed    bool
	Err       error
	Stale     bool
}

// PagerState is a read-only snapshot of a Pager.
type PagerState struct {
	Page      int
	InFlight  bool
	Exhausted bool
}

// Pager drives incremental page loading with at most one request in flight.
// Reset bumps the generation so a late reply for an older load is dropped.
type Pager struct {
	kind      social.FeedKind
	threshold int

	mu         sync.Mutex
	page       int
	inFlight   bool
	exhausted  bool
	generation uint64
}

func NewPager(kind social.FeedKind, threshold int) *Pager {
	if threshold < 1 {
		threshold = DefaultScrollThreshold
	}
	return &Pager{kind: kind, threshold: threshold, page: 1}
}

func (p *Pager) Kind() social.FeedKind {
	return p.kind
}

// Begin claims the next page. It returns false while a request is in flight or
// after the feed reported its last page.
func (p *Pager) Begin() (Ticket, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.inFlight || p.exhausted {
		return Ticket{}, false
	}
	p.inFlight = true
	return Ticket{Kind: p.kind, Page: p.page, Generation: p.generation}, true
}

func (p *Pager) Complete(t Ticket, page social.FeedPage, err error) Outcome {
	p.mu.Lock()
	defer p.mu.Unlock()
	if t.Kind != p.kind || t.Generation != p.generation || !p.inFlight {
		return Outcome{Stale: true}
	}
	p.inFlight = false
	if err != nil {
		return Outcome{Failed: true, Err: err}
	}
	if page.HasNext {
		p.page++
	} else {
		p.exhausted = true
	}
	return Outcome{Items: page.Items, Exhausted: p.exhausted}
}

// LoadNext runs Begin, the fetch and Complete in one blocking call. ok is false when
// the call was a no-op.
func (p *Pager) LoadNext(ctx context.Context, src FeedSource) (Outcome, bool) {
	t, ok := p.Begin()
	if !ok {
		return Outcome{}, false
	}
	page, err := src.FetchPage(ctx, t.Kind, t.Page)
	return p.Complete(t, page, err), true
}

func (p *Pager) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.page = 1
	p.inFlight = false
	p.exhausted = false
	p.generation++
}

// ShouldLoad reports whether the remaining scroll distance is below the trigger threshold.
func (p *Pager) ShouldLoad(remaining int) bool {
	return remaining < p.threshold
}

func (p *Pager) State() PagerState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return PagerState{Page: p.page, InFlight: p.inFlight, Exhausted: p.exhausted}
}
