package nav

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/glabrego/pulse-cli/internal/social"
)

func TestPager_BeginTwiceYieldsOneTicket(t *testing.T) {
	p := NewPager(social.KindPosts, 5)

	first, ok := p.Begin()
	require.True(t, ok)
	assert.Equal(t, 1, first.Page)

	_, ok = p.Begin()
	assert.False(t, ok, "second Begin while in flight must be a no-op")
	assert.True(t, p.State().InFlight)
}

func TestPager_ConcurrentLoadNextIssuesOneRequest(t *testing.T) {
	defer goleak.VerifyNone(t)

	src := &scriptedSource{
		replies: []scriptedReply{{page: social.FeedPage{Items: items(1), HasNext: true}}},
		release: make(chan struct{}),
	}
	p := NewPager(social.KindPosts, 5)

	started := make(chan bool, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ok := p.LoadNext(context.Background(), src)
			started <- ok
		}()
	}

	// One caller returns immediately as a no-op; the other is parked in FetchPage.
	select {
	case ok := <-started:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("expected the duplicate LoadNext to return immediately")
	}
	close(src.release)
	wg.Wait()
	close(started)

	assert.Equal(t, []int{1}, src.requested())
	assert.Equal(t, 2, p.State().Page)
}

func TestPager_ScenarioAppendsThenExhausts(t *testing.T) {
	src := &scriptedSource{replies: []scriptedReply{
		{page: social.FeedPage{Items: items(1, 2), HasNext: true}},
		{page: social.FeedPage{Items: items(3), HasNext: false}},
	}}
	p := NewPager(social.KindPosts, 5)
	ctx := context.Background()

	out, ok := p.LoadNext(ctx, src)
	require.True(t, ok)
	assert.Equal(t, 2, p.State().Page)
	assert.False(t, out.Exhausted)
	assert.Len(t, out.Items, 2)

	out, ok = p.LoadNext(ctx, src)
	require.True(t, ok)
	assert.True(t, out.Exhausted)
	assert.Len(t, out.Items, 1)

	for i := 0; i < 3; i++ {
		_, ok = p.LoadNext(ctx, src)
		assert.False(t, ok, "exhausted pager must not request again")
	}
	if diff := cmp.Diff([]int{1, 2}, src.requested()); diff != "" {
		t.Fatalf("unexpected requested pages (-want +got):\n%s", diff)
	}
	assert.Equal(t, PagerState{Page: 2, Exhausted: true}, p.State())
}

func TestPager_FailureKeepsPageAndClearsGuard(t *testing.T) {
	src := &scriptedSource{replies: []scriptedReply{
		{page: social.FeedPage{Items: items(1), HasNext: true}},
		{err: errors.New("connection reset")},
	}}
	p := NewPager(social.KindReels, 5)
	ctx := context.Background()

	_, _ = p.LoadNext(ctx, src)
	out, ok := p.LoadNext(ctx, src)
	require.True(t, ok)
	assert.True(t, out.Failed)
	assert.EqualError(t, out.Err, "connection reset")
	assert.Equal(t, PagerState{Page: 2}, p.State())
}

func TestPager_ResetDropsStaleReply(t *testing.T) {
	p := NewPager(social.KindPosts, 5)
	old, ok := p.Begin()
	require.True(t, ok)

	p.Reset()
	fresh, ok := p.Begin()
	require.True(t, ok)
	assert.NotEqual(t, old.Generation, fresh.Generation)

	out := p.Complete(old, social.FeedPage{Items: items(9), HasNext: true}, nil)
	assert.True(t, out.Stale)
	assert.True(t, p.State().InFlight, "stale reply must not release the fresh request")

	out = p.Complete(fresh, social.FeedPage{Items: items(1), HasNext: true}, nil)
	assert.False(t, out.Stale)
	assert.Equal(t, 2, p.State().Page)
}

func TestPager_ResetAfterExhaustion(t *testing.T) {
	p := NewPager(social.KindPosts, 5)
	tk, _ := p.Begin()
	p.Complete(tk, social.FeedPage{}, nil)
	require.True(t, p.State().Exhausted)

	p.Reset()
	assert.Equal(t, PagerState{Page: 1}, p.State())
	_, ok := p.Begin()
	assert.True(t, ok)
}

func TestPager_ShouldLoad(t *testing.T) {
	p := NewPager(social.KindPosts, 5)
	assert.True(t, p.ShouldLoad(4))
	assert.False(t, p.ShouldLoad(5))

	def := NewPager(social.KindPosts, 0)
	assert.True(t, def.ShouldLoad(DefaultScrollThreshold-1))
	assert.False(t, def.ShouldLoad(DefaultScrollThreshold))
}
