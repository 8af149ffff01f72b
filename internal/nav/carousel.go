package nav

import (
	"errors"
	"fmt"

	"github.com/glabrego/pulse-cli/internal/social"
)

const (
	DefaultScrollThreshold  = 100
	DefaultSwipeThreshold   = 50
	DefaultDismissThreshold = 50
)

// ErrOutOfRange is returned when a story index does not address the loaded list.
var ErrOutOfRange = errors.New("story index out of range")

type Direction int

const (
	Prev Direction = iota
	Next
)

// Policy decides what happens when advancing past either end of the list.
type Policy int

const (
	// PolicyClamp makes advancing past an end a no-op.
	PolicyClamp Policy = iota
	// PolicyWrap wraps around to the other end.
	PolicyWrap
)

func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "clamp":
		return PolicyClamp, nil
	case "wrap":
		return PolicyWrap, nil
	}
	return PolicyClamp, fmt.Errorf("unknown story policy %q", s)
}

type GestureAction int

const (
	GestureNone GestureAction = iota
	GestureNext
	GesturePrev
	GestureClose
)

func (a GestureAction) String() string {
	switch a {
	case GestureNext:
		return "next"
	case GesturePrev:
		return "prev"
	case GestureClose:
		return "close"
	}
	return "none"
}

// Carousel is the story viewer: a linear index over an ordered story list plus
// the touch state of the current gesture.
type Carousel struct {
	policy  Policy
	swipe   int
	dismiss int

	stories []social.Story
	index   int
	open    bool

	touching       bool
	startX, startY int
	paused         bool
}

func NewCarousel(policy Policy, swipe, dismiss int) *Carousel {
	if swipe < 1 {
		swipe = DefaultSwipeThreshold
	}
	if dismiss < 1 {
		dismiss = DefaultDismissThreshold
	}
	return &Carousel{policy: policy, swipe: swipe, dismiss: dismiss}
}

// Load replaces the story list and closes the viewer.
func (c *Carousel) Load(stories []social.Story) {
	c.stories = append([]social.Story(nil), stories...)
	c.index = 0
	c.open = false
	c.touching = false
	c.paused = false
}

func (c *Carousel) Open(index int) error {
	if index < 0 || index >= len(c.stories) {
		return fmt.Errorf("open story %d of %d: %w", index, len(c.stories), ErrOutOfRange)
	}
	c.index = index
	c.open = true
	c.touching = false
	c.paused = false
	return nil
}

// Advance moves one story in dir and reports whether the index changed.
func (c *Carousel) Advance(dir Direction) bool {
	n := len(c.stories)
	if !c.open || n == 0 {
		return false
	}
	switch dir {
	case Next:
		if c.index < n-1 {
			c.index++
			return true
		}
		if c.policy == PolicyWrap && n > 1 {
			c.index = 0
			return true
		}
	case Prev:
		if c.index > 0 {
			c.index--
			return true
		}
		if c.policy == PolicyWrap && n > 1 {
			c.index = n - 1
			return true
		}
	}
	return false
}

// Close hides the viewer and discards the story list.
func (c *Carousel) Close() {
	c.stories = nil
	c.index = 0
	c.open = false
	c.touching = false
	c.paused = false
}

func (c *Carousel) IsOpen() bool {
	return c.open
}

func (c *Carousel) Index() int {
	return c.index
}

func (c *Carousel) Len() int {
	return len(c.stories)
}

func (c *Carousel) Current() (social.Story, bool) {
	if !c.open || c.index < 0 || c.index >= len(c.stories) {
		return social.Story{}, false
	}
	return c.stories[c.index], true
}

// Touch starts a hold at (x, y). It reports true when the hold paused video playback.
func (c *Carousel) Touch(x, y int) bool {
	if !c.open {
		return false
	}
	c.touching = true
	c.startX, c.startY = x, y
	story, ok := c.Current()
	if ok && story.IsVideo() && !c.paused {
		c.paused = true
		return true
	}
	return false
}

// Release ends the hold at (x, y). Leftward drags past the swipe threshold map to
// next, rightward to prev, downward drags past the dismiss threshold close the
// viewer. resume is true when a paused video should play again.
func (c *Carousel) Release(x, y int) (action GestureAction, resume bool) {
	if !c.open || !c.touching {
		return GestureNone, false
	}
	c.touching = false
	dx, dy := x-c.startX, y-c.startY

	switch {
	case abs(dx) > c.swipe && abs(dx) >= abs(dy):
		action = GesturePrev
		if dx < 0 {
			action = GestureNext
		}
	case dy > c.dismiss:
		action = GestureClose
	}

	if action == GestureNone && c.paused {
		c.paused = false
		return GestureNone, true
	}
	c.paused = false
	return action, false
}

func (c *Carousel) Paused() bool {
	return c.paused
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
