package social

import (
	"encoding/json"
	"errors"
	"path"
	"strings"
	"time"
)

// FeedKind names a paginated feed.
type FeedKind string

const (
	KindPosts FeedKind = "posts"
	KindReels FeedKind = "reels"
)

func (k FeedKind) Valid() bool {
	return k == KindPosts || k == KindReels
}

// ErrUnauthenticated is returned when the backend rejects the session.
var ErrUnauthenticated = errors.New("not authenticated")

// ValidationError carries the message of an action the backend refused.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Profile is the payload of the session probe.
type Profile struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Bio         string `json:"bio"`
	Followers   int    `json:"followers"`
	Following   int    `json:"following"`
	IsAdmin     bool   `json:"isAdmin"`
}

// Item is a post or reel as returned by the feed endpoints.
type Item struct {
	ID        int64     `json:"id"`
	AuthorID  int64     `json:"authorId"`
	Author    string    `json:"author"`
	Caption   string    `json:"caption"`
	MediaURL  string    `json:"mediaUrl"`
	Likes     int       `json:"likes"`
	Comments  int       `json:"comments"`
	Liked     bool      `json:"liked"`
	Following bool      `json:"following"`
	CreatedAt time.Time `json:"createdAt"`

	Kind FeedKind `json:"-"`
}

// FeedPage is one page of a feed.
type FeedPage struct {
	Items   []Item `json:"items"`
	HasNext bool   `json:"hasNext"`
}

// Story is one entry of the story strip.
type Story struct {
	ID        int64  `json:"id"`
	MediaURL  string `json:"mediaUrl"`
	MediaType string `json:"mediaType"`
	Author    string `json:"author"`
}

func (s Story) IsVideo() bool {
	if s.MediaType != "" {
		return s.MediaType == "video"
	}
	switch strings.ToLower(path.Ext(s.MediaURL)) {
	case ".mp4", ".webm", ".mov":
		return true
	}
	return false
}

// Summary is a row of a list section (friends, inbox, notifications, search, reports).
type Summary struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}

// ActionResult is the envelope returned by action endpoints.
type ActionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (r ActionResult) failure() error {
	msg := strings.TrimSpace(r.Error)
	if msg == "" {
		msg = strings.TrimSpace(r.Message)
	}
	if msg == "" {
		msg = "request was rejected"
	}
	return &ValidationError{Message: msg}
}

// Wire names are camelCase. snake_case spellings are accepted when the
// camelCase field is absent.

func (p *Profile) UnmarshalJSON(data []byte) error {
	type plain Profile
	var wire struct {
		plain
		DisplayName string `json:"display_name"`
		IsAdmin     bool   `json:"is_admin"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*p = Profile(wire.plain)
	if p.DisplayName == "" {
		p.DisplayName = wire.DisplayName
	}
	p.IsAdmin = p.IsAdmin || wire.IsAdmin
	return nil
}

func (it *Item) UnmarshalJSON(data []byte) error {
	type plain Item
	var wire struct {
		plain
		AuthorID  int64     `json:"author_id"`
		MediaURL  string    `json:"media_url"`
		CreatedAt time.Time `json:"created_at"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*it = Item(wire.plain)
	if it.AuthorID == 0 {
		it.AuthorID = wire.AuthorID
	}
	if it.MediaURL == "" {
		it.MediaURL = wire.MediaURL
	}
	if it.CreatedAt.IsZero() {
		it.CreatedAt = wire.CreatedAt
	}
	return nil
}

func (f *FeedPage) UnmarshalJSON(data []byte) error {
	type plain FeedPage
	var wire struct {
		plain
		HasNext bool `json:"has_next"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*f = FeedPage(wire.plain)
	f.HasNext = f.HasNext || wire.HasNext
	return nil
}

func (s *Story) UnmarshalJSON(data []byte) error {
	type plain Story
	var wire struct {
		plain
		MediaURL  string `json:"media_url"`
		MediaType string `json:"media_type"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*s = Story(wire.plain)
	if s.MediaURL == "" {
		s.MediaURL = wire.MediaURL
	}
	if s.MediaType == "" {
		s.MediaType = wire.MediaType
	}
	return nil
}
