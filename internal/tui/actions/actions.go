package actions

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/pulse-cli/internal/nav"
	"github.com/glabrego/pulse-cli/internal/social"
)

const DefaultTimeout = 10 * time.Second

type Service interface {
	FetchPage(ctx context.Context, kind social.FeedKind, page int) (social.FeedPage, error)
	LoadHome(ctx context.Context, page int) (social.FeedPage, []social.Story, error)
	Profile(ctx context.Context) (social.Profile, error)
	ListSection(ctx context.Context, section nav.Section, query string) ([]social.Summary, error)
	ToggleLike(ctx context.Context, postID int64, currentLiked bool) (bool, error)
	ToggleFollow(ctx context.Context, userID int64, currentFollowing bool) (bool, error)
	Comment(ctx context.Context, postID int64, text string) error
	Report(ctx context.Context, postID int64, reason string) error
	Moderate(ctx context.Context, reportID int64, action string) error
	SubmitForm(ctx context.Context, path string, fields map[string]string) error
	Login(ctx context.Context, username, password string) error
	Logout(ctx context.Context) error
}

type Gate interface {
	CheckSession(ctx context.Context) nav.Status
}

// Target records what a session check was started for.
type Target struct {
	Section nav.Section
	Modal   nav.Modal
	Story   int
}

type SessionCheckedMsg struct {
	Target Target
	Status nav.Status
}

// FeedLoadedMsg carries both outcomes; the navigator decides what a failure means.
type FeedLoadedMsg struct {
	Ticket     nav.Ticket
	Page       social.FeedPage
	Stories    []social.Story
	HasStories bool
	Err        error
	Duration   time.Duration
}

type SectionLoadedMsg struct {
	Section nav.Section
	Query   string
	Rows    []social.Summary
}

type SectionLoadErrorMsg struct {
	Section nav.Section
	Err     error
}

type ProfileLoadedMsg struct {
	Profile social.Profile
}

type ProfileLoadErrorMsg struct {
	Err error
}

type LikeToggledMsg struct {
	PostID int64
	Liked  bool
	Status string
}

type FollowToggledMsg struct {
	UserID    int64
	Following bool
	Status    string
}

type ActionDoneMsg struct {
	Modal  nav.Modal
	Status string
}

type ActionErrorMsg struct {
	Modal nav.Modal
	Err   error
}

type LoggedInMsg struct{}

type LoginErrorMsg struct {
	Err error
}

type LoggedOutMsg struct{}

type OpenURLSuccessMsg struct {
	Status string
	Opened bool
}

type OpenURLErrorMsg struct {
	Err error
}

type PreviewLoadedMsg struct {
	URL     string
	Preview string
	Err     error
}

type PreferenceSaveErrorMsg struct {
	Err error
}

// Runner builds commands that each run under their own deadline.
type Runner struct {
	Service Service
	Gate    Gate
	Timeout time.Duration
}

func (r Runner) withDeadline() (context.Context, context.CancelFunc) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return context.WithTimeout(context.Background(), timeout)
}

func (r Runner) CheckSession(target Target) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := r.withDeadline()
		defer cancel()
		return SessionCheckedMsg{Target: target, Status: r.Gate.CheckSession(ctx)}
	}
}

// LoadFeed fetches the ticket's page. The first home page also refreshes the story strip.
func (r Runner) LoadFeed(t nav.Ticket) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := r.withDeadline()
		defer cancel()
		start := time.Now()

		if t.Kind == social.KindPosts && t.Page == 1 {
			page, stories, err := r.Service.LoadHome(ctx, t.Page)
			return FeedLoadedMsg{Ticket: t, Page: page, Stories: stories, HasStories: err == nil, Err: err, Duration: time.Since(start)}
		}
		page, err := r.Service.FetchPage(ctx, t.Kind, t.Page)
		return FeedLoadedMsg{Ticket: t, Page: page, Err: err, Duration: time.Since(start)}
	}
}

func (r Runner) LoadSection(section nav.Section, query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := r.withDeadline()
		defer cancel()

		rows, err := r.Service.ListSection(ctx, section, query)
		if err != nil {
			return SectionLoadErrorMsg{Section: section, Err: err}
		}
		return SectionLoadedMsg{Section: section, Query: query, Rows: rows}
	}
}

func (r Runner) LoadProfile() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := r.withDeadline()
		defer cancel()

		profile, err := r.Service.Profile(ctx)
		if err != nil {
			return ProfileLoadErrorMsg{Err: err}
		}
		return ProfileLoadedMsg{Profile: profile}
	}
}

func (r Runner) ToggleLike(postID int64, currentLiked bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := r.withDeadline()
		defer cancel()

		liked, err := r.Service.ToggleLike(ctx, postID, currentLiked)
		if err != nil {
			return ActionErrorMsg{Err: err}
		}
		status := "Removed like"
		if liked {
			status = "Liked post"
		}
		return LikeToggledMsg{PostID: postID, Liked: liked, Status: status}
	}
}

func (r Runner) ToggleFollow(userID int64, currentFollowing bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := r.withDeadline()
		defer cancel()

		following, err := r.Service.ToggleFollow(ctx, userID, currentFollowing)
		if err != nil {
			return ActionErrorMsg{Err: err}
		}
		status := "Unfollowed"
		if following {
			status = "Following"
		}
		return FollowToggledMsg{UserID: userID, Following: following, Status: status}
	}
}

func (r Runner) Comment(postID int64, text string) tea.Cmd {
	return r.do(nav.ModalComment, "Comment posted", func(ctx context.Context) error {
		return r.Service.Comment(ctx, postID, text)
	})
}

func (r Runner) Report(postID int64, reason string) tea.Cmd {
	return r.do(nav.ModalNone, "Post reported", func(ctx context.Context) error {
		return r.Service.Report(ctx, postID, reason)
	})
}

func (r Runner) Moderate(reportID int64, action string) tea.Cmd {
	return r.do(nav.ModalNone, fmt.Sprintf("Report %d: %s", reportID, action), func(ctx context.Context) error {
		return r.Service.Moderate(ctx, reportID, action)
	})
}

func (r Runner) Submit(modal nav.Modal, path string, fields map[string]string, status string) tea.Cmd {
	return r.do(modal, status, func(ctx context.Context) error {
		return r.Service.SubmitForm(ctx, path, fields)
	})
}

func (r Runner) do(modal nav.Modal, status string, fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := r.withDeadline()
		defer cancel()

		if err := fn(ctx); err != nil {
			return ActionErrorMsg{Modal: modal, Err: err}
		}
		return ActionDoneMsg{Modal: modal, Status: status}
	}
}

func (r Runner) Login(username, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := r.withDeadline()
		defer cancel()

		if err := r.Service.Login(ctx, username, password); err != nil {
			return LoginErrorMsg{Err: err}
		}
		return LoggedInMsg{}
	}
}

func (r Runner) Logout() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := r.withDeadline()
		defer cancel()

		if err := r.Service.Logout(ctx); err != nil {
			return ActionErrorMsg{Err: err}
		}
		return LoggedOutMsg{}
	}
}

func (r Runner) Preview(url string, width int, render func(context.Context, string, int) (string, error)) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := r.withDeadline()
		defer cancel()

		preview, err := render(ctx, url, width)
		return PreviewLoadedMsg{URL: url, Preview: preview, Err: err}
	}
}

func OpenURLCmd(url string, openFn, copyFn func(string) error) tea.Cmd {
	return func() tea.Msg {
		if openFn != nil {
			if err := openFn(url); err == nil {
				return OpenURLSuccessMsg{Status: "Opened media in browser", Opened: true}
			}
		}
		if copyFn != nil {
			if err := copyFn(url); err == nil {
				return OpenURLSuccessMsg{Status: "Could not open browser, URL copied to clipboard"}
			}
		}
		return OpenURLErrorMsg{Err: fmt.Errorf("could not open URL or copy to clipboard")}
	}
}

func CopyURLCmd(url string, copyFn func(string) error) tea.Cmd {
	return func() tea.Msg {
		if copyFn != nil {
			if err := copyFn(url); err == nil {
				return OpenURLSuccessMsg{Status: "URL copied to clipboard"}
			}
		}
		return OpenURLErrorMsg{Err: fmt.Errorf("could not copy URL to clipboard")}
	}
}

func SavePreferencesCmd(save func() error) tea.Cmd {
	return func() tea.Msg {
		if save == nil {
			return nil
		}
		if err := save(); err != nil {
			return PreferenceSaveErrorMsg{Err: err}
		}
		return nil
	}
}
