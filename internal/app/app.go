package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/glabrego/pulse-cli/internal/nav"
	"github.com/glabrego/pulse-cli/internal/social"
)

const (
	DefaultCacheLimit = 50

	prefDarkTheme = "dark_theme"
)

type SocialClient interface {
	Profile(ctx context.Context) (social.Profile, error)
	Login(ctx context.Context, username, password string) error
	Logout(ctx context.Context) error
	Feed(ctx context.Context, kind social.FeedKind, page, perPage int) (social.FeedPage, error)
	Stories(ctx context.Context) ([]social.Story, error)
	Friends(ctx context.Context) ([]social.Summary, error)
	Conversations(ctx context.Context) ([]social.Summary, error)
	Notifications(ctx context.Context) ([]social.Summary, error)
	Reports(ctx context.Context) ([]social.Summary, error)
	Search(ctx context.Context, query string) ([]social.Summary, error)
	Like(ctx context.Context, postID int64) error
	Unlike(ctx context.Context, postID int64) error
	Follow(ctx context.Context, userID int64) error
	Unfollow(ctx context.Context, userID int64) error
	Comment(ctx context.Context, postID int64, text string) error
	Report(ctx context.Context, postID int64, reason string) error
	Moderate(ctx context.Context, reportID int64, action string) error
	Submit(ctx context.Context, path string, fields map[string]string) error
}

type Repository interface {
	SaveItems(ctx context.Context, items []social.Item) error
	ListItems(ctx context.Context, kind social.FeedKind, limit int) ([]social.Item, error)
	LoadPreference(ctx context.Context, key string) (string, bool, error)
	SavePreference(ctx context.Context, key, value string) error
}

// UIPreferences is the one persisted UI setting.
type UIPreferences struct {
	DarkTheme bool
}

type Service struct {
	client  SocialClient
	repo    Repository
	perPage int
	logger  *zap.Logger
}

func NewService(client SocialClient, repo Repository, perPage int, logger *zap.Logger) *Service {
	if perPage < 1 {
		perPage = 10
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{client: client, repo: repo, perPage: perPage, logger: logger}
}

// Profile doubles as the session probe.
func (s *Service) Profile(ctx context.Context) (social.Profile, error) {
	return s.client.Profile(ctx)
}

// FetchPage fetches one feed page and writes it through to the cache. Cache
// failures are logged and never fail the fetch.
func (s *Service) FetchPage(ctx context.Context, kind social.FeedKind, page int) (social.FeedPage, error) {
	feed, err := s.client.Feed(ctx, kind, page, s.perPage)
	if err != nil {
		return social.FeedPage{}, fmt.Errorf("fetch %s page %d: %w", kind, page, err)
	}
	if s.repo != nil && len(feed.Items) > 0 {
		if err := s.repo.SaveItems(ctx, feed.Items); err != nil {
			s.logger.Warn("cache feed items", zap.String("kind", string(kind)), zap.Error(err))
		}
	}
	return feed, nil
}

// LoadHome fetches a posts page and the story strip concurrently.
func (s *Service) LoadHome(ctx context.Context, page int) (social.FeedPage, []social.Story, error) {
	var (
		feed    social.FeedPage
		stories []social.Story
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		feed, err = s.FetchPage(gctx, social.KindPosts, page)
		return err
	})
	g.Go(func() error {
		var err error
		stories, err = s.client.Stories(gctx)
		if err != nil {
			return fmt.Errorf("fetch stories: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return social.FeedPage{}, nil, err
	}
	return feed, stories, nil
}

func (s *Service) ListCached(ctx context.Context, kind social.FeedKind, limit int) ([]social.Item, error) {
	if s.repo == nil {
		return nil, nil
	}
	items, err := s.repo.ListItems(ctx, kind, limit)
	if err != nil {
		return nil, fmt.Errorf("load %s from cache: %w", kind, err)
	}
	return items, nil
}

// ListSection loads the rows of a list section.
func (s *Service) ListSection(ctx context.Context, section nav.Section, query string) ([]social.Summary, error) {
	var (
		rows []social.Summary
		err  error
	)
	switch section {
	case nav.SectionFriends:
		rows, err = s.client.Friends(ctx)
	case nav.SectionInbox:
		rows, err = s.client.Conversations(ctx)
	case nav.SectionNotifications:
		rows, err = s.client.Notifications(ctx)
	case nav.SectionAdmin:
		rows, err = s.client.Reports(ctx)
	case nav.SectionSearch:
		if strings.TrimSpace(query) == "" {
			return nil, nil
		}
		rows, err = s.client.Search(ctx, query)
	default:
		return nil, fmt.Errorf("section %s has no list", section)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", section, err)
	}
	return rows, nil
}

// ToggleLike flips the like state and returns the new one.
func (s *Service) ToggleLike(ctx context.Context, postID int64, currentLiked bool) (bool, error) {
	if currentLiked {
		if err := s.client.Unlike(ctx, postID); err != nil {
			return currentLiked, fmt.Errorf("unlike post %d: %w", postID, err)
		}
		return false, nil
	}
	if err := s.client.Like(ctx, postID); err != nil {
		return currentLiked, fmt.Errorf("like post %d: %w", postID, err)
	}
	return true, nil
}

func (s *Service) ToggleFollow(ctx context.Context, userID int64, currentFollowing bool) (bool, error) {
	if currentFollowing {
		if err := s.client.Unfollow(ctx, userID); err != nil {
			return currentFollowing, fmt.Errorf("unfollow user %d: %w", userID, err)
		}
		return false, nil
	}
	if err := s.client.Follow(ctx, userID); err != nil {
		return currentFollowing, fmt.Errorf("follow user %d: %w", userID, err)
	}
	return true, nil
}

func (s *Service) Comment(ctx context.Context, postID int64, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return &social.ValidationError{Message: "Comment cannot be empty"}
	}
	if err := s.client.Comment(ctx, postID, text); err != nil {
		return fmt.Errorf("comment on post %d: %w", postID, err)
	}
	return nil
}

func (s *Service) Report(ctx context.Context, postID int64, reason string) error {
	if err := s.client.Report(ctx, postID, strings.TrimSpace(reason)); err != nil {
		return fmt.Errorf("report post %d: %w", postID, err)
	}
	return nil
}

func (s *Service) Moderate(ctx context.Context, reportID int64, action string) error {
	if action != "remove" && action != "dismiss" {
		return &social.ValidationError{Message: fmt.Sprintf("Unknown moderation action %q", action)}
	}
	if err := s.client.Moderate(ctx, reportID, action); err != nil {
		return fmt.Errorf("moderate report %d: %w", reportID, err)
	}
	return nil
}

func (s *Service) SubmitForm(ctx context.Context, path string, fields map[string]string) error {
	if err := s.client.Submit(ctx, path, fields); err != nil {
		return fmt.Errorf("submit form: %w", err)
	}
	return nil
}

func (s *Service) Login(ctx context.Context, username, password string) error {
	if strings.TrimSpace(username) == "" || password == "" {
		return &social.ValidationError{Message: "Username and password are required"}
	}
	if err := s.client.Login(ctx, strings.TrimSpace(username), password); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	return nil
}

func (s *Service) Logout(ctx context.Context) error {
	if err := s.client.Logout(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

func (s *Service) LoadUIPreferences(ctx context.Context) (UIPreferences, error) {
	prefs := UIPreferences{DarkTheme: true}
	if s.repo == nil {
		return prefs, nil
	}
	raw, ok, err := s.repo.LoadPreference(ctx, prefDarkTheme)
	if err != nil {
		return prefs, fmt.Errorf("load UI preferences: %w", err)
	}
	if !ok {
		return prefs, nil
	}
	dark, err := strconv.ParseBool(raw)
	if err != nil {
		return prefs, fmt.Errorf("parse %s preference %q: %w", prefDarkTheme, raw, err)
	}
	prefs.DarkTheme = dark
	return prefs, nil
}

func (s *Service) SaveUIPreferences(ctx context.Context, prefs UIPreferences) error {
	if s.repo == nil {
		return nil
	}
	if err := s.repo.SavePreference(ctx, prefDarkTheme, strconv.FormatBool(prefs.DarkTheme)); err != nil {
		return fmt.Errorf("save UI preferences: %w", err)
	}
	return nil
}
