package actions

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glabrego/pulse-cli/internal/nav"
	"github.com/glabrego/pulse-cli/internal/social"
)

type fakeService struct {
	page     social.FeedPage
	stories  []social.Story
	rows     []social.Summary
	profile  social.Profile
	nextBool bool
	err      error

	homeCalls    int
	fetchCalls   int
	lastDeadline time.Time
	lastSection  nav.Section
	lastQuery    string
	lastPath     string
	lastFields   map[string]string
	lastModerate string
}

func (f *fakeService) track(ctx context.Context) {
	if dl, ok := ctx.Deadline(); ok {
		f.lastDeadline = dl
	}
}

func (f *fakeService) FetchPage(ctx context.Context, _ social.FeedKind, _ int) (social.FeedPage, error) {
	f.track(ctx)
	f.fetchCalls++
	return f.page, f.err
}

func (f *fakeService) LoadHome(ctx context.Context, _ int) (social.FeedPage, []social.Story, error) {
	f.track(ctx)
	f.homeCalls++
	if f.err != nil {
		return social.FeedPage{}, nil, f.err
	}
	return f.page, f.stories, nil
}

func (f *fakeService) Profile(ctx context.Context) (social.Profile, error) {
	f.track(ctx)
	return f.profile, f.err
}

func (f *fakeService) ListSection(ctx context.Context, section nav.Section, query string) ([]social.Summary, error) {
	f.track(ctx)
	f.lastSection = section
	f.lastQuery = query
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

func (f *fakeService) ToggleLike(ctx context.Context, _ int64, _ bool) (bool, error) {
	f.track(ctx)
	return f.nextBool, f.err
}

func (f *fakeService) ToggleFollow(ctx context.Context, _ int64, _ bool) (bool, error) {
	f.track(ctx)
	return f.nextBool, f.err
}

func (f *fakeService) Comment(ctx context.Context, _ int64, _ string) error {
	f.track(ctx)
	return f.err
}

func (f *fakeService) Report(ctx context.Context, _ int64, _ string) error {
	f.track(ctx)
	return f.err
}

func (f *fakeService) Moderate(ctx context.Context, _ int64, action string) error {
	f.track(ctx)
	f.lastModerate = action
	return f.err
}

func (f *fakeService) SubmitForm(ctx context.Context, path string, fields map[string]string) error {
	f.track(ctx)
	f.lastPath = path
	f.lastFields = fields
	return f.err
}

func (f *fakeService) Login(ctx context.Context, _, _ string) error {
	f.track(ctx)
	return f.err
}

func (f *fakeService) Logout(ctx context.Context) error {
	f.track(ctx)
	return f.err
}

type fakeGate struct {
	status nav.Status
	hasDL  bool
}

func (g *fakeGate) CheckSession(ctx context.Context) nav.Status {
	_, g.hasDL = ctx.Deadline()
	return g.status
}

func TestCheckSession(t *testing.T) {
	gate := &fakeGate{status: nav.Authenticated}
	r := Runner{Gate: gate}

	msg := r.CheckSession(Target{Section: nav.SectionReels})()
	checked, ok := msg.(SessionCheckedMsg)
	if !ok {
		t.Fatalf("expected SessionCheckedMsg, got %T", msg)
	}
	if checked.Status != nav.Authenticated || checked.Target.Section != nav.SectionReels {
		t.Fatalf("unexpected payload: %+v", checked)
	}
	if !gate.hasDL {
		t.Fatal("expected session probe to run with a deadline")
	}
}

func TestLoadFeed_FirstHomePageIncludesStories(t *testing.T) {
	svc := &fakeService{
		page:    social.FeedPage{Items: []social.Item{{ID: 1}}, HasNext: true},
		stories: []social.Story{{ID: 5}},
	}
	r := Runner{Service: svc, Timeout: time.Minute}

	msg := r.LoadFeed(nav.Ticket{Kind: social.KindPosts, Page: 1})()
	loaded, ok := msg.(FeedLoadedMsg)
	if !ok {
		t.Fatalf("expected FeedLoadedMsg, got %T", msg)
	}
	if !loaded.HasStories || len(loaded.Stories) != 1 || len(loaded.Page.Items) != 1 {
		t.Fatalf("unexpected payload: %+v", loaded)
	}
	if svc.homeCalls != 1 || svc.fetchCalls != 0 {
		t.Fatalf("expected home load, got home=%d fetch=%d", svc.homeCalls, svc.fetchCalls)
	}
	if time.Until(svc.lastDeadline) < 30*time.Second {
		t.Fatalf("expected configured timeout to be used, deadline %s", svc.lastDeadline)
	}
}

func TestLoadFeed_LaterPagesFetchOnly(t *testing.T) {
	svc := &fakeService{page: social.FeedPage{Items: []social.Item{{ID: 2}}}}
	r := Runner{Service: svc}

	msg := r.LoadFeed(nav.Ticket{Kind: social.KindPosts, Page: 2, Generation: 3})().(FeedLoadedMsg)
	if msg.HasStories || msg.Ticket.Generation != 3 {
		t.Fatalf("unexpected payload: %+v", msg)
	}
	if svc.homeCalls != 0 || svc.fetchCalls != 1 {
		t.Fatalf("expected fetch only, got home=%d fetch=%d", svc.homeCalls, svc.fetchCalls)
	}

	msg = r.LoadFeed(nav.Ticket{Kind: social.KindReels, Page: 1})().(FeedLoadedMsg)
	if msg.HasStories || svc.fetchCalls != 2 {
		t.Fatalf("expected reels page 1 to skip stories: %+v", msg)
	}
}

func TestLoadFeed_CarriesError(t *testing.T) {
	svc := &fakeService{err: social.ErrUnauthenticated}
	msg := Runner{Service: svc}.LoadFeed(nav.Ticket{Kind: social.KindPosts, Page: 1})().(FeedLoadedMsg)
	if !errors.Is(msg.Err, social.ErrUnauthenticated) || msg.HasStories {
		t.Fatalf("unexpected payload: %+v", msg)
	}
}

func TestLoadSectionAndProfile(t *testing.T) {
	svc := &fakeService{rows: []social.Summary{{ID: 1}}, profile: social.Profile{Username: "ana"}}
	r := Runner{Service: svc}

	msg := r.LoadSection(nav.SectionSearch, "ana")()
	loaded, ok := msg.(SectionLoadedMsg)
	if !ok {
		t.Fatalf("expected SectionLoadedMsg, got %T", msg)
	}
	if loaded.Query != "ana" || svc.lastSection != nav.SectionSearch || len(loaded.Rows) != 1 {
		t.Fatalf("unexpected payload: %+v", loaded)
	}

	profile, ok := r.LoadProfile()().(ProfileLoadedMsg)
	if !ok || profile.Profile.Username != "ana" {
		t.Fatalf("unexpected profile payload: %+v", profile)
	}
}

func TestToggleCmds(t *testing.T) {
	svc := &fakeService{nextBool: true}
	r := Runner{Service: svc}

	like, ok := r.ToggleLike(7, false)().(LikeToggledMsg)
	if !ok || !like.Liked || like.PostID != 7 || like.Status != "Liked post" {
		t.Fatalf("unexpected like payload: %+v", like)
	}
	follow, ok := r.ToggleFollow(8, false)().(FollowToggledMsg)
	if !ok || !follow.Following || follow.Status != "Following" {
		t.Fatalf("unexpected follow payload: %+v", follow)
	}
}

func TestSubmitAndModerate(t *testing.T) {
	svc := &fakeService{}
	r := Runner{Service: svc}

	msg := r.Submit(nav.ModalCreatePost, "/api/posts", map[string]string{"caption": "hi"}, "Post created")()
	done, ok := msg.(ActionDoneMsg)
	if !ok || done.Modal != nav.ModalCreatePost || done.Status != "Post created" {
		t.Fatalf("unexpected submit payload: %T %+v", msg, msg)
	}
	if svc.lastPath != "/api/posts" || svc.lastFields["caption"] != "hi" {
		t.Fatalf("unexpected submit args: %s %v", svc.lastPath, svc.lastFields)
	}

	if _, ok := r.Moderate(3, "remove")().(ActionDoneMsg); !ok || svc.lastModerate != "remove" {
		t.Fatal("expected moderation to complete")
	}
	if done, ok := r.Comment(1, "nice")().(ActionDoneMsg); !ok || done.Modal != nav.ModalComment {
		t.Fatalf("unexpected comment payload: %+v", done)
	}
}

func TestActionErrors(t *testing.T) {
	verr := &social.ValidationError{Message: "nope"}
	svc := &fakeService{err: verr}
	r := Runner{Service: svc}

	if _, ok := r.LoadSection(nav.SectionFriends, "")().(SectionLoadErrorMsg); !ok {
		t.Fatal("expected SectionLoadErrorMsg")
	}
	if _, ok := r.LoadProfile()().(ProfileLoadErrorMsg); !ok {
		t.Fatal("expected ProfileLoadErrorMsg")
	}
	if _, ok := r.ToggleLike(1, false)().(ActionErrorMsg); !ok {
		t.Fatal("expected ActionErrorMsg for like")
	}
	if _, ok := r.ToggleFollow(1, false)().(ActionErrorMsg); !ok {
		t.Fatal("expected ActionErrorMsg for follow")
	}
	msg, ok := r.Submit(nav.ModalChat, "/api/conversations/1/messages", nil, "Sent")().(ActionErrorMsg)
	if !ok || msg.Modal != nav.ModalChat || !errors.As(msg.Err, &verr) {
		t.Fatalf("unexpected submit error payload: %+v", msg)
	}
	if _, ok := r.Report(1, "spam")().(ActionErrorMsg); !ok {
		t.Fatal("expected ActionErrorMsg for report")
	}
	if _, ok := r.Login("ana", "pw")().(LoginErrorMsg); !ok {
		t.Fatal("expected LoginErrorMsg")
	}
	if _, ok := r.Logout()().(ActionErrorMsg); !ok {
		t.Fatal("expected ActionErrorMsg for logout")
	}
}

func TestLoginAndLogout(t *testing.T) {
	r := Runner{Service: &fakeService{}}
	if _, ok := r.Login("ana", "pw")().(LoggedInMsg); !ok {
		t.Fatal("expected LoggedInMsg")
	}
	if _, ok := r.Logout()().(LoggedOutMsg); !ok {
		t.Fatal("expected LoggedOutMsg")
	}
}

func TestPreview(t *testing.T) {
	r := Runner{}
	msg := r.Preview("https://cdn.example.com/a.jpg", 40, func(ctx context.Context, url string, width int) (string, error) {
		if _, ok := ctx.Deadline(); !ok {
			t.Error("expected preview deadline")
		}
		return "###", nil
	})().(PreviewLoadedMsg)
	if msg.Preview != "###" || msg.URL != "https://cdn.example.com/a.jpg" || msg.Err != nil {
		t.Fatalf("unexpected preview payload: %+v", msg)
	}
}

func TestOpenURLCmd_Fallbacks(t *testing.T) {
	msg := OpenURLCmd("https://example.com",
		func(string) error { return nil },
		func(string) error { return nil },
	)()
	success, ok := msg.(OpenURLSuccessMsg)
	if !ok || !success.Opened {
		t.Fatalf("expected opened success, got %T %+v", msg, success)
	}

	msg = OpenURLCmd("https://example.com",
		func(string) error { return errors.New("open failed") },
		func(string) error { return nil },
	)()
	success, ok = msg.(OpenURLSuccessMsg)
	if !ok || success.Opened {
		t.Fatalf("expected copy fallback success, got %T %+v", msg, success)
	}

	msg = OpenURLCmd("https://example.com",
		func(string) error { return errors.New("open failed") },
		func(string) error { return errors.New("copy failed") },
	)()
	if _, ok := msg.(OpenURLErrorMsg); !ok {
		t.Fatalf("expected OpenURLErrorMsg, got %T", msg)
	}
}

func TestCopyURLCmd(t *testing.T) {
	msg := CopyURLCmd("https://example.com", func(string) error { return nil })()
	if _, ok := msg.(OpenURLSuccessMsg); !ok {
		t.Fatalf("expected OpenURLSuccessMsg, got %T", msg)
	}
	msg = CopyURLCmd("https://example.com", func(string) error { return errors.New("copy failed") })()
	if _, ok := msg.(OpenURLErrorMsg); !ok {
		t.Fatalf("expected OpenURLErrorMsg, got %T", msg)
	}
}

func TestSavePreferencesCmd(t *testing.T) {
	if msg := SavePreferencesCmd(func() error { return nil })(); msg != nil {
		t.Fatalf("expected nil msg on success, got %T", msg)
	}
	if _, ok := SavePreferencesCmd(func() error { return errors.New("disk") })().(PreferenceSaveErrorMsg); !ok {
		t.Fatal("expected PreferenceSaveErrorMsg")
	}
}
