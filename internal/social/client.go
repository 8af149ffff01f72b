package social

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/publicsuffix"
)

type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a client that keeps the backend session cookie between calls.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if httpClient.Jar == nil {
		withJar := *httpClient
		if jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List}); err == nil {
			withJar.Jar = jar
		}
		httpClient = &withJar
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

func (c *Client) Profile(ctx context.Context) (Profile, error) {
	var profile Profile
	if err := c.getJSON(ctx, "/api/profile", "profile", &profile); err != nil {
		return Profile{}, err
	}
	return profile, nil
}

func (c *Client) Login(ctx context.Context, username, password string) error {
	payload := map[string]string{"username": username, "password": password}
	return c.action(ctx, http.MethodPost, "/api/login", payload, "login")
}

func (c *Client) Logout(ctx context.Context) error {
	return c.action(ctx, http.MethodPost, "/api/logout", nil, "logout")
}

func (c *Client) Feed(ctx context.Context, kind FeedKind, page, perPage int) (FeedPage, error) {
	if !kind.Valid() {
		return FeedPage{}, fmt.Errorf("unknown feed kind %q", kind)
	}
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}

	q := make(url.Values)
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))

	var feed FeedPage
	if err := c.getJSON(ctx, "/api/"+string(kind)+"?"+q.Encode(), string(kind), &feed); err != nil {
		return FeedPage{}, err
	}
	for i := range feed.Items {
		feed.Items[i].Kind = kind
	}
	return feed, nil
}

func (c *Client) Stories(ctx context.Context) ([]Story, error) {
	var stories []Story
	if err := c.getJSON(ctx, "/api/stories", "stories", &stories); err != nil {
		return nil, err
	}
	return stories, nil
}

func (c *Client) Friends(ctx context.Context) ([]Summary, error) {
	return c.listSummaries(ctx, "/api/friends", "friends")
}

func (c *Client) Conversations(ctx context.Context) ([]Summary, error) {
	return c.listSummaries(ctx, "/api/conversations", "conversations")
}

func (c *Client) Notifications(ctx context.Context) ([]Summary, error) {
	return c.listSummaries(ctx, "/api/notifications", "notifications")
}

func (c *Client) Reports(ctx context.Context) ([]Summary, error) {
	return c.listSummaries(ctx, "/api/admin/reports", "reports")
}

func (c *Client) Search(ctx context.Context, query string) ([]Summary, error) {
	q := make(url.Values)
	q.Set("q", strings.TrimSpace(query))
	return c.listSummaries(ctx, "/api/search?"+q.Encode(), "search results")
}

func (c *Client) Like(ctx context.Context, postID int64) error {
	return c.action(ctx, http.MethodPost, fmt.Sprintf("/api/posts/%d/like", postID), nil, "like")
}

func (c *Client) Unlike(ctx context.Context, postID int64) error {
	return c.action(ctx, http.MethodDelete, fmt.Sprintf("/api/posts/%d/like", postID), nil, "unlike")
}

func (c *Client) Follow(ctx context.Context, userID int64) error {
	return c.action(ctx, http.MethodPost, fmt.Sprintf("/api/users/%d/follow", userID), nil, "follow")
}

func (c *Client) Unfollow(ctx context.Context, userID int64) error {
	return c.action(ctx, http.MethodDelete, fmt.Sprintf("/api/users/%d/follow", userID), nil, "unfollow")
}

func (c *Client) Comment(ctx context.Context, postID int64, text string) error {
	payload := map[string]string{"text": text}
	return c.action(ctx, http.MethodPost, fmt.Sprintf("/api/posts/%d/comments", postID), payload, "comment")
}

func (c *Client) Report(ctx context.Context, postID int64, reason string) error {
	payload := map[string]string{"reason": reason}
	return c.action(ctx, http.MethodPost, fmt.Sprintf("/api/posts/%d/report", postID), payload, "report")
}

func (c *Client) Moderate(ctx context.Context, reportID int64, action string) error {
	payload := map[string]string{"action": action}
	return c.action(ctx, http.MethodPost, fmt.Sprintf("/api/admin/reports/%d", reportID), payload, "moderation")
}

// Submit posts a form modal's fields to path.
func (c *Client) Submit(ctx context.Context, path string, fields map[string]string) error {
	if !strings.HasPrefix(path, "/") {
		return fmt.Errorf("submit path must start with '/': %s", path)
	}
	return c.action(ctx, http.MethodPost, path, fields, "submit "+path)
}

func (c *Client) listSummaries(ctx context.Context, path, resource string) ([]Summary, error) {
	var summaries []Summary
	if err := c.getJSON(ctx, path, resource, &summaries); err != nil {
		return nil, err
	}
	return summaries, nil
}

func (c *Client) getJSON(ctx context.Context, path, resource string, out any) error {
	resp, err := c.send(ctx, http.MethodGet, path, nil, resource)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("load %s failed with status %d: %s", resource, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", resource, err)
	}
	return nil
}

func (c *Client) action(ctx context.Context, method, path string, payload any, resource string) error {
	resp, err := c.send(ctx, method, path, payload, resource)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	var result ActionResult
	decodeErr := json.Unmarshal(body, &result)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if decodeErr == nil && (result.Error != "" || result.Message != "") {
			return result.failure()
		}
		return fmt.Errorf("%s failed with status %d: %s", resource, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if decodeErr != nil {
		return fmt.Errorf("decode %s response: %w", resource, decodeErr)
	}
	if !result.Success {
		return result.failure()
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, payload any, resource string) (*http.Response, error) {
	req, err := c.newRequest(ctx, method, path, payload)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", resource, err)
	}
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		resp.Body.Close()
		return nil, fmt.Errorf("%s: %w", resource, ErrUnauthenticated)
	}
	return resp, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, payload any) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
	}
	return req, nil
}
