// Package placeholder is a typed client for the JSONPlaceholder-style demo
// REST API the dashboard runs against. The sandbox never persists writes:
// POST /posts echoes the body back with a throwaway id, so callers are
// expected to assign their own ids to created posts.
package placeholder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"postdeck/internal/logging"
)

// DefaultBaseURL is the public sandbox instance.
const DefaultBaseURL = "https://jsonplaceholder.typicode.com"

// DefaultTimeout bounds every request when the config does not override it.
const DefaultTimeout = 15 * time.Second

// Client talks to one API instance. Safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the given base URL. An empty baseURL selects the
// public sandbox; a non-positive timeout selects DefaultTimeout.
func New(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the API instance this client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Users fetches the full user list.
func (c *Client) Users(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.getJSON(ctx, "/users", nil, &users); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// PostsByUser fetches all posts scoped to a user id.
func (c *Client) PostsByUser(ctx context.Context, userID int) ([]Post, error) {
	query := url.Values{"userId": []string{strconv.Itoa(userID)}}
	var posts []Post
	if err := c.getJSON(ctx, "/posts", query, &posts); err != nil {
		return nil, fmt.Errorf("list posts for user %d: %w", userID, err)
	}
	return posts, nil
}

// CommentsByPost fetches all comments scoped to a post id.
func (c *Client) CommentsByPost(ctx context.Context, postID int) ([]Comment, error) {
	query := url.Values{"postId": []string{strconv.Itoa(postID)}}
	var comments []Comment
	if err := c.getJSON(ctx, "/comments", query, &comments); err != nil {
		return nil, fmt.Errorf("list comments for post %d: %w", postID, err)
	}
	return comments, nil
}

// CreatePost submits a new post and returns the server echo. The echoed id
// is not authoritative; the sandbox does not persist creates.
func (c *Client) CreatePost(ctx context.Context, np NewPost) (Post, error) {
	body, err := json.Marshal(np)
	if err != nil {
		return Post{}, fmt.Errorf("create post: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/posts", bytes.NewReader(body))
	if err != nil {
		return Post{}, fmt.Errorf("create post: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=UTF-8")

	var created Post
	if err := c.do(req, &created); err != nil {
		return Post{}, fmt.Errorf("create post: %w", err)
	}
	return created, nil
}

// getJSON issues a GET and decodes the JSON response into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

// do executes the request and decodes a 2xx JSON body into out. Any
// transport failure or non-2xx status comes back as a single error value;
// retry policy is the caller's concern (the dashboard has none).
func (c *Client) do(req *http.Request, out interface{}) error {
	reqID := uuid.NewString()[:8]
	req.Header.Set("X-Request-Id", reqID)
	req.Header.Set("Accept", "application/json")

	rlog := logging.WithRequestID(logging.CategoryAPI, reqID)
	rlog.Debug("%s %s", req.Method, req.URL)
	timer := logging.StartTimer(logging.CategoryAPI, req.Method+" "+req.URL.Path)
	defer timer.Stop()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		rlog.Error("request failed: %v", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		rlog.Error("unexpected status %s", resp.Status)
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		rlog.Error("decode response: %v", err)
		return fmt.Errorf("decode response: %w", err)
	}
	rlog.Debug("%s %s -> %s", req.Method, req.URL.Path, resp.Status)
	return nil
}
