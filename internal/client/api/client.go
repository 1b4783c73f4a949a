package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"picfeed/pkg/api"
)

// Gateway is the request surface of the remote API. Every call performs
// exactly one HTTP request and returns either a typed payload or a classified
// error; it never retries and never caches.
type Gateway interface {
	// Authenticate exchanges username/password for a bearer token.
	Authenticate(ctx context.Context, username, password string) (*api.Token, error)

	// Register creates a new account. It does not authenticate it.
	Register(ctx context.Context, req api.RegisterRequest) (*api.User, error)

	// CurrentUser resolves the profile behind a bearer token.
	// Fails with ErrUnauthorized when the token is invalid or expired.
	CurrentUser(ctx context.Context, token string) (*api.User, error)

	// ListFeed returns all posts in server order. Public, no auth.
	ListFeed(ctx context.Context) ([]api.Post, error)

	// ListOwnPosts returns the posts owned by the token's user.
	ListOwnPosts(ctx context.Context, token string) ([]api.Post, error)

	// CreatePost publishes a new post. The server assigns id and owner.
	CreatePost(ctx context.Context, token string, req api.CreatePostRequest) (*api.Post, error)
}

// Client is the HTTP implementation of Gateway.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

var _ Gateway = (*Client)(nil)

// NewClient creates a new API client for the given server base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Keep the bearer token across redirects
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
}

// Authenticate exchanges username/password for a bearer token.
// The token endpoint takes form-encoded credentials, not JSON.
func (c *Client) Authenticate(ctx context.Context, username, password string) (*api.Token, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/token", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var tok api.Token
	if err := c.do(req, &tok); err != nil {
		return nil, fmt.Errorf("token request failed: %w", err)
	}
	return &tok, nil
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, regReq api.RegisterRequest) (*api.User, error) {
	var user api.User
	if err := c.doJSON(ctx, http.MethodPost, "/register", "", regReq, &user); err != nil {
		return nil, fmt.Errorf("register request failed: %w", err)
	}
	return &user, nil
}

// CurrentUser resolves the profile behind a bearer token.
func (c *Client) CurrentUser(ctx context.Context, token string) (*api.User, error) {
	var user api.User
	if err := c.doJSON(ctx, http.MethodGet, "/users/me/", token, nil, &user); err != nil {
		return nil, fmt.Errorf("current user request failed: %w", err)
	}
	return &user, nil
}

// ListFeed returns all posts in server order.
func (c *Client) ListFeed(ctx context.Context) ([]api.Post, error) {
	var posts []api.Post
	if err := c.doJSON(ctx, http.MethodGet, "/posts/", "", nil, &posts); err != nil {
		return nil, fmt.Errorf("feed request failed: %w", err)
	}
	return posts, nil
}

// ListOwnPosts returns the posts owned by the token's user.
func (c *Client) ListOwnPosts(ctx context.Context, token string) ([]api.Post, error) {
	var posts []api.Post
	if err := c.doJSON(ctx, http.MethodGet, "/posts/me/", token, nil, &posts); err != nil {
		return nil, fmt.Errorf("own posts request failed: %w", err)
	}
	return posts, nil
}

// CreatePost publishes a new post.
func (c *Client) CreatePost(ctx context.Context, token string, postReq api.CreatePostRequest) (*api.Post, error) {
	var post api.Post
	if err := c.doJSON(ctx, http.MethodPost, "/posts/", token, postReq, &post); err != nil {
		return nil, fmt.Errorf("create post request failed: %w", err)
	}
	return &post, nil
}

// doJSON builds a JSON request and executes it.
func (c *Client) doJSON(ctx context.Context, method, path, token string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return c.do(req, result)
}

// do executes the request and classifies the outcome: transport failures are
// wrapped as-is, non-2xx responses become a *StatusError carrying the
// server's detail message when the body had one.
func (c *Client) do(req *http.Request, result any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := &StatusError{Code: resp.StatusCode}
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil {
			statusErr.Detail = errResp.Detail
		}
		return statusErr
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
