// Package client is the consuming application's side of the favorites API:
// a small HTTP client plus stateful auth/favorite stores that cache server
// state in memory and fan mutations out over an event bus.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/FrancielliAndreghetto/moviefavs/pkg/httpclient"
)

// ErrConnectivity covers failures with no server response. UIs show a
// generic connectivity message for it instead of a server-provided one.
var ErrConnectivity = errors.New("unable to reach server")

// APIError is a server-side rejection. Message carries the server's
// `message` field verbatim for display.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server responded %d: %s", e.Status, e.Message)
}

// Client talks to the favorites API. It holds the bearer token issued at
// login and attaches it to every request until cleared.
type Client struct {
	baseURL string
	http    *httpclient.Client

	mu    sync.RWMutex
	token string
}

// New creates an API client for the given base URL
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    httpclient.New(timeout),
	}
}

// SetToken stores the bearer token used on subsequent requests
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the current bearer token, if any
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// ClearToken drops the stored credential
func (c *Client) ClearToken() {
	c.SetToken("")
}

func (c *Client) options() []httpclient.RequestOption {
	if token := c.Token(); token != "" {
		return []httpclient.RequestOption{httpclient.WithBearerToken(token)}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	return translate(c.http.GetJSON(ctx, c.baseURL+path, params, out, c.options()...))
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return translate(c.http.PostJSON(ctx, c.baseURL+path, body, out, c.options()...))
}

func (c *Client) delete(ctx context.Context, path string, out any) error {
	return translate(c.http.DeleteJSON(ctx, c.baseURL+path, out, c.options()...))
}

// translate converts transport errors into the client taxonomy: server
// rejections keep their message, everything else is a connectivity failure.
func translate(err error) error {
	if err == nil {
		return nil
	}

	var statusErr *httpclient.StatusError
	if errors.As(err, &statusErr) {
		message := "Request failed"
		var body struct {
			Message string `json:"message"`
		}
		if json.Unmarshal([]byte(statusErr.Body), &body) == nil && body.Message != "" {
			message = body.Message
		}
		return &APIError{Status: statusErr.StatusCode, Message: message}
	}

	return fmt.Errorf("%w: %v", ErrConnectivity, err)
}
