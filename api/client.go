// Package api is the typed HTTP client for the alimtalk backend. It binds a
// base origin, carries the session cookie on every request, and routes every
// failure through the session-expiry guard so that individual callers never
// handle 401/403 themselves.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const defaultTimeout = 30 * time.Second

// Client is the shared request client. All authentication is cookie-based;
// there is no bearer-token scheme.
type Client struct {
	baseURL    string
	httpClient *http.Client
	guard      *ExpiryGuard
	logger     zerolog.Logger
}

// Option modifies a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client. The caller is
// responsible for attaching a cookie jar.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the client's logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a Client bound to baseURL with a fresh cookie jar, routing
// failures through guard.
func New(baseURL string, guard *ExpiryGuard, options ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("[api.New] baseURL is required")
	}
	if guard == nil {
		return nil, fmt.Errorf("[api.New] guard is required")
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("[api.New] cookiejar: %w", err)
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Jar:     jar,
			Timeout: defaultTimeout,
		},
		guard:  guard,
		logger: zerolog.Nop(),
	}
	for _, opt := range options {
		opt(c)
	}
	return c, nil
}

// Guard exposes the client's expiry guard so the logout hook can be wired
// after the session store exists.
func (c *Client) Guard() *ExpiryGuard {
	return c.guard
}

// Cookies returns the session cookies held for the backend origin, so a
// short-lived process can persist them between invocations the way a browser
// cookie store would.
func (c *Client) Cookies() []*http.Cookie {
	u, err := url.Parse(c.baseURL)
	if err != nil || c.httpClient.Jar == nil {
		return nil
	}
	return c.httpClient.Jar.Cookies(u)
}

// SetCookies seeds the jar with previously persisted session cookies.
func (c *Client) SetCookies(cookies []*http.Cookie) {
	u, err := url.Parse(c.baseURL)
	if err != nil || c.httpClient.Jar == nil {
		return
	}
	c.httpClient.Jar.SetCookies(u, cookies)
}

// serverMessage is the error body shape the backend returns on failures.
type serverMessage struct {
	Message string `json:"message"`
}

// do issues one JSON request. route is the constant path used for guard
// classification; path is the concrete URL path (route plus any ids).
func (c *Client) do(ctx context.Context, method, route, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("[api.do] marshal body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("[api.do] build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
	}
	req.Header.Set("Accept", "application/json")
	requestID := uuid.New().String()
	req.Header.Set("X-Request-ID", requestID)

	c.logger.Debug().Str("method", method).Str("path", path).Str("requestId", requestID).Msg("request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.guard.NoResponse(route, fmt.Errorf("%w: %s %s: %v", ErrNoResponse, method, route, err))
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.guard.NoResponse(route, fmt.Errorf("%w: %s %s: read body: %v", ErrNoResponse, method, route, err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{
			Status: resp.StatusCode,
			Path:   route,
		}
		var sm serverMessage
		if json.Unmarshal(data, &sm) == nil && sm.Message != "" {
			apiErr.Message = sm.Message
		} else {
			apiErr.Message = strings.TrimSpace(string(data))
		}
		return c.guard.Classify(route, apiErr)
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("[api.do] decode %s %s: %w", method, route, err)
		}
	}
	return nil
}
