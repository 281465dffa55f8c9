package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/tomnomnom/linkheader"
)

const (
	defaultTimeout  = 15 * time.Second
	defaultAttempts = 3
	defaultDelay    = time.Second
)

var (
	// ErrNotFound is returned when the server has no such resource or no content.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
	ErrNetwork = errors.New("network error")

	// ErrUnauthorized is returned for 401 and 403 responses.
	ErrUnauthorized = errors.New("unauthorized")
)

// Client provides shared HTTP functionality for registry and platform clients.
// It handles caching, retry logic, and common request headers.
type Client struct {
	http     *http.Client
	cache    *Memo
	headers  map[string]string
	attempts int
	delay    time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHeader adds a header sent with every request.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.headers[key] = value
	}
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithRetry sets the attempt count and initial backoff delay.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(c *Client) {
		c.attempts = attempts
		c.delay = delay
	}
}

// WithCache shares a memo cache between clients.
func WithCache(m *Memo) Option {
	return func(c *Client) {
		c.cache = m
	}
}

// New creates a Client. Without options it uses a 15 second timeout, three
// attempts starting at a one second delay, and a private memo cache.
func New(opts ...Option) *Client {
	c := &Client{
		http:     &http.Client{Timeout: defaultTimeout},
		cache:    NewMemo(),
		headers:  make(map[string]string),
		attempts: defaultAttempts,
		delay:    defaultDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Cached retrieves a value from cache or executes fetch and caches the result.
// The fetch function should populate v; on success, v is stored in the cache.
// Failed fetches are not cached.
func (c *Client) Cached(ctx context.Context, key string, v any, fetch func() error) error {
	if c.cache.Get(key, v) {
		slog.Debug("cache hit", "key", key)
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := fetch(); err != nil {
		return err
	}
	_ = c.cache.Set(key, v)
	return nil
}

// Get performs an HTTP GET request and JSON-decodes the response into v.
// It uses the client's default headers and handles retries automatically.
func (c *Client) Get(ctx context.Context, url string, v any) error {
	return c.GetWithHeaders(ctx, url, nil, v)
}

// GetWithHeaders performs an HTTP GET with additional headers merged with defaults.
// Request-specific headers override client defaults for the same key.
func (c *Client) GetWithHeaders(ctx context.Context, url string, headers map[string]string, v any) error {
	_, err := c.GetPage(ctx, url, headers, v)
	return err
}

// GetPage is GetWithHeaders for paginated listings. It also returns the
// address of the following page, taken from the rel="next" entry of the
// Link header, or "" on the last page.
func (c *Client) GetPage(ctx context.Context, url string, headers map[string]string, v any) (string, error) {
	var next string
	err := Retry(ctx, c.attempts, c.delay, func() error {
		resp, err := c.doRequest(ctx, url, headers)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			return fmt.Errorf("decoding %s: %w", url, err)
		}
		next = nextLink(resp.Header)
		return nil
	})
	return next, err
}

// GetBytes performs an HTTP GET and returns the raw response body.
func (c *Client) GetBytes(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	var data []byte
	err := Retry(ctx, c.attempts, c.delay, func() error {
		resp, err := c.doRequest(ctx, url, headers)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		data, err = io.ReadAll(resp.Body)
		if err != nil {
			return &RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
		}
		return nil
	})
	return data, err
}

func (c *Client) doRequest(ctx context.Context, url string, headers map[string]string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	slog.Debug("http get", "url", url)
	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
	}

	if err := checkStatus(resp); err != nil {
		resp.Body.Close()
		slog.Debug("http status", "url", url, "status", resp.StatusCode)
		return nil, err
	}
	return resp, nil
}

func checkStatus(resp *http.Response) error {
	code := resp.StatusCode
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNoContent, code == http.StatusNotFound, code == http.StatusGone:
		return ErrNotFound
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return fmt.Errorf("%w: status %d", ErrUnauthorized, code)
	case code == http.StatusTooManyRequests, code >= 500:
		return &RetryableError{
			Err:   fmt.Errorf("%w: status %d", ErrNetwork, code),
			After: parseRetryAfter(resp.Header),
		}
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}

func nextLink(h http.Header) string {
	for _, link := range linkheader.ParseMultiple(h.Values("Link")).FilterByRel("next") {
		return link.URL
	}
	return ""
}
