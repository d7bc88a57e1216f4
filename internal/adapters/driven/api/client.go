package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/ragscholar/scholar-cli/internal/core/domain"
	"github.com/ragscholar/scholar-cli/internal/core/ports/driven"
	"github.com/ragscholar/scholar-cli/internal/logger"
)

const (
	// DefaultTimeout is the default HTTP request timeout for non-chat
	// calls. Chat requests carry no client-side timeout.
	DefaultTimeout = 30 * time.Second

	// MaxRetries is the maximum number of retries for transient errors
	// on idempotent requests.
	MaxRetries = 3

	// RetryDelay is the initial delay between retries.
	RetryDelay = time.Second

	// RequestRate is the proactive throttle rate in requests/second.
	RequestRate = 8

	// RequestBurst is the throttle burst size.
	RequestBurst = 4
)

// Ensure Client implements the interface.
var _ driven.BackendClient = (*Client)(nil)

// Client talks to the RAG Scholar backend.
type Client struct {
	baseURL string
	apiKey  string

	// http serves everything except chat.
	http *http.Client

	// chatHTTP has no timeout; the backend bounds chat latency.
	chatHTTP *http.Client

	limiter *rate.Limiter
}

// Option configures the client.
type Option func(*Client)

// WithTimeout overrides the request timeout for non-chat calls.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithAPIKey sets the bearer token sent with every request.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = key
	}
}

// NewClient creates a backend client for the given base URL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: DefaultTimeout},
		chatHTTP: &http.Client{},
		limiter:  rate.NewLimiter(rate.Limit(RequestRate), RequestBurst),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Health checks backend reachability.
func (c *Client) Health(ctx context.Context) error {
	return c.getJSON(ctx, "/health", nil)
}

// newRequest builds a request with auth and content headers set.
func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// getJSON performs a rate-limited GET with retries, decoding the
// response into out when out is non-nil.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	var lastErr error
	for attempt := 0; attempt <= MaxRetries; attempt++ {
		if attempt > 0 {
			logger.Debug("retrying GET %s (attempt %d)", path, attempt+1)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(RetryDelay * time.Duration(attempt)):
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		req, err := c.newRequest(ctx, http.MethodGet, path, nil)
		if err != nil {
			return err
		}

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
			continue
		}

		err = decodeResponse(resp, out)
		if retryable(resp.StatusCode) {
			lastErr = err
			continue
		}
		return err
	}
	return lastErr
}

// doJSON performs a rate-limited mutating request with a JSON body.
// Mutations are not retried; the caller reconciles by re-fetching.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshalling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, method, path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
	}
	return decodeResponse(resp, out)
}

// retryable reports whether a status code is worth retrying.
func retryable(status int) bool {
	return status >= http.StatusInternalServerError ||
		status == http.StatusTooManyRequests
}

// decodeResponse maps the HTTP status onto domain errors and decodes
// the body into out when out is non-nil. The body is always drained
// and closed.
func decodeResponse(resp *http.Response, out any) error {
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrNotFound
	case resp.StatusCode == http.StatusConflict:
		return domain.ErrAlreadyExists
	case resp.StatusCode == http.StatusBadRequest:
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, readErrorDetail(resp.Body))
	case resp.StatusCode >= http.StatusInternalServerError:
		return fmt.Errorf("%w: backend returned %d", domain.ErrBackendUnavailable, resp.StatusCode)
	case resp.StatusCode >= 300:
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, readErrorDetail(resp.Body))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// errorBody is the backend's error envelope.
type errorBody struct {
	Detail string `json:"detail"`
}

// readErrorDetail extracts the backend's error detail, best effort.
func readErrorDetail(body io.Reader) string {
	var e errorBody
	if err := json.NewDecoder(body).Decode(&e); err != nil || e.Detail == "" {
		return "no detail"
	}
	return e.Detail
}
