// Package upstream wraps outbound JSON calls to third-party providers with a
// uniform timeout and error contract.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	defaultTimeout   = 5 * time.Second
	defaultUserAgent = "TravelBuddy/1.0"
)

type requestIDKey struct{}

// WithRequestID stores the inbound request id so outbound calls can propagate it.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestIDFrom extracts the request id stored by WithRequestID.
func RequestIDFrom(ctx context.Context) string {
	if val, ok := ctx.Value(requestIDKey{}).(string); ok {
		return val
	}
	return ""
}

// Caller performs a single GET and decodes the JSON body into out.
type Caller interface {
	GetJSON(ctx context.Context, name, rawURL string, query url.Values, out any) error
}

// Client issues bounded-timeout GET requests. It holds a single connection pool
// and is safe for concurrent use.
type Client struct {
	rc *resty.Client
}

// Option configures optional client dependencies.
type Option func(*options)

type options struct {
	httpClient *http.Client
	timeout    time.Duration
	userAgent  string
}

// WithHTTPClient overrides the pooled HTTP client, e.g. to inject a fake transport.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		if client != nil {
			o.httpClient = client
		}
	}
}

// WithTimeout overrides the per-call timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithUserAgent overrides the identifying User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(o *options) {
		if userAgent != "" {
			o.userAgent = userAgent
		}
	}
}

// NewClient builds a client with a 5s timeout, no retries and a fixed User-Agent.
func NewClient(opts ...Option) *Client {
	o := options{timeout: defaultTimeout, userAgent: defaultUserAgent}
	for _, opt := range opts {
		opt(&o)
	}

	var rc *resty.Client
	if o.httpClient != nil {
		rc = resty.NewWithClient(o.httpClient)
	} else {
		rc = resty.New()
	}
	rc.SetTimeout(o.timeout).
		SetRetryCount(0).
		SetHeader("User-Agent", o.userAgent).
		SetHeader("Accept", "application/json")

	return &Client{rc: rc}
}

// GetJSON performs the call and decodes the body into out. Every failure is
// returned as *Error; nothing is retried.
func (c *Client) GetJSON(ctx context.Context, name, rawURL string, query url.Values, out any) error {
	req := c.rc.R().SetContext(ctx)
	if len(query) > 0 {
		req.SetQueryParamsFromValues(query)
	}
	if rid := RequestIDFrom(ctx); rid != "" {
		req.SetHeader("X-Request-ID", rid)
	}

	start := time.Now()
	resp, err := req.Get(rawURL)
	latency := time.Since(start)
	if err != nil {
		upErr := Unavailable(name, 0, err)
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			upErr.Err = fmt.Errorf("call abandoned: %w", err)
		}
		logFailure(ctx, upErr, latency)
		return upErr
	}

	if !resp.IsSuccess() {
		upErr := Unavailable(name, resp.StatusCode(), fmt.Errorf("unexpected status: %s", resp.Status()))
		logFailure(ctx, upErr, latency)
		return upErr
	}

	body := resp.Body()
	if len(body) == 0 {
		upErr := Malformed(name, errors.New("empty response body"))
		logFailure(ctx, upErr, latency)
		return upErr
	}
	if err := json.Unmarshal(body, out); err != nil {
		upErr := Malformed(name, fmt.Errorf("decode response: %w", err))
		logFailure(ctx, upErr, latency)
		return upErr
	}

	log.Printf("request_id=%s upstream=%s status=%d latency=%s", RequestIDFrom(ctx), name, resp.StatusCode(), latency)
	return nil
}

func logFailure(ctx context.Context, err *Error, latency time.Duration) {
	log.Printf("request_id=%s upstream=%s kind=%s status=%d latency=%s error=%v", RequestIDFrom(ctx), err.Upstream, err.Kind, err.StatusCode, latency, err.Err)
}

var _ Caller = (*Client)(nil)
