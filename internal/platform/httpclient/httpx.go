// Package httpclient provides an HTTP client with rate limiting, timeout and
// status/body helpers. Requests are issued exactly once; callers that want
// retries must layer them on top.
package httpclient

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"harvestx/internal/platform/errors"
	"harvestx/internal/platform/logx"
)

// Client is an HTTP client with rate limiting and timeout support.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	logger      logx.Logger
	config      Config
}

// Config holds the configuration for the HTTP client.
type Config struct {
	// Timeout is the request timeout duration.
	// Default: 30 seconds
	Timeout time.Duration

	// UserAgent is the User-Agent header value.
	// Default: "harvestx/1.0"
	UserAgent string

	// RateLimit is the maximum requests per second.
	// 0 means no rate limiting.
	RateLimit float64

	// RateLimitBurst is the burst size for rate limiting.
	// Default: 1
	RateLimitBurst int

	// MaxBodyBytes caps how much of a response body is read.
	// Default: 32 MiB
	MaxBodyBytes int64

	// Transport overrides the underlying round tripper (tests, proxies).
	Transport http.RoundTripper
}

const (
	defaultTimeout      = 30 * time.Second
	defaultUserAgent    = "harvestx/1.0"
	defaultMaxBodyBytes = 32 << 20
)

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Timeout:        defaultTimeout,
		UserAgent:      defaultUserAgent,
		RateLimit:      0,
		RateLimitBurst: 1,
		MaxBodyBytes:   defaultMaxBodyBytes,
	}
}

// New creates a new HTTP client with the given configuration.
func New(config Config, logger logx.Logger) *Client {
	// Apply defaults for zero values
	if config.Timeout <= 0 {
		config.Timeout = defaultTimeout
	}
	if config.UserAgent == "" {
		config.UserAgent = defaultUserAgent
	}
	if config.RateLimitBurst <= 0 {
		config.RateLimitBurst = 1
	}
	if config.MaxBodyBytes <= 0 {
		config.MaxBodyBytes = defaultMaxBodyBytes
	}

	httpClient := &http.Client{
		Timeout:   config.Timeout,
		Transport: config.Transport,
	}

	var limiter *rate.Limiter
	if config.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(config.RateLimit), config.RateLimitBurst)
	}

	return &Client{
		httpClient:  httpClient,
		rateLimiter: limiter,
		logger:      logger.With("component", "httpclient"),
		config:      config,
	}
}

// Get performs a single GET request. query may be nil.
func (c *Client) Get(ctx context.Context, rawURL string, query url.Values, headers map[string]string) (*http.Response, error) {
	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, errors.Wrap(err, "rate limit wait failed")
		}
	}

	target, err := withQuery(rawURL, query)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "invalid url %q: %v", rawURL, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create request for GET %s", target)
	}
	req.Header.Set("User-Agent", c.config.UserAgent)
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	c.logger.Debug("HTTP request", "method", http.MethodGet, "url", target)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.logger.Warn("HTTP request failed",
			"url", target,
			"error", err.Error(),
			"duration_ms", duration.Milliseconds(),
		)
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return nil, errors.Wrap(errors.ErrTimeout, err.Error())
		}
		return nil, errors.Wrapf(err, "GET %s", target)
	}

	c.logger.Debug("HTTP response received",
		"url", target,
		"status", resp.StatusCode,
		"duration_ms", duration.Milliseconds(),
	)
	return resp, nil
}

// GetJSON is a convenience method for GET requests that expect JSON responses.
func (c *Client) GetJSON(ctx context.Context, rawURL string, query url.Values) (*http.Response, error) {
	return c.Get(ctx, rawURL, query, map[string]string{"Accept": "application/json"})
}

// FetchJSON performs a GET request and returns the response body.
// The response is validated for 2xx status codes.
func (c *Client) FetchJSON(ctx context.Context, rawURL string, query url.Values) ([]byte, error) {
	resp, err := c.GetJSON(ctx, rawURL, query)
	if err != nil {
		return nil, err
	}

	if err := CheckStatus(resp); err != nil {
		resp.Body.Close()
		return nil, errors.Wrapf(err, "request to %s failed", rawURL)
	}

	return c.readBody(resp)
}

func (c *Client) readBody(resp *http.Response) ([]byte, error) {
	resp.Body = struct {
		io.Reader
		io.Closer
	}{io.LimitReader(resp.Body, c.config.MaxBodyBytes), resp.Body}
	return ReadBody(resp)
}

// ReadBody reads the response body and closes it.
func ReadBody(resp *http.Response) ([]byte, error) {
	if resp == nil {
		return nil, errors.New("response is nil")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response body")
	}
	return body, nil
}

// CheckStatus validates the HTTP status code and returns a *errors.StatusError
// if it's not successful.
func CheckStatus(resp *http.Response) error {
	if resp == nil {
		return errors.New("response is nil")
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	return &errors.StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
}

func withQuery(rawURL string, query url.Values) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("missing scheme or host")
	}
	if len(query) > 0 {
		q := u.Query()
		for k, vs := range query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

// String returns a human-readable representation of the client configuration.
func (c *Client) String() string {
	return fmt.Sprintf("HTTPClient{timeout=%s, rate_limit=%.1f/s, user_agent=%s}",
		c.config.Timeout,
		c.config.RateLimit,
		c.config.UserAgent,
	)
}
