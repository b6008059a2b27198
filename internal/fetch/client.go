// Package fetch implements the outbound HTTP boundary: a single
// forward-proxy-capable GET with bounded linear retry, shared by index
// listing, detail extraction, and image download.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/jonesrussell/newsharvest/internal/logger"
)

const defaultRequestTimeout = 30 * time.Second

// Config holds fetch client configuration.
type Config struct {
	// Proxy is an optional forward proxy URL, empty for direct requests.
	Proxy string
	// Retries bounds retry attempts after the first failure.
	Retries int
	// Wait is the fixed sleep between attempts.
	Wait time.Duration
	// UserAgent is sent on every request.
	UserAgent string
}

// Client performs GET requests with bounded linear retry. There is no
// jitter and no circuit breaking; transport failures sleep Wait and try
// again up to Retries times, then surface as a terminal *Error.
type Client struct {
	httpClient *http.Client
	retries    int
	wait       time.Duration
	userAgent  string
	logger     logger.Interface
}

// New creates a fetch client.
func New(cfg Config, log logger.Interface) (*Client, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.Proxy != "" {
		proxyURL, err := url.Parse(cfg.Proxy)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy url %q: %w", cfg.Proxy, err)
		}
		transport.Proxy = http.ProxyURL(proxyURL)
	}

	return &Client{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   defaultRequestTimeout,
		},
		retries:   cfg.Retries,
		wait:      cfg.Wait,
		userAgent: cfg.UserAgent,
		logger:    log.WithComponent("fetch"),
	}, nil
}

// Get fetches rawURL and returns the raw response body. Any HTTP status
// is accepted; only transport failures are retried. The page content of
// an error status flows to the caller, whose parser treats it as a
// per-item failure.
func (c *Client) Get(ctx context.Context, rawURL string, headers http.Header) ([]byte, error) {
	var lastErr error

	attempts := c.retries + 1
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			c.logger.Warn("Retrying request",
				"url", rawURL,
				"attempt", attempt,
				"error", lastErr)

			select {
			case <-ctx.Done():
				return nil, &Error{URL: rawURL, Attempts: attempt - 1, Cause: ctx.Err()}
			case <-time.After(c.wait):
			}
		}

		body, err := c.doGet(ctx, rawURL, headers)
		if err == nil {
			return body, nil
		}
		lastErr = err
	}

	c.logger.Error("Request failed after all attempts",
		"url", rawURL,
		"attempts", attempts,
		"error", lastErr)

	return nil, &Error{URL: rawURL, Attempts: attempts, Cause: lastErr}
}

// GetText fetches rawURL and returns the body decoded as UTF-8 text.
func (c *Client) GetText(ctx context.Context, rawURL string, headers http.Header) (string, error) {
	body, err := c.Get(ctx, rawURL, headers)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// doGet performs a single GET attempt.
func (c *Client) doGet(ctx context.Context, rawURL string, headers http.Header) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}

	for key, values := range headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, doErr := c.httpClient.Do(req)
	if doErr != nil {
		return nil, fmt.Errorf("do request: %w", doErr)
	}
	defer resp.Body.Close()

	body, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return nil, fmt.Errorf("read body: %w", readErr)
	}

	return body, nil
}
