package httpx

import (
	"context"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// RetryPolicy controls the backoff schedule for transient failures.
type RetryPolicy struct {
	MaxRetries int           // additional attempts after the first
	BaseDelay  time.Duration // first backoff step
	MaxDelay   time.Duration // cap for computed and Retry-After delays
	Jitter     time.Duration // max random addition per sleep
}

// DefaultRetry matches the upstream sources' tolerance: a handful of retries
// with second-scale backoff.
var DefaultRetry = RetryPolicy{
	MaxRetries: 4,
	BaseDelay:  800 * time.Millisecond,
	MaxDelay:   15 * time.Second,
	Jitter:     300 * time.Millisecond,
}

// StatusError reports a non-2xx HTTP response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.Code, e.Body)
}

// Client wraps http.Client with default headers and retrying GETs.
type Client struct {
	HTTP      *http.Client
	UserAgent string
	Accept    string
	Retry     RetryPolicy
}

// New creates a Client with optional proxy support.
func New(timeout time.Duration, proxyURL string) *Client {
	transport := &http.Transport{Proxy: http.ProxyFromEnvironment}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &Client{
		HTTP: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		UserAgent: "marketpress/1.0 (+site feed generator)",
		Accept:    "text/csv,application/json,application/rss+xml,*/*",
		Retry:     DefaultRetry,
	}
}

func retryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// Get fetches url and returns the response body, retrying transient HTTP
// statuses and transport errors with capped exponential backoff. A
// Retry-After header (seconds) overrides the computed delay, still capped.
func (c *Client) Get(ctx context.Context, rawURL string) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= c.Retry.MaxRetries; attempt++ {
		body, retryAfter, err := c.getOnce(ctx, rawURL)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if se, ok := err.(*StatusError); ok && !retryableStatus(se.Code) {
			return "", err
		}
		if attempt == c.Retry.MaxRetries {
			break
		}
		delay := c.backoff(attempt, retryAfter)
		log.Printf("[WARN] fetch %s failed (attempt %d/%d): %v, retrying in %v",
			rawURL, attempt+1, c.Retry.MaxRetries+1, err, delay)
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delay):
		}
	}
	return "", fmt.Errorf("all %d attempts failed: %w", c.Retry.MaxRetries+1, lastErr)
}

func (c *Client) getOnce(ctx context.Context, rawURL string) (body string, retryAfter time.Duration, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", 0, err
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	if c.Accept != "" {
		req.Header.Set("Accept", c.Accept)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", 0, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if v := resp.Header.Get("Retry-After"); v != "" {
			if secs, perr := strconv.Atoi(v); perr == nil && secs > 0 {
				retryAfter = time.Duration(secs) * time.Second
			}
		}
		snippet := string(data)
		if len(snippet) > 200 {
			snippet = snippet[:200]
		}
		return "", retryAfter, &StatusError{Code: resp.StatusCode, Body: snippet}
	}
	return string(data), 0, nil
}

func (c *Client) backoff(attempt int, retryAfter time.Duration) time.Duration {
	delay := c.Retry.BaseDelay << uint(attempt)
	if retryAfter > 0 {
		delay = retryAfter
	}
	if c.Retry.MaxDelay > 0 && delay > c.Retry.MaxDelay {
		delay = c.Retry.MaxDelay
	}
	if c.Retry.Jitter > 0 {
		delay += time.Duration(rand.Int63n(int64(c.Retry.Jitter)))
	}
	return delay
}
