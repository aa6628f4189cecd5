package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testClient(server *httptest.Server, maxRetries int) *Client {
	c := New(5*time.Second, "")
	c.HTTP = server.Client()
	c.Retry = RetryPolicy{MaxRetries: maxRetries, BaseDelay: time.Millisecond, MaxDelay: 50 * time.Millisecond}
	return c
}

func TestGet_RetriesThenSucceeds(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	body, err := testClient(server, 2).Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if body != "ok" {
		t.Errorf("body = %q, want ok", body)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestGet_ExhaustsRetryBudget(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := testClient(server, 4).Get(context.Background(), server.URL)
	if err == nil {
		t.Fatal("expected terminal error")
	}
	if attempts != 5 {
		t.Errorf("attempts = %d, want 5 (first + 4 retries)", attempts)
	}
	var se *StatusError
	if !errors.As(err, &se) || se.Code != http.StatusServiceUnavailable {
		t.Errorf("expected wrapped StatusError 503, got %v", err)
	}
}

func TestGet_NonRetryableStatusFailsImmediately(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := testClient(server, 4).Get(context.Background(), server.URL)
	if err == nil {
		t.Fatal("expected error")
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1", attempts)
	}
}

func TestGet_HonorsRetryAfter(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		if attempts == 1 {
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	started := time.Now()
	_, err := testClient(server, 1).Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(started); elapsed < time.Second {
		t.Errorf("slept %v, want >= 1s from Retry-After", elapsed)
	}
}

func TestGet_RetryAfterCappedByMaxDelay(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Retry-After", "3600")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	started := time.Now()
	_, err := testClient(server, 1).Get(context.Background(), server.URL)
	if err == nil {
		t.Fatal("expected terminal error")
	}
	if elapsed := time.Since(started); elapsed > 2*time.Second {
		t.Errorf("took %v, Retry-After should have been capped at MaxDelay", elapsed)
	}
}

func TestGet_SetsDefaultHeaders(t *testing.T) {
	var ua, accept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua = r.Header.Get("User-Agent")
		accept = r.Header.Get("Accept")
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	c := New(5*time.Second, "")
	c.HTTP = server.Client()
	if _, err := c.Get(context.Background(), server.URL); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ua == "" || accept == "" {
		t.Errorf("missing default headers: ua=%q accept=%q", ua, accept)
	}
}

func TestGet_ContextCancellationStopsRetries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	c := testClient(server, 10)
	c.Retry.BaseDelay = 5 * time.Second

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.Get(ctx, server.URL)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected context deadline error, got %v", err)
	}
}
