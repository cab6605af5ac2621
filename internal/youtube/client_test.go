package youtube

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetchTimedText_FirstVariantHit(t *testing.T) {
	const body = `<transcript><text start="0" dur="1">hi</text></transcript>`
	var requests []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r.URL.RequestURI())
		w.Write([]byte(body))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", time.Second, nil)
	got, err := c.FetchTimedText(context.Background(), "dQw4w9WgXcQ", "en")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != body {
		t.Errorf("unexpected body: %q", got)
	}
	if len(requests) != 1 {
		t.Fatalf("expected 1 upstream request, got %d: %v", len(requests), requests)
	}
	if requests[0] != "/api/timedtext?v=dQw4w9WgXcQ&lang=en" {
		t.Errorf("unexpected request: %s", requests[0])
	}
}

func TestFetchTimedText_FallsBackThroughVariants(t *testing.T) {
	const body = `<transcript><text start="0" dur="1">hallo</text></transcript>`
	var requests []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r.URL.RequestURI())
		// Only the plain-English variant has captions.
		if r.URL.Query().Get("lang") == "en" && r.URL.Query().Get("fmt") == "" {
			w.Write([]byte(body))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", time.Second, nil)
	got, err := c.FetchTimedText(context.Background(), "dQw4w9WgXcQ", "de")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != body {
		t.Errorf("unexpected body: %q", got)
	}
	if len(requests) != 3 {
		t.Fatalf("expected 3 upstream requests (de, de+vtt, en), got %d: %v", len(requests), requests)
	}
}

func TestFetchTimedText_NotAvailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", time.Second, nil)
	_, err := c.FetchTimedText(context.Background(), "dQw4w9WgXcQ", "en")
	if !errors.Is(err, ErrNotAvailable) {
		t.Fatalf("expected ErrNotAvailable, got %v", err)
	}
}

func TestFetchTimedText_BlankBodyIsNotAvailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("  \n "))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", time.Second, nil)
	_, err := c.FetchTimedText(context.Background(), "dQw4w9WgXcQ", "en")
	if !errors.Is(err, ErrNotAvailable) {
		t.Fatalf("expected ErrNotAvailable for blank bodies, got %v", err)
	}
}

func TestFetchTimedText_RecordsStats(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<transcript/>"))
	}))
	defer srv.Close()

	stats := NewFetchStats(time.Hour)
	c := NewClient(srv.URL, "", time.Second, stats)
	if _, err := c.FetchTimedText(context.Background(), "dQw4w9WgXcQ", "en"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap := stats.Snapshot(); snap.Count != 1 {
		t.Errorf("expected 1 recorded sample, got %d", snap.Count)
	}
}

func TestFetchTimedText_ContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(srv.URL, "", time.Second, nil)
	_, err := c.FetchTimedText(ctx, "dQw4w9WgXcQ", "en")
	if err == nil || errors.Is(err, ErrNotAvailable) {
		t.Fatalf("expected context error, got %v", err)
	}
}

func TestOEmbed_ProxiesJSON(t *testing.T) {
	const payload = `{"title":"Some Video","author_name":"Someone"}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/oembed" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", time.Second, nil)
	raw, err := c.OEmbed(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(raw) != payload {
		t.Errorf("unexpected payload: %s", raw)
	}
}

func TestOEmbed_UpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", time.Second, nil)
	if _, err := c.OEmbed(context.Background(), "https://www.youtube.com/watch?v=x"); err == nil {
		t.Fatal("expected error for upstream failure")
	}
}
