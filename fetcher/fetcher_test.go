package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const page = `<html><head><title>Offer</title></head><body><h1>Hello</h1></body></html>`

func TestHTTPFetcher_FetchMarkup(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(page))
	}))
	defer srv.Close()

	f := New(Options{UserAgent: "landing-test/1.0"})
	markup, err := f.FetchMarkup(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("FetchMarkup: %v", err)
	}
	if markup != page {
		t.Errorf("markup = %q, want %q", markup, page)
	}
	if gotUA != "landing-test/1.0" {
		t.Errorf("User-Agent = %q", gotUA)
	}
}

func TestHTTPFetcher_StatusErrors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		contentType string
	}{
		{"not found", http.StatusNotFound, "text/html"},
		{"server error", http.StatusInternalServerError, "text/html"},
		{"json body", http.StatusOK, "application/json"},
		{"image", http.StatusOK, "image/png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", tt.contentType)
				w.WriteHeader(tt.status)
				w.Write([]byte("{}"))
			}))
			defer srv.Close()

			_, err := New(Options{}).FetchMarkup(context.Background(), srv.URL)
			var se *StatusError
			if !errors.As(err, &se) {
				t.Fatalf("err = %v, want *StatusError", err)
			}
			if se.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", se.StatusCode, tt.status)
			}
		})
	}
}

func TestHTTPFetcher_BodyLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(strings.Repeat("a", 1000)))
	}))
	defer srv.Close()

	markup, err := New(Options{MaxBody: 100}).FetchMarkup(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("FetchMarkup: %v", err)
	}
	if len(markup) != 100 {
		t.Errorf("len(markup) = %d, want 100", len(markup))
	}
}

func TestHTTPFetcher_Cancelled(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err := New(Options{}).FetchMarkup(ctx, srv.URL)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want context.DeadlineExceeded", err)
	}
}

func TestHTTPFetcher_InvalidURL(t *testing.T) {
	if _, err := New(Options{}).FetchMarkup(context.Background(), "://nope"); err == nil {
		t.Error("expected error for invalid url")
	}
}

func TestIsHTMLContentType(t *testing.T) {
	tests := map[string]bool{
		"":                          true,
		"text/html":                 true,
		"TEXT/HTML; charset=UTF-8":  true,
		"application/xhtml+xml":     true,
		"application/json":          false,
		"text/plain; charset=utf-8": false,
	}
	for ct, want := range tests {
		if got := isHTMLContentType(ct); got != want {
			t.Errorf("isHTMLContentType(%q) = %v, want %v", ct, got, want)
		}
	}
}
