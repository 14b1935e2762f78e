package metadata

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClientFetch(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("url")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ogTitle":"Example","twitterTitle":"Example on Twitter","ogDescription":"Desc","favicon":"https://example.com/icon.png"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	raw, err := c.Fetch(context.Background(), "https://example.com/page?a=b")
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}

	if gotQuery != "https://example.com/page?a=b" {
		t.Errorf("target not URL-encoded as query parameter, server saw %q", gotQuery)
	}
	if raw.OGTitle != "Example" {
		t.Errorf("OGTitle = %q, want Example", raw.OGTitle)
	}
	if raw.Favicon != "https://example.com/icon.png" {
		t.Errorf("Favicon = %q", raw.Favicon)
	}
}

func TestClientFetchNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	_, err := c.Fetch(context.Background(), "https://example.com/page")

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("error = %v, want *FetchError", err)
	}
	if fetchErr.Status != http.StatusBadGateway {
		t.Errorf("Status = %d, want 502", fetchErr.Status)
	}
}

func TestClientFetchMalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	_, err := c.Fetch(context.Background(), "https://example.com/page")

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("error = %v, want *FetchError", err)
	}
}

func TestScrape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><head><title>Scraped</title><meta property="og:title" content="OG Scraped"><link rel="icon" href="/fav.ico"></head><body></body></html>`))
	}))
	defer srv.Close()

	raw, err := Scrape(context.Background(), srv.Client(), srv.URL+"/page")
	if err != nil {
		t.Fatalf("Scrape() error: %v", err)
	}
	if raw.OGTitle != "OG Scraped" {
		t.Errorf("OGTitle = %q", raw.OGTitle)
	}
	if raw.Favicon != srv.URL+"/fav.ico" {
		t.Errorf("Favicon = %q, want %q", raw.Favicon, srv.URL+"/fav.ico")
	}
}

func TestScrapeNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := Scrape(context.Background(), srv.Client(), srv.URL+"/missing")

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("error = %v, want *FetchError", err)
	}
	if fetchErr.Status != http.StatusNotFound {
		t.Errorf("Status = %d, want 404", fetchErr.Status)
	}
}
