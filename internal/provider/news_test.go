package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const topHeadlinesFixture = `{
	"articles": [
		{
			"title": "Big story of the day",
			"description": "A description long enough to pass the minimum length filter.",
			"url": "https://news.example.com/big-story",
			"source": {"name": "Example News"}
		},
		{
			"title": "[Removed]",
			"description": "This article was removed by the source and must be skipped.",
			"url": "https://news.example.com/removed",
			"source": {"name": "Example News"}
		},
		{
			"title": "Your daily horoscope for today",
			"description": "Horoscope content is filtered out of the digest entirely.",
			"url": "https://news.example.com/horoscope",
			"source": {"name": "Example News"}
		},
		{
			"title": "Too thin",
			"description": "short",
			"url": "https://news.example.com/thin",
			"source": {"name": "Example News"}
		},
		{
			"title": "Insecure link",
			"description": "Articles without a valid https link are dropped as well.",
			"url": "http://news.example.com/insecure",
			"source": {"name": "Example News"}
		},
		{
			"title": "Markup in description",
			"description": "<p>Paragraph <b>with</b> markup</p>",
			"url": "https://news.example.com/markup",
			"source": {"name": "Example News"}
		}
	]
}`

const everythingFixture = `{
	"articles": [
		{
			"title": "Big story of the day",
			"description": "Duplicate of a top headline, must be deduplicated by URL.",
			"url": "https://news.example.com/big-story",
			"source": {"name": "Example News"}
		},
		{
			"title": "Breaking supplement",
			"description": "Popular story missing from top-headlines.",
			"url": "https://news.example.com/supplement",
			"source": {"name": "Wire"}
		}
	]
}`

func newsTestServer(t *testing.T, everythingStatus int) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v2/top-headlines":
			fmt.Fprint(w, topHeadlinesFixture)
		case "/v2/everything":
			if everythingStatus != http.StatusOK {
				http.Error(w, "denied", everythingStatus)
				return
			}
			fmt.Fprint(w, everythingFixture)
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestNewsFetchFilters(t *testing.T) {
	srv := newsTestServer(t, http.StatusOK)
	defer srv.Close()

	c := NewNewsClient("test-key", "US", discardLogger())
	c.baseURL = srv.URL
	c.now = func() time.Time { return time.Date(2026, time.March, 10, 7, 0, 0, 0, time.UTC) }

	headlines, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(headlines) != 3 {
		t.Fatalf("expected 3 headlines, got %d: %+v", len(headlines), headlines)
	}

	if headlines[0].Title != "Big story of the day" || headlines[0].Source != "Example News" {
		t.Fatalf("unexpected first headline: %+v", headlines[0])
	}

	if headlines[1].Description != "Paragraph with markup" {
		t.Fatalf("expected markup stripped, got %q", headlines[1].Description)
	}

	if headlines[2].Title != "Breaking supplement" {
		t.Fatalf("expected supplement appended last, got %+v", headlines[2])
	}
}

func TestNewsFetchSupplementFailureIgnored(t *testing.T) {
	srv := newsTestServer(t, http.StatusTooManyRequests)
	defer srv.Close()

	c := NewNewsClient("test-key", "US", discardLogger())
	c.baseURL = srv.URL
	c.now = func() time.Time { return time.Date(2026, time.March, 10, 7, 0, 0, 0, time.UTC) }

	headlines, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(headlines) != 2 {
		t.Fatalf("expected 2 headlines without supplement, got %d", len(headlines))
	}
}

func TestNewsFetchWithoutKey(t *testing.T) {
	c := NewNewsClient("", "US", discardLogger())

	_, err := c.Fetch(context.Background())
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestStripMarkup(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text untouched", "plain text", "plain text"},
		{"tags flattened", "<p>Hello <b>world</b></p>", "Hello world"},
		{"whitespace trimmed", "  padded  ", "padded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripMarkup(tt.in); got != tt.want {
				t.Fatalf("stripMarkup(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
