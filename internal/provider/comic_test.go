package provider

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"
)

func comicJSON(num int64, year, month, day string) string {
	return fmt.Sprintf(`{
		"num": %d,
		"title": "Comic %d",
		"img": "https://imgs.xkcd.com/comics/%d.png",
		"alt": "alt text %d",
		"year": %q,
		"month": %q,
		"day": %q
	}`, num, num, num, num, year, month, day)
}

func comicTestServer(t *testing.T, latest string) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/info.0.json" {
			fmt.Fprint(w, latest)
			return
		}

		// /{num}/info.0.json for back-catalog picks.
		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		num, err := strconv.ParseInt(parts[0], 10, 64)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, comicJSON(num, "2015", "5", "4"))
	}))
}

func TestComicFetchLatestPublishedToday(t *testing.T) {
	now := time.Date(2026, time.March, 10, 7, 0, 0, 0, time.Local)

	srv := comicTestServer(t, comicJSON(3100, "2026", "3", "10"))
	defer srv.Close()

	c := NewComicClient(rand.New(rand.NewSource(1)), discardLogger())
	c.baseURL = srv.URL
	c.now = func() time.Time { return now }

	comic, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !comic.New {
		t.Fatalf("expected the latest comic to be marked new")
	}
	if comic.Number != 3100 {
		t.Fatalf("unexpected comic number %d", comic.Number)
	}
	if comic.Label != "New comic #3100" {
		t.Fatalf("unexpected label %q", comic.Label)
	}
	if comic.Link != "https://xkcd.com/3100" {
		t.Fatalf("unexpected link %q", comic.Link)
	}
}

func TestComicFetchLatestPublishedYesterday(t *testing.T) {
	now := time.Date(2026, time.March, 10, 7, 0, 0, 0, time.Local)

	srv := comicTestServer(t, comicJSON(3100, "2026", "3", "9"))
	defer srv.Close()

	c := NewComicClient(rand.New(rand.NewSource(1)), discardLogger())
	c.baseURL = srv.URL
	c.now = func() time.Time { return now }

	comic, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !comic.New {
		t.Fatalf("expected yesterday's comic to be marked new")
	}
}

func TestComicFetchFallsBackToRandom(t *testing.T) {
	now := time.Date(2026, time.March, 10, 7, 0, 0, 0, time.Local)

	srv := comicTestServer(t, comicJSON(3100, "2026", "3", "6"))
	defer srv.Close()

	c := NewComicClient(rand.New(rand.NewSource(1)), discardLogger())
	c.baseURL = srv.URL
	c.now = func() time.Time { return now }

	comic, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if comic.New {
		t.Fatalf("expected a random back-catalog comic, got new")
	}
	if comic.Number < 1 || comic.Number > 3100 {
		t.Fatalf("comic number %d out of range", comic.Number)
	}
	if !strings.HasPrefix(comic.Label, "No new comic") {
		t.Fatalf("unexpected label %q", comic.Label)
	}
}
