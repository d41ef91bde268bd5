package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMarketFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") == "" {
			http.Error(w, "missing user agent", http.StatusForbidden)
			return
		}

		fmt.Fprint(w, `{
			"chart": {
				"result": [
					{
						"meta": {
							"regularMarketPrice": 6044.25,
							"chartPreviousClose": 5998.74
						}
					}
				]
			}
		}`)
	}))
	defer srv.Close()

	c := NewMarketClient(discardLogger())
	c.baseURL = srv.URL

	snapshot, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if snapshot.Price != 6044.25 {
		t.Fatalf("price = %g, want 6044.25", snapshot.Price)
	}
	if snapshot.Change != 45.51 {
		t.Fatalf("change = %g, want 45.51", snapshot.Change)
	}
	if snapshot.PercentChange != 0.76 {
		t.Fatalf("percent change = %g, want 0.76", snapshot.PercentChange)
	}
	if !snapshot.Positive() {
		t.Fatalf("expected a positive snapshot")
	}
}

func TestMarketFetchMissingPrices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"chart": {"result": [{"meta": {}}]}}`)
	}))
	defer srv.Close()

	c := NewMarketClient(discardLogger())
	c.baseURL = srv.URL

	if _, err := c.Fetch(context.Background()); err == nil {
		t.Fatalf("expected error for quote without prices")
	}
}
