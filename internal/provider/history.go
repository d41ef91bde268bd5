package provider

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"time"

	"github.com/tidwall/gjson"

	"dailybrief/internal/domain"
)

const (
	historyBaseURL   = "https://en.wikipedia.org"
	historyUserAgent = "dailybrief/1.0 (daily brief mailer)"

	// Events with shorter blurbs are usually bare year references.
	minFactLength = 20
)

// HistoryClient picks one event from Wikipedia's on-this-day feed. The
// random source is injected so the pick is deterministic under test.
type HistoryClient struct {
	baseURL string
	client  *http.Client
	rng     *rand.Rand
	now     func() time.Time
	log     *slog.Logger
}

func NewHistoryClient(rng *rand.Rand, log *slog.Logger) *HistoryClient {
	return &HistoryClient{
		baseURL: historyBaseURL,
		client:  newHTTPClient(),
		rng:     rng,
		now:     time.Now,
		log:     log,
	}
}

func (c *HistoryClient) Fetch(ctx context.Context) (domain.HistoricalFact, error) {
	now := c.now()
	url := fmt.Sprintf("%s/api/rest_v1/feed/onthisday/events/%02d/%02d",
		c.baseURL, int(now.Month()), now.Day())

	body, err := fetchBody(ctx, c.client, url, historyUserAgent)
	if err != nil {
		return domain.HistoricalFact{}, fmt.Errorf("fetch on-this-day events: %w", err)
	}

	events := gjson.GetBytes(body, "events").Array()
	if len(events) == 0 {
		return domain.HistoricalFact{}, errors.New("no events for this day")
	}

	var valid []gjson.Result
	for _, e := range events {
		if e.Get("year").Exists() && len(e.Get("text").String()) > minFactLength {
			valid = append(valid, e)
		}
	}

	pool := valid
	if len(pool) == 0 {
		pool = events
	}

	event := pool[c.rng.Intn(len(pool))]

	return domain.HistoricalFact{
		Year: event.Get("year").Int(),
		Text: event.Get("text").String(),
		URL:  event.Get("pages.0.content_urls.desktop.page").String(),
	}, nil
}
