package provider

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"

	"github.com/tidwall/gjson"

	"dailybrief/internal/domain"
)

const (
	marketBaseURL = "https://query1.finance.yahoo.com"

	// S&P 500 index symbol, URL-encoded (^GSPC).
	marketChartPath = "/v8/finance/chart/%5EGSPC?interval=1d&range=2d"
)

// MarketClient fetches the S&P 500 quote from the Yahoo Finance chart API.
type MarketClient struct {
	baseURL string
	client  *http.Client
	log     *slog.Logger
}

func NewMarketClient(log *slog.Logger) *MarketClient {
	return &MarketClient{
		baseURL: marketBaseURL,
		client:  newHTTPClient(),
		log:     log,
	}
}

func (c *MarketClient) Fetch(ctx context.Context) (domain.MarketSnapshot, error) {
	body, err := fetchBody(ctx, c.client, c.baseURL+marketChartPath, browserUserAgent)
	if err != nil {
		return domain.MarketSnapshot{}, fmt.Errorf("fetch index quote: %w", err)
	}

	meta := gjson.GetBytes(body, "chart.result.0.meta")

	// regularMarketPrice during trading hours, chartPreviousClose is the
	// previous session's close.
	price := meta.Get("regularMarketPrice").Float()
	previous := meta.Get("chartPreviousClose").Float()
	if price == 0 || previous == 0 {
		return domain.MarketSnapshot{}, errors.New("index quote is missing price data")
	}

	change := price - previous

	return domain.MarketSnapshot{
		Price:         round2(price),
		Change:        round2(change),
		PercentChange: round2(change / previous * 100),
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
