package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"mvdan.cc/xurls/v2"

	"dailybrief/internal/domain"
)

const (
	newsBaseURL = "https://newsapi.org"

	maxHeadlines         = 8
	minDescriptionLength = 30
	supplementPageSize   = 10
)

// NewsClient fetches top headlines from NewsAPI. It is optional: without
// an API key every fetch returns ErrNotConfigured and the news section
// degrades to its placeholder.
type NewsClient struct {
	apiKey  string
	country string
	baseURL string
	client  *http.Client
	now     func() time.Time
	log     *slog.Logger
}

func NewNewsClient(apiKey, country string, log *slog.Logger) *NewsClient {
	return &NewsClient{
		apiKey:  apiKey,
		country: strings.ToLower(country),
		baseURL: newsBaseURL,
		client:  newHTTPClient(),
		now:     time.Now,
		log:     log,
	}
}

type newsPayload struct {
	Articles []newsArticle `json:"articles"`
}

type newsArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Source      struct {
		Name string `json:"name"`
	} `json:"source"`
}

func (c *NewsClient) Fetch(ctx context.Context) ([]domain.Headline, error) {
	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}

	httpsURLRe, err := xurls.StrictMatchingScheme("https://")
	if err != nil {
		return nil, fmt.Errorf("create URL matcher: %w", err)
	}

	q := url.Values{}
	q.Set("country", c.country)
	q.Set("pageSize", strconv.Itoa(maxHeadlines*2))
	q.Set("apiKey", c.apiKey)

	body, err := fetchBody(ctx, c.client, c.baseURL+"/v2/top-headlines?"+q.Encode(), "")
	if err != nil {
		return nil, fmt.Errorf("fetch top headlines: %w", err)
	}

	var payload newsPayload
	if err = json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode top headlines: %w", err)
	}

	headlines := make([]domain.Headline, 0, maxHeadlines)
	seen := make(map[string]struct{}, maxHeadlines)

	accept := func(a newsArticle) {
		if _, ok := seen[a.URL]; ok {
			return
		}

		seen[a.URL] = struct{}{}
		headlines = append(headlines, domain.Headline{
			Title:       a.Title,
			Description: stripMarkup(a.Description),
			URL:         a.URL,
			Source:      a.Source.Name,
		})
	}

	for _, a := range payload.Articles {
		if !usable(a, httpsURLRe.MatchString) {
			continue
		}
		if a.Description != "" && len(a.Description) < minDescriptionLength {
			continue
		}
		if strings.Contains(strings.ToLower(a.Title), "horoscope") {
			continue
		}

		accept(a)
	}

	for _, a := range c.supplement(ctx) {
		if usable(a, httpsURLRe.MatchString) {
			accept(a)
		}
	}

	if len(headlines) > maxHeadlines {
		headlines = headlines[:maxHeadlines]
	}

	return headlines, nil
}

// supplement pulls the day's most popular stories from the everything
// endpoint to catch major news missing from top-headlines. Best effort:
// failures here never fail the digest.
func (c *NewsClient) supplement(ctx context.Context) []newsArticle {
	q := url.Values{}
	q.Set("q", `USA OR "United States" OR breaking`)
	q.Set("language", "en")
	q.Set("sortBy", "popularity")
	q.Set("from", c.now().Format("2006-01-02"))
	q.Set("pageSize", strconv.Itoa(supplementPageSize))
	q.Set("apiKey", c.apiKey)

	body, err := fetchBody(ctx, c.client, c.baseURL+"/v2/everything?"+q.Encode(), "")
	if err != nil {
		c.log.WarnContext(ctx, "Supplementary headlines are unavailable",
			"error", err)

		return nil
	}

	var payload newsPayload
	if err = json.Unmarshal(body, &payload); err != nil {
		c.log.WarnContext(ctx, "Failed to decode supplementary headlines",
			"error", err)

		return nil
	}

	return payload.Articles
}

func usable(a newsArticle, validURL func(string) bool) bool {
	if a.Title == "" || a.Title == "[Removed]" {
		return false
	}

	return a.URL != "" && validURL(a.URL)
}

// stripMarkup flattens HTML fragments that some sources ship inside
// article descriptions down to their text.
func stripMarkup(s string) string {
	if !strings.ContainsAny(s, "<>") {
		return strings.TrimSpace(s)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}

	return strings.TrimSpace(doc.Text())
}
