package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"time"

	"dailybrief/internal/domain"
)

const (
	comicBaseURL = "https://xkcd.com"

	comicDateLayout = "2006-1-2"
)

// ComicClient fetches the xkcd of the day: the latest comic when it was
// published today or yesterday, a random back-catalog pick otherwise.
type ComicClient struct {
	baseURL string
	client  *http.Client
	rng     *rand.Rand
	now     func() time.Time
	log     *slog.Logger
}

func NewComicClient(rng *rand.Rand, log *slog.Logger) *ComicClient {
	return &ComicClient{
		baseURL: comicBaseURL,
		client:  newHTTPClient(),
		rng:     rng,
		now:     time.Now,
		log:     log,
	}
}

type xkcdInfo struct {
	Num   int64  `json:"num"`
	Title string `json:"title"`
	Img   string `json:"img"`
	Alt   string `json:"alt"`
	Year  string `json:"year"`
	Month string `json:"month"`
	Day   string `json:"day"`
}

func (c *ComicClient) Fetch(ctx context.Context) (domain.ComicOfDay, error) {
	body, err := fetchBody(ctx, c.client, c.baseURL+"/info.0.json", "")
	if err != nil {
		return domain.ComicOfDay{}, fmt.Errorf("fetch latest comic: %w", err)
	}

	var latest xkcdInfo
	if err = json.Unmarshal(body, &latest); err != nil {
		return domain.ComicOfDay{}, fmt.Errorf("decode latest comic: %w", err)
	}
	if latest.Num <= 0 {
		return domain.ComicOfDay{}, errors.New("latest comic has no number")
	}

	// Catches comics published yesterday evening (shown the next
	// morning) or early today before the send.
	if c.publishedRecently(latest) {
		return comicOfDay(latest, true), nil
	}

	number := c.rng.Int63n(latest.Num) + 1

	body, err = fetchBody(ctx, c.client, fmt.Sprintf("%s/%d/info.0.json", c.baseURL, number), "")
	if err != nil {
		return domain.ComicOfDay{}, fmt.Errorf("fetch comic %d: %w", number, err)
	}

	var random xkcdInfo
	if err = json.Unmarshal(body, &random); err != nil {
		return domain.ComicOfDay{}, fmt.Errorf("decode comic %d: %w", number, err)
	}

	return comicOfDay(random, false), nil
}

func (c *ComicClient) publishedRecently(info xkcdInfo) bool {
	published, err := time.ParseInLocation(comicDateLayout,
		fmt.Sprintf("%s-%s-%s", info.Year, info.Month, info.Day), time.Local)
	if err != nil {
		return false
	}

	day := published.Format("2006-01-02")
	now := c.now()

	return day == now.Format("2006-01-02") ||
		day == now.AddDate(0, 0, -1).Format("2006-01-02")
}

func comicOfDay(info xkcdInfo, isNew bool) domain.ComicOfDay {
	label := fmt.Sprintf("No new comic, here's a random one #%d", info.Num)
	if isNew {
		label = fmt.Sprintf("New comic #%d", info.Num)
	}

	return domain.ComicOfDay{
		Number:   info.Num,
		Title:    info.Title,
		ImageURL: info.Img,
		AltText:  info.Alt,
		Link:     fmt.Sprintf("%s/%d", comicBaseURL, info.Num),
		Label:    label,
		New:      isNew,
	}
}
