// Package brief renders the complete per-recipient email body. Rendering
// is pure: the same inputs always produce the same document, and every
// section renders a placeholder when its source data is unavailable so
// the layout never shifts.
package brief

import (
	"fmt"
	"math"
	"strings"
	"time"

	"dailybrief/internal/domain"
)

const (
	maxHeadlineDescriptionChars = 200
	maxOverviewChars            = 297
)

type view struct {
	Preview   string
	Greeting  string
	Date      string
	MoonName  string
	MoonEmoji string

	Weather *weatherView
	News    []headlineView
	Market  *marketView
	Fact    *factView
	Movie   *movieView
	Comic   *domain.ComicOfDay

	Sources string
}

type weatherView struct {
	City        string
	Temp        string
	Description string
	Emoji       string
	Sunrise     string
	Sunset      string
	Hours       []hourView
}

type hourView struct {
	Label       string
	Emoji       string
	Temp        string
	Description string
	Rain        string
	RainColor   string
	RowBG       string
}

type headlineView struct {
	Title       string
	Description string
	URL         string
	Source      string
}

type marketView struct {
	Arrow   string
	Sign    string
	Percent string
	Color   string
}

type factView struct {
	Year int64
	Text string
	URL  string
}

type movieView struct {
	Title     string
	Year      string
	Stars     string
	Rating    string
	Genres    string
	Runtime   string
	Overview  string
	PosterURL string
	InfoURL   string
}

// Render builds the HTML brief for one recipient. A nil weather report
// (or nil/empty shared fields) renders the matching section placeholder.
func Render(
	recipient domain.Recipient,
	weather *domain.WeatherReport,
	shared domain.SharedContent,
	now time.Time,
) (string, error) {
	var sb strings.Builder
	if err := briefTmpl.Execute(&sb, buildView(recipient, weather, shared, now)); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}

	return sb.String(), nil
}

func buildView(
	recipient domain.Recipient,
	weather *domain.WeatherReport,
	shared domain.SharedContent,
	now time.Time,
) view {
	moonName, moonEmoji := MoonPhase(now)

	v := view{
		Preview:   "Your daily brief is ready. Open up for today's weather, news and more.",
		Greeting:  "Hi,",
		Date:      now.Format("January 2, 2006"),
		MoonName:  moonName,
		MoonEmoji: moonEmoji,
		Sources:   sourcesLine(shared),
	}

	if recipient.Name != "" {
		v.Greeting = fmt.Sprintf("Hi %s,", recipient.Name)
	}

	if weather != nil {
		v.Weather = buildWeatherView(weather)
		v.Preview = previewLine(weather)
	}

	for _, h := range shared.News {
		v.News = append(v.News, headlineView{
			Title:       h.Title,
			Description: truncate(h.Description, maxHeadlineDescriptionChars),
			URL:         h.URL,
			Source:      h.Source,
		})
	}

	if shared.Market != nil {
		v.Market = buildMarketView(*shared.Market)
	}

	if shared.Fact != nil {
		v.Fact = &factView{
			Year: shared.Fact.Year,
			Text: shared.Fact.Text,
			URL:  shared.Fact.URL,
		}
	}

	if shared.Movie != nil {
		v.Movie = buildMovieView(*shared.Movie)
	}

	v.Comic = shared.Comic

	return v
}

func buildWeatherView(w *domain.WeatherReport) *weatherView {
	wv := &weatherView{
		City:        w.Current.City,
		Temp:        formatTemp(w.Current.TempF),
		Description: w.Current.Description,
		Emoji:       WeatherEmoji(w.Current.ConditionID, w.Current.Description),
		Sunrise:     w.Sunrise.Format("3:04 PM"),
		Sunset:      w.Sunset.Format("3:04 PM"),
	}

	for i, h := range w.Hours {
		rain := "—"
		rainColor := "#999"
		if pct := int(math.Round(h.PrecipProb * 100)); pct > 0 {
			rain = fmt.Sprintf("%d%%", pct)
			rainColor = "#7f8c8d"
			if pct > 50 {
				rainColor = "#3498db"
			}
		}

		rowBG := "#ffffff"
		if i%2 == 0 {
			rowBG = "#fafafa"
		}

		wv.Hours = append(wv.Hours, hourView{
			Label:       h.Time.Format("3 PM"),
			Emoji:       WeatherEmoji(h.ConditionID, h.Description),
			Temp:        formatTemp(h.TempF),
			Description: h.Description,
			Rain:        rain,
			RainColor:   rainColor,
			RowBG:       rowBG,
		})
	}

	return wv
}

func buildMarketView(m domain.MarketSnapshot) *marketView {
	mv := &marketView{
		Arrow:   "▼",
		Sign:    "",
		Percent: fmt.Sprintf("%.2f%%", m.PercentChange),
		Color:   "#e74c3c",
	}

	if m.Positive() {
		mv.Arrow = "▲"
		mv.Sign = "+"
		mv.Color = "#27ae60"
	}

	return mv
}

func buildMovieView(m domain.MovieRecommendation) *movieView {
	year := "N/A"
	if m.ReleaseDate != "" {
		year = strings.SplitN(m.ReleaseDate, "-", 2)[0]
	}

	return &movieView{
		Title:     m.Title,
		Year:      year,
		Stars:     ratingStars(m.Rating),
		Rating:    fmt.Sprintf("%.1f", m.Rating),
		Genres:    m.Genres,
		Runtime:   m.Runtime,
		Overview:  truncate(m.Overview, maxOverviewChars),
		PosterURL: m.PosterURL,
		InfoURL:   m.InfoURL,
	}
}

// previewLine is the hidden inbox preview text.
func previewLine(w *domain.WeatherReport) string {
	high := w.Current.TempF
	low := w.Current.TempF
	for _, h := range w.Hours {
		high = math.Max(high, h.TempF)
		low = math.Min(low, h.TempF)
	}

	return fmt.Sprintf(
		"In %s, the high is %.0f° and the low is %.0f°. You can expect %s today. "+
			"Open up to see some of the top news stories of the day.",
		w.Current.City, high, low, strings.ToLower(w.Current.Description))
}

func sourcesLine(shared domain.SharedContent) string {
	parts := []string{"Weather from OpenWeatherMap"}

	if len(shared.News) > 0 {
		parts = append(parts, "News from NewsAPI")
	}
	if shared.Market != nil {
		parts = append(parts, "Market from Yahoo Finance")
	}
	if shared.Fact != nil {
		parts = append(parts, "History from Wikipedia")
	}
	if shared.Movie != nil {
		parts = append(parts, "Movies from TMDB")
	}
	if shared.Comic != nil {
		parts = append(parts, "Comic from XKCD")
	}

	return strings.Join(parts, ", ")
}

// ratingStars converts a 10-point rating into a 5-star row.
func ratingStars(rating float64) string {
	halved := rating / 2

	full := int(halved)
	if full > 5 {
		full = 5
	}

	half := 0
	if full < 5 && halved-float64(full) >= 0.5 {
		half = 1
	}

	var sb strings.Builder
	sb.WriteString(strings.Repeat("⭐", full))
	if half == 1 {
		sb.WriteString("✨")
	}
	sb.WriteString(strings.Repeat("☆", 5-full-half))

	return sb.String()
}

func formatTemp(f float64) string {
	return fmt.Sprintf("%.0f°F", f)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}

	return string(runes[:max]) + "..."
}
