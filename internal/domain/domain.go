package domain

import (
	"strings"
	"time"
)

// Recipient is one row of the recipient list. Email is the identity.
type Recipient struct {
	Name  string
	Email string
	City  string
	State string
	Zip   string
}

// LocationKey keys the per-cycle weather cache. Recipients sharing a
// location share one forecast fetch.
func (r Recipient) LocationKey() string {
	if r.Zip != "" {
		return "zip:" + r.Zip
	}

	return strings.ToLower(r.City + "," + r.State)
}

type CurrentConditions struct {
	City        string
	TempF       float64
	FeelsLikeF  float64
	Description string
	ConditionID int64
}

// HourlyForecast is one row of the hourly forecast table.
type HourlyForecast struct {
	Time        time.Time
	TempF       float64
	FeelsLikeF  float64
	Description string
	ConditionID int64
	PrecipProb  float64 // 0..1
}

// WeatherReport holds everything weather-related for one location. Hours
// covers the fixed 8am-10pm local window, one entry per clock hour.
type WeatherReport struct {
	Current CurrentConditions
	Hours   []HourlyForecast
	Sunrise time.Time
	Sunset  time.Time
}

type Headline struct {
	Title       string
	Description string
	URL         string
	Source      string
}

type MarketSnapshot struct {
	Price         float64
	Change        float64
	PercentChange float64
}

func (m MarketSnapshot) Positive() bool {
	return m.Change >= 0
}

type HistoricalFact struct {
	Year int64
	Text string
	URL  string
}

type MovieRecommendation struct {
	Title       string
	Overview    string
	PosterURL   string
	ReleaseDate string
	Rating      float64
	Genres      string
	Runtime     string
	InfoURL     string
}

type ComicOfDay struct {
	Number   int64
	Title    string
	ImageURL string
	AltText  string
	Link     string
	Label    string
	New      bool
}

// SharedContent carries the once-per-cycle provider results that are
// identical for every recipient. A nil field (or empty News) means the
// provider was unavailable this cycle and its section renders a
// placeholder.
type SharedContent struct {
	News   []Headline
	Market *MarketSnapshot
	Fact   *HistoricalFact
	Movie  *MovieRecommendation
	Comic  *ComicOfDay
}
