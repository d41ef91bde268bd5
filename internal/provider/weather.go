package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"dailybrief/internal/domain"
)

const weatherBaseURL = "https://api.openweathermap.org"

// WeatherClient fetches current conditions and the 5-day/3-hour forecast
// from OpenWeatherMap, then condenses the forecast into the fixed hourly
// display window.
type WeatherClient struct {
	apiKey  string
	country string
	baseURL string
	client  *http.Client
	now     func() time.Time
	log     *slog.Logger
}

func NewWeatherClient(apiKey, country string, log *slog.Logger) *WeatherClient {
	return &WeatherClient{
		apiKey:  apiKey,
		country: country,
		baseURL: weatherBaseURL,
		client:  newHTTPClient(),
		now:     time.Now,
		log:     log,
	}
}

type owmCondition struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
}

type owmCurrent struct {
	Name  string `json:"name"`
	Coord struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
	} `json:"main"`
	Weather []owmCondition `json:"weather"`
	Sys     struct {
		Sunrise int64 `json:"sunrise"`
		Sunset  int64 `json:"sunset"`
	} `json:"sys"`
}

type owmForecast struct {
	List []owmForecastPoint `json:"list"`
}

type owmForecastPoint struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
	} `json:"main"`
	Weather []owmCondition `json:"weather"`
	Pop     float64        `json:"pop"`
}

var descriptionCaser = cases.Title(language.AmericanEnglish)

func (c *WeatherClient) Fetch(
	ctx context.Context,
	recipient domain.Recipient,
) (domain.WeatherReport, error) {
	q := c.locationQuery(recipient)
	q.Set("appid", c.apiKey)
	q.Set("units", "imperial")

	body, err := fetchBody(ctx, c.client, c.baseURL+"/data/2.5/weather?"+q.Encode(), "")
	if err != nil {
		return domain.WeatherReport{}, fmt.Errorf("fetch current conditions: %w", err)
	}

	var current owmCurrent
	if err = json.Unmarshal(body, &current); err != nil {
		return domain.WeatherReport{}, fmt.Errorf("decode current conditions: %w", err)
	}
	if len(current.Weather) == 0 {
		return domain.WeatherReport{}, errors.New("current conditions are missing weather details")
	}

	fq := url.Values{}
	fq.Set("lat", strconv.FormatFloat(current.Coord.Lat, 'f', -1, 64))
	fq.Set("lon", strconv.FormatFloat(current.Coord.Lon, 'f', -1, 64))
	fq.Set("appid", c.apiKey)
	fq.Set("units", "imperial")
	fq.Set("cnt", "40")

	body, err = fetchBody(ctx, c.client, c.baseURL+"/data/2.5/forecast?"+fq.Encode(), "")
	if err != nil {
		return domain.WeatherReport{}, fmt.Errorf("fetch forecast: %w", err)
	}

	var forecast owmForecast
	if err = json.Unmarshal(body, &forecast); err != nil {
		return domain.WeatherReport{}, fmt.Errorf("decode forecast: %w", err)
	}

	return domain.WeatherReport{
		Current: domain.CurrentConditions{
			City:        current.Name,
			TempF:       current.Main.Temp,
			FeelsLikeF:  current.Main.FeelsLike,
			Description: descriptionCaser.String(current.Weather[0].Description),
			ConditionID: current.Weather[0].ID,
		},
		Hours:   hourlyWindow(forecast.List, c.now()),
		Sunrise: time.Unix(current.Sys.Sunrise, 0),
		Sunset:  time.Unix(current.Sys.Sunset, 0),
	}, nil
}

// locationQuery prefers zip, then city+state, then city alone.
func (c *WeatherClient) locationQuery(r domain.Recipient) url.Values {
	q := url.Values{}

	switch {
	case r.Zip != "":
		q.Set("zip", r.Zip+","+c.country)
	case r.State != "":
		q.Set("q", strings.Join([]string{r.City, r.State, c.country}, ","))
	default:
		q.Set("q", r.City+","+c.country)
	}

	return q
}
