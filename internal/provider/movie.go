package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"dailybrief/internal/domain"
)

const (
	movieBaseURL    = "https://api.themoviedb.org"
	moviePosterBase = "https://image.tmdb.org/t/p/w500"
	movieInfoBase   = "https://www.themoviedb.org/movie/"

	// Pages 1-10 of top_rated cover roughly the 200 best-rated movies;
	// that is the candidate pool.
	topRatedPages = 10
	maxGenres     = 3
)

// MovieClient recommends one movie per cycle from TMDB's top-rated
// listing. Optional: without an API key it returns ErrNotConfigured.
type MovieClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
	rng     *rand.Rand
	log     *slog.Logger
}

func NewMovieClient(apiKey string, rng *rand.Rand, log *slog.Logger) *MovieClient {
	return &MovieClient{
		apiKey:  apiKey,
		baseURL: movieBaseURL,
		client:  newHTTPClient(),
		rng:     rng,
		log:     log,
	}
}

type tmdbListing struct {
	Results []tmdbMovie `json:"results"`
}

type tmdbMovie struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	PosterPath  string  `json:"poster_path"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`
}

type tmdbDetails struct {
	Genres []struct {
		Name string `json:"name"`
	} `json:"genres"`
	Runtime int `json:"runtime"`
}

func (c *MovieClient) Fetch(ctx context.Context) (domain.MovieRecommendation, error) {
	if c.apiKey == "" {
		return domain.MovieRecommendation{}, ErrNotConfigured
	}

	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("page", strconv.Itoa(c.rng.Intn(topRatedPages)+1))

	body, err := fetchBody(ctx, c.client, c.baseURL+"/3/movie/top_rated?"+q.Encode(), "")
	if err != nil {
		return domain.MovieRecommendation{}, fmt.Errorf("fetch top-rated listing: %w", err)
	}

	var listing tmdbListing
	if err = json.Unmarshal(body, &listing); err != nil {
		return domain.MovieRecommendation{}, fmt.Errorf("decode top-rated listing: %w", err)
	}
	if len(listing.Results) == 0 {
		return domain.MovieRecommendation{}, errors.New("top-rated listing is empty")
	}

	movie := listing.Results[c.rng.Intn(len(listing.Results))]

	dq := url.Values{}
	dq.Set("api_key", c.apiKey)

	body, err = fetchBody(ctx, c.client,
		fmt.Sprintf("%s/3/movie/%d?%s", c.baseURL, movie.ID, dq.Encode()), "")
	if err != nil {
		return domain.MovieRecommendation{}, fmt.Errorf("fetch movie details: %w", err)
	}

	var details tmdbDetails
	if err = json.Unmarshal(body, &details); err != nil {
		return domain.MovieRecommendation{}, fmt.Errorf("decode movie details: %w", err)
	}

	genres := "N/A"
	if len(details.Genres) > 0 {
		names := make([]string, 0, maxGenres)
		for _, g := range details.Genres {
			if len(names) == maxGenres {
				break
			}
			names = append(names, g.Name)
		}
		genres = strings.Join(names, ", ")
	}

	runtime := "N/A"
	if details.Runtime > 0 {
		runtime = fmt.Sprintf("%d min", details.Runtime)
	}

	var posterURL string
	if movie.PosterPath != "" {
		posterURL = moviePosterBase + movie.PosterPath
	}

	overview := movie.Overview
	if overview == "" {
		overview = "No overview available."
	}

	return domain.MovieRecommendation{
		Title:       movie.Title,
		Overview:    overview,
		PosterURL:   posterURL,
		ReleaseDate: movie.ReleaseDate,
		Rating:      math.Round(movie.VoteAverage*10) / 10,
		Genres:      genres,
		Runtime:     runtime,
		InfoURL:     fmt.Sprintf("%s%d", movieInfoBase, movie.ID),
	}, nil
}
