package scheduler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"dailybrief/internal/domain"
	"dailybrief/internal/provider"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubWeather struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (s *stubWeather) Fetch(_ context.Context, recipient domain.Recipient) (domain.WeatherReport, error) {
	s.mu.Lock()
	s.calls = append(s.calls, recipient.LocationKey())
	s.mu.Unlock()

	if s.err != nil {
		return domain.WeatherReport{}, s.err
	}

	return domain.WeatherReport{
		Current: domain.CurrentConditions{
			City:        recipient.City,
			TempF:       75,
			Description: "Clear",
			ConditionID: 800,
		},
	}, nil
}

type stubNews struct{ err error }

func (s stubNews) Fetch(context.Context) ([]domain.Headline, error) {
	if s.err != nil {
		return nil, s.err
	}

	return []domain.Headline{{
		Title:  "Stub headline",
		URL:    "https://news.example.com/stub",
		Source: "Stub",
	}}, nil
}

type stubMarket struct{ err error }

func (s stubMarket) Fetch(context.Context) (domain.MarketSnapshot, error) {
	if s.err != nil {
		return domain.MarketSnapshot{}, s.err
	}

	return domain.MarketSnapshot{Price: 6000, Change: 12.5, PercentChange: 0.21}, nil
}

type stubFact struct{ err error }

func (s stubFact) Fetch(context.Context) (domain.HistoricalFact, error) {
	if s.err != nil {
		return domain.HistoricalFact{}, s.err
	}

	return domain.HistoricalFact{Year: 1969, Text: "Apollo 11 landed on the Moon."}, nil
}

type stubMovie struct{ err error }

func (s stubMovie) Fetch(context.Context) (domain.MovieRecommendation, error) {
	if s.err != nil {
		return domain.MovieRecommendation{}, s.err
	}

	return domain.MovieRecommendation{Title: "Stub Movie", Rating: 7.5}, nil
}

type stubComic struct{ err error }

func (s stubComic) Fetch(context.Context) (domain.ComicOfDay, error) {
	if s.err != nil {
		return domain.ComicOfDay{}, s.err
	}

	return domain.ComicOfDay{Number: 1, Title: "Stub", Link: "https://xkcd.com/1"}, nil
}

type recordedSend struct {
	To      string
	Subject string
	Body    string
}

type recordingSender struct {
	mu     sync.Mutex
	sent   []recordedSend
	failFn func(to string) error
}

func (r *recordingSender) Send(to, subject, htmlBody string) error {
	if r.failFn != nil {
		if err := r.failFn(to); err != nil {
			return err
		}
	}

	r.mu.Lock()
	r.sent = append(r.sent, recordedSend{To: to, Subject: subject, Body: htmlBody})
	r.mu.Unlock()

	return nil
}

func healthyProviders(weather *stubWeather) Providers {
	return Providers{
		Weather: weather,
		News:    stubNews{},
		Market:  stubMarket{},
		History: stubFact{},
		Movie:   stubMovie{},
		Comic:   stubComic{},
	}
}

func writeRoster(t *testing.T, rows string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "email-list.csv")
	if err := os.WriteFile(path, []byte(rows), 0o644); err != nil {
		t.Fatalf("write roster: %v", err)
	}

	return path
}

func TestRunOnceExecutesSingleCycle(t *testing.T) {
	roster := writeRoster(t, "name,email,city,state,zip\n"+
		"Jane,jane@example.com,Austin,Texas,\n"+
		"Bob,bob@example.com,Denver,Colorado,\n")

	weather := &stubWeather{}
	sender := &recordingSender{}
	sched := New(healthyProviders(weather), sender, roster, "08:00", true, discardLogger())

	if err := sched.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(sender.sent) != 2 {
		t.Fatalf("expected 2 deliveries, got %d", len(sender.sent))
	}
	if sender.sent[0].To != "jane@example.com" || sender.sent[1].To != "bob@example.com" {
		t.Fatalf("unexpected delivery order: %+v", sender.sent)
	}
	if !strings.Contains(sender.sent[0].Body, "Hi Jane,") {
		t.Fatalf("expected a personalized greeting in the first brief")
	}
	if !strings.Contains(sender.sent[0].Subject, "Daily Brief") {
		t.Fatalf("unexpected subject %q", sender.sent[0].Subject)
	}
}

func TestRunCycleSendFailureSkipsRecipientOnly(t *testing.T) {
	roster := writeRoster(t, "name,email,city,state,zip\n"+
		"Jane,jane@example.com,Austin,Texas,\n"+
		"Bob,bob@example.com,Denver,Colorado,\n"+
		"Ada,ada@example.com,Boston,Massachusetts,\n")

	sendErr := errors.New("smtp: connection refused")
	sender := &recordingSender{
		failFn: func(to string) error {
			if to == "bob@example.com" {
				return sendErr
			}

			return nil
		},
	}

	sched := New(healthyProviders(&stubWeather{}), sender, roster, "08:00", true, discardLogger())
	sched.RunCycle(context.Background())

	if len(sender.sent) != 2 {
		t.Fatalf("expected 2 deliveries after one failure, got %d", len(sender.sent))
	}
	for _, s := range sender.sent {
		if s.To == "bob@example.com" {
			t.Fatalf("failed recipient must not be recorded as sent")
		}
	}
}

func TestRunCycleCachesWeatherPerLocation(t *testing.T) {
	roster := writeRoster(t, "name,email,city,state,zip\n"+
		"Jane,jane@example.com,Austin,Texas,\n"+
		"John,john@example.com,Austin,Texas,\n"+
		"Ada,ada@example.com,Boston,Massachusetts,\n")

	weather := &stubWeather{}
	sender := &recordingSender{}
	sched := New(healthyProviders(weather), sender, roster, "08:00", true, discardLogger())
	sched.RunCycle(context.Background())

	if len(weather.calls) != 2 {
		t.Fatalf("expected 2 weather fetches for 2 locations, got %d: %v",
			len(weather.calls), weather.calls)
	}
	if len(sender.sent) != 3 {
		t.Fatalf("expected 3 deliveries, got %d", len(sender.sent))
	}
}

func TestRunCycleCachesFailedWeatherLookups(t *testing.T) {
	roster := writeRoster(t, "name,email,city,state,zip\n"+
		"Jane,jane@example.com,Austin,Texas,\n"+
		"John,john@example.com,Austin,Texas,\n")

	weather := &stubWeather{err: errors.New("openweathermap: status 503")}
	sender := &recordingSender{}
	sched := New(healthyProviders(weather), sender, roster, "08:00", true, discardLogger())
	sched.RunCycle(context.Background())

	if len(weather.calls) != 1 {
		t.Fatalf("expected a single fetch for the failed location, got %d", len(weather.calls))
	}

	// The brief still goes out with the weather placeholder.
	if len(sender.sent) != 2 {
		t.Fatalf("expected 2 deliveries, got %d", len(sender.sent))
	}
	if !strings.Contains(sender.sent[0].Body, "Weather data is currently unavailable.") {
		t.Fatalf("expected the weather placeholder in the brief")
	}
}

func TestRunCycleProviderFailuresDegradeToPlaceholders(t *testing.T) {
	roster := writeRoster(t, "name,email,city,state,zip\n"+
		"Jane,jane@example.com,Austin,Texas,\n")

	providers := Providers{
		Weather: &stubWeather{},
		News:    stubNews{err: fmt.Errorf("fetch headlines: %w", provider.ErrNotConfigured)},
		Market:  stubMarket{err: errors.New("yahoo: status 429")},
		History: stubFact{},
		Movie:   stubMovie{},
		Comic:   stubComic{},
	}

	sender := &recordingSender{}
	sched := New(providers, sender, roster, "08:00", true, discardLogger())
	sched.RunCycle(context.Background())

	if len(sender.sent) != 1 {
		t.Fatalf("expected 1 delivery, got %d", len(sender.sent))
	}

	body := sender.sent[0].Body
	if !strings.Contains(body, "No news available today.") {
		t.Fatalf("expected the news placeholder")
	}
	if !strings.Contains(body, "Market data is currently unavailable.") {
		t.Fatalf("expected the market placeholder")
	}
	if !strings.Contains(body, "1969") {
		t.Fatalf("expected the healthy history section to render")
	}
}

func TestRunCycleMissingRosterSendsNothing(t *testing.T) {
	sender := &recordingSender{}
	sched := New(healthyProviders(&stubWeather{}), sender,
		filepath.Join(t.TempDir(), "missing.csv"), "08:00", true, discardLogger())
	sched.RunCycle(context.Background())

	if len(sender.sent) != 0 {
		t.Fatalf("expected no deliveries, got %d", len(sender.sent))
	}
}

func TestRunDailyStopsOnContextCancel(t *testing.T) {
	roster := writeRoster(t, "name,email,city,state,zip\n"+
		"Jane,jane@example.com,Austin,Texas,\n")

	sender := &recordingSender{}
	sched := New(healthyProviders(&stubWeather{}), sender, roster, "08:00", false, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan error, 1)
	go func() { done <- sched.Run(ctx) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not return after context cancellation")
	}

	if len(sender.sent) != 0 {
		t.Fatalf("expected no deliveries before the send time, got %d", len(sender.sent))
	}
}

func TestRunRejectsInvalidSendTime(t *testing.T) {
	sched := New(healthyProviders(&stubWeather{}), &recordingSender{},
		"email-list.csv", "25:99", false, discardLogger())

	if err := sched.Run(context.Background()); err == nil {
		t.Fatalf("expected an error for an invalid send time")
	}
}

func TestParseSendTime(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"08:00", false},
		{"00:00", false},
		{"23:59", false},
		{"8am", true},
		{"24:00", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParseSendTime(tt.input)
			if tt.wantErr && err == nil {
				t.Fatalf("ParseSendTime(%q) expected an error", tt.input)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("ParseSendTime(%q) unexpected error: %v", tt.input, err)
			}
		})
	}
}

func TestNextDelayBounds(t *testing.T) {
	schedule, err := ParseSendTime("08:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	times := []time.Time{
		time.Date(2026, time.March, 10, 7, 59, 0, 0, time.UTC),
		time.Date(2026, time.March, 10, 8, 0, 0, 1, time.UTC),
		time.Date(2026, time.March, 10, 8, 1, 0, 0, time.UTC),
		time.Date(2026, time.March, 10, 23, 59, 59, 0, time.UTC),
		time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC),
	}

	for _, now := range times {
		delay := NextDelay(schedule, now)
		if delay <= 0 {
			t.Fatalf("NextDelay at %v = %v, want > 0", now, delay)
		}
		if delay >= 24*time.Hour {
			t.Fatalf("NextDelay at %v = %v, want < 24h", now, delay)
		}
	}
}

func TestNextDelayExactValue(t *testing.T) {
	schedule, err := ParseSendTime("08:30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	now := time.Date(2026, time.March, 10, 6, 30, 0, 0, time.UTC)
	if delay := NextDelay(schedule, now); delay != 2*time.Hour {
		t.Fatalf("NextDelay = %v, want 2h", delay)
	}
}
