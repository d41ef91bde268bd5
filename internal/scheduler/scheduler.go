// Package scheduler drives the fetch-format-send cycle: once in
// run-once mode, or daily at the configured wall-clock send time.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"dailybrief/internal/brief"
	"dailybrief/internal/domain"
	"dailybrief/internal/mailer"
	"dailybrief/internal/provider"
	"dailybrief/internal/roster"
)

// Sender delivers one formatted brief. A delivery failure skips that
// recipient; the cycle continues.
type Sender interface {
	Send(to, subject, htmlBody string) error
}

type WeatherSource interface {
	Fetch(ctx context.Context, recipient domain.Recipient) (domain.WeatherReport, error)
}

type NewsSource interface {
	Fetch(ctx context.Context) ([]domain.Headline, error)
}

type MarketSource interface {
	Fetch(ctx context.Context) (domain.MarketSnapshot, error)
}

type FactSource interface {
	Fetch(ctx context.Context) (domain.HistoricalFact, error)
}

type MovieSource interface {
	Fetch(ctx context.Context) (domain.MovieRecommendation, error)
}

type ComicSource interface {
	Fetch(ctx context.Context) (domain.ComicOfDay, error)
}

type Providers struct {
	Weather WeatherSource
	News    NewsSource
	Market  MarketSource
	History FactSource
	Movie   MovieSource
	Comic   ComicSource
}

type Scheduler struct {
	providers  Providers
	sender     Sender
	rosterPath string
	sendTime   string
	runOnce    bool
	now        func() time.Time
	log        *slog.Logger
}

func New(
	providers Providers,
	sender Sender,
	rosterPath, sendTime string,
	runOnce bool,
	log *slog.Logger,
) *Scheduler {
	return &Scheduler{
		providers:  providers,
		sender:     sender,
		rosterPath: rosterPath,
		sendTime:   sendTime,
		runOnce:    runOnce,
		now:        time.Now,
		log:        log,
	}
}

// Run executes one cycle in run-once mode, otherwise loops: sleep until
// the next daily send time, run a cycle, repeat. Returns nil on context
// cancellation.
func (s *Scheduler) Run(ctx context.Context) error {
	if s.runOnce {
		s.log.InfoContext(ctx, "Running in single-execution mode")
		s.RunCycle(ctx)

		return nil
	}

	schedule, err := ParseSendTime(s.sendTime)
	if err != nil {
		return fmt.Errorf("parse send time: %w", err)
	}

	s.log.InfoContext(ctx, "Scheduler is started",
		"sendTime", s.sendTime)

	for {
		delay := NextDelay(schedule, s.now())
		s.log.InfoContext(ctx, "Sleeping until next send",
			"delay", delay.String())

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			s.log.InfoContext(ctx, "Scheduler context is done",
				"error", ctx.Err())

			return nil
		case <-timer.C:
		}

		s.RunCycle(ctx)
	}
}

// ParseSendTime converts an HH:MM wall-clock time into a daily schedule.
func ParseSendTime(hhmm string) (cron.Schedule, error) {
	at, err := time.Parse("15:04", hhmm)
	if err != nil {
		return nil, fmt.Errorf("parse HH:MM: %w", err)
	}

	schedule, err := cron.ParseStandard(fmt.Sprintf("%d %d * * *", at.Minute(), at.Hour()))
	if err != nil {
		return nil, fmt.Errorf("parse cron spec: %w", err)
	}

	return schedule, nil
}

// NextDelay is how long to sleep from now until the next send. Always
// strictly positive and under 24 hours.
func NextDelay(schedule cron.Schedule, now time.Time) time.Duration {
	return schedule.Next(now).Sub(now)
}

// RunCycle performs one fetch-format-send pass over all recipients.
// Provider failures degrade to section placeholders; delivery failures
// skip the recipient. Neither aborts the cycle.
func (s *Scheduler) RunCycle(ctx context.Context) {
	started := s.now()

	recipients, err := roster.Load(s.rosterPath, s.log)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to load recipients",
			"error", err,
			"path", s.rosterPath)

		return
	}
	if len(recipients) == 0 {
		s.log.WarnContext(ctx, "No recipients found, nothing to send",
			"path", s.rosterPath)

		return
	}

	shared := s.fetchShared(ctx)

	subject := mailer.Subject(started)
	weatherByLocation := make(map[string]*domain.WeatherReport, len(recipients))
	sent := 0

	for _, recipient := range recipients {
		key := recipient.LocationKey()

		report, cached := weatherByLocation[key]
		if !cached {
			report = s.fetchWeather(ctx, recipient)
			weatherByLocation[key] = report
		}

		body, renderErr := brief.Render(recipient, report, shared, s.now())
		if renderErr != nil {
			s.log.ErrorContext(ctx, "Failed to render brief",
				"error", renderErr,
				"email", recipient.Email)
			continue
		}

		if sendErr := s.sender.Send(recipient.Email, subject, body); sendErr != nil {
			s.log.ErrorContext(ctx, "Failed to send brief",
				"error", sendErr,
				"email", recipient.Email)
			continue
		}

		s.log.InfoContext(ctx, "Brief is sent",
			"email", recipient.Email,
			"name", recipient.Name)
		sent++
	}

	s.log.InfoContext(ctx, "Cycle is completed",
		"sent", sent,
		"recipients", len(recipients),
		"elapsedSeconds", s.now().Sub(started).Seconds())
}

func (s *Scheduler) fetchWeather(ctx context.Context, recipient domain.Recipient) *domain.WeatherReport {
	report, err := s.providers.Weather.Fetch(ctx, recipient)
	if err != nil {
		s.log.ErrorContext(ctx, "Weather is unavailable",
			"error", err,
			"city", recipient.City,
			"state", recipient.State)

		return nil
	}

	return &report
}

// fetchShared pulls the five recipient-independent records concurrently.
// Each goroutine owns its field of the result, so no locking is needed;
// the fan-out is a latency optimization only.
func (s *Scheduler) fetchShared(ctx context.Context) domain.SharedContent {
	var (
		shared domain.SharedContent
		wg     sync.WaitGroup
	)

	wg.Add(5)

	go func() {
		defer wg.Done()

		news, err := s.providers.News.Fetch(ctx)
		if err != nil {
			s.logSharedFailure(ctx, "news", err)
			return
		}
		shared.News = news
	}()

	go func() {
		defer wg.Done()

		market, err := s.providers.Market.Fetch(ctx)
		if err != nil {
			s.logSharedFailure(ctx, "market", err)
			return
		}
		shared.Market = &market
	}()

	go func() {
		defer wg.Done()

		fact, err := s.providers.History.Fetch(ctx)
		if err != nil {
			s.logSharedFailure(ctx, "history", err)
			return
		}
		shared.Fact = &fact
	}()

	go func() {
		defer wg.Done()

		movie, err := s.providers.Movie.Fetch(ctx)
		if err != nil {
			s.logSharedFailure(ctx, "movie", err)
			return
		}
		shared.Movie = &movie
	}()

	go func() {
		defer wg.Done()

		comic, err := s.providers.Comic.Fetch(ctx)
		if err != nil {
			s.logSharedFailure(ctx, "comic", err)
			return
		}
		shared.Comic = &comic
	}()

	wg.Wait()

	return shared
}

func (s *Scheduler) logSharedFailure(ctx context.Context, name string, err error) {
	if errors.Is(err, provider.ErrNotConfigured) {
		s.log.InfoContext(ctx, "Provider is not configured, section degrades to placeholder",
			"provider", name)

		return
	}

	s.log.WarnContext(ctx, "Provider is unavailable, section degrades to placeholder",
		"provider", name,
		"error", err)
}
