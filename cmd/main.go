package main

import (
	"context"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dailybrief/internal/config"
	"dailybrief/internal/mailer"
	"dailybrief/internal/provider"
	"dailybrief/internal/scheduler"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.ErrorContext(ctx, "Failed to load config",
			"error", err)

		return
	}
	log.InfoContext(ctx, "Config is loaded",
		"smtpServer", cfg.SMTPServer,
		"smtpPort", cfg.SMTPPort,
		"recipientCSV", cfg.RecipientCSV,
		"runOnce", cfg.RunOnce,
		"sendTime", cfg.SendTime,
		"newsConfigured", cfg.NewsAPIKey != "",
		"moviesConfigured", cfg.TMDBAPIKey != "")

	providers := scheduler.Providers{
		Weather: provider.NewWeatherClient(cfg.WeatherAPIKey, cfg.CountryCode, log),
		News:    provider.NewNewsClient(cfg.NewsAPIKey, cfg.CountryCode, log),
		Market:  provider.NewMarketClient(log),
		History: provider.NewHistoryClient(newRNG(), log),
		Movie:   provider.NewMovieClient(cfg.TMDBAPIKey, newRNG(), log),
		Comic:   provider.NewComicClient(newRNG(), log),
	}

	sender := mailer.New(cfg.SMTPServer, cfg.SMTPPort, cfg.EmailAddress, cfg.EmailPassword)

	sched := scheduler.New(providers, sender, cfg.RecipientCSV, cfg.SendTime, cfg.RunOnce, log)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-c
		log.InfoContext(ctx, "Shutdown signal is received",
			"signal", sig.String())
		cancel()
	}()

	if err = sched.Run(ctx); err != nil {
		log.ErrorContext(ctx, "Scheduler failed",
			"error", err)

		return
	}

	log.InfoContext(ctx, "Exiting...")
}

// newRNG seeds a dedicated source per provider; the shared fetch runs
// providers concurrently and rand.Rand is not safe for concurrent use.
func newRNG() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
