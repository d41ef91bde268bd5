package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	WeatherAPIKey string `env:"WEATHER_API_KEY,required,notEmpty"`
	NewsAPIKey    string `env:"NEWS_API_KEY"`
	TMDBAPIKey    string `env:"TMDB_API_KEY"`
	CountryCode   string `env:"COUNTRY_CODE"                       envDefault:"US"`

	EmailAddress  string `env:"EMAIL_ADDRESS,required,notEmpty"`
	EmailPassword string `env:"EMAIL_PASSWORD,required,notEmpty"`
	SMTPServer    string `env:"SMTP_SERVER"                      envDefault:"smtp.gmail.com"`
	SMTPPort      int    `env:"SMTP_PORT"                        envDefault:"587"`

	RecipientCSV string `env:"EMAIL_LIST_CSV" envDefault:"email-list.csv"`
	RunOnce      bool   `env:"RUN_ONCE"       envDefault:"false"`
	SendTime     string `env:"SEND_TIME"      envDefault:"08:00"`
}

// Load reads .env best-effort and parses the environment. A missing
// required credential is a configuration error and aborts before any send.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	return cfg, nil
}
