package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPAddr string     `env:"HTTP_ADDR" envDefault:":8080"`
	DBPath   string     `env:"DB_PATH" envDefault:"data/trivia.db"`
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`

	// Admin login shell. Fixed fallbacks apply when unset.
	AdminUser     string `env:"ADMIN_USER" envDefault:"admin"`
	AdminPassword string `env:"ADMIN_PASSWORD" envDefault:"trivia"`

	// Question source.
	OpenTDBURL string        `env:"OPENTDB_URL" envDefault:"https://opentdb.com"`
	FetchDelay time.Duration `env:"FETCH_DELAY" envDefault:"5s"`

	// Game tuning.
	CategoryCount     int `env:"CATEGORY_COUNT" envDefault:"5"`
	LevelsPerCategory int `env:"LEVELS_PER_CATEGORY" envDefault:"5"`
	CountdownSeconds  int `env:"COUNTDOWN_SECONDS" envDefault:"15"`

	HistoryLimit int `env:"HISTORY_LIMIT" envDefault:"15"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}
