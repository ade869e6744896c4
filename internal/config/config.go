package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the settings the CLI reads from the environment.
type Config struct {
	DBPath       string
	UserID       string
	DailyHours   float64 // default budget for plan generation
	LogLevel     slog.Level
	LogCalls     bool   // log every service use case to stderr
	MetricsFile  string // textfile-collector dump written on exit; empty disables it
	AdaptWorkers int
}

// DefaultConfig returns the configuration used when no variable is set.
// DBPath is left empty; Load fills it from the home directory.
func DefaultConfig() Config {
	return Config{
		UserID:       "local",
		DailyHours:   2,
		LogLevel:     slog.LevelInfo,
		AdaptWorkers: 4,
	}
}

// Load reads a .env file from the working directory if one exists, then
// overlays EDITAL_* variables on DefaultConfig. Malformed values are ignored.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if v := os.Getenv("EDITAL_DB"); v != "" {
		cfg.DBPath = v
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, fmt.Errorf("finding home directory: %w", err)
		}
		cfg.DBPath = filepath.Join(home, ".edital", "edital.db")
	}
	if v := os.Getenv("EDITAL_USER"); v != "" {
		cfg.UserID = v
	}
	if v := os.Getenv("EDITAL_DAILY_HOURS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 && f <= 24 {
			cfg.DailyHours = f
		}
	}
	if v := os.Getenv("EDITAL_LOG_LEVEL"); v != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(strings.ToUpper(v))); err == nil {
			cfg.LogLevel = level
		}
	}
	if v := os.Getenv("EDITAL_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	cfg.MetricsFile = os.Getenv("EDITAL_METRICS_FILE")
	if v := os.Getenv("EDITAL_ADAPT_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.AdaptWorkers = n
		}
	}

	return cfg, nil
}
