package config

import (
	"log/slog"
	"os"
	"strconv"
)

const (
	defaultDBPath         = "./dev.db"
	defaultPort           = "8080"
	defaultEnv            = "dev"
	defaultMigrationsDir  = "migrations"
	defaultCatalogDir     = "data/collections"
	defaultRateLimitRPS   = 5.0
	defaultRateLimitBurst = 10
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	Env            string
	DBPath         string
	Port           string
	MigrationsDir  string
	CatalogDir     string
	RatesFile      string
	RateLimitRPS   float64
	RateLimitBurst int
}

// Load reads environment variables and returns a populated Config.
func Load() Config {
	// Best-effort: production injects the environment directly.
	if err := loadDotEnv(".env"); err != nil {
		slog.Warn("failed to load .env", "error", err)
	}

	cfg := Config{
		Env:            getenv("APP_ENV", defaultEnv),
		DBPath:         getenv("DB_PATH", defaultDBPath),
		Port:           getenv("PORT", defaultPort),
		MigrationsDir:  getenv("MIGRATIONS_DIR", defaultMigrationsDir),
		CatalogDir:     getenv("CATALOG_DIR", defaultCatalogDir),
		RatesFile:      os.Getenv("RATES_FILE"),
		RateLimitRPS:   defaultRateLimitRPS,
		RateLimitBurst: defaultRateLimitBurst,
	}

	if raw := os.Getenv("RATE_LIMIT_RPS"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v > 0 {
			cfg.RateLimitRPS = v
		} else {
			slog.Warn("ignoring invalid RATE_LIMIT_RPS", "value", raw)
		}
	}
	if raw := os.Getenv("RATE_LIMIT_BURST"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			cfg.RateLimitBurst = v
		} else {
			slog.Warn("ignoring invalid RATE_LIMIT_BURST", "value", raw)
		}
	}

	return cfg
}

// IsDev reports whether the server runs in local development mode.
func (c Config) IsDev() bool {
	return c.Env == defaultEnv
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
