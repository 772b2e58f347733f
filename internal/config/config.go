package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the service configuration.
type Config struct {
	Port         int
	DBPath       string
	LogLevel     string
	LogFormat    string // "json" or "text"
	TickInterval time.Duration
	CORSOrigins  []string
	// SeedMode selects the randomness source: "crypto" (default) or
	// "seeded" for provably fair rounds with per-instance seed rotation.
	SeedMode string
	// BetMin/BetMax, when positive, override the standard stake band for
	// every game kind. In paise; zero keeps the built-in defaults.
	BetMin int64
	BetMax int64
}

// Load reads configuration from environment variables, with .env as a
// development convenience.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DBPath:      getEnv("SETTLE_DB_PATH", "rounds.db"),
		LogLevel:    getEnv("SETTLE_LOG_LEVEL", "info"),
		LogFormat:   getEnv("SETTLE_LOG_FORMAT", "json"),
		SeedMode:    getEnv("SETTLE_SEED_MODE", "crypto"),
		CORSOrigins: []string{getEnv("SETTLE_CORS_ORIGIN", "*")},
	}

	port, err := strconv.Atoi(getEnv("SETTLE_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid SETTLE_PORT: %w", err)
	}
	cfg.Port = port

	tickMs, err := strconv.Atoi(getEnv("SETTLE_TICK_MS", "50"))
	if err != nil || tickMs <= 0 {
		return nil, fmt.Errorf("invalid SETTLE_TICK_MS: %q", getEnv("SETTLE_TICK_MS", "50"))
	}
	cfg.TickInterval = time.Duration(tickMs) * time.Millisecond

	if cfg.SeedMode != "crypto" && cfg.SeedMode != "seeded" {
		return nil, fmt.Errorf("invalid SETTLE_SEED_MODE: %q", cfg.SeedMode)
	}

	cfg.BetMin, err = paiseEnv("SETTLE_BET_MIN")
	if err != nil {
		return nil, err
	}
	cfg.BetMax, err = paiseEnv("SETTLE_BET_MAX")
	if err != nil {
		return nil, err
	}
	if cfg.BetMax > 0 && cfg.BetMin > cfg.BetMax {
		return nil, fmt.Errorf("SETTLE_BET_MIN %d exceeds SETTLE_BET_MAX %d", cfg.BetMin, cfg.BetMax)
	}

	return cfg, nil
}

func paiseEnv(key string) (int64, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return v, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
