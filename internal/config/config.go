package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// RateLimit indicates how many requests are allowed within a given interval.
// It is configured as "<requests>/<unit>", e.g. "30/min".
type RateLimit struct {
	Requests int
	Interval time.Duration
}

// UnmarshalText parses the "<requests>/<unit>" form so the env loader can
// fill RateLimit values directly.
func (r *RateLimit) UnmarshalText(text []byte) error {
	value := string(text)

	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return fmt.Errorf("expected format <requests>/<interval>, got %q", value)
	}

	requests, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || requests <= 0 {
		return fmt.Errorf("invalid request count: %v", parts[0])
	}

	unit := strings.ToLower(strings.TrimSpace(parts[1]))
	var interval time.Duration
	switch unit {
	case "s", "sec", "second", "seconds":
		interval = time.Second
	case "m", "min", "minute", "minutes":
		interval = time.Minute
	case "h", "hr", "hour", "hours":
		interval = time.Hour
	default:
		return fmt.Errorf("unsupported interval unit: %s", unit)
	}

	r.Requests = requests
	r.Interval = interval
	return nil
}

// Config aggregates application-wide configuration values.
type Config struct {
	DatabaseURL     string        `env:"DASHBOARD_DB_URL,required,notEmpty"`
	Port            string        `env:"PORT" envDefault:"8080"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	PhoneRegion     string        `env:"PHONE_REGION" envDefault:"ID"`
	RateLimitStats  RateLimit     `env:"RATE_LIMIT_STATS" envDefault:"30/min"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load reads configuration from environment variables and applies sane
// defaults.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
