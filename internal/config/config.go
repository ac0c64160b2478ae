package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server  ServerConfig
	Worker  WorkerConfig
	Feeds   FeedsConfig
	Display DisplayConfig
	DB      DatabaseConfig
	Logging LoggingConfig
}

type ServerConfig struct {
	Host string
	Port int
	// RateLimitRPS is the global request budget shared by all API routes.
	RateLimitRPS int
}

type WorkerConfig struct {
	// Count bounds how many snapshot fetches run concurrently.
	Count int
}

type FeedsConfig struct {
	// WindborneURL is the base URL of the hourly snapshot feed; the hour
	// index is appended as a zero-padded path segment ("00.json".."23.json").
	WindborneURL       string
	AdvisoriesURL      string
	PositionsInterval  time.Duration
	AdvisoriesInterval time.Duration
	HoursToFetch       int
	FetchTimeout       time.Duration
}

type DisplayConfig struct {
	// MaxResults caps how many merged positions a single API response
	// returns by default.
	MaxResults int
	// FocusWindow is how long a navigation target stays active after an
	// advisory is selected.
	FocusWindow time.Duration
}

type DatabaseConfig struct {
	Path string
}

type LoggingConfig struct {
	Level string
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "localhost"),
			Port:         getEnvInt("SERVER_PORT", 8080),
			RateLimitRPS: getEnvInt("RATE_LIMIT_RPS", 5),
		},
		Worker: WorkerConfig{
			Count: getEnvInt("WORKER_COUNT", 8),
		},
		Feeds: FeedsConfig{
			WindborneURL:       getEnv("WINDBORNE_URL", "https://a.windbornesystems.com/treasure"),
			AdvisoriesURL:      getEnv("ADVISORIES_URL", "https://api.weather.gov/alerts/active"),
			PositionsInterval:  getEnvDuration("POSITIONS_POLL_INTERVAL", time.Hour),
			AdvisoriesInterval: getEnvDuration("ADVISORIES_POLL_INTERVAL", 30*time.Minute),
			HoursToFetch:       getEnvInt("HOURS_TO_FETCH", 24),
			FetchTimeout:       getEnvDuration("FETCH_TIMEOUT", 15*time.Second),
		},
		Display: DisplayConfig{
			MaxResults:  getEnvInt("MAX_RESULTS", 100),
			FocusWindow: getEnvDuration("FOCUS_WINDOW", 10*time.Second),
		},
		DB: DatabaseConfig{
			Path: getEnv("DB_PATH", "file:balloonwatch?mode=memory&cache=shared"),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.RateLimitRPS < 1 {
		return fmt.Errorf("rate limit must be positive, got %d", c.Server.RateLimitRPS)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	if c.Feeds.HoursToFetch < 1 || c.Feeds.HoursToFetch > 24 {
		return fmt.Errorf("hours to fetch must be in [1, 24], got %d", c.Feeds.HoursToFetch)
	}
	if c.Feeds.PositionsInterval < time.Minute {
		return fmt.Errorf("positions poll interval must be at least 1 minute")
	}
	if c.Feeds.AdvisoriesInterval < time.Minute {
		return fmt.Errorf("advisories poll interval must be at least 1 minute")
	}
	if c.Display.MaxResults < 1 {
		return fmt.Errorf("max results must be positive, got %d", c.Display.MaxResults)
	}
	if c.Worker.Count < 1 {
		return fmt.Errorf("worker count must be positive, got %d", c.Worker.Count)
	}

	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}
