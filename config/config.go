package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/kkws0615/STOCKup/models"
)

// Config holds all application configuration
type Config struct {
	// HTTP server configuration
	HTTP HTTPConfig

	// Market data provider configuration
	MarketData MarketDataConfig

	// Dashboard assembly configuration
	Dashboard DashboardConfig

	// Session configuration
	Session SessionConfig

	// Production switches log output to JSON
	Production bool
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	Addr               string
	CORSAllowedOrigins string
	RequestTimeoutSec  int
}

// MarketDataConfig holds upstream quote-service configuration
type MarketDataConfig struct {
	HistoryBaseURL string
	SearchBaseURL  string
}

// DashboardConfig holds dashboard assembly configuration
type DashboardConfig struct {
	Lookback        models.Lookback
	CacheTTLSeconds int
}

// SessionConfig holds per-browser session configuration
type SessionConfig struct {
	MaxIdleMinutes int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		HTTP: HTTPConfig{
			Addr:               getEnvString("HTTP_ADDR", ":8080"),
			CORSAllowedOrigins: getEnvString("CORS_ALLOWED_ORIGINS", "*"),
			RequestTimeoutSec:  getEnvInt("HTTP_REQUEST_TIMEOUT_SEC", 30),
		},
		MarketData: MarketDataConfig{
			HistoryBaseURL: getEnvString("HISTORY_BASE_URL", "https://query1.finance.yahoo.com"),
			SearchBaseURL:  getEnvString("SEARCH_BASE_URL", "https://query1.finance.yahoo.com"),
		},
		Dashboard: DashboardConfig{
			Lookback:        models.Lookback(getEnvString("DASHBOARD_LOOKBACK", string(models.Lookback6Mo))),
			CacheTTLSeconds: getEnvInt("DASHBOARD_CACHE_TTL_SEC", 60),
		},
		Session: SessionConfig{
			MaxIdleMinutes: getEnvInt("SESSION_MAX_IDLE_MINUTES", 120),
		},
		Production: getEnvBool("PRODUCTION", false),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.HTTP.Addr == "" {
		return fmt.Errorf("HTTP_ADDR must not be empty")
	}
	if c.HTTP.RequestTimeoutSec <= 0 {
		return fmt.Errorf("HTTP_REQUEST_TIMEOUT_SEC must be positive, got %d", c.HTTP.RequestTimeoutSec)
	}

	switch c.Dashboard.Lookback {
	case models.Lookback1Mo, models.Lookback3Mo, models.Lookback6Mo:
	default:
		return fmt.Errorf("DASHBOARD_LOOKBACK must be one of 1mo, 3mo, 6mo, got %q", c.Dashboard.Lookback)
	}
	if c.Dashboard.CacheTTLSeconds <= 0 {
		return fmt.Errorf("DASHBOARD_CACHE_TTL_SEC must be positive, got %d", c.Dashboard.CacheTTLSeconds)
	}
	if c.Session.MaxIdleMinutes <= 0 {
		return fmt.Errorf("SESSION_MAX_IDLE_MINUTES must be positive, got %d", c.Session.MaxIdleMinutes)
	}

	return nil
}

// CacheTTL returns the dashboard cache TTL as a duration
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Dashboard.CacheTTLSeconds) * time.Second
}

// SessionMaxIdle returns the session idle limit as a duration
func (c *Config) SessionMaxIdle() time.Duration {
	return time.Duration(c.Session.MaxIdleMinutes) * time.Minute
}

// RequestTimeout returns the per-request timeout as a duration
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.HTTP.RequestTimeoutSec) * time.Second
}

func getEnvString(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// NewTestConfig creates a Config with default values for testing
func NewTestConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Addr:               ":8080",
			CORSAllowedOrigins: "*",
			RequestTimeoutSec:  30,
		},
		MarketData: MarketDataConfig{
			HistoryBaseURL: "https://query1.finance.yahoo.com",
			SearchBaseURL:  "https://query1.finance.yahoo.com",
		},
		Dashboard: DashboardConfig{
			Lookback:        models.Lookback6Mo,
			CacheTTLSeconds: 60,
		},
		Session: SessionConfig{
			MaxIdleMinutes: 120,
		},
		Production: false,
	}
}
