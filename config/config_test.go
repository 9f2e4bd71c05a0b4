package config

import (
	"testing"
	"time"

	"github.com/kkws0615/STOCKup/models"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load with no env should succeed, got %v", err)
	}

	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.HTTP.Addr)
	}
	if cfg.Dashboard.Lookback != models.Lookback6Mo {
		t.Errorf("Lookback = %q, want 6mo", cfg.Dashboard.Lookback)
	}
	if cfg.CacheTTL() != time.Minute {
		t.Errorf("CacheTTL = %v, want 1m", cfg.CacheTTL())
	}
	if cfg.Production {
		t.Error("Production should default to false")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("DASHBOARD_LOOKBACK", "3mo")
	t.Setenv("DASHBOARD_CACHE_TTL_SEC", "120")
	t.Setenv("PRODUCTION", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Addr != ":9090" {
		t.Errorf("Addr = %q, want :9090", cfg.HTTP.Addr)
	}
	if cfg.Dashboard.Lookback != models.Lookback3Mo {
		t.Errorf("Lookback = %q, want 3mo", cfg.Dashboard.Lookback)
	}
	if cfg.CacheTTL() != 2*time.Minute {
		t.Errorf("CacheTTL = %v, want 2m", cfg.CacheTTL())
	}
	if !cfg.Production {
		t.Error("Production should be true")
	}
}

func TestLoadRejectsBadLookback(t *testing.T) {
	t.Setenv("DASHBOARD_LOOKBACK", "2y")

	if _, err := Load(); err == nil {
		t.Error("Load should reject an unsupported lookback window")
	}
}

func TestLoadIgnoresNonNumericInt(t *testing.T) {
	t.Setenv("DASHBOARD_CACHE_TTL_SEC", "soon")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Dashboard.CacheTTLSeconds != 60 {
		t.Errorf("CacheTTLSeconds = %d, want default 60", cfg.Dashboard.CacheTTLSeconds)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults pass", func(c *Config) {}, false},
		{"empty addr", func(c *Config) { c.HTTP.Addr = "" }, true},
		{"zero timeout", func(c *Config) { c.HTTP.RequestTimeoutSec = 0 }, true},
		{"zero cache ttl", func(c *Config) { c.Dashboard.CacheTTLSeconds = 0 }, true},
		{"zero session idle", func(c *Config) { c.Session.MaxIdleMinutes = 0 }, true},
		{"bad lookback", func(c *Config) { c.Dashboard.Lookback = "9mo" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewTestConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
