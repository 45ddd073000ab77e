package config_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/ndewijer/Fund-Valuation-Backend/internal/config"
)

func TestLoad(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		for _, key := range []string{
			"SERVER_HOST", "SERVER_PORT", "DB_PATH", "CORS_ALLOWED_ORIGINS", "REGISTRY_PATH",
			"FETCH_TIMEOUT", "MAX_CONCURRENT_FETCHES", "EXTRACT_POLICY", "FUND_SEARCH_ENABLED",
			"REFRESH_SCHEDULE", "REFRESH_TIMEOUT",
		} {
			t.Setenv(key, "")
		}

		cfg, err := config.Load()
		if err != nil {
			t.Fatalf("Load() returned unexpected error: %v", err)
		}

		if cfg.Server.Addr != "0.0.0.0:8000" {
			t.Errorf("Expected addr 0.0.0.0:8000, got %s", cfg.Server.Addr)
		}
		if cfg.Database.Path != "./data/fund_valuation.db" {
			t.Errorf("Unexpected database path %s", cfg.Database.Path)
		}
		if !reflect.DeepEqual(cfg.CORS.AllowedOrigins, []string{"*"}) {
			t.Errorf("Expected origins [*], got %v", cfg.CORS.AllowedOrigins)
		}
		if cfg.Valuation.FetchTimeout != 10*time.Second || cfg.Valuation.MaxConcurrency != 20 {
			t.Errorf("Unexpected valuation config %+v", cfg.Valuation)
		}
		if cfg.Extract.Policy != "max" || !cfg.Extract.SearchEnabled || cfg.Extract.RegistryPath != "" {
			t.Errorf("Unexpected extract config %+v", cfg.Extract)
		}
		if cfg.Refresh.Schedule != "" || cfg.Refresh.Timeout != 2*time.Minute {
			t.Errorf("Unexpected refresh config %+v", cfg.Refresh)
		}
	})

	t.Run("reads overrides", func(t *testing.T) {
		t.Setenv("SERVER_HOST", "127.0.0.1")
		t.Setenv("SERVER_PORT", "9000")
		t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000, https://funds.example.com,")
		t.Setenv("FETCH_TIMEOUT", "3s")
		t.Setenv("MAX_CONCURRENT_FETCHES", "5")
		t.Setenv("EXTRACT_POLICY", "Positional")
		t.Setenv("FUND_SEARCH_ENABLED", "false")
		t.Setenv("REFRESH_SCHEDULE", "*/5 9-15 * * 1-5")

		cfg, err := config.Load()
		if err != nil {
			t.Fatalf("Load() returned unexpected error: %v", err)
		}

		if cfg.Server.Addr != "127.0.0.1:9000" {
			t.Errorf("Expected addr 127.0.0.1:9000, got %s", cfg.Server.Addr)
		}
		expected := []string{"http://localhost:3000", "https://funds.example.com"}
		if !reflect.DeepEqual(cfg.CORS.AllowedOrigins, expected) {
			t.Errorf("Expected origins %v, got %v", expected, cfg.CORS.AllowedOrigins)
		}
		if cfg.Valuation.FetchTimeout != 3*time.Second || cfg.Valuation.MaxConcurrency != 5 {
			t.Errorf("Unexpected valuation config %+v", cfg.Valuation)
		}
		if cfg.Extract.Policy != "positional" || cfg.Extract.SearchEnabled {
			t.Errorf("Unexpected extract config %+v", cfg.Extract)
		}
		if cfg.Refresh.Schedule != "*/5 9-15 * * 1-5" {
			t.Errorf("Unexpected schedule %q", cfg.Refresh.Schedule)
		}
	})

	invalid := []struct {
		key   string
		value string
	}{
		{"FETCH_TIMEOUT", "ten seconds"},
		{"FETCH_TIMEOUT", "-1s"},
		{"MAX_CONCURRENT_FETCHES", "many"},
		{"MAX_CONCURRENT_FETCHES", "0"},
		{"EXTRACT_POLICY", "smallest"},
		{"FUND_SEARCH_ENABLED", "perhaps"},
		{"REFRESH_TIMEOUT", "soon"},
	}
	for _, tt := range invalid {
		t.Run("rejects "+tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			if _, err := config.Load(); err == nil {
				t.Errorf("Expected error for %s=%q, got nil", tt.key, tt.value)
			}
		})
	}
}
