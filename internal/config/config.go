package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/ndewijer/Fund-Valuation-Backend/internal/extract"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	CORS      CORSConfig
	Valuation ValuationConfig
	Extract   ExtractConfig
	Refresh   RefreshConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// ValuationConfig controls the quote fan-out.
type ValuationConfig struct {
	FetchTimeout   time.Duration
	MaxConcurrency int
}

// ExtractConfig controls how funds and amounts are mined from text.
type ExtractConfig struct {
	// RegistryPath is an optional YAML file of extra name/code entries.
	RegistryPath string
	// Policy names the field assignment policy ("max" or "positional").
	Policy string
	// SearchEnabled allows unknown names to be resolved through the fund search API.
	SearchEnabled bool
}

// RefreshConfig holds the scheduled refresh of the saved holding list.
// An empty Schedule disables it.
type RefreshConfig struct {
	Schedule string
	Timeout  time.Duration
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	fetchTimeout, err := getDuration("FETCH_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	maxConcurrency, err := getInt("MAX_CONCURRENT_FETCHES", 20)
	if err != nil {
		return nil, err
	}
	searchEnabled, err := getBool("FUND_SEARCH_ENABLED", true)
	if err != nil {
		return nil, err
	}
	refreshTimeout, err := getDuration("REFRESH_TIMEOUT", 2*time.Minute)
	if err != nil {
		return nil, err
	}

	policy := strings.ToLower(getEnv("EXTRACT_POLICY", "max"))
	if _, err := extract.PolicyByName(policy); err != nil {
		return nil, fmt.Errorf("invalid EXTRACT_POLICY: %w", err)
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8000"),
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/fund_valuation.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		},
		Valuation: ValuationConfig{
			FetchTimeout:   fetchTimeout,
			MaxConcurrency: maxConcurrency,
		},
		Extract: ExtractConfig{
			RegistryPath:  getEnv("REGISTRY_PATH", ""),
			Policy:        policy,
			SearchEnabled: searchEnabled,
		},
		Refresh: RefreshConfig{
			Schedule: strings.TrimSpace(getEnv("REFRESH_SCHEDULE", "")),
			Timeout:  refreshTimeout,
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be positive", key, value)
	}
	return d, nil
}

func getInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be positive", key, value)
	}
	return n, nil
}

func getBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return b, nil
}

// splitList splits a comma separated list, dropping empty items.
func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
