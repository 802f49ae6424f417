package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	OpenWeatherAPIKey string

	// Base URL overrides, mostly for tests and proxies.
	WeatherBaseURL string
	GeoBaseURL     string
	IconBaseURL    string

	// OneCallEnabled feature-flags the richer provider endpoint.
	OneCallEnabled bool

	// DefaultLang is used when a request carries no language code.
	// Supported: en, hi, mr.
	DefaultLang string

	HTTPTimeout time.Duration

	// RefreshInterval controls how often the most recent query is
	// re-fetched to keep the dashboard warm. 0 disables refreshing.
	RefreshInterval time.Duration

	// In-memory store retention.
	StoreMaxHistory int
	StoreMaxAge     time.Duration

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.WeatherBaseURL = os.Getenv("OPENWEATHER_BASE_URL")
	cfg.GeoBaseURL = os.Getenv("OPENWEATHER_GEO_URL")
	cfg.IconBaseURL = os.Getenv("OPENWEATHER_ICON_URL")

	cfg.OneCallEnabled = getenvBool("ONECALL_ENABLED", false)
	cfg.DefaultLang = getenvDefault("DEFAULT_LANG", "en")

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	refreshStr := getenvDefault("REFRESH_INTERVAL", "15m")
	refresh, err := time.ParseDuration(refreshStr)
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_INTERVAL: %w", err)
	}
	cfg.RefreshInterval = refresh

	cfg.StoreMaxHistory = getenvInt("STORE_MAX_HISTORY", 24)

	maxAgeStr := getenvDefault("STORE_MAX_AGE", "24h")
	maxAge, err := time.ParseDuration(maxAgeStr)
	if err != nil {
		return nil, fmt.Errorf("invalid STORE_MAX_AGE: %w", err)
	}
	cfg.StoreMaxAge = maxAge

	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}
