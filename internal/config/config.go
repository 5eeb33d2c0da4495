// ABOUTME: Centralized configuration for the assistant
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the assistant.
type Config struct {
	// Collaborator API keys
	WeatherAPIKey string
	NewsAPIKey    string

	// Collaborator settings
	WeatherUnits string
	NewsCountry  string
	AgendaPath   string

	// Outbound HTTP policy
	HTTPTimeout time.Duration
	MaxRetries  int
	RetryDelay  time.Duration

	// Server settings
	Host        string
	Port        int
	CORSOrigins []string

	// Defaults for outward surfaces
	HistoryLimit int
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		WeatherAPIKey: os.Getenv("OPENWEATHER_API_KEY"),
		NewsAPIKey:    os.Getenv("NEWS_API_KEY"),
		WeatherUnits:  getEnv("WEATHER_UNITS", "metric"),
		NewsCountry:   getEnv("NEWS_COUNTRY", "us"),
		AgendaPath:    os.Getenv("AIDE_AGENDA_PATH"),
		HTTPTimeout:   getEnvDuration("AIDE_HTTP_TIMEOUT", 10*time.Second),
		MaxRetries:    getEnvInt("AIDE_MAX_RETRIES", 3),
		RetryDelay:    getEnvDuration("AIDE_RETRY_DELAY", time.Second),
		Host:          getEnv("HOST", "localhost"),
		Port:          getEnvInt("PORT", 5000),
		CORSOrigins:   getEnvList("CORS_ORIGINS", []string{"http://localhost:4200"}),
		HistoryLimit:  getEnvInt("AIDE_HISTORY_LIMIT", 20),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	switch c.WeatherUnits {
	case "metric", "imperial", "standard":
	default:
		return fmt.Errorf("WEATHER_UNITS must be metric, imperial or standard, got %q", c.WeatherUnits)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("AIDE_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	if c.RetryDelay < 0 {
		return fmt.Errorf("AIDE_RETRY_DELAY must not be negative, got %v", c.RetryDelay)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT must be 1-65535, got %d", c.Port)
	}
	if c.HistoryLimit < 1 || c.HistoryLimit > 100 {
		return fmt.Errorf("AIDE_HISTORY_LIMIT must be 1-100, got %d", c.HistoryLimit)
	}
	return nil
}

// Addr returns the host:port the HTTP server binds to.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}

func getEnvList(key string, defaultVal []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}
