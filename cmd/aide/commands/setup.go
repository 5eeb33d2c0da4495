// ABOUTME: Shared assembly of the assistant from configuration
// ABOUTME: Builds the store, outbound HTTP client and collaborators
package commands

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/pmcavoy/aide/internal/calendar"
	"github.com/pmcavoy/aide/internal/config"
	"github.com/pmcavoy/aide/internal/core"
	"github.com/pmcavoy/aide/internal/news"
	"github.com/pmcavoy/aide/internal/store"
	"github.com/pmcavoy/aide/internal/weather"
	"github.com/pmcavoy/aide/internal/webapi"
)

// buildAssistant loads configuration and wires the assistant together.
func buildAssistant() (*core.Assistant, *config.Config, error) {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil && verbose {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.WeatherAPIKey == "" && !quiet {
		log.Println("Warning: OPENWEATHER_API_KEY not set - weather queries will fail")
	}
	if cfg.NewsAPIKey == "" && !quiet {
		log.Println("Warning: NEWS_API_KEY not set - news queries will fail")
	}

	api := webapi.New(cfg.HTTPTimeout, cfg.MaxRetries, cfg.RetryDelay)

	weatherClient := weather.NewClient(cfg.WeatherAPIKey, api, weather.WithUnits(cfg.WeatherUnits))
	newsClient := news.NewClient(cfg.NewsAPIKey, api, news.WithCountry(cfg.NewsCountry))
	calendarClient, err := calendar.NewClient(cfg.AgendaPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize calendar: %w", err)
	}

	assistant := core.New(store.New(store.DefaultCapacity), weatherClient, newsClient, calendarClient)
	return assistant, cfg, nil
}
