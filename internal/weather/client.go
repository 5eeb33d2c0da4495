// ABOUTME: Weather collaborator backed by the OpenWeatherMap API
// ABOUTME: Geocodes locations, fetches current conditions and daily forecasts
package weather

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/pmcavoy/aide/internal/models"
	"github.com/pmcavoy/aide/internal/webapi"
)

const (
	defaultBaseURL = "https://api.openweathermap.org/data/2.5"
	defaultGeoURL  = "https://api.openweathermap.org/geo/1.0"

	// The forecast endpoint returns 3-hour intervals, 8 per day, max 40.
	intervalsPerDay = 8
	maxIntervals    = 40
)

// Client talks to OpenWeatherMap. It owns its retry policy via the shared
// webapi client.
type Client struct {
	apiKey  string
	baseURL string
	geoURL  string
	units   string
	api     *webapi.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURLs overrides the API endpoints, mainly for tests.
func WithBaseURLs(baseURL, geoURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
		c.geoURL = strings.TrimRight(geoURL, "/")
	}
}

// WithUnits sets the temperature units (metric, imperial, standard).
func WithUnits(units string) Option {
	return func(c *Client) { c.units = units }
}

// NewClient creates a weather client.
func NewClient(apiKey string, api *webapi.Client, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		geoURL:  defaultGeoURL,
		units:   "metric",
		api:     api,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IntentKeywords returns the keywords that indicate weather queries.
func (c *Client) IntentKeywords() []string {
	// Kept shorter than the calendar list so a lone weather keyword
	// outweighs a lone date word ("weather ... tomorrow" is a weather
	// query, not a calendar one).
	return []string{
		"weather", "temperature", "forecast", "rain", "snow", "sunny",
		"cloudy", "humidity", "wind", "storm", "hot", "cold",
		"degrees", "celsius", "fahrenheit",
	}
}

type conditions struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	Humidity  int     `json:"humidity"`
}

type condition struct {
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type currentResponse struct {
	Cod     int         `json:"cod"`
	Message string      `json:"message,omitempty"`
	Main    conditions  `json:"main"`
	Weather []condition `json:"weather"`
}

type forecastEntry struct {
	Dt      int64       `json:"dt"`
	Main    conditions  `json:"main"`
	Weather []condition `json:"weather"`
}

type forecastResponse struct {
	Cod     string          `json:"cod"`
	Message any             `json:"message,omitempty"`
	List    []forecastEntry `json:"list"`
}

type geoResult struct {
	Name    string  `json:"name"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// CurrentWeather fetches current conditions for a location name or
// "lat,lon" pair.
func (c *Client) CurrentWeather(ctx context.Context, location string) (*models.WeatherReport, error) {
	lat, lon, displayName, err := c.resolveLocation(ctx, location)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("lat", formatCoord(lat))
	params.Set("lon", formatCoord(lon))
	params.Set("appid", c.apiKey)
	params.Set("units", c.units)

	var resp currentResponse
	if err := c.api.GetJSON(ctx, c.baseURL+"/weather", params, &resp); err != nil {
		return nil, fmt.Errorf("weather lookup for %q: %w", location, err)
	}
	if resp.Cod != 0 && resp.Cod != 200 {
		return nil, fmt.Errorf("weather API error: %s", orUnknown(resp.Message))
	}

	report := &models.WeatherReport{
		Location:    displayName,
		CurrentTemp: resp.Main.Temp,
		FeelsLike:   resp.Main.FeelsLike,
		Humidity:    resp.Main.Humidity,
		Units:       c.units,
	}
	if len(resp.Weather) > 0 {
		report.Description = titleCase(resp.Weather[0].Description)
		report.Icon = resp.Weather[0].Icon
	}
	return report, nil
}

// Forecast fetches a 5-day forecast grouped into daily summaries.
func (c *Client) Forecast(ctx context.Context, location string) (*models.WeatherReport, error) {
	return c.ForecastDays(ctx, location, 5)
}

// ForecastDays fetches a forecast for up to days days (1-5).
func (c *Client) ForecastDays(ctx context.Context, location string, days int) (*models.WeatherReport, error) {
	if days < 1 {
		days = 1
	}
	if days > 5 {
		days = 5
	}

	lat, lon, displayName, err := c.resolveLocation(ctx, location)
	if err != nil {
		return nil, err
	}

	count := days * intervalsPerDay
	if count > maxIntervals {
		count = maxIntervals
	}

	params := url.Values{}
	params.Set("lat", formatCoord(lat))
	params.Set("lon", formatCoord(lon))
	params.Set("appid", c.apiKey)
	params.Set("units", c.units)
	params.Set("cnt", strconv.Itoa(count))

	var resp forecastResponse
	if err := c.api.GetJSON(ctx, c.baseURL+"/forecast", params, &resp); err != nil {
		return nil, fmt.Errorf("forecast lookup for %q: %w", location, err)
	}
	if resp.Cod != "" && resp.Cod != "200" {
		return nil, fmt.Errorf("forecast API error: %v", resp.Message)
	}
	if len(resp.List) == 0 {
		return nil, fmt.Errorf("forecast API returned no data for %q", location)
	}

	report := &models.WeatherReport{
		Location:    displayName,
		CurrentTemp: resp.List[0].Main.Temp,
		FeelsLike:   resp.List[0].Main.FeelsLike,
		Humidity:    resp.List[0].Main.Humidity,
		Units:       c.units,
		Forecast:    groupDaily(resp.List, days),
	}
	if len(resp.List[0].Weather) > 0 {
		report.Description = titleCase(resp.List[0].Weather[0].Description)
		report.Icon = resp.List[0].Weather[0].Icon
	}
	return report, nil
}

// resolveLocation accepts "lat,lon" pairs directly and geocodes anything
// else through the OpenWeatherMap geocoding API.
func (c *Client) resolveLocation(ctx context.Context, location string) (lat, lon float64, displayName string, err error) {
	if la, lo, ok := parseCoords(location); ok {
		return la, lo, fmt.Sprintf("%.2f, %.2f", la, lo), nil
	}

	params := url.Values{}
	params.Set("q", location)
	params.Set("limit", "1")
	params.Set("appid", c.apiKey)

	var results []geoResult
	if err := c.api.GetJSON(ctx, c.geoURL+"/direct", params, &results); err != nil {
		return 0, 0, "", fmt.Errorf("geocoding %q: %w", location, err)
	}
	if len(results) == 0 {
		return 0, 0, "", fmt.Errorf("location %q not found", location)
	}

	r := results[0]
	name := r.Name
	if r.Country != "" {
		name = fmt.Sprintf("%s, %s", r.Name, r.Country)
	}
	return r.Lat, r.Lon, name, nil
}

func parseCoords(location string) (float64, float64, bool) {
	parts := strings.Split(location, ",")
	if len(parts) != 2 {
		return 0, 0, false
	}
	lat, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lon, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return lat, lon, true
}

// groupDaily collapses 3-hour intervals into per-day min/max summaries,
// keeping each day's first reported condition.
func groupDaily(entries []forecastEntry, days int) []models.DailyForecast {
	limit := days * intervalsPerDay
	if limit > len(entries) {
		limit = len(entries)
	}

	var daily []models.DailyForecast
	var currentDay string
	var temps []float64
	var weather condition

	flush := func() {
		if currentDay == "" || len(temps) == 0 {
			return
		}
		minT, maxT := temps[0], temps[0]
		for _, t := range temps[1:] {
			if t < minT {
				minT = t
			}
			if t > maxT {
				maxT = t
			}
		}
		daily = append(daily, models.DailyForecast{
			Date:        currentDay,
			TempMin:     minT,
			TempMax:     maxT,
			Description: titleCase(weather.Description),
			Icon:        weather.Icon,
		})
	}

	for _, entry := range entries[:limit] {
		day := time.Unix(entry.Dt, 0).UTC().Format("2006-01-02")
		if day != currentDay {
			flush()
			currentDay = day
			temps = temps[:0]
			if len(entry.Weather) > 0 {
				weather = entry.Weather[0]
			} else {
				weather = condition{}
			}
		}
		temps = append(temps, entry.Main.Temp)
	}
	flush()
	return daily
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func orUnknown(msg string) string {
	if msg == "" {
		return "unknown error"
	}
	return msg
}

// titleCase capitalizes each word, matching the API's lower-cased
// condition descriptions ("scattered clouds" -> "Scattered Clouds").
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
