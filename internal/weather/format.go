// ABOUTME: Human-readable formatting of weather reports
// ABOUTME: Produces the display text the dispatcher treats as opaque
package weather

import (
	"fmt"
	"strings"
	"time"

	"github.com/pmcavoy/aide/internal/models"
)

// FormatReport satisfies the core's collaborator contract.
func (c *Client) FormatReport(report *models.WeatherReport) string {
	return FormatReport(report)
}

// FormatReport renders a weather report as a display string, including a
// forecast block when daily summaries are present.
func FormatReport(report *models.WeatherReport) string {
	unitsSymbol := "°C"
	if report.Units == "imperial" {
		unitsSymbol = "°F"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🌤️ Weather in %s:\n", report.Location)
	fmt.Fprintf(&b, "Currently %.1f%s (feels like %.1f%s)\n",
		report.CurrentTemp, unitsSymbol, report.FeelsLike, unitsSymbol)
	fmt.Fprintf(&b, "%s\n", report.Description)
	fmt.Fprintf(&b, "Humidity: %d%%", report.Humidity)

	if len(report.Forecast) > 0 {
		b.WriteString("\n\n📅 Forecast:\n")
		limit := len(report.Forecast)
		if limit > 5 {
			limit = 5
		}
		for _, day := range report.Forecast[:limit] {
			label := day.Date
			if t, err := time.Parse("2006-01-02", day.Date); err == nil {
				label = t.Format("Monday, January 02")
			}
			fmt.Fprintf(&b, "%s: %.1f-%.1f%s - %s\n",
				label, day.TempMin, day.TempMax, unitsSymbol, day.Description)
		}
	}

	return strings.TrimSpace(b.String())
}
