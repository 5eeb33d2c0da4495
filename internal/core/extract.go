// ABOUTME: Pattern-based entity extraction conditioned on the classified intent
// ABOUTME: Deterministic, side-effect free; a missing match simply omits the entity
package core

import (
	"regexp"
	"strings"

	"github.com/pmcavoy/aide/internal/models"
)

// Location phrases that are time or deixis words, not places.
var locationBlacklist = map[string]bool{
	"today":    true,
	"tomorrow": true,
	"now":      true,
	"there":    true,
	"here":     true,
}

// Ordered pattern attempts; the first non-blacklisted capture wins.
var locationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)in\s+([A-Za-z\s,]+?)(?:\s|$|[?.!])`),
	regexp.MustCompile(`(?i)for\s+([A-Za-z\s,]+?)(?:\s|$|[?.!])`),
	regexp.MustCompile(`(?i)at\s+([A-Za-z\s,]+?)(?:\s|$|[?.!])`),
	regexp.MustCompile(`(?i)weather\s+([A-Za-z\s,]+?)(?:\s|$|[?.!])`),
}

var searchTermPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)about\s+(.+?)(?:\s|$)`),
	regexp.MustCompile(`(?i)on\s+(.+?)(?:\s|$)`),
	regexp.MustCompile(`(?i)regarding\s+(.+?)(?:\s|$)`),
	regexp.MustCompile(`(?i)news\s+(.+?)(?:\s|$)`),
}

var (
	newsFillerWords = regexp.MustCompile(`(?i)\b(news|latest|today|yesterday)\b`)
	clockTimeRegex  = regexp.MustCompile(`(\d{1,2}):(\d{2})\s*(am|pm)?`)
)

var (
	forecastWords       = []string{"tomorrow", "today", "forecast", "week"}
	calendarCreateWords = []string{"schedule", "create", "add", "book"}
	calendarListWords   = []string{"list", "show", "what's", "upcoming"}
)

// Extractor pulls structured entities out of an utterance for a given
// intent. News category detection is delegated to the news collaborator.
type Extractor struct {
	detectCategory func(string) string
}

// NewExtractor creates an extractor. detectCategory maps an utterance to a
// news category name, or "" when none applies; nil disables detection.
func NewExtractor(detectCategory func(string) string) *Extractor {
	return &Extractor{detectCategory: detectCategory}
}

// Extract returns the entities relevant to the intent. Intents without
// entity rules yield the zero value.
func (e *Extractor) Extract(utterance string, intent models.Intent) models.Entities {
	var entities models.Entities
	lower := strings.ToLower(utterance)

	switch intent {
	case models.IntentWeather:
		entities.Location = extractLocation(utterance)
		entities.TimeReference = "current"
		if containsAny(lower, forecastWords) {
			entities.TimeReference = "forecast"
		}

	case models.IntentNews:
		if e.detectCategory != nil {
			entities.Category = e.detectCategory(utterance)
		}
		entities.SearchTerms = extractSearchTerms(utterance)

	case models.IntentCalendar:
		switch {
		case containsAny(lower, calendarCreateWords):
			entities.Action = "create"
		case containsAny(lower, calendarListWords):
			entities.Action = "list"
		default:
			entities.Action = "list"
		}
		entities.DateReference = extractDateReference(lower)
		entities.ClockTime = clockTimeRegex.FindString(lower)
	}

	return entities
}

// extractLocation tries each location pattern in order and returns the
// first capture that is not a blacklisted time/deixis word.
func extractLocation(utterance string) string {
	for _, pattern := range locationPatterns {
		m := pattern.FindStringSubmatch(utterance)
		if m == nil {
			continue
		}
		location := strings.TrimSpace(m[1])
		if location == "" || locationBlacklist[strings.ToLower(location)] {
			continue
		}
		return location
	}
	return ""
}

// extractSearchTerms pulls news search terms following "about", "on",
// "regarding" or "news", with filler words stripped.
func extractSearchTerms(utterance string) string {
	for _, pattern := range searchTermPatterns {
		m := pattern.FindStringSubmatch(utterance)
		if m == nil {
			continue
		}
		terms := strings.TrimSpace(newsFillerWords.ReplaceAllString(m[1], ""))
		if terms != "" {
			return terms
		}
	}
	return ""
}

func extractDateReference(lower string) string {
	switch {
	case strings.Contains(lower, "today"):
		return "today"
	case strings.Contains(lower, "tomorrow"):
		return "tomorrow"
	case strings.Contains(lower, "next week"):
		return "next_week"
	case strings.Contains(lower, "this week"):
		return "this_week"
	}
	return ""
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
