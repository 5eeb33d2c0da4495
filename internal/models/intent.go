// ABOUTME: Intent enumeration and the ephemeral classification result
// ABOUTME: UserIntent is produced fresh per utterance and never stored
package models

// Intent is the classified purpose of an utterance.
type Intent string

const (
	IntentWeather  Intent = "weather"
	IntentNews     Intent = "news"
	IntentCalendar Intent = "calendar"
	IntentGreeting Intent = "greeting"
	IntentGoodbye  Intent = "goodbye"
	IntentHelp     Intent = "help"
	IntentThanks   Intent = "thanks"
	IntentGeneral  Intent = "general"
)

// ScoredIntents lists every intent the classifier scores, in priority
// order. Ties between equal top scores resolve to the earliest entry.
// "general" is the fallback and is never scored directly.
var ScoredIntents = []Intent{
	IntentWeather,
	IntentNews,
	IntentCalendar,
	IntentGreeting,
	IntentGoodbye,
	IntentHelp,
	IntentThanks,
}

// Entities holds the structured values extracted from an utterance,
// conditioned on its intent. Zero values mean "not present".
type Entities struct {
	// weather
	Location      string `json:"location,omitempty"`
	TimeReference string `json:"time_reference,omitempty"` // "current" or "forecast"

	// news
	Category    string `json:"category,omitempty"`
	SearchTerms string `json:"search_terms,omitempty"`

	// calendar
	Action        string `json:"action,omitempty"` // "create" or "list"
	DateReference string `json:"date_reference,omitempty"`
	ClockTime     string `json:"time,omitempty"`
}

// Parameters carries classifier bookkeeping, e.g. which keywords matched.
type Parameters struct {
	MatchedKeywords []string `json:"matched_keywords,omitempty"`
}

// UserIntent is the classification result for a single utterance.
type UserIntent struct {
	Intent     Intent     `json:"intent"`
	Confidence float64    `json:"confidence"`
	Entities   Entities   `json:"entities"`
	Parameters Parameters `json:"parameters"`
}
