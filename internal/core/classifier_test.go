// ABOUTME: Tests for keyword-scoring intent classification
// ABOUTME: Verifies scoring, fallback, tie-breaking and confidence scaling
package core

import (
	"testing"

	"github.com/pmcavoy/aide/internal/models"
)

// Mirror of the collaborator keyword lists, so classifier behavior is
// pinned without pulling the client packages into core tests.
var (
	testWeatherKeywords = []string{
		"weather", "temperature", "forecast", "rain", "snow", "sunny",
		"cloudy", "humidity", "wind", "storm", "hot", "cold",
		"degrees", "celsius", "fahrenheit",
	}
	testNewsKeywords = []string{
		"news", "headlines", "latest", "breaking", "article", "report", "story",
		"what's happening", "current events", "today's news", "updates",
	}
	testCalendarKeywords = []string{
		"calendar", "schedule", "meeting", "appointment", "event", "remind",
		"book", "plan", "agenda", "today", "tomorrow", "next week", "upcoming",
		"create event", "add to calendar", "what's on my calendar",
	}
)

func newTestClassifier() *Classifier {
	return NewClassifier(BuildLexicon(testWeatherKeywords, testNewsKeywords, testCalendarKeywords))
}

func TestClassify(t *testing.T) {
	c := newTestClassifier()

	tests := []struct {
		name       string
		utterance  string
		wantIntent models.Intent
	}{
		{"weather query", "What's the weather in Paris tomorrow?", models.IntentWeather},
		{"weather with date word", "Will it rain today?", models.IntentWeather},
		{"news query", "Show me technology news", models.IntentNews},
		{"news substring match", "Is this newsworthy?", models.IntentNews},
		{"calendar create", "Schedule a meeting tomorrow", models.IntentCalendar},
		{"calendar list", "What's on my calendar today?", models.IntentCalendar},
		{"greeting", "Hello there!", models.IntentGreeting},
		{"goodbye", "Goodbye for now", models.IntentGoodbye},
		{"help", "What can you do?", models.IntentHelp},
		{"thanks", "Thanks a lot", models.IntentThanks},
		{"no match", "zxqv blorp", models.IntentGeneral},
		{"mixed case", "WEATHER FORECAST PLEASE", models.IntentWeather},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.utterance)
			if got.Intent != tt.wantIntent {
				t.Errorf("Classify(%q).Intent = %q, want %q", tt.utterance, got.Intent, tt.wantIntent)
			}
		})
	}
}

func TestClassify_EmptyUtterance(t *testing.T) {
	c := newTestClassifier()

	got := c.Classify("")

	if got.Intent != models.IntentGeneral {
		t.Errorf("Intent = %q, want general", got.Intent)
	}
	if got.Confidence != 0.5 {
		t.Errorf("Confidence = %v, want 0.5", got.Confidence)
	}
	if len(got.Parameters.MatchedKeywords) != 0 {
		t.Errorf("MatchedKeywords = %v, want empty", got.Parameters.MatchedKeywords)
	}
}

func TestClassify_ConfidenceScaling(t *testing.T) {
	c := newTestClassifier()

	// One matched weather keyword out of fifteen: score 1/15, doubled.
	got := c.Classify("weather please")
	if got.Intent != models.IntentWeather {
		t.Fatalf("Intent = %q, want weather", got.Intent)
	}
	want := 2.0 / 15.0
	if diff := got.Confidence - want; diff < -1e-9 || diff > 1e-9 {
		t.Errorf("Confidence = %v, want %v", got.Confidence, want)
	}
}

func TestClassify_ConfidenceCappedAtOne(t *testing.T) {
	c := newTestClassifier()

	// All four thanks keywords: score 1.0, doubled then capped.
	got := c.Classify("thank you, thanks, I appreciate it, I'm grateful")
	if got.Intent != models.IntentThanks {
		t.Fatalf("Intent = %q, want thanks", got.Intent)
	}
	if got.Confidence != 1.0 {
		t.Errorf("Confidence = %v, want 1.0", got.Confidence)
	}
}

func TestClassify_TieBreakPrefersEarlierIntent(t *testing.T) {
	c := newTestClassifier()

	// "hi" and "see you" each score 1/6 for greeting and goodbye; the
	// earlier intent in the enumeration must win.
	got := c.Classify("hi, see you")
	if got.Intent != models.IntentGreeting {
		t.Errorf("Intent = %q, want greeting on tie", got.Intent)
	}
}

func TestClassify_RecordsMatchedKeywords(t *testing.T) {
	c := newTestClassifier()

	got := c.Classify("Schedule a meeting tomorrow")
	if got.Intent != models.IntentCalendar {
		t.Fatalf("Intent = %q, want calendar", got.Intent)
	}

	want := map[string]bool{"schedule": true, "meeting": true, "tomorrow": true}
	if len(got.Parameters.MatchedKeywords) != len(want) {
		t.Fatalf("MatchedKeywords = %v, want 3 entries", got.Parameters.MatchedKeywords)
	}
	for _, kw := range got.Parameters.MatchedKeywords {
		if !want[kw] {
			t.Errorf("unexpected matched keyword %q", kw)
		}
	}
}

func TestClassify_NeverMutatesLexicon(t *testing.T) {
	lexicon := BuildLexicon(testWeatherKeywords, testNewsKeywords, testCalendarKeywords)
	c := NewClassifier(lexicon)

	c.Classify("weather news calendar hello bye help thanks")

	if len(lexicon[models.IntentWeather]) != len(testWeatherKeywords) {
		t.Error("classification must not mutate the lexicon")
	}
}
