// ABOUTME: Per-intent keyword lists used by the intent classifier
// ABOUTME: Collaborators contribute their own lists; social intents are static
package core

import "github.com/pmcavoy/aide/internal/models"

// Static keyword lists for the intents handled locally.
var (
	greetingKeywords = []string{"hello", "hi", "hey", "good morning", "good afternoon", "good evening"}
	goodbyeKeywords  = []string{"bye", "goodbye", "see you", "farewell", "exit", "quit"}
	helpKeywords     = []string{"help", "what can you do", "commands", "assistance", "support"}
	thanksKeywords   = []string{"thank you", "thanks", "appreciate", "grateful"}
)

// Lexicon maps each scored intent to its keyword list. Iteration always
// follows models.ScoredIntents so classification is deterministic.
type Lexicon map[models.Intent][]string

// BuildLexicon assembles the lexicon from the collaborator keyword lists
// and the static social-intent lists.
func BuildLexicon(weather, news, calendar []string) Lexicon {
	return Lexicon{
		models.IntentWeather:  weather,
		models.IntentNews:     news,
		models.IntentCalendar: calendar,
		models.IntentGreeting: greetingKeywords,
		models.IntentGoodbye:  goodbyeKeywords,
		models.IntentHelp:     helpKeywords,
		models.IntentThanks:   thanksKeywords,
	}
}
