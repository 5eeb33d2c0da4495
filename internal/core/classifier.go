// ABOUTME: Keyword-scoring intent classifier over the lexicon
// ABOUTME: Case-insensitive substring matching, no tokenization or stemming
package core

import (
	"strings"

	"github.com/pmcavoy/aide/internal/models"
)

// Classifier scores an utterance against the lexicon and picks the best
// intent. It is a pure component: no side effects, never fails.
type Classifier struct {
	lexicon Lexicon
}

// NewClassifier creates a classifier over the given lexicon.
func NewClassifier(lexicon Lexicon) *Classifier {
	return &Classifier{lexicon: lexicon}
}

// Classify returns the best-scoring intent for the utterance with a
// confidence in [0,1]. Each intent's score is the fraction of its keywords
// occurring as substrings of the lower-cased utterance; ties between equal
// top scores resolve to the earlier intent in models.ScoredIntents. When
// no keyword matches, the "general" fallback is returned at 0.5.
func (c *Classifier) Classify(utterance string) models.UserIntent {
	lower := strings.ToLower(utterance)

	best := models.IntentGeneral
	bestScore := 0.0
	var bestMatched []string

	for _, intent := range models.ScoredIntents {
		keywords := c.lexicon[intent]
		if len(keywords) == 0 {
			continue
		}
		var matched []string
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				matched = append(matched, kw)
			}
		}
		if len(matched) == 0 {
			continue
		}
		score := float64(len(matched)) / float64(len(keywords))
		if score > bestScore {
			best = intent
			bestScore = score
			bestMatched = matched
		}
	}

	if best == models.IntentGeneral {
		return models.UserIntent{
			Intent:     models.IntentGeneral,
			Confidence: 0.5,
		}
	}

	confidence := bestScore * 2
	if confidence > 1.0 {
		confidence = 1.0
	}
	return models.UserIntent{
		Intent:     best,
		Confidence: confidence,
		Parameters: models.Parameters{MatchedKeywords: bestMatched},
	}
}
