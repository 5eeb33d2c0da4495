// ABOUTME: Keyword-table category detection for news queries
// ABOUTME: First category with any keyword hit wins, in fixed order
package news

import "strings"

type categoryEntry struct {
	name     string
	keywords []string
}

// Ordered so detection does not depend on map iteration.
var categoryTable = []categoryEntry{
	{"business", []string{"business", "economy", "finance", "stock", "market", "trade", "company"}},
	// "tv show" rather than bare "show": "show me ..." is how most
	// queries start and says nothing about entertainment.
	{"entertainment", []string{"entertainment", "celebrity", "movie", "music", "tv show", "actor"}},
	{"health", []string{"health", "medical", "doctor", "hospital", "medicine", "disease", "virus"}},
	{"science", []string{"science", "research", "study", "discovery", "space", "innovation"}},
	{"sports", []string{"sports", "football", "basketball", "soccer", "baseball", "game", "team"}},
	{"technology", []string{"technology", "tech", "computer", "software", "app", "digital", "ai", "artificial intelligence"}},
}

// DetectCategory satisfies the core's collaborator contract.
func (c *Client) DetectCategory(query string) string {
	return DetectCategory(query)
}

// DetectCategory maps a query to a news category by substring keyword
// matching, or "" when no category applies.
func DetectCategory(query string) string {
	lower := strings.ToLower(query)
	for _, entry := range categoryTable {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				return entry.name
			}
		}
	}
	return ""
}
