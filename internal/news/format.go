// ABOUTME: Human-readable formatting of news digests
// ABOUTME: Caps output at five articles with a remainder note
package news

import (
	"fmt"
	"strings"

	"github.com/pmcavoy/aide/internal/models"
)

const maxFormattedArticles = 5

var categoryEmoji = map[string]string{
	"business":      "💼",
	"entertainment": "🎭",
	"health":        "🏥",
	"science":       "🔬",
	"sports":        "⚽",
	"technology":    "💻",
	"general":       "📰",
}

// FormatDigest satisfies the core's collaborator contract.
func (c *Client) FormatDigest(digest *models.NewsDigest) string {
	return FormatDigest(digest)
}

// FormatDigest renders a news digest as a display string.
func FormatDigest(digest *models.NewsDigest) string {
	if len(digest.Articles) == 0 {
		return "📰 No news articles found for your query."
	}

	emoji, ok := categoryEmoji[digest.Category]
	if !ok {
		emoji = "📰"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s Latest %s News:\n\n", emoji, titleWord(digest.Category))

	limit := len(digest.Articles)
	if limit > maxFormattedArticles {
		limit = maxFormattedArticles
	}
	for _, article := range digest.Articles[:limit] {
		fmt.Fprintf(&b, "📄 **%s**\n", article.Title)
		if article.Description != "" {
			desc := article.Description
			if len(desc) > 150 {
				desc = desc[:150] + "..."
			}
			fmt.Fprintf(&b, "   %s\n", desc)
		}
		fmt.Fprintf(&b, "   📅 %s | 📰 %s\n", article.PublishedAt, article.Source)
		fmt.Fprintf(&b, "   🔗 %s\n\n", article.URL)
	}

	if len(digest.Articles) > maxFormattedArticles {
		fmt.Fprintf(&b, "... and %d more articles available.", len(digest.Articles)-maxFormattedArticles)
	}

	return strings.TrimSpace(b.String())
}

func titleWord(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
