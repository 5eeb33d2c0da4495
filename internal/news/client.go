// ABOUTME: News collaborator backed by the NewsAPI service
// ABOUTME: Fetches top headlines by category and keyword search over recent days
package news

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pmcavoy/aide/internal/models"
	"github.com/pmcavoy/aide/internal/webapi"
)

const (
	defaultBaseURL  = "https://newsapi.org/v2"
	defaultPageSize = 10
	maxPageSize     = 100
	searchWindow    = 30 * 24 * time.Hour
)

// Categories supported by the headlines endpoint.
var Categories = []string{
	"business", "entertainment", "general", "health",
	"science", "sports", "technology",
}

// Client talks to NewsAPI.
type Client struct {
	apiKey   string
	baseURL  string
	country  string
	language string
	api      *webapi.Client
	now      func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint, mainly for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(baseURL, "/") }
}

// WithCountry sets the headlines country code.
func WithCountry(country string) Option {
	return func(c *Client) { c.country = country }
}

// NewClient creates a news client.
func NewClient(apiKey string, api *webapi.Client, opts ...Option) *Client {
	c := &Client{
		apiKey:   apiKey,
		baseURL:  defaultBaseURL,
		country:  "us",
		language: "en",
		api:      api,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IntentKeywords returns the keywords that indicate news queries.
func (c *Client) IntentKeywords() []string {
	return []string{
		"news", "headlines", "latest", "breaking", "article", "report", "story",
		"what's happening", "current events", "today's news", "updates",
	}
}

type apiArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	PublishedAt string `json:"publishedAt"`
	Author      string `json:"author"`
	Source      struct {
		Name string `json:"name"`
	} `json:"source"`
}

type apiResponse struct {
	Status       string       `json:"status"`
	Message      string       `json:"message,omitempty"`
	TotalResults int          `json:"totalResults"`
	Articles     []apiArticle `json:"articles"`
}

// Headlines fetches top headlines, optionally restricted to a category.
func (c *Client) Headlines(ctx context.Context, category string) (*models.NewsDigest, error) {
	params := url.Values{}
	params.Set("apiKey", c.apiKey)
	params.Set("country", c.country)
	params.Set("pageSize", strconv.Itoa(defaultPageSize))
	if category != "" && validCategory(category) {
		params.Set("category", strings.ToLower(category))
	}

	var resp apiResponse
	if err := c.api.GetJSON(ctx, c.baseURL+"/top-headlines", params, &resp); err != nil {
		return nil, fmt.Errorf("fetching headlines: %w", err)
	}
	if resp.Status != "ok" {
		return nil, fmt.Errorf("news API error: %s", orUnknown(resp.Message))
	}

	label := category
	if label == "" {
		label = "general"
	}
	return parseDigest(&resp, label), nil
}

// Search queries articles matching terms over the last 30 days.
func (c *Client) Search(ctx context.Context, terms string) (*models.NewsDigest, error) {
	to := c.now()
	from := to.Add(-searchWindow)

	params := url.Values{}
	params.Set("apiKey", c.apiKey)
	params.Set("q", terms)
	params.Set("sortBy", "publishedAt")
	params.Set("pageSize", strconv.Itoa(defaultPageSize))
	params.Set("language", c.language)
	params.Set("from", from.Format("2006-01-02"))
	params.Set("to", to.Format("2006-01-02"))

	var resp apiResponse
	if err := c.api.GetJSON(ctx, c.baseURL+"/everything", params, &resp); err != nil {
		return nil, fmt.Errorf("searching news for %q: %w", terms, err)
	}
	if resp.Status != "ok" {
		return nil, fmt.Errorf("news search error: %s", orUnknown(resp.Message))
	}

	return parseDigest(&resp, "search"), nil
}

// parseDigest cleans the raw article list: entries without title or URL
// are dropped and publication dates reformatted.
func parseDigest(resp *apiResponse, category string) *models.NewsDigest {
	articles := make([]models.Article, 0, len(resp.Articles))
	seen := map[string]bool{}
	var sources []string

	for _, a := range resp.Articles {
		if a.Title == "" || a.URL == "" {
			continue
		}

		published := "Unknown"
		if a.PublishedAt != "" {
			published = a.PublishedAt
			if t, err := time.Parse(time.RFC3339, a.PublishedAt); err == nil {
				published = t.UTC().Format("2006-01-02 15:04 UTC")
			}
		}

		sourceName := a.Source.Name
		if sourceName == "" {
			sourceName = "Unknown Source"
		}
		if !seen[sourceName] {
			seen[sourceName] = true
			sources = append(sources, sourceName)
		}

		author := a.Author
		if author == "" {
			author = "Unknown"
		}

		articles = append(articles, models.Article{
			Title:       strings.TrimSpace(a.Title),
			Description: strings.TrimSpace(a.Description),
			URL:         a.URL,
			ImageURL:    a.URLToImage,
			PublishedAt: published,
			Source:      sourceName,
			Author:      author,
		})
	}

	total := resp.TotalResults
	if total == 0 {
		total = len(articles)
	}
	return &models.NewsDigest{
		Articles:     articles,
		TotalResults: total,
		Category:     category,
		Sources:      sources,
	}
}

func validCategory(category string) bool {
	category = strings.ToLower(category)
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

func orUnknown(msg string) string {
	if msg == "" {
		return "unknown error"
	}
	return msg
}
