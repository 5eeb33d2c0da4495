// ABOUTME: Domain handlers invoked by the dispatcher, one per intent
// ABOUTME: Collaborator failures become error-typed responses, never panics
package core

import (
	"context"
	"fmt"

	"github.com/pmcavoy/aide/internal/models"
)

var greetingSuggestions = []string{
	"What's the weather like?",
	"Show me the latest news",
	"What's on my calendar today?",
	"What can you do?",
}

var farewells = []string{
	"Goodbye! Have a great day!",
	"See you later! Feel free to ask me anything anytime.",
	"Farewell! I'm always here when you need assistance.",
}

var thanksReplies = []string{
	"You're welcome! Happy to help!",
	"My pleasure! Is there anything else you need?",
	"Glad I could help! Feel free to ask me anything else.",
}

var generalReplies = []string{
	"I understand you're trying to communicate with me, but I'm not sure exactly what you need. Could you be more specific?",
	"I'm here to help with weather, news, and calendar information. What would you like to know?",
	"I didn't quite understand that. You can ask me about the weather, latest news, or your calendar events.",
}

const calendarCreateGuidance = "I can help you view your calendar events. " +
	"To create events, please use specific commands like 'Schedule a meeting tomorrow at 2 PM'."

const helpMessage = `🤖 **Personal Assistant - Help**

I can help you with:

🌤️ **Weather**:
   • "What's the weather in New York?"
   • "Will it rain today?"
   • "Weather forecast for this week"

📰 **News**:
   • "Show me the latest news"
   • "Technology news"
   • "News about climate change"

📅 **Calendar**:
   • "What's on my calendar today?"
   • "Show upcoming events"
   • "Schedule a meeting" (basic support)

Just ask me naturally - I understand conversational language!`

func (a *Assistant) handleWeather(ctx context.Context, intent models.UserIntent, conv *models.Conversation) *models.ChatResponse {
	location := intent.Entities.Location
	if location == "" {
		location = conv.Preferences["location"]
	}
	if location == "" {
		location = "current location"
	}

	var (
		report *models.WeatherReport
		err    error
	)
	if intent.Entities.TimeReference == "forecast" {
		report, err = a.weather.Forecast(ctx, location)
	} else {
		report, err = a.weather.CurrentWeather(ctx, location)
	}
	if err != nil {
		return models.NewChatResponse(
			fmt.Sprintf("Sorry, I couldn't get weather information. %v", err),
			"error", intent.Confidence)
	}

	resp := models.NewChatResponse(a.weather.FormatReport(report), "weather", intent.Confidence)
	resp.ActionsTaken = []string{fmt.Sprintf("Retrieved weather for %s", location)}
	return resp
}

func (a *Assistant) handleNews(ctx context.Context, intent models.UserIntent) *models.ChatResponse {
	var (
		digest *models.NewsDigest
		err    error
		action string
	)
	if terms := intent.Entities.SearchTerms; terms != "" {
		digest, err = a.news.Search(ctx, terms)
		action = fmt.Sprintf("Searched news for '%s'", terms)
	} else {
		digest, err = a.news.Headlines(ctx, intent.Entities.Category)
		category := intent.Entities.Category
		if category == "" {
			category = "general"
		}
		action = fmt.Sprintf("Retrieved %s news", category)
	}
	if err != nil {
		return models.NewChatResponse(
			fmt.Sprintf("Sorry, I couldn't get news information. %v", err),
			"error", intent.Confidence)
	}

	resp := models.NewChatResponse(a.news.FormatDigest(digest), "news", intent.Confidence)
	resp.ActionsTaken = []string{action}
	return resp
}

func (a *Assistant) handleCalendar(ctx context.Context, intent models.UserIntent) *models.ChatResponse {
	// Event creation needs structured input the pattern extractor cannot
	// provide, so the collaborator is not called for it.
	if intent.Entities.Action == "create" {
		resp := models.NewChatResponse(calendarCreateGuidance, "calendar", intent.Confidence)
		resp.Suggestions = []string{"What's on my calendar today?", "Show upcoming events"}
		return resp
	}

	agenda, err := a.calendar.ListEvents(ctx)
	if err != nil {
		return models.NewChatResponse(
			fmt.Sprintf("Sorry, I couldn't access your calendar. %v", err),
			"error", intent.Confidence)
	}

	resp := models.NewChatResponse(a.calendar.FormatAgenda(agenda), "calendar", intent.Confidence)
	resp.ActionsTaken = []string{"Retrieved calendar events"}
	return resp
}

func (a *Assistant) handleGreeting(intent models.UserIntent) *models.ChatResponse {
	var greeting string
	switch hour := a.now().Hour(); {
	case hour < 12:
		greeting = "Good morning! How can I assist you today?"
	case hour < 17:
		greeting = "Good afternoon! What can I help you with?"
	default:
		greeting = "Good evening! How may I be of service?"
	}

	resp := models.NewChatResponse(greeting, "greeting", intent.Confidence)
	resp.Suggestions = append([]string(nil), greetingSuggestions...)
	return resp
}

func (a *Assistant) handleGoodbye(intent models.UserIntent) *models.ChatResponse {
	return models.NewChatResponse(a.pick(farewells), "goodbye", intent.Confidence)
}

func (a *Assistant) handleHelp(intent models.UserIntent) *models.ChatResponse {
	resp := models.NewChatResponse(helpMessage, "help", intent.Confidence)
	resp.Suggestions = []string{"Weather in London", "Latest tech news", "My calendar today"}
	return resp
}

func (a *Assistant) handleThanks(intent models.UserIntent) *models.ChatResponse {
	resp := models.NewChatResponse(a.pick(thanksReplies), "thanks", intent.Confidence)
	resp.Suggestions = []string{"What else can you do?", "Show me the weather", "Latest news please"}
	return resp
}

func (a *Assistant) handleGeneral() *models.ChatResponse {
	// The reply itself carries lower confidence than the classifier's 0.5
	// fallback; the envelope keeps the classifier value.
	resp := models.NewChatResponse(a.pick(generalReplies), "general", 0.3)
	resp.Suggestions = []string{
		"Help - show me what you can do",
		"What's the weather like?",
		"Show me today's news",
		"What's on my calendar?",
	}
	return resp
}
