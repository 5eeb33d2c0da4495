// ABOUTME: Tests for the assistant's process pipeline and dispatch behavior
// ABOUTME: Uses fake collaborators to isolate classification and orchestration
package core

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pmcavoy/aide/internal/models"
	"github.com/pmcavoy/aide/internal/store"
)

type fakeWeather struct {
	report      *models.WeatherReport
	err         error
	lastCall    string
	lastLoc     string
	currentHits int
	forecastHit int
}

func (f *fakeWeather) CurrentWeather(ctx context.Context, location string) (*models.WeatherReport, error) {
	f.lastCall, f.lastLoc = "current", location
	f.currentHits++
	return f.report, f.err
}

func (f *fakeWeather) Forecast(ctx context.Context, location string) (*models.WeatherReport, error) {
	f.lastCall, f.lastLoc = "forecast", location
	f.forecastHit++
	return f.report, f.err
}

func (f *fakeWeather) IntentKeywords() []string { return testWeatherKeywords }

func (f *fakeWeather) FormatReport(report *models.WeatherReport) string {
	return "weather: " + report.Description
}

type fakeNews struct {
	digest    *models.NewsDigest
	err       error
	lastCall  string
	lastQuery string
}

func (f *fakeNews) Headlines(ctx context.Context, category string) (*models.NewsDigest, error) {
	f.lastCall, f.lastQuery = "headlines", category
	return f.digest, f.err
}

func (f *fakeNews) Search(ctx context.Context, terms string) (*models.NewsDigest, error) {
	f.lastCall, f.lastQuery = "search", terms
	return f.digest, f.err
}

func (f *fakeNews) IntentKeywords() []string { return testNewsKeywords }

func (f *fakeNews) DetectCategory(query string) string {
	if strings.Contains(strings.ToLower(query), "technology") {
		return "technology"
	}
	return ""
}

func (f *fakeNews) FormatDigest(digest *models.NewsDigest) string {
	return fmt.Sprintf("news: %d articles", len(digest.Articles))
}

type fakeCalendar struct {
	agenda *models.Agenda
	err    error
	calls  int
}

func (f *fakeCalendar) ListEvents(ctx context.Context) (*models.Agenda, error) {
	f.calls++
	return f.agenda, f.err
}

func (f *fakeCalendar) IntentKeywords() []string { return testCalendarKeywords }

func (f *fakeCalendar) FormatAgenda(agenda *models.Agenda) string {
	return fmt.Sprintf("calendar: %d events", len(agenda.Events))
}

func newTestAssistant(opts ...Option) (*Assistant, *fakeWeather, *fakeNews, *fakeCalendar) {
	weather := &fakeWeather{report: &models.WeatherReport{Description: "clear sky"}}
	news := &fakeNews{digest: &models.NewsDigest{Articles: []models.Article{{Title: "t"}}}}
	calendar := &fakeCalendar{agenda: &models.Agenda{Action: "list"}}
	a := New(store.New(store.DefaultCapacity), weather, news, calendar, opts...)
	return a, weather, news, calendar
}

func TestProcess_Greeting(t *testing.T) {
	a, _, _, _ := newTestAssistant()

	result := a.Process(context.Background(), "Hello", "", nil)

	if !result.Success {
		t.Fatalf("Success = false, error = %q", result.Error)
	}
	if result.ConversationID == "" {
		t.Error("ConversationID should be freshly generated")
	}
	if result.Intent != models.IntentGreeting {
		t.Errorf("Intent = %q, want greeting", result.Intent)
	}
	if result.Response.ResponseType != "greeting" {
		t.Errorf("ResponseType = %q, want greeting", result.Response.ResponseType)
	}
	if len(result.Response.Suggestions) == 0 {
		t.Error("greeting should carry follow-up suggestions")
	}
}

func TestProcess_GreetingVariesByTimeOfDay(t *testing.T) {
	tests := []struct {
		hour int
		want string
	}{
		{8, "Good morning"},
		{14, "Good afternoon"},
		{20, "Good evening"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			clock := func() time.Time {
				return time.Date(2025, 6, 1, tt.hour, 0, 0, 0, time.UTC)
			}
			a, _, _, _ := newTestAssistant(WithClock(clock))

			result := a.Process(context.Background(), "Hello", "", nil)
			if !strings.HasPrefix(result.Response.Message, tt.want) {
				t.Errorf("Message = %q, want prefix %q", result.Response.Message, tt.want)
			}
		})
	}
}

func TestProcess_AppendsUserAndAssistantMessages(t *testing.T) {
	a, _, _, _ := newTestAssistant()

	result := a.Process(context.Background(), "Hello", "", nil)

	history := a.History(result.ConversationID, 10)
	if len(history) != 2 {
		t.Fatalf("history length = %d, want 2", len(history))
	}
	if !history[0].IsUser || history[0].Content != "Hello" {
		t.Errorf("first message = %+v, want user 'Hello'", history[0])
	}
	if history[1].IsUser || history[1].Content != result.Response.Message {
		t.Errorf("second message = %+v, want assistant reply", history[1])
	}
}

func TestProcess_UpdatesContext(t *testing.T) {
	a, _, _, _ := newTestAssistant()

	result := a.Process(context.Background(), "Hello", "", nil)

	info, ok := a.ConversationInfo(result.ConversationID)
	if !ok {
		t.Fatal("conversation not found")
	}
	if info.Context["last_intent"] != "greeting" {
		t.Errorf("last_intent = %v, want greeting", info.Context["last_intent"])
	}
	if info.Context["last_message_time"] == nil {
		t.Error("last_message_time should be set")
	}
}

func TestProcess_ContinuesExistingConversation(t *testing.T) {
	a, _, _, _ := newTestAssistant()

	first := a.Process(context.Background(), "Hello", "", nil)
	second := a.Process(context.Background(), "Thanks", first.ConversationID, nil)

	if second.ConversationID != first.ConversationID {
		t.Errorf("ConversationID changed: %q -> %q", first.ConversationID, second.ConversationID)
	}
	if got := len(a.History(first.ConversationID, 10)); got != 4 {
		t.Errorf("history length = %d, want 4", got)
	}
}

func TestProcess_WeatherUsesExtractedLocation(t *testing.T) {
	a, weather, _, _ := newTestAssistant()

	result := a.Process(context.Background(), "What's the weather in Paris tomorrow?", "", nil)

	if result.Intent != models.IntentWeather {
		t.Fatalf("Intent = %q, want weather", result.Intent)
	}
	if weather.lastCall != "forecast" {
		t.Errorf("call = %q, want forecast for a dated query", weather.lastCall)
	}
	if weather.lastLoc != "Paris" {
		t.Errorf("location = %q, want Paris", weather.lastLoc)
	}
	if len(result.Response.ActionsTaken) != 1 || result.Response.ActionsTaken[0] != "Retrieved weather for Paris" {
		t.Errorf("ActionsTaken = %v", result.Response.ActionsTaken)
	}
}

func TestProcess_WeatherFallsBackToPreferenceLocation(t *testing.T) {
	a, weather, _, _ := newTestAssistant()

	a.Process(context.Background(), "How cold is it?", "", map[string]string{"location": "Oslo"})

	if weather.lastCall != "current" {
		t.Errorf("call = %q, want current", weather.lastCall)
	}
	if weather.lastLoc != "Oslo" {
		t.Errorf("location = %q, want preference fallback Oslo", weather.lastLoc)
	}
}

func TestProcess_WeatherDefaultsToCurrentLocation(t *testing.T) {
	a, weather, _, _ := newTestAssistant()

	a.Process(context.Background(), "How cold is it?", "", nil)

	if weather.lastLoc != "current location" {
		t.Errorf("location = %q, want \"current location\"", weather.lastLoc)
	}
}

func TestProcess_CollaboratorFailureIsErrorResponse(t *testing.T) {
	a, weather, _, _ := newTestAssistant()
	weather.report = nil
	weather.err = errors.New("city not found: Nowhereland")

	result := a.Process(context.Background(), "weather in Nowhereland", "", nil)

	// The envelope succeeds; only the response inside carries the error.
	if !result.Success {
		t.Fatalf("Success = false, want true for collaborator failure")
	}
	if result.Response.ResponseType != "error" {
		t.Errorf("ResponseType = %q, want error", result.Response.ResponseType)
	}
	if !strings.Contains(result.Response.Message, "city not found: Nowhereland") {
		t.Errorf("Message = %q, should embed the collaborator error", result.Response.Message)
	}
}

func TestProcess_NewsSearchVersusHeadlines(t *testing.T) {
	a, _, news, _ := newTestAssistant()

	a.Process(context.Background(), "News about climate change", "", nil)
	if news.lastCall != "search" {
		t.Errorf("call = %q, want search", news.lastCall)
	}
	if news.lastQuery != "climate" {
		t.Errorf("query = %q, want climate", news.lastQuery)
	}

	result := a.Process(context.Background(), "Show me technology news", "", nil)
	if news.lastCall != "headlines" {
		t.Errorf("call = %q, want headlines", news.lastCall)
	}
	if news.lastQuery != "technology" {
		t.Errorf("category = %q, want technology", news.lastQuery)
	}
	if len(result.Response.ActionsTaken) != 1 || result.Response.ActionsTaken[0] != "Retrieved technology news" {
		t.Errorf("ActionsTaken = %v", result.Response.ActionsTaken)
	}
}

func TestProcess_CalendarCreateReturnsGuidanceWithoutCollaboratorCall(t *testing.T) {
	a, _, _, calendar := newTestAssistant()

	result := a.Process(context.Background(), "Schedule a meeting tomorrow", "", nil)

	if result.Intent != models.IntentCalendar {
		t.Fatalf("Intent = %q, want calendar", result.Intent)
	}
	if calendar.calls != 0 {
		t.Errorf("ListEvents called %d times, want 0 for create", calendar.calls)
	}
	if !strings.Contains(result.Response.Message, "Schedule a meeting tomorrow at 2 PM") {
		t.Errorf("Message = %q, want the fixed creation guidance", result.Response.Message)
	}
}

func TestProcess_CalendarList(t *testing.T) {
	a, _, _, calendar := newTestAssistant()

	result := a.Process(context.Background(), "What's on my calendar today?", "", nil)

	if calendar.calls != 1 {
		t.Errorf("ListEvents called %d times, want 1", calendar.calls)
	}
	if result.Response.ResponseType != "calendar" {
		t.Errorf("ResponseType = %q, want calendar", result.Response.ResponseType)
	}
}

func TestProcess_GeneralFallback(t *testing.T) {
	a, _, _, _ := newTestAssistant(WithRand(rand.New(rand.NewPCG(1, 2))))

	result := a.Process(context.Background(), "zxqv blorp", "", nil)

	if result.Intent != models.IntentGeneral {
		t.Fatalf("Intent = %q, want general", result.Intent)
	}
	if result.Confidence != 0.5 {
		t.Errorf("envelope confidence = %v, want classifier fallback 0.5", result.Confidence)
	}
	if result.Response.Confidence != 0.3 {
		t.Errorf("response confidence = %v, want 0.3", result.Response.Confidence)
	}
	if len(result.Response.Suggestions) != 4 {
		t.Errorf("suggestions = %v, want four", result.Response.Suggestions)
	}
}

func TestProcess_DeterministicReplySelection(t *testing.T) {
	a1, _, _, _ := newTestAssistant(WithRand(rand.New(rand.NewPCG(7, 7))))
	a2, _, _, _ := newTestAssistant(WithRand(rand.New(rand.NewPCG(7, 7))))

	r1 := a1.Process(context.Background(), "goodbye", "", nil)
	r2 := a2.Process(context.Background(), "goodbye", "", nil)

	if r1.Response.Message != r2.Response.Message {
		t.Errorf("same seed gave different farewells: %q vs %q", r1.Response.Message, r2.Response.Message)
	}
}

func TestProcess_PanicRecovery(t *testing.T) {
	a, weather, _, _ := newTestAssistant()
	weather.report = nil // FormatReport will dereference nil

	result := a.Process(context.Background(), "weather in Paris", "", nil)

	if result.Success {
		t.Fatal("Success = true, want false after internal panic")
	}
	if result.Error != "failed to process message" {
		t.Errorf("Error = %q, want generic internal failure text", result.Error)
	}
}

func TestHistory_UnknownConversation(t *testing.T) {
	a, _, _, _ := newTestAssistant()

	if got := a.History("no-such-id", 10); len(got) != 0 {
		t.Errorf("History = %v, want empty for unknown conversation", got)
	}
}

func TestConversationInfo_Unknown(t *testing.T) {
	a, _, _, _ := newTestAssistant()

	if _, ok := a.ConversationInfo("no-such-id"); ok {
		t.Error("ConversationInfo should report unknown conversations")
	}
}

func TestProcess_ConcurrentTurnsSameConversation(t *testing.T) {
	a, _, _, _ := newTestAssistant()

	first := a.Process(context.Background(), "Hello", "", nil)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a.Process(context.Background(), "thanks", first.ConversationID, nil)
		}()
	}
	wg.Wait()

	// 1 greeting turn + 10 thanks turns, two messages each.
	if got := len(a.History(first.ConversationID, 50)); got != 22 {
		t.Errorf("history length = %d, want 22", got)
	}
}

func TestProcess_PrunesTurnLocksAfterEviction(t *testing.T) {
	a, _, _, _ := newTestAssistant()

	// Overrun the store so the oldest conversations get evicted.
	for i := 0; i < store.DefaultCapacity+5; i++ {
		result := a.Process(context.Background(), "hello there", "", nil)
		if !result.Success {
			t.Fatalf("Process() failed: %s", result.Error)
		}
	}

	a.turnMu.Lock()
	locks := len(a.turns)
	a.turnMu.Unlock()

	if locks != store.DefaultCapacity {
		t.Errorf("turn locks = %d, want %d (entries for evicted conversations pruned)", locks, store.DefaultCapacity)
	}
}
