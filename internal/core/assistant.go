// ABOUTME: Assistant orchestrates classify -> extract -> dispatch for each utterance
// ABOUTME: Owns the conversation store and serializes turns per conversation
package core

import (
	"context"
	"log"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/pmcavoy/aide/internal/models"
	"github.com/pmcavoy/aide/internal/store"
)

// WeatherProvider is the weather collaborator contract consumed by the core.
type WeatherProvider interface {
	CurrentWeather(ctx context.Context, location string) (*models.WeatherReport, error)
	Forecast(ctx context.Context, location string) (*models.WeatherReport, error)
	IntentKeywords() []string
	FormatReport(report *models.WeatherReport) string
}

// NewsProvider is the news collaborator contract consumed by the core.
type NewsProvider interface {
	Headlines(ctx context.Context, category string) (*models.NewsDigest, error)
	Search(ctx context.Context, terms string) (*models.NewsDigest, error)
	IntentKeywords() []string
	DetectCategory(query string) string
	FormatDigest(digest *models.NewsDigest) string
}

// CalendarProvider is the calendar collaborator contract consumed by the
// core. Create/update/delete live on the concrete client but are not
// reachable through the dispatch table.
type CalendarProvider interface {
	ListEvents(ctx context.Context) (*models.Agenda, error)
	IntentKeywords() []string
	FormatAgenda(agenda *models.Agenda) string
}

// Assistant routes utterances to domain handlers and maintains per-session
// conversation state. All errors are absorbed: collaborator failures become
// error-typed ChatResponses, anything else a failed ProcessResult.
type Assistant struct {
	store      *store.Store
	weather    WeatherProvider
	news       NewsProvider
	calendar   CalendarProvider
	classifier *Classifier
	extractor  *Extractor

	randInt func(n int) int
	now     func() time.Time

	turnMu sync.Mutex
	turns  map[string]*turnLock
}

// turnLock serializes turns on one conversation. refs counts holders and
// waiters so idle entries can be pruned; guarded by Assistant.turnMu.
type turnLock struct {
	mu   sync.Mutex
	refs int
}

// Option configures an Assistant.
type Option func(*Assistant)

// WithRand makes reply selection deterministic for tests.
func WithRand(r *rand.Rand) Option {
	return func(a *Assistant) { a.randInt = r.IntN }
}

// WithClock injects the clock used for greeting selection and context
// timestamps.
func WithClock(now func() time.Time) Option {
	return func(a *Assistant) { a.now = now }
}

// New creates an Assistant over the given store and collaborators. The
// lexicon is assembled from the collaborators' own keyword lists.
func New(s *store.Store, weather WeatherProvider, news NewsProvider, calendar CalendarProvider, opts ...Option) *Assistant {
	a := &Assistant{
		store:      s,
		weather:    weather,
		news:       news,
		calendar:   calendar,
		classifier: NewClassifier(BuildLexicon(weather.IntentKeywords(), news.IntentKeywords(), calendar.IntentKeywords())),
		extractor:  NewExtractor(news.DetectCategory),
		randInt:    rand.IntN,
		now:        time.Now,
		turns:      map[string]*turnLock{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Process handles one utterance: resolve the conversation, append the user
// message, classify, extract, dispatch to exactly one handler, append the
// assistant reply and update context. Collaborator failures still return
// Success=true with an error-typed response inside; only internal failures
// yield Success=false.
func (a *Assistant) Process(ctx context.Context, utterance, conversationID string, preferences map[string]string) (result *models.ProcessResult) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("internal error processing message: %v", r)
			result = &models.ProcessResult{
				Success: false,
				Error:   "failed to process message",
			}
		}
	}()

	conv := a.store.GetOrCreate(conversationID, preferences)

	// One turn at a time per conversation; distinct conversations proceed
	// independently.
	lock := a.acquireTurn(conv.ID)
	defer a.releaseTurn(lock)

	conv.AddMessage(utterance, true, models.MessageTypeText, nil)

	intent := a.classifier.Classify(utterance)
	intent.Entities = a.extractor.Extract(utterance, intent.Intent)

	response := a.dispatch(ctx, intent, conv)

	conv.AddMessage(response.Message, false, models.MessageTypeText, nil)
	conv.SetContext("last_intent", string(intent.Intent))
	conv.SetContext("last_message_time", a.now())

	return &models.ProcessResult{
		Success:        true,
		Response:       response,
		ConversationID: conv.ID,
		Intent:         intent.Intent,
		Confidence:     intent.Confidence,
	}
}

// History returns up to limit recent messages in chronological order;
// empty when the conversation is unknown.
func (a *Assistant) History(conversationID string, limit int) []models.Message {
	if limit <= 0 {
		limit = 20
	}
	return a.store.History(conversationID, limit)
}

// ConversationInfo returns a conversation summary, or false when unknown.
func (a *Assistant) ConversationInfo(conversationID string) (models.Info, bool) {
	conv := a.store.Get(conversationID)
	if conv == nil {
		return models.Info{}, false
	}
	return conv.Summary(), true
}

// dispatch selects exactly one handler by intent name.
func (a *Assistant) dispatch(ctx context.Context, intent models.UserIntent, conv *models.Conversation) *models.ChatResponse {
	switch intent.Intent {
	case models.IntentWeather:
		return a.handleWeather(ctx, intent, conv)
	case models.IntentNews:
		return a.handleNews(ctx, intent)
	case models.IntentCalendar:
		return a.handleCalendar(ctx, intent)
	case models.IntentGreeting:
		return a.handleGreeting(intent)
	case models.IntentGoodbye:
		return a.handleGoodbye(intent)
	case models.IntentHelp:
		return a.handleHelp(intent)
	case models.IntentThanks:
		return a.handleThanks(intent)
	default:
		return a.handleGeneral()
	}
}

// acquireTurn locks the per-conversation turn mutex, creating it on first
// use. Locks survive store eviction so an in-flight turn always finishes.
func (a *Assistant) acquireTurn(conversationID string) *turnLock {
	a.turnMu.Lock()
	lock, ok := a.turns[conversationID]
	if !ok {
		lock = &turnLock{}
		a.turns[conversationID] = lock
	}
	lock.refs++
	a.turnMu.Unlock()

	lock.mu.Lock()
	return lock
}

// releaseTurn unlocks the turn and prunes entries for conversations the
// store has evicted, so the lock map stays bounded near store capacity.
func (a *Assistant) releaseTurn(lock *turnLock) {
	lock.mu.Unlock()

	a.turnMu.Lock()
	lock.refs--
	for id, l := range a.turns {
		if l.refs == 0 && a.store.Get(id) == nil {
			delete(a.turns, id)
		}
	}
	a.turnMu.Unlock()
}

// pick selects one of the candidate strings.
func (a *Assistant) pick(candidates []string) string {
	return candidates[a.randInt(len(candidates))]
}
