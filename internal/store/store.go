// ABOUTME: In-memory registry of bounded conversation sessions
// ABOUTME: Evicts least-recently-updated conversations beyond a fixed capacity
package store

import (
	"sort"
	"sync"

	"github.com/pmcavoy/aide/internal/models"
)

// DefaultCapacity is the number of live conversations retained.
const DefaultCapacity = 10

// Store owns all conversation objects. Callers must not retain
// conversation references across calls that may trigger eviction.
type Store struct {
	mu            sync.Mutex
	capacity      int
	conversations map[string]*models.Conversation
}

// New creates a store with the given capacity; values < 1 fall back to
// DefaultCapacity.
func New(capacity int) *Store {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Store{
		capacity:      capacity,
		conversations: map[string]*models.Conversation{},
	}
}

// GetOrCreate returns the conversation for id when known; otherwise it
// creates a fresh conversation with the given preferences, registers it,
// and evicts the least-recently-updated conversations beyond capacity.
func (s *Store) GetOrCreate(id string, preferences map[string]string) *models.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id != "" {
		if conv, ok := s.conversations[id]; ok {
			return conv
		}
	}

	conv := models.NewConversation(preferences)
	s.conversations[conv.ID] = conv
	s.evictLocked()
	return conv
}

// Get returns the conversation for id, or nil when unknown.
func (s *Store) Get(id string) *models.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conversations[id]
}

// History returns up to limit of the most recent messages for id in
// chronological order; nil when the conversation is unknown.
func (s *Store) History(id string, limit int) []models.Message {
	s.mu.Lock()
	conv := s.conversations[id]
	s.mu.Unlock()

	if conv == nil {
		return nil
	}
	return conv.Recent(limit)
}

// Len reports the number of live conversations.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conversations)
}

// evictLocked drops the least-recently-updated conversations until the
// store is back at capacity. Caller holds s.mu.
func (s *Store) evictLocked() {
	if len(s.conversations) <= s.capacity {
		return
	}

	type entry struct {
		id      string
		updated int64
	}
	entries := make([]entry, 0, len(s.conversations))
	for id, conv := range s.conversations {
		entries = append(entries, entry{id: id, updated: conv.LastUpdated().UnixNano()})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].updated < entries[j].updated })

	for _, e := range entries[:len(entries)-s.capacity] {
		delete(s.conversations, e.id)
	}
}
