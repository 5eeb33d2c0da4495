// ABOUTME: Tests for the bounded conversation registry
// ABOUTME: Verifies idempotent lookup, eviction order and history reads
package store

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/pmcavoy/aide/internal/models"
)

func TestGetOrCreate_NewConversation(t *testing.T) {
	s := New(DefaultCapacity)

	conv := s.GetOrCreate("", map[string]string{"location": "Berlin"})

	if conv.ID == "" {
		t.Error("new conversation should have a fresh id")
	}
	if conv.Preferences["location"] != "Berlin" {
		t.Errorf("Preferences[location] = %q, want Berlin", conv.Preferences["location"])
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
}

func TestGetOrCreate_Idempotent(t *testing.T) {
	s := New(DefaultCapacity)

	first := s.GetOrCreate("", nil)
	first.AddMessage("hello", true, models.MessageTypeText, nil)

	second := s.GetOrCreate(first.ID, nil)

	if second != first {
		t.Fatal("GetOrCreate with a known id must return the same instance")
	}
	if second.MessageCount() != 1 {
		t.Errorf("MessageCount = %d, want 1", second.MessageCount())
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
}

func TestGetOrCreate_UnknownIDCreatesFresh(t *testing.T) {
	s := New(DefaultCapacity)

	conv := s.GetOrCreate("never-seen-before", nil)

	// Unknown ids are not adopted; the store assigns its own.
	if conv.ID == "never-seen-before" {
		t.Error("store should mint a fresh id instead of adopting the unknown one")
	}
	if s.Get("never-seen-before") != nil {
		t.Error("unknown id should not be registered")
	}
}

func TestGet(t *testing.T) {
	s := New(DefaultCapacity)
	conv := s.GetOrCreate("", nil)

	if s.Get(conv.ID) != conv {
		t.Error("Get should return the registered conversation")
	}
	if s.Get("missing") != nil {
		t.Error("Get should return nil for unknown ids")
	}
}

func TestEviction_DropsLeastRecentlyUpdated(t *testing.T) {
	s := New(DefaultCapacity)

	var ids []string
	for i := 0; i < DefaultCapacity; i++ {
		conv := s.GetOrCreate("", nil)
		conv.AddMessage(fmt.Sprintf("m%d", i), true, models.MessageTypeText, nil)
		ids = append(ids, conv.ID)
		time.Sleep(time.Millisecond)
	}

	// Touch the oldest so the second-oldest becomes the eviction victim.
	s.Get(ids[0]).AddMessage("touched", true, models.MessageTypeText, nil)
	time.Sleep(time.Millisecond)

	eleventh := s.GetOrCreate("", nil)

	if s.Len() != DefaultCapacity {
		t.Fatalf("Len = %d, want %d after eviction", s.Len(), DefaultCapacity)
	}
	if s.Get(ids[1]) != nil {
		t.Error("least-recently-updated conversation should have been evicted")
	}
	if s.Get(ids[0]) == nil {
		t.Error("recently touched conversation should survive")
	}
	if s.Get(eleventh.ID) == nil {
		t.Error("newest conversation should survive")
	}
}

func TestEviction_ExactlyOnePerOverflow(t *testing.T) {
	s := New(3)

	for i := 0; i < 6; i++ {
		s.GetOrCreate("", nil)
		time.Sleep(time.Millisecond)
	}

	if s.Len() != 3 {
		t.Errorf("Len = %d, want capacity 3", s.Len())
	}
}

func TestNew_InvalidCapacityFallsBack(t *testing.T) {
	s := New(0)

	for i := 0; i < DefaultCapacity+1; i++ {
		s.GetOrCreate("", nil)
		time.Sleep(time.Millisecond)
	}

	if s.Len() != DefaultCapacity {
		t.Errorf("Len = %d, want %d", s.Len(), DefaultCapacity)
	}
}

func TestHistory(t *testing.T) {
	s := New(DefaultCapacity)
	conv := s.GetOrCreate("", nil)
	for i := 0; i < 5; i++ {
		conv.AddMessage(fmt.Sprintf("m%d", i), true, models.MessageTypeText, nil)
	}

	got := s.History(conv.ID, 3)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[0].Content != "m2" || got[2].Content != "m4" {
		t.Errorf("History = [%q..%q], want chronological tail [m2..m4]", got[0].Content, got[2].Content)
	}
}

func TestHistory_UnknownConversation(t *testing.T) {
	s := New(DefaultCapacity)

	if got := s.History("missing", 5); got != nil {
		t.Errorf("History = %v, want nil for unknown conversation", got)
	}
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := New(DefaultCapacity)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			conv := s.GetOrCreate("", nil)
			conv.AddMessage("x", true, models.MessageTypeText, nil)
			s.History(conv.ID, 10)
		}()
	}
	wg.Wait()

	if s.Len() > DefaultCapacity {
		t.Errorf("Len = %d, must never exceed capacity", s.Len())
	}
}
