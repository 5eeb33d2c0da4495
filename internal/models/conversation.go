// ABOUTME: Conversation is a bounded session of messages with shared context
// ABOUTME: Owned by the store; every mutation bumps UpdatedAt and is mutex-guarded
package models

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// MaxMessages caps the message history per conversation. Oldest messages
// are trimmed once the cap is exceeded.
const MaxMessages = 50

// Conversation groups related utterances and replies with a context map
// and user preferences. It is owned exclusively by the conversation store
// and mutated only through its own methods.
type Conversation struct {
	ID          string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Preferences map[string]string

	mu       sync.Mutex
	messages []Message
	context  map[string]any
}

// NewConversation creates an empty conversation with a fresh unique id.
// Preferences are set at creation time and never auto-mutated.
func NewConversation(preferences map[string]string) *Conversation {
	if preferences == nil {
		preferences = map[string]string{}
	}
	now := time.Now()
	return &Conversation{
		ID:          uuid.New().String(),
		CreatedAt:   now,
		UpdatedAt:   now,
		Preferences: preferences,
		context:     map[string]any{},
	}
}

// AddMessage appends a message and trims the history to MaxMessages,
// dropping the oldest entries first.
func (c *Conversation) AddMessage(content string, isUser bool, msgType MessageType, metadata map[string]any) Message {
	c.mu.Lock()
	defer c.mu.Unlock()

	msg := NewMessage(content, isUser, msgType, metadata)
	c.messages = append(c.messages, msg)
	if len(c.messages) > MaxMessages {
		c.messages = c.messages[len(c.messages)-MaxMessages:]
	}
	c.UpdatedAt = msg.Timestamp
	return msg
}

// Recent returns up to n of the most recent messages in chronological order.
func (c *Conversation) Recent(n int) []Message {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n <= 0 || len(c.messages) == 0 {
		return nil
	}
	if n > len(c.messages) {
		n = len(c.messages)
	}
	out := make([]Message, n)
	copy(out, c.messages[len(c.messages)-n:])
	return out
}

// MessageCount returns the number of retained messages.
func (c *Conversation) MessageCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.messages)
}

// SetContext stores a context value and bumps UpdatedAt.
func (c *Conversation) SetContext(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.context[key] = value
	c.UpdatedAt = time.Now()
}

// Context returns a context value, or nil when the key is unset.
func (c *Conversation) Context(key string) any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.context[key]
}

// ContextSnapshot returns a copy of the context map for read-only use.
func (c *Conversation) ContextSnapshot() map[string]any {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]any, len(c.context))
	for k, v := range c.context {
		out[k] = v
	}
	return out
}

// LastUpdated returns UpdatedAt under the conversation lock.
func (c *Conversation) LastUpdated() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.UpdatedAt
}

// Info is a read-only summary of a conversation for outward surfaces.
type Info struct {
	ID           string            `json:"id"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
	MessageCount int               `json:"message_count"`
	Context      map[string]any    `json:"context"`
	Preferences  map[string]string `json:"user_preferences"`
}

// Summary builds an Info snapshot of the conversation.
func (c *Conversation) Summary() Info {
	c.mu.Lock()
	defer c.mu.Unlock()

	ctx := make(map[string]any, len(c.context))
	for k, v := range c.context {
		ctx[k] = v
	}
	return Info{
		ID:           c.ID,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
		MessageCount: len(c.messages),
		Context:      ctx,
		Preferences:  c.Preferences,
	}
}
