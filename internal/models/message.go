// ABOUTME: Message represents a single utterance or reply inside a conversation
// ABOUTME: Immutable once created; carries origin flag, type tag and metadata
package models

import (
	"time"

	"github.com/google/uuid"
)

// MessageType tags how a message was produced
type MessageType string

const (
	MessageTypeText  MessageType = "text"
	MessageTypeVoice MessageType = "voice"
	MessageTypeImage MessageType = "image"
)

// Message is one utterance (user) or reply (assistant) in a conversation.
// Messages are never mutated after they are appended.
type Message struct {
	ID        string         `json:"id"`
	Content   string         `json:"content"`
	Timestamp time.Time      `json:"timestamp"`
	IsUser    bool           `json:"is_user"`
	Type      MessageType    `json:"message_type"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// NewMessage creates a message with a fresh unique id and the current time.
func NewMessage(content string, isUser bool, msgType MessageType, metadata map[string]any) Message {
	if msgType == "" {
		msgType = MessageTypeText
	}
	if metadata == nil {
		metadata = map[string]any{}
	}
	return Message{
		ID:        uuid.New().String(),
		Content:   content,
		Timestamp: time.Now(),
		IsUser:    isUser,
		Type:      msgType,
		Metadata:  metadata,
	}
}
