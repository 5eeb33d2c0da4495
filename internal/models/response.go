// ABOUTME: Response envelopes produced by the dispatcher and its handlers
// ABOUTME: ChatResponse per handler, ProcessResult as the outward envelope
package models

import "time"

// ChatResponse is the uniform handler output for one processed utterance.
type ChatResponse struct {
	Message      string         `json:"message"`
	ResponseType string         `json:"response_type"` // mirrors the intent, or "error"
	Confidence   float64        `json:"confidence"`
	ActionsTaken []string       `json:"actions_taken,omitempty"`
	Suggestions  []string       `json:"suggestions,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	Timestamp    time.Time      `json:"timestamp"`
}

// NewChatResponse builds a timestamped ChatResponse.
func NewChatResponse(message, responseType string, confidence float64) *ChatResponse {
	return &ChatResponse{
		Message:      message,
		ResponseType: responseType,
		Confidence:   confidence,
		Timestamp:    time.Now(),
	}
}

// ProcessResult is the structured outcome of processing one utterance.
// Success is false only for internal failures; collaborator errors still
// yield Success=true with an error-typed ChatResponse inside.
type ProcessResult struct {
	Success        bool          `json:"success"`
	Response       *ChatResponse `json:"response,omitempty"`
	ConversationID string        `json:"conversation_id,omitempty"`
	Intent         Intent        `json:"intent,omitempty"`
	Confidence     float64       `json:"confidence,omitempty"`
	Error          string        `json:"error,omitempty"`
}
