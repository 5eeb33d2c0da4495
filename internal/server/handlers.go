// ABOUTME: HTTP handlers for the chat, history, suggestions and health routes
// ABOUTME: Mirrors the envelope shapes of the assistant's outward contract
package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"
)

type messageRequest struct {
	Message        string            `json:"message"`
	ConversationID string            `json:"conversation_id,omitempty"`
	Preferences    map[string]string `json:"user_preferences,omitempty"`
}

func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	message := sanitizeInput(req.Message, maxMessageLength)
	if message == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	result := s.assistant.Process(r.Context(), message, req.ConversationID, req.Preferences)
	if !result.Success {
		writeError(w, http.StatusInternalServerError, result.Error)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"response": map[string]any{
			"message":       result.Response.Message,
			"response_type": result.Response.ResponseType,
			"confidence":    result.Response.Confidence,
			"actions_taken": result.Response.ActionsTaken,
			"suggestions":   result.Response.Suggestions,
			"timestamp":     result.Response.Timestamp.Format(time.RFC3339),
		},
		"conversation_id":   result.ConversationID,
		"intent":            result.Intent,
		"intent_confidence": result.Confidence,
	})
}

func (s *Server) handleNewConversation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Preferences map[string]string `json:"user_preferences,omitempty"`
	}
	// An empty body is fine; preferences are optional.
	_ = json.NewDecoder(r.Body).Decode(&req)

	// A conversation starts by greeting it, matching the chat flow.
	result := s.assistant.Process(r.Context(), "Hello", "", req.Preferences)
	if !result.Success {
		writeError(w, http.StatusInternalServerError, result.Error)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":         true,
		"conversation_id": result.ConversationID,
		"initial_response": map[string]any{
			"message":     result.Response.Message,
			"suggestions": result.Response.Suggestions,
		},
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	conversationID := r.PathValue("id")

	limit := s.historyLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	if limit < 1 {
		limit = 1
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	messages := s.assistant.History(conversationID, limit)

	formatted := make([]map[string]any, 0, len(messages))
	for _, msg := range messages {
		formatted = append(formatted, map[string]any{
			"id":           msg.ID,
			"content":      msg.Content,
			"timestamp":    msg.Timestamp.Format(time.RFC3339),
			"is_user":      msg.IsUser,
			"message_type": msg.Type,
			"metadata":     msg.Metadata,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":         true,
		"conversation_id": conversationID,
		"messages":        formatted,
		"total_messages":  len(formatted),
	})
}

func (s *Server) handleConversationInfo(w http.ResponseWriter, r *http.Request) {
	info, ok := s.assistant.ConversationInfo(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "conversation not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"conversation": info,
	})
}

func (s *Server) handleSuggestions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"suggestions": []map[string]string{
			{"text": "What's the weather like today?", "category": "weather", "description": "Get current weather information"},
			{"text": "Show me the latest news", "category": "news", "description": "Get current news headlines"},
			{"text": "What's on my calendar today?", "category": "calendar", "description": "View today's calendar events"},
			{"text": "Technology news", "category": "news", "description": "Get latest technology news"},
			{"text": "Weather forecast for this week", "category": "weather", "description": "Get weather forecast"},
			{"text": "Help - what can you do?", "category": "help", "description": "Learn about available features"},
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "aide",
	})
}

func (s *Server) handlePing(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("pong"))
}
