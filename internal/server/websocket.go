// ABOUTME: WebSocket endpoint for interactive chat sessions
// ABOUTME: One connection maps to one conversation; frames are JSON envelopes
package server

import (
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type wsInbound struct {
	Text        string            `json:"text"`
	Preferences map[string]string `json:"user_preferences,omitempty"`
}

type wsOutbound struct {
	Type           string   `json:"type"`
	Message        string   `json:"message,omitempty"`
	ResponseType   string   `json:"response_type,omitempty"`
	Intent         string   `json:"intent,omitempty"`
	Confidence     float64  `json:"confidence,omitempty"`
	Suggestions    []string `json:"suggestions,omitempty"`
	ConversationID string   `json:"conversation_id,omitempty"`
	Error          string   `json:"error,omitempty"`
	Timestamp      string   `json:"timestamp,omitempty"`
}

func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || s.corsOrigins["*"] || s.corsOrigins[origin]
		},
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	conversationID := r.URL.Query().Get("conversation_id")
	if conversationID == "" {
		conversationID = uuid.New().String()
	}

	if err := conn.WriteJSON(wsOutbound{
		Type:           "connected",
		ConversationID: conversationID,
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
	}); err != nil {
		log.Printf("websocket write failed: %v", err)
		return
	}

	for {
		var in wsInbound
		if err := conn.ReadJSON(&in); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("websocket read failed: %v", err)
			}
			return
		}

		text := sanitizeInput(in.Text, maxMessageLength)
		if text == "" {
			if err := conn.WriteJSON(wsOutbound{Type: "error", Error: "message is required"}); err != nil {
				return
			}
			continue
		}

		result := s.assistant.Process(r.Context(), text, conversationID, in.Preferences)
		// The store mints a fresh id for unknown conversations; track
		// whatever it settled on so later turns share one history.
		conversationID = result.ConversationID
		out := wsOutbound{
			Type:           "response",
			ConversationID: result.ConversationID,
		}
		if result.Success {
			out.Message = result.Response.Message
			out.ResponseType = result.Response.ResponseType
			out.Intent = string(result.Intent)
			out.Confidence = result.Confidence
			out.Suggestions = result.Response.Suggestions
			out.Timestamp = result.Response.Timestamp.Format(time.RFC3339)
		} else {
			out.Type = "error"
			out.Error = result.Error
		}
		if err := conn.WriteJSON(out); err != nil {
			log.Printf("websocket write failed: %v", err)
			return
		}
	}
}
