// ABOUTME: Thin HTTP adapter exposing the assistant over a JSON API
// ABOUTME: Routing, CORS and input sanitization; all logic stays in the core
package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pmcavoy/aide/internal/core"
)

const (
	maxMessageLength = 1000
	defaultLimit     = 20
	maxLimit         = 100
)

// Server wires the assistant to HTTP routes.
type Server struct {
	assistant    *core.Assistant
	corsOrigins  map[string]bool
	historyLimit int
	httpServer   *http.Server
}

// New creates a server for the given assistant. corsOrigins lists the
// allowed browser origins; "*" allows all.
func New(assistant *core.Assistant, corsOrigins []string, historyLimit int) *Server {
	origins := map[string]bool{}
	for _, o := range corsOrigins {
		origins[o] = true
	}
	if historyLimit < 1 {
		historyLimit = defaultLimit
	}
	return &Server{
		assistant:    assistant,
		corsOrigins:  origins,
		historyLimit: historyLimit,
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/chat/message", s.handleMessage)
	mux.HandleFunc("POST /api/chat/conversation/new", s.handleNewConversation)
	mux.HandleFunc("GET /api/chat/conversation/{id}", s.handleConversationInfo)
	mux.HandleFunc("GET /api/chat/conversation/{id}/history", s.handleHistory)
	mux.HandleFunc("GET /api/chat/suggestions", s.handleSuggestions)
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/health/ping", s.handlePing)
	mux.HandleFunc("GET /ws", s.handleWebsocket)

	return s.cors(mux)
}

// ListenAndServe runs the server until ctx ends, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- s.httpServer.ListenAndServe() }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// cors applies the configured origin allow-list to every response.
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && (s.corsOrigins["*"] || s.corsOrigins[origin]) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("failed to write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"success": false, "error": msg})
}

// sanitizeInput clamps length and strips control characters from user
// text before it reaches the core.
func sanitizeInput(text string, maxLen int) string {
	text = strings.TrimSpace(text)
	if len(text) > maxLen {
		// Back up to a rune boundary so the clamp never severs UTF-8.
		cut := maxLen
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, text)
}
