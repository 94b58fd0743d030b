// Package server exposes the assistant over HTTP: a health probe, a
// speech-to-text endpoint, and a websocket conversation channel that
// broadcasts assistant replies to every connected client.
package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/maltai/maltai-go/agent"
	"github.com/maltai/maltai-go/audio"
	"github.com/maltai/maltai-go/core"
)

// Server serves the HTTP and websocket surface of the assistant.
type Server struct {
	agent       *agent.Agent
	transcriber audio.Transcriber
	hub         *hub
	upgrader    websocket.Upgrader

	mu      sync.Mutex
	history []core.Message
}

// New creates a server around an agent. transcriber may be nil, which
// disables /transcribe.
func New(a *agent.Agent, transcriber audio.Transcriber) *Server {
	return &Server{
		agent:       a,
		transcriber: transcriber,
		hub:         newHub(),
		upgrader: websocket.Upgrader{
			// The assistant runs on localhost for a single user.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/transcribe", s.handleTranscribe)
	mux.HandleFunc("/ws", s.handleWebSocket)
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "healthy"})
}

// handleTranscribe accepts a multipart upload under the "audio" field
// and returns {"text": ...}. Failures return {"error": ...} with
// status 200 so voice clients keep polling instead of tearing down.
func (s *Server) handleTranscribe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.transcriber == nil {
		writeJSON(w, map[string]string{"error": "transcription not configured"})
		return
	}

	file, _, err := r.FormFile("audio")
	if err != nil {
		writeJSON(w, map[string]string{"error": "missing audio file: " + err.Error()})
		return
	}
	defer file.Close()

	text, err := s.transcriber.Transcribe(r.Context(), file)
	if err != nil {
		log.Printf("[SERVER] Transcription failed: %v", err)
		writeJSON(w, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, map[string]string{"text": text})
}

// outboundEvent is one broadcast to all clients.
type outboundEvent struct {
	Type string `json:"type"`
	Data string `json:"data"`
}

// handleWebSocket upgrades the connection and feeds incoming frames
// through the agent. Clients send the user utterance as a raw text
// frame; replies broadcast to every client so multiple views of the
// same conversation stay in sync.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[SERVER] WebSocket upgrade failed: %v", err)
		return
	}
	s.hub.add(conn)
	defer s.hub.remove(conn)
	log.Printf("[SERVER] WebSocket client connected (%d active)", s.hub.count())

	for {
		kind, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[SERVER] WebSocket read failed: %v", err)
			}
			return
		}
		if kind != websocket.TextMessage {
			continue
		}
		text := string(data)
		if text == "" {
			continue
		}
		s.handleUserMessage(r.Context(), text)
	}
}

// handleUserMessage runs one turn against the shared conversation and
// broadcasts one frame per message the pipeline produced, so clients
// see the assistant's text and each tool result as they were appended.
// The lock serializes turns; interleaved turns would corrupt the
// transcript's assistant/tool message pairing.
func (s *Server) handleUserMessage(ctx context.Context, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, turn, err := s.agent.Turn(ctx, s.history, text)
	if err != nil {
		log.Printf("[SERVER] Turn aborted: %v", err)
		return
	}
	s.history = append(s.history, turn...)
	for _, m := range turn {
		if m.Role == core.RoleUser || m.Content == "" {
			continue
		}
		s.hub.broadcast(outboundEvent{Type: "message", Data: m.Content})
	}
}

// History returns a copy of the conversation so far.
func (s *Server) History() []core.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Message(nil), s.history...)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[SERVER] Write response failed: %v", err)
	}
}
