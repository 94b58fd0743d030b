package server

import (
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// hub tracks connected websocket clients and broadcasts assistant
// events to all of them. Writes are serialized per connection by the
// hub lock; gorilla conns do not allow concurrent writers.
type hub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

func newHub() *hub {
	return &hub{conns: make(map[*websocket.Conn]struct{})}
}

func (h *hub) add(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn] = struct{}{}
}

func (h *hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, conn)
	conn.Close()
}

// broadcast sends a JSON event to every connected client. A failed
// write drops that client.
func (h *hub) broadcast(event any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		if err := conn.WriteJSON(event); err != nil {
			log.Printf("[SERVER] Dropping websocket client: %v", err)
			delete(h.conns, conn)
			conn.Close()
		}
	}
}

func (h *hub) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}
