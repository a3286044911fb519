package server

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// event is the outgoing WebSocket message format.
type event struct {
	Type    string `json:"type"` // "breakpoint", "theme", "nav_panel", "route"
	Payload any    `json:"payload"`
}

// eventHub fans shell state changes out to the WebSocket subscribers of one
// session.
type eventHub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]bool
}

func newEventHub() *eventHub {
	return &eventHub{conns: make(map[*websocket.Conn]bool)}
}

func (h *eventHub) add(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn] = true
}

func (h *eventHub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, conn)
}

// broadcast sends an event to every subscriber. Connections that fail to
// write are dropped.
func (h *eventHub) broadcast(typ string, payload any) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ev := event{Type: typ, Payload: payload}
	for conn := range h.conns {
		if err := conn.WriteJSON(ev); err != nil {
			conn.Close()
			delete(h.conns, conn)
		}
	}
}

// close drops all subscribers.
func (h *eventHub) close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		conn.Close()
		delete(h.conns, conn)
	}
}

// handleEvents upgrades the request and keeps the connection registered
// until the client goes away. All traffic is server-to-client.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request, hub *eventHub) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("siteshell: websocket upgrade: %v", err)
		return
	}
	hub.add(conn)
	defer func() {
		hub.remove(conn)
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("siteshell: websocket read: %v", err)
			}
			return
		}
	}
}
