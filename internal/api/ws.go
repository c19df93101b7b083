package api

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// writeWait bounds how long a broadcast waits on one client before the
// client is dropped, so a stalled connection cannot hold up the hub.
const writeWait = 5 * time.Second

// matchEvent is pushed to connected clients after a match changes, so open
// editors can re-fetch the canonical state.
type matchEvent struct {
	Type    string `json:"type"`
	MatchID string `json:"match_id"`
}

// Hub fans match-update events out to WebSocket clients. A client may
// subscribe to one match via the match_id query parameter, or to all
// matches by omitting it.
type Hub struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]string
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]string),
	}
}

// HandleConnection upgrades the request and keeps the client registered
// until it disconnects.
func (h *Hub) HandleConnection(w http.ResponseWriter, r *http.Request) {
	matchID := r.URL.Query().Get("match_id")

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("WebSocket upgrade failed", "error", err)
		return
	}

	h.mu.Lock()
	h.clients[conn] = matchID
	h.mu.Unlock()

	defer func() {
		conn.Close()
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
	}()

	// Clients only listen; drain until the connection drops.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// NotifyMatch broadcasts a match-updated event to subscribers of matchID
// and to clients subscribed to all matches. Clients that fail to receive
// are dropped.
func (h *Hub) NotifyMatch(matchID string) {
	event := matchEvent{Type: "match_updated", MatchID: matchID}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn, filter := range h.clients {
		if filter != "" && filter != matchID {
			continue
		}
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(event); err != nil {
			conn.Close()
			delete(h.clients, conn)
		}
	}
}
