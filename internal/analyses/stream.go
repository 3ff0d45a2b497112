package analyses

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub fans newly created analyses out to connected WebSocket clients, so a
// UI can refresh its list without polling.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]struct{})}
}

// streamEvent is the outgoing WebSocket message format.
type streamEvent struct {
	Type     string   `json:"type"` // "analysis_created"
	Analysis *Summary `json:"analysis"`
}

// ServeHTTP upgrades the connection and keeps it registered until the client
// goes away. Incoming messages are discarded; the stream is one-way.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("analyses: websocket upgrade: %v", err)
		return
	}

	h.mu.Lock()
	h.clients[conn] = struct{}{}
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("analyses: websocket read: %v", err)
			}
			return
		}
	}
}

// Broadcast notifies all connected clients that an analysis was created.
// Clients that fail to receive are dropped.
func (h *Hub) Broadcast(a *Analysis) {
	event := streamEvent{
		Type: "analysis_created",
		Analysis: &Summary{
			ID:            a.ID,
			FileName:      a.FileName,
			Language:      a.Language,
			TotalLines:    a.TotalLines,
			TotalSections: a.TotalSections,
			Enhanced:      a.Enhanced,
			CreatedAt:     a.CreatedAt,
		},
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		if err := conn.WriteJSON(event); err != nil {
			log.Printf("analyses: websocket write: %v", err)
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

// ClientCount reports how many clients are connected.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
