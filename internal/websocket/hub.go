// internal/websocket/hub.go
package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Event is the wire format of a workflow notification.
type Event struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Hub fans workflow events out to every connected back-office client.
// Claim and release notifications keep open dashboards current without
// polling.
type Hub struct {
	Register   chan *Client
	Unregister chan *Client

	broadcast chan []byte
	clients   map[*Client]struct{}
	mu        sync.RWMutex
	logger    *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
		clients:    make(map[*Client]struct{}),
		logger:     logger,
	}
}

// Run processes registrations and broadcast fan-out. Call in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			h.clients[client] = struct{}{}
			h.mu.Unlock()
			h.logger.Info("websocket client connected", zap.String("user_id", client.userID))

		case client := <-h.Unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			h.logger.Info("websocket client disconnected", zap.String("user_id", client.userID))

		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Slow consumer; drop the message rather than block the hub.
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Notify broadcasts a workflow event to every connected client.
func (h *Hub) Notify(event string, payload interface{}) {
	data, err := json.Marshal(Event{
		Type:      event,
		Data:      payload,
		Timestamp: time.Now(),
	})
	if err != nil {
		h.logger.Error("failed to marshal event", zap.Error(err), zap.String("event", event))
		return
	}

	select {
	case h.broadcast <- data:
	default:
		h.logger.Warn("broadcast queue full, dropping event", zap.String("event", event))
	}
}

// TotalClients returns the number of connected clients.
func (h *Hub) TotalClients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
