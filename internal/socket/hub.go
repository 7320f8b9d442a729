// server/internal/socket/hub.go
package socket

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Outbound messages queued per client before it is considered stuck.
	sendBufferSize = 64
	// Maximum time a single write may take before the connection is dropped.
	writeWait = 10 * time.Second
)

// Event is the wire format for asset lifecycle notifications pushed to
// connected dashboards.
type Event struct {
	Type      string      `json:"type"` // e.g. "asset.created", "asset.assigned", "asset.returned"
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// client owns all writes to its connection. Messages are queued on send and
// drained by a single write pump goroutine, since the connection permits
// only one concurrent writer.
type client struct {
	userID string
	conn   *websocket.Conn
	send   chan []byte

	mu     sync.Mutex
	closed bool
}

// enqueue queues a message without blocking. It reports false when the
// buffer is full, meaning the client has stopped draining its connection.
func (cl *client) enqueue(message []byte) bool {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	if cl.closed {
		return true
	}
	select {
	case cl.send <- message:
		return true
	default:
		return false
	}
}

// close shuts the send channel exactly once. Queued messages are still
// flushed by the write pump before it exits.
func (cl *client) close() {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	if !cl.closed {
		cl.closed = true
		close(cl.send)
	}
}

// Hub tracks connected WebSocket clients keyed by user ID.
type Hub struct {
	clients map[string]*client
	mu      sync.RWMutex
	logger  *slog.Logger
}

// NewHub creates an empty Hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[string]*client),
		logger:  logger,
	}
}

// Register adds a client connection to the Hub and starts its write pump.
// A previous connection for the same user is superseded.
func (h *Hub) Register(userID string, conn *websocket.Conn) {
	cl := &client{
		userID: userID,
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
	}

	h.mu.Lock()
	old, replaced := h.clients[userID]
	h.clients[userID] = cl
	h.mu.Unlock()

	if replaced {
		old.close()
	}
	go h.writePump(cl)
	h.logger.Info("websocket client registered", slog.String("user_id", userID))
}

// Unregister removes a client from the Hub. Its write pump flushes any
// queued messages and then closes the connection.
func (h *Hub) Unregister(userID string) {
	h.mu.Lock()
	cl, ok := h.clients[userID]
	if ok {
		delete(h.clients, userID)
	}
	h.mu.Unlock()

	if ok {
		cl.close()
		h.logger.Info("websocket client unregistered", slog.String("user_id", userID))
	}
}

// Send delivers a message to a single client. A missing client is not an
// error, they may simply be offline.
func (h *Hub) Send(userID string, message []byte) error {
	h.mu.RLock()
	cl, ok := h.clients[userID]
	h.mu.RUnlock()

	if !ok {
		return nil
	}
	if !cl.enqueue(message) {
		h.drop(cl)
	}
	return nil
}

// Broadcast queues an event for every connected client. Delivery never
// blocks the caller; a client whose buffer is full is disconnected rather
// than allowed to stall everyone else.
func (h *Hub) Broadcast(event Event) {
	message, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("failed to encode websocket event", slog.String("type", event.Type), slog.Any("error", err))
		return
	}

	h.mu.RLock()
	clients := make([]*client, 0, len(h.clients))
	for _, cl := range h.clients {
		clients = append(clients, cl)
	}
	h.mu.RUnlock()

	for _, cl := range clients {
		if !cl.enqueue(message) {
			h.logger.Warn("dropping stalled websocket client", slog.String("user_id", cl.userID))
			h.drop(cl)
		}
	}
}

// drop removes the client from the map unless it has already been
// superseded, then tears down its channel and connection.
func (h *Hub) drop(cl *client) {
	h.mu.Lock()
	if current, ok := h.clients[cl.userID]; ok && current == cl {
		delete(h.clients, cl.userID)
	}
	h.mu.Unlock()
	cl.close()
	cl.conn.Close()
}

// writePump is the sole writer for a client connection.
func (h *Hub) writePump(cl *client) {
	for message := range cl.send {
		cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := cl.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			h.logger.Warn("failed to deliver websocket event",
				slog.String("user_id", cl.userID), slog.Any("error", err))
			h.drop(cl)
			return
		}
	}
	cl.conn.Close()
}
