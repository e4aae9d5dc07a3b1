package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Hub maintains the subscribers of every event and fans notices out to them
type Hub struct {
	// Registered clients organized by event ID
	clients map[uuid.UUID]map[*Client]bool

	// Notices waiting to be delivered
	broadcast chan *Message

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Mutex for concurrent access to clients map
	mu sync.RWMutex

	logger zerolog.Logger
}

// Message is a notice pushed to the subscribers of one event
type Message struct {
	// Type of notice, e.g. "event_synced" or "guests_synced"
	Type string `json:"type"`

	// Event this notice belongs to
	EventID uuid.UUID `json:"eventId"`

	// Notice payload
	Data interface{} `json:"data,omitempty"`

	Timestamp time.Time `json:"timestamp"`
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		broadcast:  make(chan *Message, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID]map[*Client]bool),
		logger:     logger,
	}
}

// Run handles registrations and broadcasts until ctx is done
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastMessage(message)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.eventID]; !ok {
		h.clients[client.eventID] = make(map[*Client]bool)
	}
	h.clients[client.eventID][client] = true

	h.logger.Debug().
		Str("eventID", client.eventID.String()).
		Int("clientCount", len(h.clients[client.eventID])).
		Msg("Client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(client)
}

func (h *Hub) removeLocked(client *Client) {
	clients, ok := h.clients[client.eventID]
	if !ok || !clients[client] {
		return
	}

	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.clients, client.eventID)
	}

	h.logger.Debug().Str("eventID", client.eventID.String()).Msg("Client unregistered")
}

// broadcastMessage delivers a message to every subscriber of its event.
// Subscribers whose buffer is full are dropped.
func (h *Hub) broadcastMessage(message *Message) {
	data, err := json.Marshal(message)
	if err != nil {
		h.logger.Error().Err(err).Str("eventID", message.EventID.String()).Msg("Failed to marshal notice")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	clients := h.clients[message.EventID]
	for client := range clients {
		select {
		case client.send <- data:
		default:
			h.logger.Warn().Str("eventID", message.EventID.String()).Msg("Dropping slow subscriber")
			h.removeLocked(client)
		}
	}

	h.logger.Debug().
		Str("eventID", message.EventID.String()).
		Str("type", message.Type).
		Int("clientCount", len(clients)).
		Msg("Notice broadcasted")
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, clients := range h.clients {
		for client := range clients {
			h.removeLocked(client)
		}
	}
}

// Notify queues a notice for the subscribers of eventID. It never blocks;
// notices are dropped when the queue is full.
func (h *Hub) Notify(eventID uuid.UUID, kind string, payload interface{}) {
	msg := &Message{Type: kind, EventID: eventID, Data: payload, Timestamp: time.Now().UTC()}
	select {
	case h.broadcast <- msg:
	default:
		h.logger.Warn().Str("eventID", eventID.String()).Str("type", kind).Msg("Notice queue full, dropping notice")
	}
}

// GetClientsCount returns the number of subscribers of an event
func (h *Hub) GetClientsCount(eventID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[eventID])
}
