// internal/ws/hub.go
//
// Hub: connected-client registry and fan-out.
// Responsibilities:
//   - Track live clients by player id and by the room pin they joined.
//   - Implement room.Emitter: marshal an event once, enqueue it to every
//     member of a room (or one player) without blocking the game loop.
//
// Notes:
//   - Sends are best-effort: a client whose outbound queue is full misses
//     the message and resynchronizes from the next full state snapshot.

package ws

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog/log"
)

// Envelope is the wire frame: a named event with a JSON payload.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Hub routes outbound events to connected clients.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client // keyed by player id
}

// NewHub constructs an empty hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[string]*Client)}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.id] = c
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[c.id] == c {
		delete(h.clients, c.id)
	}
}

// setPin records which room the client belongs to, for ToRoom fan-out.
func (h *Hub) setPin(c *Client, pin string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c.pin = pin
}

// rebind adopts a previous player id on the client, so a reconnecting
// player resumes their seat. The old id's stale client, if any, is dropped.
func (h *Hub) rebind(c *Client, playerID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, c.id)
	c.id = playerID
	h.clients[playerID] = c
}

// ToRoom sends an event to every connected member of a room.
func (h *Hub) ToRoom(pin, event string, payload any) {
	frame, err := marshalEnvelope(event, payload)
	if err != nil {
		log.Error().Err(err).Str("event", event).Msg("marshal broadcast")
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		if c.pin == pin {
			c.enqueue(frame)
		}
	}
}

// ToPlayer sends an event to one connected player.
func (h *Hub) ToPlayer(playerID, event string, payload any) {
	frame, err := marshalEnvelope(event, payload)
	if err != nil {
		log.Error().Err(err).Str("event", event).Msg("marshal unicast")
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	if c, ok := h.clients[playerID]; ok {
		c.enqueue(frame)
	}
}

func marshalEnvelope(event string, payload any) ([]byte, error) {
	var data json.RawMessage
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		data = b
	}
	return json.Marshal(Envelope{Event: event, Data: data})
}
