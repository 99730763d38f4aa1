// internal/room/manager.go
//
// Manager: the registry of open rooms.
// Responsibilities:
//   - Allocate collision-free 4-digit pins (multiplicative hash over an
//     incrementing counter, re-hashed on collision).
//   - Route inbound player actions to the addressed room.
//   - Close rooms once their last connected player drops.
//
// The rooms map is the only structure shared across rooms; it only ever has
// single entries inserted or removed under the manager's lock.

package room

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/snatchgame/go-server/internal/config"
	"github.com/snatchgame/go-server/internal/game"
)

const pinHashMultiplier = 2654435761

// Manager owns every open room, keyed by pin.
type Manager struct {
	mu      sync.RWMutex
	rooms   map[string]*Room
	counter uint64
	emitter Emitter
	dict    game.Dictionary
	cfg     config.Config
}

// NewManager constructs an empty registry.
func NewManager(emitter Emitter, dict game.Dictionary, cfg config.Config) *Manager {
	return &Manager{
		rooms:   make(map[string]*Room),
		emitter: emitter,
		dict:    dict,
		cfg:     cfg,
	}
}

// CreateRoomWithPlayer opens a room with the given player as its first
// member and returns the pin. Returns "" when the registry is at capacity.
func (m *Manager) CreateRoomWithPlayer(playerID, nickname string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	pin := m.generatePinLocked()
	if pin == "" {
		return ""
	}
	r := NewRoom(pin, m.emitter, m.dict, m.cfg)
	r.ConnectPlayer(playerID, nickname)
	m.rooms[pin] = r
	log.Info().Str("pin", pin).Msg("room created")
	return pin
}

// AddPlayerToRoom joins (or reconnects) a player to the addressed room.
// A no-op when the pin does not resolve.
func (m *Manager) AddPlayerToRoom(pin, playerID, nickname string) {
	if r := m.Room(pin); r != nil {
		r.ConnectPlayer(playerID, nickname)
	}
}

// DisconnectPlayer finds the player's room, flags or removes them there, and
// closes the room if nobody is left connected.
func (m *Manager) DisconnectPlayer(playerID string) {
	r := m.roomByPlayer(playerID)
	if r == nil {
		return
	}
	r.DisconnectPlayer(playerID)
	if r.IsEmpty() {
		m.CloseRoom(r.Pin())
	}
}

// StartGame forwards a start request to the addressed room.
func (m *Manager) StartGame(pin, playerID string) {
	if r := m.Room(pin); r != nil {
		r.HandleStartGame(playerID)
	}
}

// Flip forwards a flip action to the addressed room.
func (m *Manager) Flip(pin, playerID string) {
	if r := m.Room(pin); r != nil {
		r.HandleFlip(playerID)
	}
}

// SubmitWord forwards a claim or steal to the addressed room.
func (m *Manager) SubmitWord(pin, playerID, word, originPlayerID, originWord string) {
	if r := m.Room(pin); r != nil {
		r.HandleWordSubmission(playerID, word, originPlayerID, originWord)
	}
}

// SendState unicasts the addressed room's snapshot to one player.
func (m *Manager) SendState(pin, playerID string) {
	if r := m.Room(pin); r != nil {
		r.SendState(playerID)
	}
}

// CloseRoom drops a room from the registry.
func (m *Manager) CloseRoom(pin string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rooms[pin]; ok {
		delete(m.rooms, pin)
		log.Info().Str("pin", pin).Msg("room closed")
	}
}

// Room returns the room for pin, or nil.
func (m *Manager) Room(pin string) *Room {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.rooms[pin]
}

// HasRoom reports whether pin resolves to an open room.
func (m *Manager) HasRoom(pin string) bool {
	return m.Room(pin) != nil
}

// RoomFull reports whether the addressed room is at its member cap.
// Requires HasRoom(pin).
func (m *Manager) RoomFull(pin string) bool {
	if r := m.Room(pin); r != nil {
		return r.IsFull()
	}
	return false
}

// RoomHasEnoughPlayers reports whether the addressed room can start a round.
// Requires HasRoom(pin).
func (m *Manager) RoomHasEnoughPlayers(pin string) bool {
	if r := m.Room(pin); r != nil {
		return r.NumPlayers() >= config.MinPlayers
	}
	return false
}

// HasNickname reports whether nickname is taken in the addressed room.
// Requires HasRoom(pin).
func (m *Manager) HasNickname(pin, nickname string) bool {
	if r := m.Room(pin); r != nil {
		return r.HasNickname(nickname)
	}
	return false
}

// RoomState returns the addressed room's snapshot.
func (m *Manager) RoomState(pin string) (State, bool) {
	if r := m.Room(pin); r != nil {
		return r.State(), true
	}
	return State{}, false
}

// NumRooms counts open rooms.
func (m *Manager) NumRooms() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rooms)
}

// roomByPlayer scans for the room holding playerID. Linear over open rooms;
// disconnects are rare enough that an index is not worth the bookkeeping.
func (m *Manager) roomByPlayer(playerID string) *Room {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.rooms {
		if r.HasPlayer(playerID) {
			return r
		}
	}
	return nil
}

// generatePinLocked hashes the counter into the 4-digit pin space,
// re-hashing past collisions. Returns "" once every code is in use.
func (m *Manager) generatePinLocked() string {
	if len(m.rooms) >= config.MaxRooms {
		return ""
	}
	for {
		m.counter++
		pin := fmt.Sprintf("%04d", m.counter*pinHashMultiplier%10000)
		if _, taken := m.rooms[pin]; !taken {
			return pin
		}
	}
}
