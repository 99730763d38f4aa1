// internal/room/events.go
//
// The wire surface of the room layer.
// Defines:
//   - Emitter: the transport collaborator rooms broadcast through.
//   - Event names exchanged with clients.
//   - State: the consolidated room snapshot pushed after every mutation.

package room

import "github.com/snatchgame/go-server/internal/game"

// Emitter delivers named events to every member of a room or to one player.
// The websocket hub implements it; tests use recorders.
type Emitter interface {
	ToRoom(pin, event string, payload any)
	ToPlayer(playerID, event string, payload any)
}

// Events emitted by the room layer.
const (
	EventStateUpdate  = "state_update"
	EventStartTurn    = "start_turn"
	EventWordAccepted = "word_accepted"
	EventWordRejected = "word_rejected"
	EventGameOver     = "game_over"
)

// State is the consolidated snapshot broadcast to every room member after
// each mutation. Clients replace their view wholesale rather than patching.
type State struct {
	Pin                 string            `json:"pin"`
	Active              bool              `json:"active"`
	Players             []string          `json:"players"`
	Nicknames           map[string]string `json:"nicknames"`
	OwnerID             string            `json:"ownerId"`
	InactivePlayers     []string          `json:"inactivePlayers"`
	DisconnectedPlayers []string          `json:"disconnectedPlayers"`
	CurrentPlayerID     string            `json:"currentPlayerId"`
	TurnTimeoutMs       int64             `json:"turnTimeout"`
	GameState           game.State        `json:"gameState"`
}

// TurnStarted is the payload of EventStartTurn.
type TurnStarted struct {
	PlayerID string `json:"playerId"`
}

// WordResult is the payload of EventWordAccepted and EventWordRejected.
type WordResult struct {
	PlayerID string `json:"playerId"`
	Word     string `json:"word"`
	Reason   string `json:"reason,omitempty"`
}
