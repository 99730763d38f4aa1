// internal/room/room.go
//
// Room: one live game session identified by a 4-digit pin.
// Responsibilities:
//   - Membership: join/reconnect, nickname uniqueness, disconnect handling.
//   - Turn sequencing: who may flip, timeout-forced flips, turn interruption
//     on word submissions.
//   - Orchestrating the Timer and the game engine, and pushing one
//     consolidated state snapshot to every member after each mutation.
//
// Notes:
//   - All handlers run to completion under one mutex; the turn timer is the
//     only asynchronous entry point and is fenced by a sequence number so a
//     stale expiry can never double-advance the turn.
//   - The owner is never stored: it is always the first connected player in
//     join order.

package room

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/snatchgame/go-server/internal/config"
	"github.com/snatchgame/go-server/internal/game"
)

// Room holds the session state for one pin.
type Room struct {
	mu      sync.Mutex
	pin     string
	emitter Emitter
	dict    game.Dictionary
	cfg     config.Config

	active bool
	// players is join-ordered and never reordered; it defines owner precedence.
	players            []string
	nicknames          *uniqueRecord
	inactive           map[string]struct{}
	disconnected       map[string]struct{}
	currentPlayerIndex int
	currentGame        *game.Game

	turnTimer *Timer
	// turnSeq fences timer callbacks: a callback armed for an older turn
	// finds the sequence advanced and returns without acting.
	turnSeq uint64
}

// NewRoom constructs an empty, inactive room.
func NewRoom(pin string, emitter Emitter, dict game.Dictionary, cfg config.Config) *Room {
	return &Room{
		pin:          pin,
		emitter:      emitter,
		dict:         dict,
		cfg:          cfg,
		nicknames:    newUniqueRecord(),
		inactive:     make(map[string]struct{}),
		disconnected: make(map[string]struct{}),
		currentGame:  game.New(dict),
	}
}

// Pin returns the room's code.
func (r *Room) Pin() string { return r.pin }

// Active reports whether a round is in progress.
func (r *Room) Active() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

// State returns the consolidated snapshot.
func (r *Room) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stateLocked()
}

// SendState unicasts the current snapshot to one player. Used for the
// explicit state request on late join or rejoin.
func (r *Room) SendState(playerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.emitter.ToPlayer(playerID, EventStateUpdate, r.stateLocked())
}

// ConnectPlayer joins a new player, or reconnects one who dropped mid-round.
// Reports whether the player is now a connected member.
func (r *Room) ConnectPlayer(playerID, nickname string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.hasPlayerLocked(playerID) && !r.isFullLocked() {
		if r.nicknames.Set(playerID, nickname) {
			r.players = append(r.players, playerID)
			r.broadcastLocked()
			return true
		}
		return false
	}
	if _, down := r.disconnected[playerID]; down {
		delete(r.disconnected, playerID)
		r.broadcastLocked()
		return true
	}
	return false
}

// DisconnectPlayer handles a dropped transport connection. Before the round
// starts the player is removed outright; mid-round they are only flagged so
// their seat and nickname survive a reconnect. Disconnecting the last
// connected player resets the round so no timer loops over an empty room.
func (r *Room) DisconnectPlayer(playerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.hasPlayerLocked(playerID) {
		return
	}
	if !r.active {
		r.removePlayerLocked(playerID)
	} else {
		r.disconnected[playerID] = struct{}{}
		switch {
		case r.numConnectedLocked() <= 0:
			r.resetLocked()
		case r.players[r.currentPlayerIndex] == playerID:
			// The turn pointer never rests on a disconnected player.
			r.currentPlayerIndex = r.nextConnectedIndexLocked()
			r.startTurnLocked()
		}
	}
	r.broadcastLocked()
}

// HandleStartGame starts the round. Only the owner may start, and only with
// enough players; anything else is silently ignored.
func (r *Room) HandleStartGame(playerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active || playerID != r.ownerIDLocked() {
		return
	}
	if len(r.players) < config.MinPlayers {
		return
	}
	r.active = true
	r.currentGame = game.New(r.dict)
	r.currentPlayerIndex = 0
	log.Info().Str("pin", r.pin).Int("players", len(r.players)).Msg("round started")
	r.startTurnLocked()
}

// HandleFlip flips the next letter. Only accepted from the current player
// while a round is active; stray flips are dropped without complaint.
func (r *Room) HandleFlip(playerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.activatePlayerLocked(playerID)
	if !r.active || r.players[r.currentPlayerIndex] != playerID {
		return
	}
	r.flipAndAdvanceLocked()
}

// HandleWordSubmission processes a claim (no origin) or a steal (origin
// player + word supplied). Whatever the verdict, the submitter seizes the
// turn: rejection is signaled separately and does not restore the previous
// turn-holder.
func (r *Room) HandleWordSubmission(playerID, word, originPlayerID, originWord string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.active || !r.hasPlayerLocked(playerID) {
		return
	}
	r.activatePlayerLocked(playerID)

	var ok bool
	if originPlayerID != "" && originWord != "" {
		ok = r.currentGame.StealWord(playerID, word, originPlayerID, originWord)
	} else {
		ok = r.currentGame.ClaimWord(playerID, word)
	}

	if ok {
		r.emitter.ToRoom(r.pin, EventWordAccepted, WordResult{PlayerID: playerID, Word: word})
	} else {
		r.emitter.ToPlayer(playerID, EventWordRejected, WordResult{PlayerID: playerID, Word: word, Reason: "invalid word"})
	}

	r.currentPlayerIndex = r.indexOfLocked(playerID)
	r.startTurnLocked()
}

// ResetGame returns the room to the waiting state with a fresh game.
func (r *Room) ResetGame() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resetLocked()
	r.broadcastLocked()
}

// OwnerID returns the current owner: the first connected player in join order.
func (r *Room) OwnerID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ownerIDLocked()
}

// HasPlayer reports membership, connected or not.
func (r *Room) HasPlayer(playerID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hasPlayerLocked(playerID)
}

// IsDisconnected reports whether playerID holds a seat dropped mid-round.
// Only such seats may be resumed by a new connection.
func (r *Room) IsDisconnected(playerID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, down := r.disconnected[playerID]
	return down
}

// HasNickname reports whether nickname is taken in this room.
func (r *Room) HasNickname(nickname string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.nicknames.HasValue(nickname)
}

// IsFull reports whether the room reached its member cap.
func (r *Room) IsFull() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.isFullLocked()
}

// IsEmpty reports whether no connected players remain.
func (r *Room) IsEmpty() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.numConnectedLocked() <= 0
}

// NumPlayers counts all members, including disconnected ones.
func (r *Room) NumPlayers() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.players)
}

// NumConnectedPlayers counts members with a live connection.
func (r *Room) NumConnectedPlayers() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.numConnectedLocked()
}

// ---------------------------- internals ------------------------------------
// Everything below expects r.mu held.

func (r *Room) startTurnLocked() {
	r.turnSeq++
	if r.turnTimer != nil {
		r.turnTimer.Pause()
	}

	currentPlayerID := r.players[r.currentPlayerIndex]
	r.emitter.ToRoom(r.pin, EventStartTurn, TurnStarted{PlayerID: currentPlayerID})

	timeout := r.cfg.TurnTimeout
	if !r.playerIsActiveLocked(currentPlayerID) {
		timeout = r.cfg.InactiveTurnTimeout
	}

	seq := r.turnSeq
	r.turnTimer = NewTimer(func() { r.turnExpired(seq) }, timeout)
	r.broadcastLocked()
}

// turnExpired runs on the timer goroutine when a turn runs out.
func (r *Room) turnExpired(seq uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if seq != r.turnSeq || !r.active {
		return
	}
	// No action this turn: the current player gets the short timeout from
	// here on, until they act again.
	r.inactive[r.players[r.currentPlayerIndex]] = struct{}{}
	r.flipAndAdvanceLocked()
}

func (r *Room) flipAndAdvanceLocked() {
	r.currentGame.FlipNextLetter()
	if r.currentGame.DeckIsEmpty() {
		r.endRoundLocked()
		return
	}
	r.currentPlayerIndex = r.nextConnectedIndexLocked()
	r.startTurnLocked()
}

// endRoundLocked closes the round once the deck is exhausted: the room goes
// back to waiting and members who vanished mid-round are pruned for good.
func (r *Room) endRoundLocked() {
	r.active = false
	r.turnSeq++
	if r.turnTimer != nil {
		r.turnTimer.Pause()
		r.turnTimer = nil
	}

	r.nicknames = r.nicknames.Filter(func(id string) bool {
		_, down := r.disconnected[id]
		return !down
	})
	kept := r.players[:0]
	for _, id := range r.players {
		if _, down := r.disconnected[id]; !down {
			kept = append(kept, id)
		}
	}
	r.players = kept
	// Both flags describe the finished round only; the next round starts with
	// a clean slate and full timeouts for everyone who stayed.
	r.inactive = make(map[string]struct{})
	r.disconnected = make(map[string]struct{})
	r.currentPlayerIndex = 0

	log.Info().Str("pin", r.pin).Msg("round over, deck exhausted")
	r.emitter.ToRoom(r.pin, EventGameOver, struct{}{})
	r.broadcastLocked()
}

func (r *Room) resetLocked() {
	r.active = false
	r.turnSeq++
	if r.turnTimer != nil {
		r.turnTimer.Pause()
		r.turnTimer = nil
	}
	r.currentGame = game.New(r.dict)
	r.currentPlayerIndex = 0
}

// activatePlayerLocked clears the inactive/disconnected flags for a player
// who just acted, broadcasting when anything changed.
func (r *Room) activatePlayerLocked(playerID string) {
	_, wasInactive := r.inactive[playerID]
	_, wasDown := r.disconnected[playerID]
	if !wasInactive && !wasDown {
		return
	}
	delete(r.inactive, playerID)
	delete(r.disconnected, playerID)
	r.broadcastLocked()
}

func (r *Room) removePlayerLocked(playerID string) {
	kept := r.players[:0]
	for _, id := range r.players {
		if id != playerID {
			kept = append(kept, id)
		}
	}
	r.players = kept
	r.nicknames.Remove(playerID)
	delete(r.inactive, playerID)
	delete(r.disconnected, playerID)
}

// nextConnectedIndexLocked walks forward from the current index, wrapping
// around and skipping disconnected players. Falls back to the current index
// when nobody else is connected; callers reset the room before that happens.
func (r *Room) nextConnectedIndexLocked() int {
	next := r.currentPlayerIndex
	for i := 0; i < len(r.players); i++ {
		next = (next + 1) % len(r.players)
		if _, down := r.disconnected[r.players[next]]; !down {
			return next
		}
	}
	return r.currentPlayerIndex
}

func (r *Room) playerIsActiveLocked(playerID string) bool {
	_, isInactive := r.inactive[playerID]
	_, isDown := r.disconnected[playerID]
	return !isInactive && !isDown
}

func (r *Room) ownerIDLocked() string {
	for _, id := range r.players {
		if _, down := r.disconnected[id]; !down {
			return id
		}
	}
	return ""
}

func (r *Room) hasPlayerLocked(playerID string) bool {
	return r.indexOfLocked(playerID) >= 0
}

func (r *Room) indexOfLocked(playerID string) int {
	for i, id := range r.players {
		if id == playerID {
			return i
		}
	}
	return -1
}

func (r *Room) isFullLocked() bool {
	return len(r.players) >= config.MaxPlayers
}

func (r *Room) numConnectedLocked() int {
	// disconnected is a subset of players.
	return len(r.players) - len(r.disconnected)
}

func (r *Room) stateLocked() State {
	timeout := r.cfg.TurnTimeout
	if r.turnTimer != nil {
		timeout = r.turnTimer.TimeLeft()
	}
	currentPlayerID := ""
	if r.currentPlayerIndex < len(r.players) {
		currentPlayerID = r.players[r.currentPlayerIndex]
	}
	return State{
		Pin:                 r.pin,
		Active:              r.active,
		Players:             append([]string(nil), r.players...),
		Nicknames:           r.nicknames.Record(),
		OwnerID:             r.ownerIDLocked(),
		InactivePlayers:     setToSlice(r.inactive),
		DisconnectedPlayers: setToSlice(r.disconnected),
		CurrentPlayerID:     currentPlayerID,
		TurnTimeoutMs:       timeout.Milliseconds(),
		GameState:           r.currentGame.State(),
	}
}

func (r *Room) broadcastLocked() {
	r.emitter.ToRoom(r.pin, EventStateUpdate, r.stateLocked())
}

func setToSlice(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out
}
