// internal/ws/handlers.go
//
// Inbound event dispatch: decode a client's envelope and route it to the
// room registry, answering with the failure events the client understands.
//
// Events handled:
//   create_room  {nickname}
//   join_room    {pin, nickname, playerId?}   (playerId resumes a dropped seat)
//   start_game   {pin}
//   flip_letter  {pin}
//   submit_word  {pin, word, originPlayerId?, originWord?}
//   get_state    {pin}
//
// Malformed payloads and invalid nicknames are dropped silently, like any
// other stray message; room-level failures answer with a specific event.

package ws

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/snatchgame/go-server/internal/config"
)

// Inbound event names.
const (
	eventCreateRoom = "create_room"
	eventJoinRoom   = "join_room"
	eventStartGame  = "start_game"
	eventFlipLetter = "flip_letter"
	eventSubmitWord = "submit_word"
	eventGetState   = "get_state"
)

// Outbound lobby event names. In-round events live in the room package.
const (
	eventRoomCreated        = "room_created"
	eventRoomCreationFailed = "room_creation_failed"
	eventRoomJoined         = "room_joined"
	eventRoomNotFound       = "room_not_found"
	eventRoomFull           = "room_full"
	eventNicknameTaken      = "nickname_taken"
	eventNotEnoughPlayers   = "not_enough_players"
)

type createRoomPayload struct {
	Nickname string `json:"nickname"`
}

type joinRoomPayload struct {
	Pin      string `json:"pin"`
	Nickname string `json:"nickname"`
	PlayerID string `json:"playerId,omitempty"`
}

type pinPayload struct {
	Pin string `json:"pin"`
}

type submitWordPayload struct {
	Pin            string `json:"pin"`
	Word           string `json:"word"`
	OriginPlayerID string `json:"originPlayerId,omitempty"`
	OriginWord     string `json:"originWord,omitempty"`
}

type pinReply struct {
	Pin string `json:"pin"`
}

func (c *Client) handleMessage(raw []byte) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		log.Debug().Err(err).Str("playerId", c.id).Msg("bad envelope")
		return
	}

	switch env.Event {
	case eventCreateRoom:
		c.handleCreateRoom(env.Data)
	case eventJoinRoom:
		c.handleJoinRoom(env.Data)
	case eventStartGame:
		c.handleStartGame(env.Data)
	case eventFlipLetter:
		if p, ok := decode[pinPayload](env.Data); ok {
			c.manager.Flip(p.Pin, c.id)
		}
	case eventSubmitWord:
		if p, ok := decode[submitWordPayload](env.Data); ok {
			c.manager.SubmitWord(p.Pin, c.id, p.Word, p.OriginPlayerID, p.OriginWord)
		}
	case eventGetState:
		if p, ok := decode[pinPayload](env.Data); ok {
			c.manager.SendState(p.Pin, c.id)
		}
	default:
		log.Debug().Str("event", env.Event).Str("playerId", c.id).Msg("unknown event")
	}
}

func (c *Client) handleCreateRoom(data json.RawMessage) {
	p, ok := decode[createRoomPayload](data)
	if !ok || !config.NicknameRE.MatchString(p.Nickname) {
		return
	}
	pin := c.manager.CreateRoomWithPlayer(c.id, p.Nickname)
	if pin == "" {
		c.sendEvent(eventRoomCreationFailed, nil)
		return
	}
	c.hub.setPin(c, pin)
	c.sendEvent(eventRoomCreated, pinReply{Pin: pin})
}

func (c *Client) handleJoinRoom(data json.RawMessage) {
	p, ok := decode[joinRoomPayload](data)
	if !ok || !config.NicknameRE.MatchString(p.Nickname) {
		return
	}
	if !c.manager.HasRoom(p.Pin) {
		c.sendEvent(eventRoomNotFound, nil)
		return
	}

	// A dropped player resumes their seat by presenting their old id. Only
	// seats the room itself marked disconnected are resumable; an id that is
	// still live falls through to the ordinary join checks.
	if p.PlayerID != "" && c.manager.Room(p.Pin).IsDisconnected(p.PlayerID) {
		c.hub.rebind(c, p.PlayerID)
		c.manager.AddPlayerToRoom(p.Pin, c.id, p.Nickname)
		c.hub.setPin(c, p.Pin)
		c.sendEvent(eventRoomJoined, pinReply{Pin: p.Pin})
		return
	}

	if c.manager.RoomFull(p.Pin) {
		c.sendEvent(eventRoomFull, nil)
		return
	}
	if c.manager.HasNickname(p.Pin, p.Nickname) {
		c.sendEvent(eventNicknameTaken, nil)
		return
	}

	c.manager.AddPlayerToRoom(p.Pin, c.id, p.Nickname)
	c.hub.setPin(c, p.Pin)
	c.sendEvent(eventRoomJoined, pinReply{Pin: p.Pin})
}

func (c *Client) handleStartGame(data json.RawMessage) {
	p, ok := decode[pinPayload](data)
	if !ok {
		return
	}
	if !c.manager.HasRoom(p.Pin) {
		c.sendEvent(eventRoomNotFound, nil)
		return
	}
	if !c.manager.RoomHasEnoughPlayers(p.Pin) {
		c.sendEvent(eventNotEnoughPlayers, nil)
		return
	}
	c.manager.StartGame(p.Pin, c.id)
}

func decode[T any](data json.RawMessage) (T, bool) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return v, false
	}
	return v, true
}
