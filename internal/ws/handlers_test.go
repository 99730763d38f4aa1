package ws

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snatchgame/go-server/internal/config"
	"github.com/snatchgame/go-server/internal/room"
)

type openDict struct{}

func (openDict) IsValidWord(string) bool { return true }
func (openDict) IsValidStealCandidate(newWord, oldWord string) bool {
	return !strings.EqualFold(newWord, oldWord+"S")
}

func testManagerAndHub() (*room.Manager, *Hub) {
	hub := NewHub()
	cfg := config.Config{TurnTimeout: time.Hour, InactiveTurnTimeout: time.Hour}
	return room.NewManager(hub, openDict{}, cfg), hub
}

func connect(hub *Hub, m *room.Manager, id string) *Client {
	c := newTestClient(id)
	c.hub = hub
	c.manager = m
	hub.register(c)
	return c
}

func send(c *Client, event string, payload any) {
	data, _ := json.Marshal(payload)
	raw, _ := json.Marshal(Envelope{Event: event, Data: data})
	c.handleMessage(raw)
}

func eventNames(envs []Envelope) []string {
	names := make([]string, 0, len(envs))
	for _, e := range envs {
		names = append(names, e.Event)
	}
	return names
}

func TestCreateRoomFlow(t *testing.T) {
	m, hub := testManagerAndHub()
	alice := connect(hub, m, "alice")

	send(alice, eventCreateRoom, createRoomPayload{Nickname: "alice"})

	envs := drain(alice)
	require.NotEmpty(t, envs)
	assert.Equal(t, eventRoomCreated, envs[0].Event)

	var reply pinReply
	require.NoError(t, json.Unmarshal(envs[0].Data, &reply))
	assert.Len(t, reply.Pin, 4)
	assert.True(t, m.HasRoom(reply.Pin))
	assert.Equal(t, reply.Pin, alice.pin)
}

func TestCreateRoomRejectsBadNickname(t *testing.T) {
	m, hub := testManagerAndHub()
	alice := connect(hub, m, "alice")

	send(alice, eventCreateRoom, createRoomPayload{Nickname: "no spaces!"})
	assert.Empty(t, drain(alice), "invalid nickname is dropped silently")
	assert.Equal(t, 0, m.NumRooms())
}

func TestJoinRoomFlow(t *testing.T) {
	m, hub := testManagerAndHub()
	alice := connect(hub, m, "alice")
	send(alice, eventCreateRoom, createRoomPayload{Nickname: "alice"})
	pin := alice.pin
	drain(alice)

	bob := connect(hub, m, "bob")
	send(bob, eventJoinRoom, joinRoomPayload{Pin: pin, Nickname: "bob"})

	names := eventNames(drain(bob))
	assert.Contains(t, names, eventRoomJoined)
	// The join broadcast reaches the existing member too.
	assert.Contains(t, eventNames(drain(alice)), room.EventStateUpdate)
}

func TestJoinFailures(t *testing.T) {
	m, hub := testManagerAndHub()
	alice := connect(hub, m, "alice")
	send(alice, eventCreateRoom, createRoomPayload{Nickname: "alice"})
	pin := alice.pin

	bob := connect(hub, m, "bob")

	send(bob, eventJoinRoom, joinRoomPayload{Pin: "0000", Nickname: "bob"})
	assert.Equal(t, []string{eventRoomNotFound}, eventNames(drain(bob)))

	send(bob, eventJoinRoom, joinRoomPayload{Pin: pin, Nickname: "alice"})
	assert.Equal(t, []string{eventNicknameTaken}, eventNames(drain(bob)))

	for i := 0; i < 4; i++ {
		c := connect(hub, m, fmt.Sprintf("filler%d", i))
		send(c, eventJoinRoom, joinRoomPayload{Pin: pin, Nickname: fmt.Sprintf("filler%d", i)})
	}
	send(bob, eventJoinRoom, joinRoomPayload{Pin: pin, Nickname: "bob"})
	assert.Equal(t, []string{eventRoomFull}, eventNames(drain(bob)))
}

func TestStartGameChecks(t *testing.T) {
	m, hub := testManagerAndHub()
	alice := connect(hub, m, "alice")
	send(alice, eventCreateRoom, createRoomPayload{Nickname: "alice"})
	pin := alice.pin
	drain(alice)

	send(alice, eventStartGame, pinPayload{Pin: "0000"})
	assert.Equal(t, []string{eventRoomNotFound}, eventNames(drain(alice)))

	send(alice, eventStartGame, pinPayload{Pin: pin})
	assert.Equal(t, []string{eventNotEnoughPlayers}, eventNames(drain(alice)))

	bob := connect(hub, m, "bob")
	send(bob, eventJoinRoom, joinRoomPayload{Pin: pin, Nickname: "bob"})
	drain(alice)

	send(alice, eventStartGame, pinPayload{Pin: pin})
	s, ok := m.RoomState(pin)
	require.True(t, ok)
	assert.True(t, s.Active)
	assert.Contains(t, eventNames(drain(alice)), room.EventStartTurn)
}

func TestFlipAndSubmitRouting(t *testing.T) {
	m, hub := testManagerAndHub()
	alice := connect(hub, m, "alice")
	send(alice, eventCreateRoom, createRoomPayload{Nickname: "alice"})
	pin := alice.pin
	bob := connect(hub, m, "bob")
	send(bob, eventJoinRoom, joinRoomPayload{Pin: pin, Nickname: "bob"})
	send(alice, eventStartGame, pinPayload{Pin: pin})
	drain(alice)
	drain(bob)

	send(alice, eventFlipLetter, pinPayload{Pin: pin})
	s, _ := m.RoomState(pin)
	require.Len(t, s.GameState.RevealedLetters, 1)

	// Claim the single revealed letter padded out: invalid (too short), so
	// bob gets a rejection but seizes the turn.
	send(bob, eventSubmitWord, submitWordPayload{Pin: pin, Word: s.GameState.RevealedLetters[0]})
	assert.Contains(t, eventNames(drain(bob)), room.EventWordRejected)
	s, _ = m.RoomState(pin)
	assert.Equal(t, "bob", s.CurrentPlayerID)
}

func TestGetStateUnicast(t *testing.T) {
	m, hub := testManagerAndHub()
	alice := connect(hub, m, "alice")
	send(alice, eventCreateRoom, createRoomPayload{Nickname: "alice"})
	pin := alice.pin
	drain(alice)

	send(alice, eventGetState, pinPayload{Pin: pin})
	envs := drain(alice)
	require.Len(t, envs, 1)
	assert.Equal(t, room.EventStateUpdate, envs[0].Event)

	var s room.State
	require.NoError(t, json.Unmarshal(envs[0].Data, &s))
	assert.Equal(t, pin, s.Pin)
	assert.Equal(t, []string{"alice"}, s.Players)
}

func TestReconnectResumesSeat(t *testing.T) {
	m, hub := testManagerAndHub()
	alice := connect(hub, m, "alice")
	send(alice, eventCreateRoom, createRoomPayload{Nickname: "alice"})
	pin := alice.pin
	bob := connect(hub, m, "bob")
	send(bob, eventJoinRoom, joinRoomPayload{Pin: pin, Nickname: "bob"})
	send(alice, eventStartGame, pinPayload{Pin: pin})

	// Bob's transport drops mid-round.
	hub.unregister(bob)
	m.DisconnectPlayer("bob")
	s, _ := m.RoomState(pin)
	require.Equal(t, []string{"bob"}, s.DisconnectedPlayers)

	// A new connection presents bob's old id and resumes the seat.
	bob2 := connect(hub, m, "bob-new-conn")
	send(bob2, eventJoinRoom, joinRoomPayload{Pin: pin, Nickname: "bob", PlayerID: "bob"})

	assert.Equal(t, "bob", bob2.id)
	assert.Contains(t, eventNames(drain(bob2)), eventRoomJoined)
	s, _ = m.RoomState(pin)
	assert.Empty(t, s.DisconnectedPlayers)
	assert.Equal(t, 2, len(s.Players))
}

func TestJoinCannotSeizeConnectedSeat(t *testing.T) {
	m, hub := testManagerAndHub()
	alice := connect(hub, m, "alice")
	send(alice, eventCreateRoom, createRoomPayload{Nickname: "alice"})
	pin := alice.pin
	bob := connect(hub, m, "bob")
	send(bob, eventJoinRoom, joinRoomPayload{Pin: pin, Nickname: "bob"})
	drain(bob)

	// A third connection presents bob's id while bob is still connected.
	// That is not a resumable seat: it falls through to an ordinary join.
	mallory := connect(hub, m, "mallory-conn")
	send(mallory, eventJoinRoom, joinRoomPayload{Pin: pin, Nickname: "mallory", PlayerID: "bob"})

	assert.Equal(t, "mallory-conn", mallory.id)
	assert.Contains(t, eventNames(drain(mallory)), eventRoomJoined)

	// Bob's registration is untouched: unicasts to bob still reach bob.
	hub.ToPlayer("bob", "ping", nil)
	assert.Contains(t, eventNames(drain(bob)), "ping")
	assert.NotContains(t, eventNames(drain(mallory)), "ping")
}

func TestJoinWithLiveIDAndTakenNicknameIsRefused(t *testing.T) {
	m, hub := testManagerAndHub()
	alice := connect(hub, m, "alice")
	send(alice, eventCreateRoom, createRoomPayload{Nickname: "alice"})
	pin := alice.pin
	bob := connect(hub, m, "bob")
	send(bob, eventJoinRoom, joinRoomPayload{Pin: pin, Nickname: "bob"})

	mallory := connect(hub, m, "mallory-conn")
	send(mallory, eventJoinRoom, joinRoomPayload{Pin: pin, Nickname: "bob", PlayerID: "bob"})

	assert.Equal(t, []string{eventNicknameTaken}, eventNames(drain(mallory)))
	assert.Equal(t, "mallory-conn", mallory.id)
}
