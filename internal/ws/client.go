// internal/ws/client.go
//
// One websocket connection.
// Responsibilities:
//   - Upgrade HTTP to websocket and mint a player id for the connection.
//   - Read pump: decode envelopes, rate-limit them, hand them to the
//     handlers; flag the player disconnected when the socket drops.
//   - Write pump: drain the outbound queue, keep the connection alive with
//     pings.

package ws

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/snatchgame/go-server/internal/room"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 4096
	sendQueueSize  = 64

	// Inbound budget: bursts of 20, sustained 10 messages/second.
	inboundRate  = 10
	inboundBurst = 20
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser clients connect from a different origin in development; CORS
	// for the HTTP surface is handled by the router.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Client is one live websocket connection bound to a player id.
type Client struct {
	id      string
	pin     string
	conn    *websocket.Conn
	send    chan []byte
	limiter *rate.Limiter
	hub     *Hub
	manager *room.Manager
}

// ServeWS upgrades the request and runs the connection's pumps.
func ServeWS(hub *Hub, manager *room.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Warn().Err(err).Msg("websocket upgrade failed")
			return
		}
		c := &Client{
			id:      uuid.NewString(),
			conn:    conn,
			send:    make(chan []byte, sendQueueSize),
			limiter: rate.NewLimiter(inboundRate, inboundBurst),
			hub:     hub,
			manager: manager,
		}
		hub.register(c)
		log.Debug().Str("playerId", c.id).Msg("client connected")

		go c.writePump()
		go c.readPump()
	}
}

// enqueue queues a frame for delivery, dropping it when the queue is full.
func (c *Client) enqueue(frame []byte) {
	select {
	case c.send <- frame:
	default:
	}
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.manager.DisconnectPlayer(c.id)
		c.conn.Close()
		close(c.send)
		log.Debug().Str("playerId", c.id).Msg("client disconnected")
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Str("playerId", c.id).Msg("read error")
			}
			return
		}
		if !c.limiter.Allow() {
			continue
		}
		c.handleMessage(raw)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// sendEvent unicasts an event straight to this connection.
func (c *Client) sendEvent(event string, payload any) {
	frame, err := marshalEnvelope(event, payload)
	if err != nil {
		log.Error().Err(err).Str("event", event).Msg("marshal event")
		return
	}
	c.enqueue(frame)
}
