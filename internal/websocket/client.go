package websocket

import (
	"time"

	"gogrind/pkg/logger"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 4096

	// Buffer size for client send channel
	sendBufferSize = 64
)

// Client is one WebSocket connection belonging to an authenticated user.
// A user may hold several connections (multiple tabs or devices).
type Client struct {
	conn *websocket.Conn
	hub  *Hub

	// Buffered channel of outbound messages
	send chan []byte

	UserID   string
	Username string

	// Space IDs this connection wants presence events for
	spaces map[string]bool

	ConnectedAt time.Time
}

// NewClient wraps an upgraded connection for the hub
func NewClient(conn *websocket.Conn, hub *Hub, userID, username string) *Client {
	return &Client{
		conn:        conn,
		hub:         hub,
		send:        make(chan []byte, sendBufferSize),
		UserID:      userID,
		Username:    username,
		spaces:      make(map[string]bool),
		ConnectedAt: time.Now(),
	}
}

// Push queues an event for delivery. A client whose buffer is full is
// dropped rather than allowed to block the hub.
func (c *Client) Push(event *Event) bool {
	select {
	case c.send <- event.Encode():
		return true
	default:
		return false
	}
}

// ReadPump consumes inbound messages until the connection dies
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.WithFields(map[string]interface{}{
					"user_id": c.UserID,
					"error":   err.Error(),
				}).Warn("WebSocket read error")
			}
			break
		}

		msg, err := ParseClientMessage(data)
		if err != nil {
			c.Push(NewEvent(EventError, map[string]interface{}{
				"message": "invalid message format",
			}))
			continue
		}

		c.handleMessage(msg)
	}
}

func (c *Client) handleMessage(msg *ClientMessage) {
	switch msg.Type {
	case MessageTypeSubscribe:
		if msg.SpaceID != "" {
			c.hub.Subscribe(c, msg.SpaceID)
		}
	case MessageTypeUnsubscribe:
		if msg.SpaceID != "" {
			c.hub.Unsubscribe(c, msg.SpaceID)
		}
	case MessageTypePing:
		c.Push(NewEvent(EventPong, nil))
	default:
		c.Push(NewEvent(EventError, map[string]interface{}{
			"message": "unknown message type",
		}))
	}
}

// WritePump drains the send channel onto the connection and keeps the
// peer alive with periodic pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
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
