package websocket

import (
	"encoding/json"
	"time"
)

// Client-to-server message types
const (
	MessageTypeSubscribe   = "subscribe"
	MessageTypeUnsubscribe = "unsubscribe"
	MessageTypePing        = "ping"
)

// Server-to-client event types
const (
	EventConnected = "connected"
	EventPong      = "pong"
	EventError     = "error"
)

// ClientMessage is what connected clients send to the server
type ClientMessage struct {
	Type    string `json:"type"`
	SpaceID string `json:"space_id,omitempty"`
}

// Event is the push envelope sent to connected clients
type Event struct {
	Type      string      `json:"type"`
	SpaceID   string      `json:"space_id,omitempty"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewEvent builds a push event stamped with the current time
func NewEvent(eventType string, payload interface{}) *Event {
	return &Event{
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now(),
	}
}

// Encode serializes the event for the wire. Encoding failures fall back
// to a bare error event so the connection never stalls on a bad payload.
func (e *Event) Encode() []byte {
	data, err := json.Marshal(e)
	if err != nil {
		fallback, _ := json.Marshal(Event{Type: EventError, Timestamp: time.Now()})
		return fallback
	}
	return data
}

// ParseClientMessage decodes an inbound client message
func ParseClientMessage(data []byte) (*ClientMessage, error) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
