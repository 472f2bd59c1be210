package websocket

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventEncode(t *testing.T) {
	event := NewEvent("session_started", map[string]interface{}{
		"title": "Morning Grind",
	})
	event.SpaceID = "abc123"

	data := event.Encode()

	var decoded Event
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "session_started", decoded.Type)
	assert.Equal(t, "abc123", decoded.SpaceID)
	assert.False(t, decoded.Timestamp.IsZero())

	payload, ok := decoded.Payload.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Morning Grind", payload["title"])
}

func TestEventEncodeUnserializablePayload(t *testing.T) {
	event := NewEvent("notification", make(chan int))

	data := event.Encode()

	var decoded Event
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, EventError, decoded.Type)
}

func TestParseClientMessage(t *testing.T) {
	msg, err := ParseClientMessage([]byte(`{"type":"subscribe","space_id":"abc"}`))
	require.NoError(t, err)
	assert.Equal(t, MessageTypeSubscribe, msg.Type)
	assert.Equal(t, "abc", msg.SpaceID)

	_, err = ParseClientMessage([]byte("not json"))
	assert.Error(t, err)
}
