package realtime

import (
	"encoding/json"
	"time"
)

// Event names understood by the realtime channel.
const (
	EventJoinRoom       = "joinRoom"
	EventLeaveRoom      = "leaveRoom"
	EventSendMessage    = "sendMessage"
	EventReceiveMessage = "receiveMessage"
	EventTyping         = "typing"
	EventUserTyping     = "userTyping"
)

// Event is the JSON envelope exchanged over the socket in both directions.
type Event struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// JoinRoomPayload subscribes the connection to the room shared by the pair.
type JoinRoomPayload struct {
	User1 int64 `json:"user1"`
	User2 int64 `json:"user2"`
}

// LeaveRoomPayload unsubscribes the connection from a room.
type LeaveRoomPayload struct {
	Room string `json:"room"`
}

// MessagePayload carries a chat message over the channel. It is fan-out
// only; durable storage happens on the REST path.
type MessagePayload struct {
	Sender    int64     `json:"sender"`
	Receiver  int64     `json:"receiver"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// TypingPayload signals that From is composing a message to To. Unpersisted.
type TypingPayload struct {
	From int64 `json:"from"`
	To   int64 `json:"to"`
}

// UserTypingPayload is broadcast to the pair room on a typing event.
type UserTypingPayload struct {
	From int64 `json:"from"`
}

// NewEvent marshals a payload into an Event envelope.
func NewEvent(name string, payload interface{}) (*Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Event{Event: name, Data: data}, nil
}
