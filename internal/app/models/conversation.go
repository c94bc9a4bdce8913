package models

import "time"

// Conversation groups the append-only message log for one unordered pair of
// participants. UserLow and UserHigh hold the pair in canonical order
// (UserLow < UserHigh) so one row exists per pair regardless of who wrote
// first.
type Conversation struct {
	ID        int64     `json:"id" db:"id"`
	UserLow   int64     `json:"userLow" db:"user_low"`
	UserHigh  int64     `json:"userHigh" db:"user_high"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Message is one element of a conversation log. Immutable once appended.
type Message struct {
	ID             int64     `json:"id" db:"id"`
	ConversationID int64     `json:"-" db:"conversation_id"`
	SenderID       int64     `json:"sender" db:"sender_id"`
	ReceiverID     int64     `json:"receiver" db:"receiver_id"`
	Content        string    `json:"content" db:"content"`
	Timestamp      time.Time `json:"timestamp" db:"created_at"`
}
