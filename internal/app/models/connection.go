package models

import "time"

// ConnectionStatus represents the lifecycle state of a connection request
type ConnectionStatus string

const (
	ConnectionStatusPending  ConnectionStatus = "pending"
	ConnectionStatusAccepted ConnectionStatus = "accepted"
	ConnectionStatusRejected ConnectionStatus = "rejected"
)

// Connection represents a directed connection request between two users.
// A pending request transitions once to accepted or rejected and is never
// reverted.
type Connection struct {
	ID         int64            `json:"id" db:"id"`
	SenderID   int64            `json:"senderId" db:"sender_id"`
	ReceiverID int64            `json:"receiverId" db:"receiver_id"`
	Status     ConnectionStatus `json:"status" db:"status"`
	CreatedAt  time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time        `json:"updatedAt" db:"updated_at"`

	// Related entities
	Sender   *User `json:"sender,omitempty"`
	Receiver *User `json:"receiver,omitempty"`
}
