package dto

import (
	"time"

	"github.com/omnalage/skill-exchange-platform/internal/app/models"
)

// --- Request DTOs ---

// NewMessage is the message body inside an UpdateChatRequest
type NewMessage struct {
	Content string `json:"content" binding:"required"`
}

// UpdateChatRequest appends a message to the conversation between user1 and
// user2, creating the conversation lazily.
type UpdateChatRequest struct {
	User1      int64      `json:"user1" binding:"required"`
	User2      int64      `json:"user2" binding:"required"`
	NewMessage NewMessage `json:"newMessage" binding:"required"`
}

// GetMessagesRequest carries optional history filters
type GetMessagesRequest struct {
	Before *time.Time `form:"before,omitempty"`
	Limit  int        `form:"limit,default=0" binding:"min=0,max=500"`
}

// --- Response DTOs ---

// MessageResponse represents one chat message
type MessageResponse struct {
	Sender    int64     `json:"sender"`
	Receiver  int64     `json:"receiver"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// MessageListResponse wraps the conversation history
type MessageListResponse struct {
	Messages []MessageResponse `json:"messages"`
}

// ToMessageResponse maps a message model to its wire shape
func ToMessageResponse(message *models.Message) MessageResponse {
	return MessageResponse{
		Sender:    message.SenderID,
		Receiver:  message.ReceiverID,
		Content:   message.Content,
		Timestamp: message.Timestamp,
	}
}
