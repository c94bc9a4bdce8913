package dto

import (
	"time"

	"github.com/omnalage/skill-exchange-platform/internal/app/models"
)

// SendRequestRequest creates a pending connection request
type SendRequestRequest struct {
	SenderID   int64 `json:"senderId" binding:"required"`
	ReceiverID int64 `json:"receiverId" binding:"required"`
}

// UpdateStatusRequest resolves a pending connection request
type UpdateStatusRequest struct {
	SenderID   int64  `json:"senderId" binding:"required"`
	ReceiverID int64  `json:"receiverId" binding:"required"`
	Status     string `json:"status" binding:"required,oneof=accepted rejected"`
}

// PendingRequestResponse is one pending request with sender display info
type PendingRequestResponse struct {
	ID        int64       `json:"id"`
	SenderID  int64       `json:"senderId"`
	Status    string      `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
	Sender    *SenderInfo `json:"sender,omitempty"`
}

// SenderInfo is the sender summary joined into a pending request
type SenderInfo struct {
	ID       int64   `json:"id"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Avatar   *string `json:"avatar,omitempty"`
}

// ToPendingRequestResponse maps a connection model to its response shape
func ToPendingRequestResponse(connection *models.Connection) PendingRequestResponse {
	response := PendingRequestResponse{
		ID:        connection.ID,
		SenderID:  connection.SenderID,
		Status:    string(connection.Status),
		CreatedAt: connection.CreatedAt,
	}

	if connection.Sender != nil {
		response.Sender = &SenderInfo{
			ID:       connection.Sender.ID,
			Username: connection.Sender.Username,
			Email:    connection.Sender.Email,
			Avatar:   connection.Sender.Avatar,
		}
	}

	return response
}
