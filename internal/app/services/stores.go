package services

import (
	"context"
	"time"

	"github.com/omnalage/skill-exchange-platform/internal/app/models"
	"github.com/omnalage/skill-exchange-platform/internal/app/repositories"
)

// Store interfaces the services depend on. The repositories package provides
// the production implementations; tests substitute fakes.

// UserStore is the user persistence boundary
type UserStore interface {
	Create(ctx context.Context, user *models.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetAllExcept(ctx context.Context, id int64) ([]*models.User, error)
	Update(ctx context.Context, user *models.User) error
	UpdateAvatar(ctx context.Context, userID int64, avatarURL string) error
	SearchBySkill(ctx context.Context, skill string) ([]*models.User, error)
}

// ConnectionStore is the connection-request persistence boundary
type ConnectionStore interface {
	PendingExists(ctx context.Context, senderID, receiverID int64) (bool, error)
	Create(ctx context.Context, connection *models.Connection) (int64, error)
	UpdatePendingStatus(ctx context.Context, senderID, receiverID int64, status models.ConnectionStatus) (bool, error)
	GetPendingForReceiver(ctx context.Context, receiverID int64) ([]*models.Connection, error)
	GetConnectedUsers(ctx context.Context, userID int64) ([]*models.User, error)
}

// ConversationStore is the conversation-log persistence boundary
type ConversationStore interface {
	GetOrCreate(ctx context.Context, userA, userB int64) (*models.Conversation, error)
	AppendMessage(ctx context.Context, conversationID int64, message *models.Message) (int64, error)
	GetMessages(ctx context.Context, userA, userB int64, filter *repositories.MessageFilter) ([]*models.Message, error)
}

// SessionStore is the refresh-token session boundary
type SessionStore interface {
	Store(ctx context.Context, refreshToken string, userID int64, ttl time.Duration) error
	Get(ctx context.Context, refreshToken string) (int64, error)
	Delete(ctx context.Context, refreshToken string) error
}
