package services

import (
	"context"
	"strings"
	"time"

	"github.com/omnalage/skill-exchange-platform/internal/app/models"
	"github.com/omnalage/skill-exchange-platform/internal/app/models/dto"
	"github.com/omnalage/skill-exchange-platform/internal/app/repositories"
	"github.com/omnalage/skill-exchange-platform/internal/pkg/apperrors"
)

// ChatService handles the durable conversation log. Realtime delivery is a
// separate concern; the websocket layer only fans messages out and this
// service owns every write.
type ChatService interface {
	GetMessages(ctx context.Context, user1, user2 int64, filter *repositories.MessageFilter) (*dto.MessageListResponse, error)
	SendMessage(ctx context.Context, senderID, receiverID int64, content string) (*dto.MessageResponse, error)
}

type chatService struct {
	conversationStore ConversationStore
}

// NewChatService creates a new chat service
func NewChatService(conversationStore ConversationStore) ChatService {
	return &chatService{
		conversationStore: conversationStore,
	}
}

// GetMessages returns the history between user1 and user2, oldest first.
// The pair is unordered; both argument orders read the same conversation.
func (s *chatService) GetMessages(ctx context.Context, user1, user2 int64, filter *repositories.MessageFilter) (*dto.MessageListResponse, error) {
	if user1 <= 0 || user2 <= 0 {
		return nil, apperrors.NewValidationError("Both participant ids are required")
	}

	messages, err := s.conversationStore.GetMessages(ctx, user1, user2, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.MessageResponse, 0, len(messages))
	for _, message := range messages {
		// The store already scopes rows to the pair; keep a second guard so a
		// future query change cannot leak another conversation's rows.
		if !messageBelongsToPair(message, user1, user2) {
			continue
		}
		responses = append(responses, dto.ToMessageResponse(message))
	}

	return &dto.MessageListResponse{Messages: responses}, nil
}

// SendMessage appends one message to the pair's conversation, creating the
// conversation on first contact.
func (s *chatService) SendMessage(ctx context.Context, senderID, receiverID int64, content string) (*dto.MessageResponse, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewValidationError("Message content must not be empty")
	}
	if senderID == receiverID {
		return nil, apperrors.NewValidationError("Cannot send a message to yourself")
	}

	conversation, err := s.conversationStore.GetOrCreate(ctx, senderID, receiverID)
	if err != nil {
		return nil, err
	}

	message := &models.Message{
		ConversationID: conversation.ID,
		SenderID:       senderID,
		ReceiverID:     receiverID,
		Content:        content,
		Timestamp:      time.Now().UTC(),
	}

	if _, err := s.conversationStore.AppendMessage(ctx, conversation.ID, message); err != nil {
		return nil, err
	}

	response := dto.ToMessageResponse(message)
	return &response, nil
}

func messageBelongsToPair(message *models.Message, user1, user2 int64) bool {
	return (message.SenderID == user1 && message.ReceiverID == user2) ||
		(message.SenderID == user2 && message.ReceiverID == user1)
}
