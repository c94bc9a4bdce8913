package services

import (
	"context"

	"github.com/omnalage/skill-exchange-platform/internal/app/models"
	"github.com/omnalage/skill-exchange-platform/internal/app/models/dto"
	"github.com/omnalage/skill-exchange-platform/internal/pkg/apperrors"
	"github.com/omnalage/skill-exchange-platform/internal/pkg/logger"
)

// ConnectionService handles connection requests between users
type ConnectionService interface {
	SendRequest(ctx context.Context, senderID, receiverID int64) error
	UpdateStatus(ctx context.Context, senderID, receiverID int64, status string) error
	GetPendingRequests(ctx context.Context, receiverID int64) ([]dto.PendingRequestResponse, error)
	GetConnectedUsers(ctx context.Context, userID int64) ([]*dto.UserProfileResponse, error)
}

type connectionService struct {
	connectionStore ConnectionStore
	userStore       UserStore
}

// NewConnectionService creates a new connection service
func NewConnectionService(connectionStore ConnectionStore, userStore UserStore) ConnectionService {
	return &connectionService{
		connectionStore: connectionStore,
		userStore:       userStore,
	}
}

// SendRequest creates a pending connection request from sender to receiver
func (s *connectionService) SendRequest(ctx context.Context, senderID, receiverID int64) error {
	if senderID == receiverID {
		return apperrors.ErrSelfRequest
	}

	if _, err := s.userStore.GetByID(ctx, receiverID); err != nil {
		return err
	}

	exists, err := s.connectionStore.PendingExists(ctx, senderID, receiverID)
	if err != nil {
		return err
	}
	if exists {
		return apperrors.NewCustomError(apperrors.ErrDuplicateRequest, "A pending request between these users already exists")
	}

	connection := &models.Connection{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Status:     models.ConnectionStatusPending,
	}

	if _, err := s.connectionStore.Create(ctx, connection); err != nil {
		return err
	}

	logger.Info().
		Int64("senderId", senderID).
		Int64("receiverId", receiverID).
		Msg("Connection request sent")

	return nil
}

// UpdateStatus resolves a pending request to accepted or rejected. Only
// pending requests can be resolved; resolving twice is a not-found.
func (s *connectionService) UpdateStatus(ctx context.Context, senderID, receiverID int64, status string) error {
	newStatus := models.ConnectionStatus(status)
	if newStatus != models.ConnectionStatusAccepted && newStatus != models.ConnectionStatusRejected {
		return apperrors.ErrInvalidStatus
	}

	updated, err := s.connectionStore.UpdatePendingStatus(ctx, senderID, receiverID, newStatus)
	if err != nil {
		return err
	}
	if !updated {
		return apperrors.ErrConnectionNotFound
	}

	logger.Info().
		Int64("senderId", senderID).
		Int64("receiverId", receiverID).
		Str("status", status).
		Msg("Connection request resolved")

	return nil
}

// GetPendingRequests lists requests awaiting the receiver's decision
func (s *connectionService) GetPendingRequests(ctx context.Context, receiverID int64) ([]dto.PendingRequestResponse, error) {
	connections, err := s.connectionStore.GetPendingForReceiver(ctx, receiverID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.PendingRequestResponse, 0, len(connections))
	for _, connection := range connections {
		responses = append(responses, dto.ToPendingRequestResponse(connection))
	}
	return responses, nil
}

// GetConnectedUsers lists the peers with an accepted connection to userID
func (s *connectionService) GetConnectedUsers(ctx context.Context, userID int64) ([]*dto.UserProfileResponse, error) {
	users, err := s.connectionStore.GetConnectedUsers(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toProfileList(users), nil
}
