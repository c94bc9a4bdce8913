package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omnalage/skill-exchange-platform/internal/app/models"
	"github.com/omnalage/skill-exchange-platform/internal/pkg/apperrors"
)

func newConnectionFixtures() (*fakeConnectionStore, *fakeUserStore, ConnectionService) {
	connectionStore := &fakeConnectionStore{}
	userStore := &fakeUserStore{users: map[int64]*models.User{
		1: {ID: 1, Username: "ada", Email: "ada@example.com"},
		2: {ID: 2, Username: "bob", Email: "bob@example.com"},
	}}
	return connectionStore, userStore, NewConnectionService(connectionStore, userStore)
}

func TestSendRequest(t *testing.T) {
	connectionStore, _, service := newConnectionFixtures()
	ctx := context.Background()

	require.NoError(t, service.SendRequest(ctx, 1, 2))
	require.Len(t, connectionStore.connections, 1)
	assert.Equal(t, models.ConnectionStatusPending, connectionStore.connections[0].Status)
}

func TestSendRequest_Self(t *testing.T) {
	_, _, service := newConnectionFixtures()

	err := service.SendRequest(context.Background(), 1, 1)
	assert.ErrorIs(t, err, apperrors.ErrSelfRequest)
}

func TestSendRequest_UnknownReceiver(t *testing.T) {
	_, _, service := newConnectionFixtures()

	err := service.SendRequest(context.Background(), 1, 99)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestSendRequest_DuplicatePending(t *testing.T) {
	_, _, service := newConnectionFixtures()
	ctx := context.Background()

	require.NoError(t, service.SendRequest(ctx, 1, 2))
	err := service.SendRequest(ctx, 1, 2)
	assert.ErrorIs(t, err, apperrors.ErrDuplicateRequest)
}

func TestSendRequest_AllowedAfterResolution(t *testing.T) {
	_, _, service := newConnectionFixtures()
	ctx := context.Background()

	require.NoError(t, service.SendRequest(ctx, 1, 2))
	require.NoError(t, service.UpdateStatus(ctx, 1, 2, "rejected"))
	assert.NoError(t, service.SendRequest(ctx, 1, 2))
}

func TestUpdateStatus(t *testing.T) {
	connectionStore, _, service := newConnectionFixtures()
	ctx := context.Background()

	require.NoError(t, service.SendRequest(ctx, 1, 2))
	require.NoError(t, service.UpdateStatus(ctx, 1, 2, "accepted"))
	assert.Equal(t, models.ConnectionStatusAccepted, connectionStore.connections[0].Status)

	// Already resolved; nothing pending to update
	err := service.UpdateStatus(ctx, 1, 2, "rejected")
	assert.ErrorIs(t, err, apperrors.ErrConnectionNotFound)
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	_, _, service := newConnectionFixtures()

	err := service.UpdateStatus(context.Background(), 1, 2, "ghosted")
	assert.ErrorIs(t, err, apperrors.ErrInvalidStatus)
}

func TestGetPendingRequests(t *testing.T) {
	connectionStore, userStore, service := newConnectionFixtures()
	ctx := context.Background()

	require.NoError(t, service.SendRequest(ctx, 1, 2))
	connectionStore.connections[0].Sender = userStore.users[1]

	pending, err := service.GetPendingRequests(ctx, 2)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, int64(1), pending[0].SenderID)
	require.NotNil(t, pending[0].Sender)
	assert.Equal(t, "ada", pending[0].Sender.Username)

	// The sender side has nothing pending
	none, err := service.GetPendingRequests(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, none)
}
