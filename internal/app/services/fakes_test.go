package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/omnalage/skill-exchange-platform/internal/app/models"
	"github.com/omnalage/skill-exchange-platform/internal/app/repositories"
	"github.com/omnalage/skill-exchange-platform/internal/pkg/apperrors"
)

// In-memory store fakes shared by the service tests.

type fakeUserStore struct {
	users  map[int64]*models.User
	nextID int64
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) (int64, error) {
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		if existing.Username == user.Username {
			return 0, apperrors.ErrUsernameAlreadyExists
		}
	}
	f.nextID++
	user.ID = f.nextID
	if f.users == nil {
		f.users = map[int64]*models.User{}
	}
	f.users[user.ID] = user
	return user.ID, nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserStore) GetAllExcept(_ context.Context, id int64) ([]*models.User, error) {
	ids := make([]int64, 0, len(f.users))
	for userID := range f.users {
		if userID != id {
			ids = append(ids, userID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	users := make([]*models.User, 0, len(ids))
	for _, userID := range ids {
		users = append(users, f.users[userID])
	}
	return users, nil
}

func (f *fakeUserStore) Update(_ context.Context, user *models.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return apperrors.ErrUserNotFound
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserStore) UpdateAvatar(_ context.Context, userID int64, avatarURL string) error {
	user, ok := f.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.Avatar = &avatarURL
	return nil
}

func (f *fakeUserStore) SearchBySkill(_ context.Context, skill string) ([]*models.User, error) {
	var matches []*models.User
	for _, user := range f.users {
		for _, tag := range user.Skills {
			if strings.EqualFold(tag, skill) {
				matches = append(matches, user)
				break
			}
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })
	return matches, nil
}

type fakeConnectionStore struct {
	connections []*models.Connection
	nextID      int64
}

func (f *fakeConnectionStore) PendingExists(_ context.Context, senderID, receiverID int64) (bool, error) {
	for _, connection := range f.connections {
		if connection.SenderID == senderID && connection.ReceiverID == receiverID &&
			connection.Status == models.ConnectionStatusPending {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeConnectionStore) Create(_ context.Context, connection *models.Connection) (int64, error) {
	f.nextID++
	connection.ID = f.nextID
	connection.CreatedAt = time.Now()
	f.connections = append(f.connections, connection)
	return connection.ID, nil
}

func (f *fakeConnectionStore) UpdatePendingStatus(_ context.Context, senderID, receiverID int64, status models.ConnectionStatus) (bool, error) {
	for _, connection := range f.connections {
		if connection.SenderID == senderID && connection.ReceiverID == receiverID &&
			connection.Status == models.ConnectionStatusPending {
			connection.Status = status
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeConnectionStore) GetPendingForReceiver(_ context.Context, receiverID int64) ([]*models.Connection, error) {
	var pending []*models.Connection
	for _, connection := range f.connections {
		if connection.ReceiverID == receiverID && connection.Status == models.ConnectionStatusPending {
			pending = append(pending, connection)
		}
	}
	return pending, nil
}

func (f *fakeConnectionStore) GetConnectedUsers(_ context.Context, userID int64) ([]*models.User, error) {
	var peers []*models.User
	for _, connection := range f.connections {
		if connection.Status != models.ConnectionStatusAccepted {
			continue
		}
		if connection.SenderID == userID && connection.Receiver != nil {
			peers = append(peers, connection.Receiver)
		}
		if connection.ReceiverID == userID && connection.Sender != nil {
			peers = append(peers, connection.Sender)
		}
	}
	return peers, nil
}

type fakeConversationStore struct {
	conversations map[string]*models.Conversation
	messages      map[int64][]*models.Message
	nextConvID    int64
	nextMsgID     int64
	appendErr     error
}

func pairKey(a, b int64) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("%d:%d", a, b)
}

func (f *fakeConversationStore) GetOrCreate(_ context.Context, userA, userB int64) (*models.Conversation, error) {
	if f.conversations == nil {
		f.conversations = map[string]*models.Conversation{}
		f.messages = map[int64][]*models.Message{}
	}
	key := pairKey(userA, userB)
	if conversation, ok := f.conversations[key]; ok {
		return conversation, nil
	}
	low, high := userA, userB
	if low > high {
		low, high = high, low
	}
	f.nextConvID++
	conversation := &models.Conversation{ID: f.nextConvID, UserLow: low, UserHigh: high, CreatedAt: time.Now()}
	f.conversations[key] = conversation
	return conversation, nil
}

func (f *fakeConversationStore) AppendMessage(_ context.Context, conversationID int64, message *models.Message) (int64, error) {
	if f.appendErr != nil {
		return 0, f.appendErr
	}
	f.nextMsgID++
	message.ID = f.nextMsgID
	if message.Timestamp.IsZero() {
		message.Timestamp = time.Now()
	}
	f.messages[conversationID] = append(f.messages[conversationID], message)
	return message.ID, nil
}

func (f *fakeConversationStore) GetMessages(_ context.Context, userA, userB int64, filter *repositories.MessageFilter) ([]*models.Message, error) {
	conversation, ok := f.conversations[pairKey(userA, userB)]
	if !ok {
		return []*models.Message{}, nil
	}
	messages := f.messages[conversation.ID]
	if filter != nil && filter.Before != nil {
		var kept []*models.Message
		for _, message := range messages {
			if message.Timestamp.Before(*filter.Before) {
				kept = append(kept, message)
			}
		}
		messages = kept
	}
	if filter != nil && filter.Limit > 0 && len(messages) > filter.Limit {
		messages = messages[len(messages)-filter.Limit:]
	}
	return messages, nil
}

type fakeSessionStore struct {
	sessions map[string]int64
}

func (f *fakeSessionStore) Store(_ context.Context, refreshToken string, userID int64, _ time.Duration) error {
	if f.sessions == nil {
		f.sessions = map[string]int64{}
	}
	f.sessions[refreshToken] = userID
	return nil
}

func (f *fakeSessionStore) Get(_ context.Context, refreshToken string) (int64, error) {
	userID, ok := f.sessions[refreshToken]
	if !ok {
		return 0, apperrors.ErrTokenNotFound
	}
	return userID, nil
}

func (f *fakeSessionStore) Delete(_ context.Context, refreshToken string) error {
	delete(f.sessions, refreshToken)
	return nil
}
