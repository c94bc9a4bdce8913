package repositories

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/omnalage/skill-exchange-platform/internal/pkg/apperrors"
	"github.com/redis/go-redis/v9"
)

// SessionRepository stores refresh-token sessions in Redis. The TTL on each
// key doubles as the refresh-token expiry, so expired sessions vanish on
// their own.
type SessionRepository struct {
	client *redis.Client
}

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository(client *redis.Client) *SessionRepository {
	return &SessionRepository{client: client}
}

func sessionKey(refreshToken string) string {
	return "session:" + refreshToken
}

// Store saves a refresh token for a user with the given time-to-live
func (r *SessionRepository) Store(ctx context.Context, refreshToken string, userID int64, ttl time.Duration) error {
	err := r.client.Set(ctx, sessionKey(refreshToken), userID, ttl).Err()
	if err != nil {
		return fmt.Errorf("error storing session: %w", err)
	}
	return nil
}

// Get resolves a refresh token to its user. Missing or expired tokens yield
// apperrors.ErrTokenNotFound.
func (r *SessionRepository) Get(ctx context.Context, refreshToken string) (int64, error) {
	value, err := r.client.Get(ctx, sessionKey(refreshToken)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, apperrors.ErrTokenNotFound
		}
		return 0, fmt.Errorf("error loading session: %w", err)
	}

	userID, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt session value %q: %w", value, err)
	}

	return userID, nil
}

// Delete removes a refresh token, used when rotating on refresh
func (r *SessionRepository) Delete(ctx context.Context, refreshToken string) error {
	if err := r.client.Del(ctx, sessionKey(refreshToken)).Err(); err != nil {
		return fmt.Errorf("error deleting session: %w", err)
	}
	return nil
}
