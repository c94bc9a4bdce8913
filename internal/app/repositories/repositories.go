package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository         *UserRepository
	ConnectionRepository   *ConnectionRepository
	ConversationRepository *ConversationRepository
	SessionRepository      *SessionRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool, redisClient *redis.Client) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(db),
		ConnectionRepository:   NewConnectionRepository(db),
		ConversationRepository: NewConversationRepository(db),
		SessionRepository:      NewSessionRepository(redisClient),
	}
}
