package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/omnalage/skill-exchange-platform/internal/app/models"
	"github.com/omnalage/skill-exchange-platform/internal/pkg/realtime"
)

// ConversationRepository handles the conversation log for participant pairs.
// Conversations are keyed by the canonical (low, high) ordering of the two
// user IDs so lookups commute.
type ConversationRepository struct {
	db *pgxpool.Pool
}

// NewConversationRepository creates a new ConversationRepository
func NewConversationRepository(db *pgxpool.Pool) *ConversationRepository {
	return &ConversationRepository{db: db}
}

// GetOrCreate returns the conversation for the unordered pair, creating it
// when absent. The upsert on the canonical pair key is atomic, so two
// participants writing their first message concurrently still land in one
// conversation.
func (r *ConversationRepository) GetOrCreate(ctx context.Context, userA, userB int64) (*models.Conversation, error) {
	low, high := realtime.CanonicalPair(userA, userB)

	query := `
		INSERT INTO conversations (user_low, user_high)
		VALUES ($1, $2)
		ON CONFLICT (user_low, user_high) DO UPDATE SET user_low = EXCLUDED.user_low
		RETURNING id, user_low, user_high, created_at
	`

	var conversation models.Conversation
	err := r.db.QueryRow(ctx, query, low, high).Scan(
		&conversation.ID,
		&conversation.UserLow,
		&conversation.UserHigh,
		&conversation.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("error getting or creating conversation: %w", err)
	}

	return &conversation, nil
}

// find looks up a conversation without creating it. Returns nil when none
// exists yet.
func (r *ConversationRepository) find(ctx context.Context, userA, userB int64) (*models.Conversation, error) {
	low, high := realtime.CanonicalPair(userA, userB)

	query := `
		SELECT id, user_low, user_high, created_at
		FROM conversations
		WHERE user_low = $1 AND user_high = $2
	`

	var conversation models.Conversation
	err := r.db.QueryRow(ctx, query, low, high).Scan(
		&conversation.ID,
		&conversation.UserLow,
		&conversation.UserHigh,
		&conversation.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error looking up conversation: %w", err)
	}

	return &conversation, nil
}

// AppendMessage inserts a message into the conversation log. Plain insert,
// no dedup: a message submitted twice is stored twice.
func (r *ConversationRepository) AppendMessage(ctx context.Context, conversationID int64, message *models.Message) (int64, error) {
	query := `
		INSERT INTO messages (conversation_id, sender_id, receiver_id, content, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	timestamp := message.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now().UTC()
	}

	var id int64
	err := r.db.QueryRow(ctx, query,
		conversationID,
		message.SenderID,
		message.ReceiverID,
		message.Content,
		timestamp,
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("error appending message: %w", err)
	}

	message.ID = id
	message.ConversationID = conversationID
	message.Timestamp = timestamp

	return id, nil
}

// MessageFilter restricts a history query.
type MessageFilter struct {
	Before *time.Time
	Limit  int
}

// GetMessages returns the chronological message log between exactly the two
// users, in either argument order. Rows are restricted to the requested
// sender/receiver pair even if foreign records somehow ended up under the
// same conversation.
func (r *ConversationRepository) GetMessages(ctx context.Context, userA, userB int64, filter *MessageFilter) ([]*models.Message, error) {
	conversation, err := r.find(ctx, userA, userB)
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return []*models.Message{}, nil
	}

	// A limited fetch pages from the newest end; the rows are reversed after
	// scanning so callers always receive chronological order.
	newestFirst := filter != nil && filter.Limit > 0

	queryBuilder := squirrel.Select(
		"id", "conversation_id", "sender_id", "receiver_id", "content", "created_at",
	).
		From("messages").
		Where("conversation_id = ?", conversation.ID).
		Where(squirrel.Or{
			squirrel.And{squirrel.Eq{"sender_id": userA}, squirrel.Eq{"receiver_id": userB}},
			squirrel.And{squirrel.Eq{"sender_id": userB}, squirrel.Eq{"receiver_id": userA}},
		}).
		PlaceholderFormat(squirrel.Dollar)

	if newestFirst {
		queryBuilder = queryBuilder.OrderBy("created_at DESC", "id DESC").Limit(uint64(filter.Limit))
	} else {
		queryBuilder = queryBuilder.OrderBy("created_at", "id")
	}
	if filter != nil && filter.Before != nil {
		queryBuilder = queryBuilder.Where("created_at < ?", *filter.Before)
	}

	sql, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building message query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying messages: %w", err)
	}
	defer rows.Close()

	messages := []*models.Message{}
	for rows.Next() {
		var message models.Message
		err := rows.Scan(
			&message.ID,
			&message.ConversationID,
			&message.SenderID,
			&message.ReceiverID,
			&message.Content,
			&message.Timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning message row: %w", err)
		}
		messages = append(messages, &message)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating message rows: %w", err)
	}

	if newestFirst {
		for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
			messages[i], messages[j] = messages[j], messages[i]
		}
	}

	return messages, nil
}
