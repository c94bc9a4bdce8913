package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/omnalage/skill-exchange-platform/internal/app/models"
)

// ConnectionRepository handles database operations for connection requests
type ConnectionRepository struct {
	db *pgxpool.Pool
}

// NewConnectionRepository creates a new ConnectionRepository
func NewConnectionRepository(db *pgxpool.Pool) *ConnectionRepository {
	return &ConnectionRepository{db: db}
}

// PendingExists reports whether a pending request already exists for the
// ordered (sender, receiver) pair. Best-effort: the check and the insert are
// separate statements, matching the documented invariant.
func (r *ConnectionRepository) PendingExists(ctx context.Context, senderID, receiverID int64) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS(
			SELECT 1 FROM connections
			WHERE sender_id = $1 AND receiver_id = $2 AND status = 'pending'
		)
	`
	if err := r.db.QueryRow(ctx, query, senderID, receiverID).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking pending connection: %w", err)
	}
	return exists, nil
}

// Create inserts a new pending connection request
func (r *ConnectionRepository) Create(ctx context.Context, connection *models.Connection) (int64, error) {
	query := `
		INSERT INTO connections (sender_id, receiver_id, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		connection.SenderID,
		connection.ReceiverID,
		connection.Status,
	).Scan(&connection.ID, &connection.CreatedAt, &connection.UpdatedAt)

	if err != nil {
		return 0, fmt.Errorf("error creating connection request: %w", err)
	}

	return connection.ID, nil
}

// UpdatePendingStatus transitions the pending request for the ordered pair
// to accepted or rejected. Returns false when no pending request exists.
func (r *ConnectionRepository) UpdatePendingStatus(
	ctx context.Context,
	senderID, receiverID int64,
	status models.ConnectionStatus,
) (bool, error) {
	query := `
		UPDATE connections
		SET status = $3, updated_at = NOW()
		WHERE sender_id = $1 AND receiver_id = $2 AND status = 'pending'
	`

	result, err := r.db.Exec(ctx, query, senderID, receiverID, status)
	if err != nil {
		return false, fmt.Errorf("error updating connection status: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// GetPendingForReceiver lists pending requests addressed to a user, with the
// sender's profile joined in for display.
func (r *ConnectionRepository) GetPendingForReceiver(ctx context.Context, receiverID int64) ([]*models.Connection, error) {
	query := `
		SELECT c.id, c.sender_id, c.receiver_id, c.status, c.created_at, c.updated_at,
		       u.id, u.username, u.email, u.avatar
		FROM connections c
		JOIN users u ON c.sender_id = u.id
		WHERE c.receiver_id = $1 AND c.status = 'pending'
		ORDER BY c.created_at
	`

	rows, err := r.db.Query(ctx, query, receiverID)
	if err != nil {
		return nil, fmt.Errorf("error listing pending requests: %w", err)
	}
	defer rows.Close()

	var connections []*models.Connection
	for rows.Next() {
		var connection models.Connection
		var sender models.User

		err := rows.Scan(
			&connection.ID,
			&connection.SenderID,
			&connection.ReceiverID,
			&connection.Status,
			&connection.CreatedAt,
			&connection.UpdatedAt,
			&sender.ID,
			&sender.Username,
			&sender.Email,
			&sender.Avatar,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning connection row: %w", err)
		}

		connection.Sender = &sender
		connections = append(connections, &connection)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating connection rows: %w", err)
	}

	return connections, nil
}

// GetConnectedUsers returns the peer of every accepted connection the user
// participates in, regardless of who sent the original request.
func (r *ConnectionRepository) GetConnectedUsers(ctx context.Context, userID int64) ([]*models.User, error) {
	query := `
		SELECT u.id, u.username, u.email, u.skills, u.learning, u.avatar
		FROM connections c
		JOIN users u ON u.id = CASE WHEN c.sender_id = $1 THEN c.receiver_id ELSE c.sender_id END
		WHERE (c.sender_id = $1 OR c.receiver_id = $1) AND c.status = 'accepted'
		ORDER BY c.updated_at
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing connected users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var user models.User
		err := rows.Scan(
			&user.ID,
			&user.Username,
			&user.Email,
			&user.Skills,
			&user.Learning,
			&user.Avatar,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning connected user row: %w", err)
		}
		users = append(users, &user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating connected user rows: %w", err)
	}

	return users, nil
}
