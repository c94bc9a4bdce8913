package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/omnalage/skill-exchange-platform/internal/app/models"
	"github.com/omnalage/skill-exchange-platform/internal/pkg/apperrors"
	"github.com/omnalage/skill-exchange-platform/internal/pkg/dberrors"
)

// UserRepository handles database operations for users
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, username, email, password, skills, learning, avatar, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.Password,
		&user.Skills,
		&user.Learning,
		&user.Avatar,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a new user and returns the generated ID
func (r *UserRepository) Create(ctx context.Context, user *models.User) (int64, error) {
	query := `
		INSERT INTO users (username, email, password, skills, learning)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	skills := user.Skills
	if skills == nil {
		skills = []string{}
	}
	learning := user.Learning
	if learning == nil {
		learning = []string{}
	}

	err := r.db.QueryRow(ctx, query,
		user.Username,
		user.Email,
		user.Password,
		skills,
		learning,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_username_key") {
			return 0, apperrors.ErrUsernameAlreadyExists
		}
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		// Unique violation on a constraint added after these checks
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.NewConflictError("User already exists")
		}
		return 0, fmt.Errorf("error creating user: %w", err)
	}

	return user.ID, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return user, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user by email: %w", err)
	}

	return user, nil
}

// GetAllExcept retrieves every user other than the given one. This is the
// candidate pool for recommendations.
func (r *UserRepository) GetAllExcept(ctx context.Context, id int64) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id <> $1 ORDER BY id`

	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning user row: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}

	return users, nil
}

// Update persists profile changes (username, email, skills, learning, avatar)
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET username = $2, email = $3, skills = $4, learning = $5, avatar = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRow(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.Skills,
		user.Learning,
		user.Avatar,
	).Scan(&user.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrUserNotFound
		}
		if dberrors.IsDuplicateConstraintError(err, "users_username_key") {
			return apperrors.ErrUsernameAlreadyExists
		}
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		if dberrors.IsUniqueViolation(err) {
			return apperrors.NewConflictError("User already exists")
		}
		return fmt.Errorf("error updating user: %w", err)
	}

	return nil
}

// UpdateAvatar sets the avatar URL for a user
func (r *UserRepository) UpdateAvatar(ctx context.Context, userID int64, avatarURL string) error {
	result, err := r.db.Exec(ctx,
		`UPDATE users SET avatar = $2, updated_at = NOW() WHERE id = $1`,
		userID, avatarURL)
	if err != nil {
		return fmt.Errorf("error updating avatar: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// SearchBySkill finds users whose skills contain the tag, case-insensitively
func (r *UserRepository) SearchBySkill(ctx context.Context, skill string) ([]*models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE EXISTS (
			SELECT 1 FROM unnest(skills) AS tag WHERE lower(tag) = lower($1)
		)
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, skill)
	if err != nil {
		return nil, fmt.Errorf("error searching users by skill: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning user row: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}

	return users, nil
}
