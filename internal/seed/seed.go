// Package seed creates demo data for local development.
package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/omnalage/skill-exchange-platform/internal/app/models"
	"github.com/omnalage/skill-exchange-platform/internal/app/repositories"
	"github.com/omnalage/skill-exchange-platform/internal/pkg/apperrors"
	"github.com/omnalage/skill-exchange-platform/internal/pkg/auth"
)

// demoPassword is shared by every seeded account
const demoPassword = "password123"

var demoUsers = []models.User{
	{
		Username: "ada",
		Email:    "ada@example.com",
		Skills:   []string{"Go", "PostgreSQL", "Docker"},
		Learning: []string{"React", "TypeScript"},
	},
	{
		Username: "grace",
		Email:    "grace@example.com",
		Skills:   []string{"React", "TypeScript", "CSS"},
		Learning: []string{"Go", "Kubernetes"},
	},
	{
		Username: "alan",
		Email:    "alan@example.com",
		Skills:   []string{"Python", "Machine Learning"},
		Learning: []string{"Go", "PostgreSQL"},
	},
	{
		Username: "linus",
		Email:    "linus@example.com",
		Skills:   []string{"C", "Linux", "Git"},
		Learning: []string{"Rust"},
	},
}

// CreateDemoData inserts the demo accounts, a couple of connection requests
// and a short conversation. Existing accounts are left untouched so the
// seeder is safe to run repeatedly.
func CreateDemoData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := repositories.NewUserRepository(dbPool)
	connectionRepo := repositories.NewConnectionRepository(dbPool)
	conversationRepo := repositories.NewConversationRepository(dbPool)

	lgr.Info().Msg("Seeding demo data")

	hashed, err := auth.HashPassword(demoPassword)
	if err != nil {
		return err
	}

	ids := make(map[string]int64, len(demoUsers))
	createdAny := false
	var finalErr error

	for i := range demoUsers {
		user := demoUsers[i]
		user.Password = hashed

		id, err := userRepo.Create(ctx, &user)
		switch {
		case err == nil:
			ids[user.Username] = id
			createdAny = true
		case errors.Is(err, apperrors.ErrEmailAlreadyExists),
			errors.Is(err, apperrors.ErrUsernameAlreadyExists):
			existing, errGet := userRepo.GetByEmail(ctx, user.Email)
			if errGet != nil {
				finalErr = errors.Join(finalErr, errGet)
				continue
			}
			ids[user.Username] = existing.ID
		default:
			lgr.Error().Err(err).Str("username", user.Username).Msg("Error seeding user")
			finalErr = errors.Join(finalErr, err)
		}
	}

	// Relationships are only seeded on the first run
	if !createdAny {
		return finalErr
	}

	adaID, okAda := ids["ada"]
	graceID, okGrace := ids["grace"]
	alanID, okAlan := ids["alan"]
	if !okAda || !okGrace || !okAlan {
		return finalErr
	}

	// ada and grace are connected; alan has a request pending with ada
	if err := seedConnection(ctx, connectionRepo, graceID, adaID, models.ConnectionStatusAccepted); err != nil {
		finalErr = errors.Join(finalErr, err)
	}
	if err := seedConnection(ctx, connectionRepo, alanID, adaID, models.ConnectionStatusPending); err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	// A short conversation between the connected pair
	conversation, err := conversationRepo.GetOrCreate(ctx, adaID, graceID)
	if err != nil {
		return errors.Join(finalErr, err)
	}

	existing, err := conversationRepo.GetMessages(ctx, adaID, graceID, nil)
	if err != nil {
		return errors.Join(finalErr, err)
	}
	if len(existing) > 0 {
		return finalErr
	}

	openers := []models.Message{
		{SenderID: graceID, ReceiverID: adaID, Content: "Hey, saw you offer Go mentoring. Want to trade for some React help?"},
		{SenderID: adaID, ReceiverID: graceID, Content: "Sounds great. How about an hour each this week?"},
	}
	for i := range openers {
		if _, err := conversationRepo.AppendMessage(ctx, conversation.ID, &openers[i]); err != nil {
			finalErr = errors.Join(finalErr, err)
		}
	}

	return finalErr
}

func seedConnection(ctx context.Context, repo *repositories.ConnectionRepository, senderID, receiverID int64, status models.ConnectionStatus) error {
	exists, err := repo.PendingExists(ctx, senderID, receiverID)
	if err != nil || exists {
		return err
	}

	connection := &models.Connection{SenderID: senderID, ReceiverID: receiverID, Status: models.ConnectionStatusPending}
	if _, err := repo.Create(ctx, connection); err != nil {
		return err
	}

	if status != models.ConnectionStatusPending {
		if _, err := repo.UpdatePendingStatus(ctx, senderID, receiverID, status); err != nil {
			return err
		}
	}
	return nil
}
