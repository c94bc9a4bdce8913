package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omnalage/skill-exchange-platform/internal/app/models"
	"github.com/omnalage/skill-exchange-platform/internal/pkg/apperrors"
)

func TestGetRecommendations_RanksAndTruncates(t *testing.T) {
	store := &fakeUserStore{
		users: map[int64]*models.User{
			1: {ID: 1, Username: "learner", Learning: []string{"go", "sql", "docker", "react"}},
			// 4/4 overlap
			2: {ID: 2, Username: "ada", Skills: []string{"go", "sql", "docker", "react"}},
			// no overlap
			3: {ID: 3, Username: "bob", Skills: []string{"cobol"}},
			// 1/4 union 4 -> 25
			4: {ID: 4, Username: "cem", Skills: []string{"go"}},
			// 2/4 union 4 -> 50
			5: {ID: 5, Username: "dina", Skills: []string{"sql", "docker"}},
			// empty skills
			6: {ID: 6, Username: "eli"},
		},
	}
	service := NewRecommendationService(store)

	recommendations, err := service.GetRecommendations(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, recommendations, 3)
	assert.Equal(t, int64(2), recommendations[0].ID)
	assert.Equal(t, 100, recommendations[0].MatchScore)
	assert.Equal(t, int64(5), recommendations[1].ID)
	assert.Equal(t, 50, recommendations[1].MatchScore)
	assert.Equal(t, int64(4), recommendations[2].ID)
	assert.Equal(t, 25, recommendations[2].MatchScore)
}

func TestGetRecommendations_TopFiveOnly(t *testing.T) {
	users := map[int64]*models.User{
		1: {ID: 1, Username: "learner", Learning: []string{"go"}},
	}
	for id := int64(2); id <= 9; id++ {
		users[id] = &models.User{ID: id, Username: "mentor", Skills: []string{"go"}}
	}
	service := NewRecommendationService(&fakeUserStore{users: users})

	recommendations, err := service.GetRecommendations(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, recommendations, 5)
}

func TestGetRecommendations_StableOrderForEqualScores(t *testing.T) {
	store := &fakeUserStore{
		users: map[int64]*models.User{
			1: {ID: 1, Learning: []string{"go"}},
			2: {ID: 2, Skills: []string{"go", "sql"}},
			3: {ID: 3, Skills: []string{"go", "rust"}},
		},
	}
	service := NewRecommendationService(store)

	recommendations, err := service.GetRecommendations(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, recommendations, 2)
	// Equal scores keep store order
	assert.Equal(t, int64(2), recommendations[0].ID)
	assert.Equal(t, int64(3), recommendations[1].ID)
}

func TestGetRecommendations_EmptyLearningYieldsEmptyList(t *testing.T) {
	store := &fakeUserStore{
		users: map[int64]*models.User{
			1: {ID: 1},
			2: {ID: 2, Skills: []string{"go"}},
		},
	}
	service := NewRecommendationService(store)

	recommendations, err := service.GetRecommendations(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, recommendations)
}

func TestGetRecommendations_UnknownUser(t *testing.T) {
	service := NewRecommendationService(&fakeUserStore{users: map[int64]*models.User{}})

	_, err := service.GetRecommendations(context.Background(), 42)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
