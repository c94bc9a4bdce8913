package services

import (
	"context"
	"sort"

	"github.com/omnalage/skill-exchange-platform/internal/app/models/dto"
	"github.com/omnalage/skill-exchange-platform/internal/pkg/similarity"
)

// maxRecommendations caps the ranked list returned per request
const maxRecommendations = 5

// RecommendationService ranks mentor candidates for a learner. Scores are
// computed per request and never stored.
type RecommendationService interface {
	GetRecommendations(ctx context.Context, userID int64) ([]dto.RecommendationResponse, error)
}

type recommendationService struct {
	userStore UserStore
}

// NewRecommendationService creates a new recommendation service
func NewRecommendationService(userStore UserStore) RecommendationService {
	return &recommendationService{
		userStore: userStore,
	}
}

// GetRecommendations scores every other user's skill set against the
// requesting user's learning interests and returns the top matches,
// strongest first. Zero-overlap candidates are dropped.
func (s *recommendationService) GetRecommendations(ctx context.Context, userID int64) ([]dto.RecommendationResponse, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	candidates, err := s.userStore.GetAllExcept(ctx, userID)
	if err != nil {
		return nil, err
	}

	recommendations := make([]dto.RecommendationResponse, 0, len(candidates))
	for _, candidate := range candidates {
		score := similarity.Score(user.Learning, candidate.Skills)
		if score == 0 {
			continue
		}

		skills := candidate.Skills
		if skills == nil {
			skills = []string{}
		}

		recommendations = append(recommendations, dto.RecommendationResponse{
			ID:         candidate.ID,
			Username:   candidate.Username,
			Email:      candidate.Email,
			Skills:     skills,
			Avatar:     candidate.Avatar,
			MatchScore: score,
		})
	}

	// Stable sort keeps the store's ordering for equal scores
	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].MatchScore > recommendations[j].MatchScore
	})

	if len(recommendations) > maxRecommendations {
		recommendations = recommendations[:maxRecommendations]
	}

	return recommendations, nil
}
