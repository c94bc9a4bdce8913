package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/omnalage/skill-exchange-platform/internal/app/services"
	"github.com/omnalage/skill-exchange-platform/internal/middleware"
)

// RecommendationController serves ranked mentor matches
type RecommendationController struct {
	recommendationService services.RecommendationService
	logger                zerolog.Logger
}

// NewRecommendationController creates a new RecommendationController
func NewRecommendationController(recommendationService services.RecommendationService, logger zerolog.Logger) *RecommendationController {
	return &RecommendationController{
		recommendationService: recommendationService,
		logger:                logger,
	}
}

// GetRecommendations returns the top mentor matches for a user
// @Summary Get mentor recommendations
// @Description Ranks other users by overlap between the requesting user's learning interests and their skills. Returns at most five matches, strongest first.
// @Tags recommendations
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {array} dto.RecommendationResponse
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /recommendations/{userId} [get]
func (c *RecommendationController) GetRecommendations(ctx *gin.Context) {
	userID, err := parseIDParam(ctx, "userId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	recommendations, err := c.recommendationService.GetRecommendations(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, recommendations)
}
