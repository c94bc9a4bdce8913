package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/omnalage/skill-exchange-platform/internal/app/models/dto"
	"github.com/omnalage/skill-exchange-platform/internal/app/services"
	"github.com/omnalage/skill-exchange-platform/internal/middleware"
	"github.com/omnalage/skill-exchange-platform/internal/pkg/apperrors"
)

// UserController handles profile and skill search operations
type UserController struct {
	userService services.UserService
	logger      zerolog.Logger
}

// NewUserController creates a new UserController
func NewUserController(userService services.UserService, logger zerolog.Logger) *UserController {
	return &UserController{
		userService: userService,
		logger:      logger,
	}
}

func parseIDParam(ctx *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewBadRequestError("Invalid " + name + " parameter")
	}
	return id, nil
}

// GetProfile returns one user's profile
// @Summary Get a user profile
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} dto.UserProfileResponse
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/profile/{id} [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	userID, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	profile, err := c.userService.GetProfile(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, profile)
}

// UpdateProfile updates the caller's profile
// @Summary Update a user profile
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body dto.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} dto.UserProfileResponse
// @Failure 403 {object} dto.ErrorResponse "Editing another user's profile"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/profile/{id} [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	userID, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if callerID, ok := middleware.CurrentUserID(ctx); !ok || callerID != userID {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return
	}

	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	profile, err := c.userService.UpdateProfile(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, profile)
}

// UploadAvatar stores a profile image
// @Summary Upload a profile avatar
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "User ID"
// @Param avatar formData file true "Avatar image"
// @Success 200 {object} dto.AvatarResponse
// @Failure 403 {object} dto.ErrorResponse "Editing another user's profile"
// @Router /users/profile/{id}/avatar [post]
func (c *UserController) UploadAvatar(ctx *gin.Context) {
	userID, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if callerID, ok := middleware.CurrentUserID(ctx); !ok || callerID != userID {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return
	}

	fileHeader, err := ctx.FormFile("avatar")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Avatar file is required")))
		return
	}

	avatarURL, err := c.userService.UpdateAvatar(ctx.Request.Context(), userID, fileHeader)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.AvatarResponse{Avatar: avatarURL})
}

// SearchBySkill finds users offering a skill
// @Summary Search users by skill
// @Tags search
// @Produce json
// @Param skill query string true "Skill tag"
// @Success 200 {array} dto.UserProfileResponse
// @Failure 400 {object} dto.ErrorResponse "Missing skill parameter"
// @Failure 404 {object} dto.ErrorResponse "No users offer this skill"
// @Router /search/skills [get]
func (c *UserController) SearchBySkill(ctx *gin.Context) {
	users, err := c.userService.SearchBySkill(ctx.Request.Context(), ctx.Query("skill"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, users)
}
