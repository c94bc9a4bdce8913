package services

import (
	"context"
	"mime/multipart"
	"strings"

	"github.com/omnalage/skill-exchange-platform/internal/app/models"
	"github.com/omnalage/skill-exchange-platform/internal/app/models/dto"
	"github.com/omnalage/skill-exchange-platform/internal/pkg/apperrors"
	"github.com/omnalage/skill-exchange-platform/internal/pkg/filestorage"
	"github.com/omnalage/skill-exchange-platform/internal/pkg/logger"
	"github.com/omnalage/skill-exchange-platform/internal/pkg/validation"
)

// UserService handles profile management and skill search
type UserService interface {
	GetProfile(ctx context.Context, userID int64) (*dto.UserProfileResponse, error)
	UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.UserProfileResponse, error)
	UpdateAvatar(ctx context.Context, userID int64, fileHeader *multipart.FileHeader) (string, error)
	SearchBySkill(ctx context.Context, skill string) ([]*dto.UserProfileResponse, error)
}

type userService struct {
	userStore UserStore
	storage   filestorage.FileStorage
}

// NewUserService creates a new user service
func NewUserService(userStore UserStore, storage filestorage.FileStorage) UserService {
	return &userService{
		userStore: userStore,
		storage:   storage,
	}
}

// GetProfile returns one user's public profile
func (s *userService) GetProfile(ctx context.Context, userID int64) (*dto.UserProfileResponse, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	response := dto.ToUserProfileResponse(user)
	return &response, nil
}

// UpdateProfile replaces the editable profile fields. Tag lists are replaced
// wholesale and normalized of blank entries.
func (s *userService) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.UserProfileResponse, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Username = req.Username
	user.Email = req.Email
	user.Skills = validation.NormalizeTags(req.Skills)
	user.Learning = validation.NormalizeTags(req.Learning)
	if req.Avatar != nil {
		user.Avatar = req.Avatar
	}

	if err := s.userStore.Update(ctx, user); err != nil {
		return nil, err
	}

	response := dto.ToUserProfileResponse(user)
	return &response, nil
}

// UpdateAvatar stores the uploaded image and records its URL on the profile
func (s *userService) UpdateAvatar(ctx context.Context, userID int64, fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader == nil {
		return "", apperrors.NewValidationError("Avatar file is required")
	}

	if _, err := s.userStore.GetByID(ctx, userID); err != nil {
		return "", err
	}

	avatarURL, err := s.storage.SaveFileWithPath(fileHeader, "avatars")
	if err != nil {
		return "", err
	}

	if err := s.userStore.UpdateAvatar(ctx, userID, avatarURL); err != nil {
		// Remove the orphaned file before surfacing the error
		if removeErr := s.storage.DeleteFile(avatarURL); removeErr != nil {
			logger.Warn().Err(removeErr).Str("path", avatarURL).Msg("Failed to remove orphaned avatar file")
		}
		return "", err
	}

	return avatarURL, nil
}

// SearchBySkill finds users offering the given skill tag
func (s *userService) SearchBySkill(ctx context.Context, skill string) ([]*dto.UserProfileResponse, error) {
	skill = strings.TrimSpace(skill)
	if skill == "" {
		return nil, apperrors.NewValidationError("Search skill must not be empty")
	}

	users, err := s.userStore.SearchBySkill(ctx, skill)
	if err != nil {
		return nil, err
	}

	if len(users) == 0 {
		return nil, apperrors.NewResourceNotFoundError("No users found with this skill")
	}

	return toProfileList(users), nil
}

func toProfileList(users []*models.User) []*dto.UserProfileResponse {
	responses := make([]*dto.UserProfileResponse, 0, len(users))
	for _, user := range users {
		response := dto.ToUserProfileResponse(user)
		responses = append(responses, &response)
	}
	return responses
}
