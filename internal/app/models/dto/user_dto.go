package dto

import (
	"github.com/omnalage/skill-exchange-platform/internal/app/models"
)

// UpdateProfileRequest represents editable profile fields. Tag lists replace
// the stored sets wholesale, matching the edit form behavior.
type UpdateProfileRequest struct {
	Username string   `json:"username" binding:"required,min=2,max=50"`
	Email    string   `json:"email" binding:"required,email"`
	Skills   []string `json:"skills"`
	Learning []string `json:"learning"`
	Avatar   *string  `json:"avatar,omitempty"`
}

// UserProfileResponse represents a user profile without credentials
type UserProfileResponse struct {
	ID       int64    `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Skills   []string `json:"skills"`
	Learning []string `json:"learning"`
	Avatar   *string  `json:"avatar,omitempty"`
}

// ToUserProfileResponse maps a user model to its public profile shape
func ToUserProfileResponse(user *models.User) UserProfileResponse {
	skills := user.Skills
	if skills == nil {
		skills = []string{}
	}
	learning := user.Learning
	if learning == nil {
		learning = []string{}
	}

	return UserProfileResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Skills:   skills,
		Learning: learning,
		Avatar:   user.Avatar,
	}
}

// AvatarResponse is returned after an avatar upload
type AvatarResponse struct {
	Avatar string `json:"avatar"`
}
