package dto

// RegisterRequest represents the payload for creating an account
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=2,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest represents the payload for logging in
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest trades a refresh token for a new token pair
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// AuthResponse is returned on successful registration, login or refresh.
// The access token carries the "Bearer " prefix ready for the
// Authorization header.
type AuthResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	ID           int64  `json:"id"`
	ExpiresIn    int    `json:"expiresIn"`
}
