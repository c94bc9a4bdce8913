package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID        int64     `json:"id" db:"id" example:"1"`                                   // Unique identifier for the user
	Username  string    `json:"username" db:"username" example:"gopher42"`                // Unique display name
	Email     string    `json:"email" db:"email" example:"gopher@example.com"`            // User's email address
	Password  string    `json:"-" db:"password"`                                          // User's hashed password (excluded from JSON)
	Skills    []string  `json:"skills" db:"skills"`                                       // Tags the user can teach
	Learning  []string  `json:"learning" db:"learning"`                                   // Tags the user wants to learn
	Avatar    *string   `json:"avatar,omitempty" db:"avatar"`                             // Avatar URL (nullable)
	CreatedAt time.Time `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"` // Timestamp when the user was created
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"` // Timestamp when the user was last updated
}
