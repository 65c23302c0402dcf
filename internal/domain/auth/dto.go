package auth

import (
	"time"

	"github.com/google/uuid"
)

// RegisterRequest for POST /register
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=128"`
	Phone    string `json:"phone" validate:"required,min=5,max=20"`
}

// LoginRequest for POST /login and POST /admin/login
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse returned after login
type AuthResponse struct {
	User      *UserResponse `json:"user,omitempty"`
	Admin     bool          `json:"admin"`
	Token     string        `json:"token"`
	ExpiresIn int           `json:"expires_in"` // seconds until the session expires
}

// UserResponse represents user in API response
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt string    `json:"created_at"`
}

// NewUserResponse creates UserResponse from user data
func NewUserResponse(id uuid.UUID, username, email, phone string, createdAt time.Time) *UserResponse {
	return &UserResponse{
		ID:        id,
		Username:  username,
		Email:     email,
		Phone:     phone,
		CreatedAt: createdAt.Format(time.RFC3339),
	}
}
