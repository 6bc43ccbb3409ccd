package dto

import (
	"time"

	"github.com/google/uuid"

	"community-api/internal/domain"
)

// RegisterRequest represents the request to create a new account
type RegisterRequest struct {
	Username  string `json:"username" binding:"required,min=3,max=100"`
	Firstname string `json:"firstname" binding:"required"`
	Lastname  string `json:"lastname" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
}

// LoginRequest represents the request to authenticate
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is the public view of a user account
type UserResponse struct {
	ID         uuid.UUID         `json:"id"`
	Username   string            `json:"username"`
	Firstname  string            `json:"firstname"`
	Lastname   string            `json:"lastname"`
	Email      string            `json:"email"`
	IsVerified bool              `json:"isVerified"`
	Role       domain.UserRole   `json:"role"`
	Status     domain.UserStatus `json:"status"`
	CreatedAt  time.Time         `json:"createdAt"`
}

// AuthResponse is returned on successful register/login
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UpdateUserRoleRequest represents the admin request to change a user's role
type UpdateUserRoleRequest struct {
	Role domain.UserRole `json:"role" binding:"required,oneof=Admin User"`
}
