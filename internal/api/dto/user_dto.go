package dto

import (
	"time"

	"github.com/SD-18/irs-backend/internal/domain"
)

// RegisterRequest carries a registration payload.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest carries login credentials.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserResponse is the public account shape. The password hash never appears.
type UserResponse struct {
	ID       string      `json:"id"`
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
}

// AuthResponse carries an issued token and its claims.
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// UpdateRoleRequest carries a role mutation payload.
type UpdateRoleRequest struct {
	Role domain.Role `json:"role"`
}

// UserFromDomain maps a domain user to its public shape.
func UserFromDomain(user *domain.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Role:     user.Role,
	}
}
