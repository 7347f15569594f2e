package auth

import (
	"github.com/avelarsoto/leadpipe-backend/internal/users"
)

// RegisterRequest captures the credentials sent to the register endpoint.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// LoginRequest captures the user credentials sent to the login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResult contains the minted token and the authenticated user. The token
// travels back to the client as an HTTP-only cookie, never in the body.
type AuthResult struct {
	AccessToken string
	User        *users.UserDTO
}
