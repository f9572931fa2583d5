package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest represents the self-registration request payload.
// The email must have been verified with an OTP first; the account starts
// in the pending approval state.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email" example:"jane@acme.test"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required" example:"Jane Doe"`
	Company  string `json:"company,omitempty" example:"Acme Inc"`
}

// AuthResponse represents the authentication response
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	Admin       Admin  `json:"admin"`
}

// UpdateProfileRequest updates the authenticated admin's profile fields
type UpdateProfileRequest struct {
	Name    string `json:"name,omitempty"`
	Company string `json:"company,omitempty"`
}

// ChangePasswordRequest represents a request to change the admin's own password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

// ResetPasswordRequest represents a superadmin password reset
type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

// JWTClaims represents the JWT claims
type JWTClaims struct {
	AdminID string `json:"admin_id"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

// TokenInfo represents validated token information
type TokenInfo struct {
	AdminID   string    `json:"admin_id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}
