package dto

import "time"

// LoginRequest defines the credentials for a password login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the response for a successful login or refresh.
// The refresh token itself travels in an HTTP-only cookie, not the body.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// RefreshTokenResponse represents the response for a successful token refresh.
type RefreshTokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// GoogleIDTokenRequest carries a Google ID token obtained by a client-side
// sign-in flow, exchanged here for application tokens.
type GoogleIDTokenRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}
