package dto

import "time"

// LoginRequest payload for POST /login.
type LoginRequest struct {
	Username string `json:"username" query:"username" form:"username"`
	Password string `json:"password" query:"password" form:"password"`
}

// LoginResponse carries the issued access token.
type LoginResponse struct {
	Token     string    `json:"token"`
	TokenID   string    `json:"token_id"`
	ExpiresAt time.Time `json:"expires_at"`
}
