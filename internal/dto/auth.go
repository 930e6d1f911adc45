package dto

import "github.com/golang-jwt/jwt/v5"

// AuthClaims are the claims carried by a Supabase Auth access token.
// The requester ID is the standard sub claim.
type AuthClaims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// MessageResponse represents a generic message response.
// @Description Generic message response
type MessageResponse struct {
	Message string `json:"message"`
}
