package auth

import (
	"context"
	"time"
)

// SessionTokenService issues and validates the signed tokens stored in the
// session cookie. A token only names a server-side session; it never
// carries the user's directory access token.
type SessionTokenService interface {
	// GenerateToken creates a signed token for the session id.
	GenerateToken(ctx context.Context, sessionID string) (string, error)

	// ValidateToken validates the token string and extracts the claims.
	// Returns ErrExpiredToken or ErrInvalidToken on failure.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents the validated content of a session token.
type Claims struct {
	// SessionID names the server-side session.
	SessionID string `json:"sid,omitempty"`

	// Standard registered JWT claims
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
