package auth

import "errors"

// Common authentication service errors
var (
	// ErrInvalidToken indicates the session token format is invalid or its signature doesn't match
	ErrInvalidToken = errors.New("invalid session token")

	// ErrExpiredToken indicates the session token has expired
	ErrExpiredToken = errors.New("session token has expired")

	// ErrSessionNotFound indicates the token names a session that no longer exists,
	// e.g. after sign-out, expiry or eviction.
	ErrSessionNotFound = errors.New("session not found")

	// ErrMissingOAuthToken indicates a session was created without an OAuth token
	ErrMissingOAuthToken = errors.New("oauth token is missing")
)
