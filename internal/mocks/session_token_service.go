package mocks

import (
	"context"

	"github.com/phrazzld/graph-snippets/internal/service/auth"
)

// MockSessionTokenService implements auth.SessionTokenService for testing
type MockSessionTokenService struct {
	GenerateTokenFn func(ctx context.Context, sessionID string) (string, error)
	ValidateTokenFn func(ctx context.Context, tokenString string) (*auth.Claims, error)

	// Default values used when functions aren't explicitly defined
	Token       string
	Err         error
	Claims      *auth.Claims
	ValidateErr error
}

// GenerateToken implements the auth.SessionTokenService interface
func (m *MockSessionTokenService) GenerateToken(ctx context.Context, sessionID string) (string, error) {
	if m.GenerateTokenFn != nil {
		return m.GenerateTokenFn(ctx, sessionID)
	}
	return m.Token, m.Err
}

// ValidateToken implements the auth.SessionTokenService interface
func (m *MockSessionTokenService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, tokenString)
	}
	return m.Claims, m.ValidateErr
}
