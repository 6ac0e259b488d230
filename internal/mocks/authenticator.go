package mocks

import (
	"context"

	"golang.org/x/oauth2"
)

// MockAuthenticator implements the identity provider flow for testing
type MockAuthenticator struct {
	AuthCodeURLFn func(state string) string
	ExchangeFn    func(ctx context.Context, code string) (*oauth2.Token, error)
	TokenSourceFn func(ctx context.Context, tok *oauth2.Token) oauth2.TokenSource

	// Default values used when functions aren't explicitly defined
	Token *oauth2.Token
	Err   error
}

// AuthCodeURL returns the authorize URL for state.
func (m *MockAuthenticator) AuthCodeURL(state string) string {
	if m.AuthCodeURLFn != nil {
		return m.AuthCodeURLFn(state)
	}
	return "https://login.example.com/authorize?state=" + state
}

// Exchange trades code for a token.
func (m *MockAuthenticator) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	if m.ExchangeFn != nil {
		return m.ExchangeFn(ctx, code)
	}
	return m.Token, m.Err
}

// TokenSource returns a static source for tok.
func (m *MockAuthenticator) TokenSource(ctx context.Context, tok *oauth2.Token) oauth2.TokenSource {
	if m.TokenSourceFn != nil {
		return m.TokenSourceFn(ctx, tok)
	}
	return oauth2.StaticTokenSource(tok)
}
