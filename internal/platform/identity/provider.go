package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/phrazzld/graph-snippets/internal/config"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/microsoft"
)

var (
	// ErrMissingCode indicates the callback carried no authorization code.
	ErrMissingCode = errors.New("authorization code is missing")

	// ErrExchangeFailed indicates the token endpoint rejected the code.
	ErrExchangeFailed = errors.New("authorization code exchange failed")
)

// Provider wraps the OAuth client registration of the application.
type Provider struct {
	oauth *oauth2.Config
}

// NewProvider creates a Provider for the tenant configured in cfg.
func NewProvider(cfg config.AuthConfig) (*Provider, error) {
	return newProvider(cfg, microsoft.AzureADEndpoint(cfg.TenantID))
}

func newProvider(cfg config.AuthConfig, endpoint oauth2.Endpoint) (*Provider, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, fmt.Errorf("client id and client secret are required")
	}
	if cfg.RedirectURL == "" {
		return nil, fmt.Errorf("redirect url is required")
	}

	return &Provider{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     endpoint,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       cfg.Scopes,
		},
	}, nil
}

// AuthCodeURL returns the authorize URL the browser is sent to.
func (p *Provider) AuthCodeURL(state string) string {
	return p.oauth.AuthCodeURL(state, oauth2.SetAuthURLParam("response_mode", "query"))
}

// Exchange trades an authorization code for tokens.
func (p *Provider) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	if code == "" {
		return nil, ErrMissingCode
	}
	tok, err := p.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExchangeFailed, err)
	}
	return tok, nil
}

// TokenSource returns a source that refreshes tok when it expires.
func (p *Provider) TokenSource(ctx context.Context, tok *oauth2.Token) oauth2.TokenSource {
	return p.oauth.TokenSource(ctx, tok)
}

// idClaims holds the profile claims of an id_token.
type idClaims struct {
	Name              string `json:"name"`
	PreferredUsername string `json:"preferred_username"`
	jwt.RegisteredClaims
}

// UserName returns the display name carried in the id_token of tok, falling
// back to preferred_username. The id_token came straight from the token
// endpoint over TLS, so its signature is not checked again.
func UserName(tok *oauth2.Token) string {
	raw, ok := tok.Extra("id_token").(string)
	if !ok || raw == "" {
		return ""
	}

	var claims idClaims
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &claims); err != nil {
		return ""
	}
	if claims.Name != "" {
		return claims.Name
	}
	return claims.PreferredUsername
}
