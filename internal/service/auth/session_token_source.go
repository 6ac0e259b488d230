package auth

import (
	"golang.org/x/oauth2"
)

// sessionTokenSource writes refreshed tokens back into the session so the
// next request starts from the newest refresh token.
type sessionTokenSource struct {
	session *Session
	base    oauth2.TokenSource
}

// NewSessionTokenSource wraps base, typically a refreshing source seeded
// with session.Token(), and records every new token on the session.
func NewSessionTokenSource(session *Session, base oauth2.TokenSource) oauth2.TokenSource {
	return &sessionTokenSource{session: session, base: base}
}

func (s *sessionTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.base.Token()
	if err != nil {
		return nil, err
	}
	if current := s.session.Token(); current == nil || current.AccessToken != tok.AccessToken {
		s.session.SetToken(tok)
	}
	return tok, nil
}
