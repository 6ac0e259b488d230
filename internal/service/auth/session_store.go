package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/phrazzld/graph-snippets/internal/config"
	"golang.org/x/oauth2"
)

// Session is the server-side state of a signed-in user.
type Session struct {
	ID        string
	UserName  string
	CreatedAt time.Time

	mu    sync.Mutex
	token *oauth2.Token
}

// Token returns the current OAuth token of the session.
func (s *Session) Token() *oauth2.Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// SetToken replaces the OAuth token, e.g. after a refresh.
func (s *Session) SetToken(tok *oauth2.Token) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = tok
}

// SessionStore holds sessions between requests.
type SessionStore interface {
	// Create stores a new session for the user and returns it.
	Create(ctx context.Context, userName string, tok *oauth2.Token) (*Session, error)

	// Get returns the session, or ErrSessionNotFound.
	Get(ctx context.Context, id string) (*Session, error)

	// Delete removes the session. Deleting an unknown session is not an error.
	Delete(ctx context.Context, id string)
}

// memorySessionStore keeps sessions in a size-bounded, expiring LRU cache.
// Sessions are lost on restart and users sign in again.
type memorySessionStore struct {
	sessions *expirable.LRU[string, *Session]
	newID    func() string
	timeFunc func() time.Time
}

// Ensure memorySessionStore implements SessionStore interface
var _ SessionStore = (*memorySessionStore)(nil)

// NewMemorySessionStore creates a SessionStore sized and timed by cfg.
func NewMemorySessionStore(cfg config.AuthConfig) (SessionStore, error) {
	if cfg.SessionCapacity <= 0 {
		return nil, fmt.Errorf("session capacity must be positive")
	}
	if cfg.SessionLifetimeMinutes <= 0 {
		return nil, fmt.Errorf("session lifetime must be positive")
	}

	ttl := time.Duration(cfg.SessionLifetimeMinutes) * time.Minute
	return &memorySessionStore{
		sessions: expirable.NewLRU[string, *Session](cfg.SessionCapacity, nil, ttl),
		newID:    uuid.NewString,
		timeFunc: time.Now,
	}, nil
}

func (s *memorySessionStore) Create(_ context.Context, userName string, tok *oauth2.Token) (*Session, error) {
	if tok == nil {
		return nil, ErrMissingOAuthToken
	}

	session := &Session{
		ID:        s.newID(),
		UserName:  userName,
		CreatedAt: s.timeFunc(),
		token:     tok,
	}
	s.sessions.Add(session.ID, session)
	return session, nil
}

func (s *memorySessionStore) Get(_ context.Context, id string) (*Session, error) {
	session, ok := s.sessions.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (s *memorySessionStore) Delete(_ context.Context, id string) {
	s.sessions.Remove(id)
}
