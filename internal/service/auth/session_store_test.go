package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/phrazzld/graph-snippets/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func newTestStore(t *testing.T, capacity int) *memorySessionStore {
	t.Helper()
	store, err := NewMemorySessionStore(config.AuthConfig{
		SessionCapacity:        capacity,
		SessionLifetimeMinutes: 60,
	})
	require.NoError(t, err)
	return store.(*memorySessionStore)
}

func TestNewMemorySessionStore(t *testing.T) {
	t.Parallel()

	_, err := NewMemorySessionStore(config.AuthConfig{SessionCapacity: 0, SessionLifetimeMinutes: 60})
	assert.Error(t, err)

	_, err = NewMemorySessionStore(config.AuthConfig{SessionCapacity: 10, SessionLifetimeMinutes: 0})
	assert.Error(t, err)
}

func TestMemorySessionStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("create and get", func(t *testing.T) {
		t.Parallel()
		store := newTestStore(t, 10)
		created := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
		store.timeFunc = fixedClock(created)
		store.newID = func() string { return "session-1" }

		tok := &oauth2.Token{AccessToken: "access"}
		session, err := store.Create(ctx, "Megan Bowen", tok)
		require.NoError(t, err)
		assert.Equal(t, "session-1", session.ID)
		assert.Equal(t, "Megan Bowen", session.UserName)
		assert.Equal(t, created, session.CreatedAt)

		got, err := store.Get(ctx, "session-1")
		require.NoError(t, err)
		assert.Same(t, session, got)
		assert.Equal(t, "access", got.Token().AccessToken)
	})

	t.Run("missing token", func(t *testing.T) {
		t.Parallel()
		store := newTestStore(t, 10)
		_, err := store.Create(ctx, "user", nil)
		assert.ErrorIs(t, err, ErrMissingOAuthToken)
	})

	t.Run("unknown session", func(t *testing.T) {
		t.Parallel()
		store := newTestStore(t, 10)
		_, err := store.Get(ctx, "nope")
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()
		store := newTestStore(t, 10)
		session, err := store.Create(ctx, "user", &oauth2.Token{AccessToken: "a"})
		require.NoError(t, err)

		store.Delete(ctx, session.ID)
		store.Delete(ctx, session.ID)

		_, err = store.Get(ctx, session.ID)
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("evicts least recently used", func(t *testing.T) {
		t.Parallel()
		store := newTestStore(t, 1)
		first, err := store.Create(ctx, "first", &oauth2.Token{AccessToken: "a"})
		require.NoError(t, err)
		second, err := store.Create(ctx, "second", &oauth2.Token{AccessToken: "b"})
		require.NoError(t, err)

		_, err = store.Get(ctx, first.ID)
		assert.ErrorIs(t, err, ErrSessionNotFound)
		_, err = store.Get(ctx, second.ID)
		assert.NoError(t, err)
	})
}

type stubTokenSource struct {
	tok *oauth2.Token
	err error
}

func (s stubTokenSource) Token() (*oauth2.Token, error) { return s.tok, s.err }

func TestSessionTokenSource(t *testing.T) {
	t.Parallel()

	t.Run("records refreshed token", func(t *testing.T) {
		t.Parallel()
		session := &Session{ID: "s"}
		session.SetToken(&oauth2.Token{AccessToken: "old"})

		ts := NewSessionTokenSource(session, stubTokenSource{tok: &oauth2.Token{AccessToken: "new"}})
		tok, err := ts.Token()
		require.NoError(t, err)
		assert.Equal(t, "new", tok.AccessToken)
		assert.Equal(t, "new", session.Token().AccessToken)
	})

	t.Run("keeps token on error", func(t *testing.T) {
		t.Parallel()
		session := &Session{ID: "s"}
		session.SetToken(&oauth2.Token{AccessToken: "old"})

		ts := NewSessionTokenSource(session, stubTokenSource{err: errors.New("refresh failed")})
		_, err := ts.Token()
		assert.Error(t, err)
		assert.Equal(t, "old", session.Token().AccessToken)
	})
}
