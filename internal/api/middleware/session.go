package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/phrazzld/graph-snippets/internal/api/shared"
	"github.com/phrazzld/graph-snippets/internal/platform/graph"
	"github.com/phrazzld/graph-snippets/internal/platform/logger"
	"github.com/phrazzld/graph-snippets/internal/service/auth"
	"golang.org/x/oauth2"
)

// Challenger asks the user to sign in again.
type Challenger interface {
	Challenge(w http.ResponseWriter, r *http.Request)
}

// TokenSourceFactory creates a refreshing token source from a stored token.
type TokenSourceFactory interface {
	TokenSource(ctx context.Context, tok *oauth2.Token) oauth2.TokenSource
}

// SessionMiddleware restricts routes to signed-in users.
type SessionMiddleware struct {
	tokens     auth.SessionTokenService
	sessions   auth.SessionStore
	sources    TokenSourceFactory
	challenger Challenger
}

// NewSessionMiddleware creates a new SessionMiddleware with the given dependencies.
func NewSessionMiddleware(
	tokens auth.SessionTokenService,
	sessions auth.SessionStore,
	sources TokenSourceFactory,
	challenger Challenger,
) *SessionMiddleware {
	return &SessionMiddleware{
		tokens:     tokens,
		sessions:   sessions,
		sources:    sources,
		challenger: challenger,
	}
}

// Authenticate resolves the session cookie to a session and binds the
// user's token source to the request context for directory calls. Requests
// without a valid session are challenged.
func (m *SessionMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := logger.FromContext(ctx)

		value := shared.CookieValue(r, shared.SessionCookieName)
		if value == "" {
			log.Debug("no session cookie, challenging")
			m.challenger.Challenge(w, r)
			return
		}

		claims, err := m.tokens.ValidateToken(ctx, value)
		if err != nil {
			log.Debug("session token rejected", slog.Bool("expired", errors.Is(err, auth.ErrExpiredToken)))
			m.challenger.Challenge(w, r)
			return
		}

		session, err := m.sessions.Get(ctx, claims.SessionID)
		if err != nil {
			log.Debug("session not found, challenging", slog.String("session_id", claims.SessionID))
			m.challenger.Challenge(w, r)
			return
		}

		ts := auth.NewSessionTokenSource(session, m.sources.TokenSource(ctx, session.Token()))
		ctx = graph.WithTokenSource(ctx, ts)
		ctx = shared.WithUserName(ctx, session.UserName)
		ctx = logger.WithLogger(ctx, log.With(slog.String("session_id", session.ID)))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
