package api

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/graph-snippets/internal/api/shared"
	"github.com/phrazzld/graph-snippets/internal/config"
	"github.com/phrazzld/graph-snippets/internal/service/auth"
	"golang.org/x/oauth2"
)

// Account routes.
const (
	SignInPath   = "/account/signin"
	CallbackPath = "/account/callback"
	SignOutPath  = "/account/signout"

	// DefaultReturnPath is where the browser lands after sign-in when no
	// usable return path was given.
	DefaultReturnPath = "/groups"

	// stateLifetime bounds how long a sign-in round trip may take.
	stateLifetime = 10 * time.Minute
)

// Authenticator runs the authorization-code flow with the identity provider.
type Authenticator interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
}

// AccountHandler signs users in and out and issues sign-in challenges.
type AccountHandler struct {
	authenticator   Authenticator
	sessions        auth.SessionStore
	tokens          auth.SessionTokenService
	userName        func(*oauth2.Token) string
	newState        func() string
	sessionLifetime time.Duration
	cookieSecure    bool
	logger          *slog.Logger
}

// NewAccountHandler creates a new AccountHandler. userName extracts the
// display name from a freshly exchanged token.
func NewAccountHandler(
	authenticator Authenticator,
	sessions auth.SessionStore,
	tokens auth.SessionTokenService,
	userName func(*oauth2.Token) string,
	cfg config.AuthConfig,
	logger *slog.Logger,
) (*AccountHandler, error) {
	if authenticator == nil || sessions == nil || tokens == nil || userName == nil {
		return nil, errors.New("account handler dependencies cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	return &AccountHandler{
		authenticator:   authenticator,
		sessions:        sessions,
		tokens:          tokens,
		userName:        userName,
		newState:        uuid.NewString,
		sessionLifetime: time.Duration(cfg.SessionLifetimeMinutes) * time.Minute,
		cookieSecure:    cfg.CookieSecure,
		logger:          logger.With(slog.String("component", "account_handler")),
	}, nil
}

// SignIn handles GET /account/signin?return_to=: remembers the state and
// return path in a short-lived cookie and sends the browser to the
// identity provider.
func (h *AccountHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	state := h.newState()
	pending := url.Values{
		"state":     {state},
		"return_to": {safeReturnPath(r.URL.Query().Get("return_to"))},
	}
	shared.SetCookie(w, shared.StateCookieName, pending.Encode(), stateLifetime, h.cookieSecure)

	http.Redirect(w, r, h.authenticator.AuthCodeURL(state), http.StatusFound)
}

// Callback handles GET /account/callback: verifies the state, exchanges the
// code, starts a session and returns the browser to where sign-in began.
func (h *AccountHandler) Callback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	pending, _ := url.ParseQuery(shared.CookieValue(r, shared.StateCookieName))
	shared.ClearCookie(w, shared.StateCookieName, h.cookieSecure)

	if code := query.Get("error"); code != "" {
		message := query.Get("error_description")
		shared.LogErrorResponse(r, slog.LevelWarn, "identity provider returned an error", nil,
			slog.String("code", code), slog.String("description", message))
		shared.RedirectToError(w, r, fmt.Sprintf("Error in %s: %s %s", r.URL.Path, code, message))
		return
	}

	expected := pending.Get("state")
	if expected == "" || subtle.ConstantTimeCompare([]byte(expected), []byte(query.Get("state"))) != 1 {
		shared.LogErrorResponse(r, slog.LevelWarn, "sign-in state mismatch", nil)
		shared.RedirectToError(w, r, fmt.Sprintf("Error in %s: invalidState The sign-in request expired or did not originate here.", r.URL.Path))
		return
	}

	tok, err := h.authenticator.Exchange(ctx, query.Get("code"))
	if err != nil {
		shared.LogErrorResponse(r, slog.LevelWarn, "authorization code exchange failed", err)
		shared.RedirectToError(w, r, ErrorMessage(r.URL.Path, err))
		return
	}

	session, err := h.sessions.Create(ctx, h.userName(tok), tok)
	if err != nil {
		shared.LogErrorResponse(r, slog.LevelError, "failed to create session", err)
		shared.RedirectToError(w, r, ErrorMessage(r.URL.Path, err))
		return
	}

	signed, err := h.tokens.GenerateToken(ctx, session.ID)
	if err != nil {
		h.sessions.Delete(ctx, session.ID)
		shared.LogErrorResponse(r, slog.LevelError, "failed to sign session token", err)
		shared.RedirectToError(w, r, ErrorMessage(r.URL.Path, err))
		return
	}

	shared.SetCookie(w, shared.SessionCookieName, signed, h.sessionLifetime, h.cookieSecure)
	h.logger.InfoContext(ctx, "user signed in",
		slog.String("session_id", session.ID),
		slog.String("trace_id", shared.GetTraceID(ctx)))

	http.Redirect(w, r, safeReturnPath(pending.Get("return_to")), http.StatusFound)
}

// SignOut handles POST /account/signout.
func (h *AccountHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	h.endSession(w, r)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Challenge drops the current session and sends the browser to sign in,
// returning to the current page afterwards. Mutations cannot be replayed
// by a redirect, so those return to the groups index instead.
func (h *AccountHandler) Challenge(w http.ResponseWriter, r *http.Request) {
	h.endSession(w, r)

	returnTo := r.RequestURI
	if r.Method != http.MethodGet {
		returnTo = DefaultReturnPath
	}
	shared.RedirectEmpty(w, SignInPath+"?"+url.Values{"return_to": {returnTo}}.Encode(), http.StatusFound)
}

// endSession deletes the session named by the cookie, if any, and clears
// the cookie.
func (h *AccountHandler) endSession(w http.ResponseWriter, r *http.Request) {
	if value := shared.CookieValue(r, shared.SessionCookieName); value != "" {
		if claims, err := h.tokens.ValidateToken(r.Context(), value); err == nil {
			h.sessions.Delete(r.Context(), claims.SessionID)
		}
	}
	shared.ClearCookie(w, shared.SessionCookieName, h.cookieSecure)
}

// safeReturnPath accepts only local absolute paths, so sign-in can never
// redirect to another site.
func safeReturnPath(p string) string {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.HasPrefix(p, `/\`) {
		return DefaultReturnPath
	}
	u, err := url.Parse(p)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return DefaultReturnPath
	}
	return p
}
