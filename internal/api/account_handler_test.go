package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/phrazzld/graph-snippets/internal/api"
	"github.com/phrazzld/graph-snippets/internal/api/shared"
	"github.com/phrazzld/graph-snippets/internal/config"
	"github.com/phrazzld/graph-snippets/internal/mocks"
	"github.com/phrazzld/graph-snippets/internal/platform/logger"
	"github.com/phrazzld/graph-snippets/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

var testAuthConfig = config.AuthConfig{
	SessionSecret:          "test-secret-that-is-long-enough-for-testing",
	SessionLifetimeMinutes: 60,
	SessionCapacity:        10,
	CookieSecure:           true,
}

type accountFixture struct {
	handler  *api.AccountHandler
	authn    *mocks.MockAuthenticator
	sessions auth.SessionStore
	tokens   auth.SessionTokenService
}

func newAccountFixture(t *testing.T) *accountFixture {
	t.Helper()

	sessions, err := auth.NewMemorySessionStore(testAuthConfig)
	require.NoError(t, err)
	tokens, err := auth.NewSessionTokenService(testAuthConfig)
	require.NoError(t, err)
	authn := &mocks.MockAuthenticator{Token: &oauth2.Token{AccessToken: "access", RefreshToken: "refresh"}}
	log, _ := logger.NewTestLogger()

	h, err := api.NewAccountHandler(authn, sessions, tokens,
		func(*oauth2.Token) string { return "Megan Bowen" }, testAuthConfig, log)
	require.NoError(t, err)

	return &accountFixture{handler: h, authn: authn, sessions: sessions, tokens: tokens}
}

// signedInCookie creates a session and returns its cookie.
func (f *accountFixture) signedInCookie(t *testing.T) (*http.Cookie, *auth.Session) {
	t.Helper()
	session, err := f.sessions.Create(context.Background(), "Megan Bowen", &oauth2.Token{AccessToken: "access"})
	require.NoError(t, err)
	signed, err := f.tokens.GenerateToken(context.Background(), session.ID)
	require.NoError(t, err)
	return &http.Cookie{Name: shared.SessionCookieName, Value: signed}, session
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestSignIn(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		returnTo     string
		wantReturnTo string
	}{
		{"local path", "/groups/mine", "/groups/mine"},
		{"missing", "", api.DefaultReturnPath},
		{"foreign host", "https://evil.example.com/", api.DefaultReturnPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := newAccountFixture(t)

			req := httptest.NewRequest(http.MethodGet, api.SignInPath+"?"+url.Values{"return_to": {tt.returnTo}}.Encode(), nil)
			rec := httptest.NewRecorder()
			f.handler.SignIn(rec, req)

			require.Equal(t, http.StatusFound, rec.Code)
			loc, err := url.Parse(rec.Header().Get("Location"))
			require.NoError(t, err)
			state := loc.Query().Get("state")
			require.NotEmpty(t, state)

			cookie := findCookie(rec, shared.StateCookieName)
			require.NotNil(t, cookie)
			assert.True(t, cookie.HttpOnly)
			assert.True(t, cookie.Secure)
			pending, err := url.ParseQuery(cookie.Value)
			require.NoError(t, err)
			assert.Equal(t, state, pending.Get("state"))
			assert.Equal(t, tt.wantReturnTo, pending.Get("return_to"))
		})
	}
}

func callbackRequest(query url.Values, pending url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodGet, api.CallbackPath+"?"+query.Encode(), nil)
	if pending != nil {
		req.AddCookie(&http.Cookie{Name: shared.StateCookieName, Value: pending.Encode()})
	}
	return req
}

func TestCallbackSuccess(t *testing.T) {
	t.Parallel()
	f := newAccountFixture(t)

	var gotCode string
	f.authn.ExchangeFn = func(ctx context.Context, code string) (*oauth2.Token, error) {
		gotCode = code
		return &oauth2.Token{AccessToken: "access"}, nil
	}

	req := callbackRequest(
		url.Values{"code": {"auth-code"}, "state": {"s-1"}},
		url.Values{"state": {"s-1"}, "return_to": {"/groups/unified"}})
	rec := httptest.NewRecorder()
	f.handler.Callback(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/groups/unified", rec.Header().Get("Location"))
	assert.Equal(t, "auth-code", gotCode)

	stateCookie := findCookie(rec, shared.StateCookieName)
	require.NotNil(t, stateCookie)
	assert.Equal(t, -1, stateCookie.MaxAge)

	sessionCookie := findCookie(rec, shared.SessionCookieName)
	require.NotNil(t, sessionCookie)
	claims, err := f.tokens.ValidateToken(context.Background(), sessionCookie.Value)
	require.NoError(t, err)

	session, err := f.sessions.Get(context.Background(), claims.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "Megan Bowen", session.UserName)
	assert.Equal(t, "access", session.Token().AccessToken)
}

func TestCallbackFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		query       url.Values
		pending     url.Values
		exchangeErr error
		wantMessage string
	}{
		{
			name:        "provider error",
			query:       url.Values{"error": {"access_denied"}, "error_description": {"The user cancelled."}, "state": {"s-1"}},
			pending:     url.Values{"state": {"s-1"}},
			wantMessage: "Error in /account/callback: access_denied The user cancelled.",
		},
		{
			name:        "state mismatch",
			query:       url.Values{"code": {"c"}, "state": {"other"}},
			pending:     url.Values{"state": {"s-1"}},
			wantMessage: "Error in /account/callback: invalidState The sign-in request expired or did not originate here.",
		},
		{
			name:        "missing state cookie",
			query:       url.Values{"code": {"c"}, "state": {"s-1"}},
			wantMessage: "Error in /account/callback: invalidState The sign-in request expired or did not originate here.",
		},
		{
			name:        "exchange fails",
			query:       url.Values{"code": {"c"}, "state": {"s-1"}},
			pending:     url.Values{"state": {"s-1"}},
			exchangeErr: errors.New("invalid_grant"),
			wantMessage: "Error in /account/callback: generalException invalid_grant",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := newAccountFixture(t)
			if tt.exchangeErr != nil {
				f.authn.Token, f.authn.Err = nil, tt.exchangeErr
			}

			rec := httptest.NewRecorder()
			f.handler.Callback(rec, callbackRequest(tt.query, tt.pending))

			require.Equal(t, http.StatusSeeOther, rec.Code)
			loc, err := url.Parse(rec.Header().Get("Location"))
			require.NoError(t, err)
			assert.Equal(t, shared.ErrorPath, loc.Path)
			assert.Equal(t, tt.wantMessage, loc.Query().Get("message"))
			assert.Nil(t, findCookie(rec, shared.SessionCookieName))
		})
	}
}

func TestSignOut(t *testing.T) {
	t.Parallel()
	f := newAccountFixture(t)
	cookie, session := f.signedInCookie(t)

	req := httptest.NewRequest(http.MethodPost, api.SignOutPath, nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	f.handler.SignOut(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	cleared := findCookie(rec, shared.SessionCookieName)
	require.NotNil(t, cleared)
	assert.Equal(t, -1, cleared.MaxAge)

	_, err := f.sessions.Get(context.Background(), session.ID)
	assert.ErrorIs(t, err, auth.ErrSessionNotFound)
}

func TestChallenge(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		method       string
		target       string
		wantReturnTo string
	}{
		{"get returns to the page", http.MethodGet, "/groups/g-1/members", "/groups/g-1/members"},
		{"get keeps the query", http.MethodGet, "/groups/list?x=1", "/groups/list?x=1"},
		{"post returns to the index", http.MethodPost, "/groups/g-1/delete", api.DefaultReturnPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := newAccountFixture(t)
			cookie, session := f.signedInCookie(t)

			req := httptest.NewRequest(tt.method, tt.target, nil)
			req.AddCookie(cookie)
			rec := httptest.NewRecorder()
			f.handler.Challenge(rec, req)

			require.Equal(t, http.StatusFound, rec.Code)
			assert.Empty(t, rec.Body.String())

			loc, err := url.Parse(rec.Header().Get("Location"))
			require.NoError(t, err)
			assert.Equal(t, api.SignInPath, loc.Path)
			assert.Equal(t, tt.wantReturnTo, loc.Query().Get("return_to"))

			_, err = f.sessions.Get(context.Background(), session.ID)
			assert.ErrorIs(t, err, auth.ErrSessionNotFound)
		})
	}
}

func TestNewAccountHandlerValidation(t *testing.T) {
	t.Parallel()
	f := newAccountFixture(t)
	log, _ := logger.NewTestLogger()

	_, err := api.NewAccountHandler(nil, f.sessions, f.tokens, func(*oauth2.Token) string { return "" }, testAuthConfig, log)
	assert.Error(t, err)
	_, err = api.NewAccountHandler(f.authn, f.sessions, f.tokens, nil, testAuthConfig, log)
	assert.Error(t, err)
	_, err = api.NewAccountHandler(f.authn, f.sessions, f.tokens, func(*oauth2.Token) string { return "" }, testAuthConfig, nil)
	assert.Error(t, err)
}
