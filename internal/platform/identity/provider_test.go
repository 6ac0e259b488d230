package identity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/phrazzld/graph-snippets/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		TenantID:     "contoso",
		RedirectURL:  "http://localhost:8080/account/callback",
		Scopes:       []string{"openid", "User.Read"},
	}
}

func idToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("idp-key"))
	require.NoError(t, err)
	return signed
}

func TestNewProvider(t *testing.T) {
	t.Parallel()

	p, err := NewProvider(testAuthConfig())
	require.NoError(t, err)

	authURL, err := url.Parse(p.AuthCodeURL("state-1"))
	require.NoError(t, err)
	assert.Equal(t, "login.microsoftonline.com", authURL.Host)
	assert.Equal(t, "/contoso/oauth2/v2.0/authorize", authURL.Path)

	q := authURL.Query()
	assert.Equal(t, "state-1", q.Get("state"))
	assert.Equal(t, "client-id", q.Get("client_id"))
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "query", q.Get("response_mode"))
	assert.Equal(t, "openid User.Read", q.Get("scope"))

	cfg := testAuthConfig()
	cfg.ClientSecret = ""
	_, err = NewProvider(cfg)
	assert.Error(t, err)

	cfg = testAuthConfig()
	cfg.RedirectURL = ""
	_, err = NewProvider(cfg)
	assert.Error(t, err)
}

func TestExchange(t *testing.T) {
	t.Parallel()

	idt := idToken(t, jwt.MapClaims{"name": "Megan Bowen"})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		if r.PostForm.Get("code") != "good-code" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"access","refresh_token":"refresh","token_type":"Bearer","expires_in":3600,"id_token":"` + idt + `"}`))
	}))
	defer server.Close()

	p, err := newProvider(testAuthConfig(), oauth2.Endpoint{
		AuthURL:   server.URL + "/authorize",
		TokenURL:  server.URL + "/token",
		AuthStyle: oauth2.AuthStyleInParams,
	})
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		tok, err := p.Exchange(context.Background(), "good-code")
		require.NoError(t, err)
		assert.Equal(t, "access", tok.AccessToken)
		assert.Equal(t, "refresh", tok.RefreshToken)
		assert.Equal(t, "Megan Bowen", UserName(tok))
	})

	t.Run("rejected code", func(t *testing.T) {
		_, err := p.Exchange(context.Background(), "bad-code")
		assert.ErrorIs(t, err, ErrExchangeFailed)
	})

	t.Run("missing code", func(t *testing.T) {
		_, err := p.Exchange(context.Background(), "")
		assert.ErrorIs(t, err, ErrMissingCode)
	})
}

func TestUserName(t *testing.T) {
	t.Parallel()

	withID := func(raw string) *oauth2.Token {
		return (&oauth2.Token{AccessToken: "a"}).WithExtra(map[string]any{"id_token": raw})
	}

	tests := []struct {
		name string
		tok  *oauth2.Token
		want string
	}{
		{"name claim", withID(idToken(t, jwt.MapClaims{"name": "Adele Vance", "preferred_username": "adele@contoso.com"})), "Adele Vance"},
		{"preferred username fallback", withID(idToken(t, jwt.MapClaims{"preferred_username": "adele@contoso.com"})), "adele@contoso.com"},
		{"no id token", &oauth2.Token{AccessToken: "a"}, ""},
		{"malformed id token", withID("garbage"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserName(tt.tok))
		})
	}
}
