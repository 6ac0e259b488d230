package api_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/phrazzld/graph-snippets/internal/api"
	"github.com/phrazzld/graph-snippets/internal/api/views"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHomeHandler(t *testing.T) *api.HomeHandler {
	t.Helper()
	pages, err := views.New()
	require.NoError(t, err)
	return api.NewHomeHandler(pages)
}

func TestHomeIndex(t *testing.T) {
	t.Parallel()
	h := newHomeHandler(t)

	rec := httptest.NewRecorder()
	h.Index(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sign in")
}

func TestErrorView(t *testing.T) {
	t.Parallel()
	h := newHomeHandler(t)

	message := "Error in /groups/missing-1/delete: Request_ResourceNotFound Group not found"
	req := httptest.NewRequest(http.MethodGet, "/error?"+url.Values{"message": {message}}.Encode(), nil)
	rec := httptest.NewRecorder()
	h.Error(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), message)
}

func TestHealth(t *testing.T) {
	t.Parallel()
	h := newHomeHandler(t)

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
