package api

import (
	"net/http"

	"github.com/phrazzld/graph-snippets/internal/api/shared"
	"github.com/phrazzld/graph-snippets/internal/api/views"
)

// HomeHandler serves the public pages.
type HomeHandler struct {
	pages PageRenderer
}

// NewHomeHandler creates a new HomeHandler.
func NewHomeHandler(pages PageRenderer) *HomeHandler {
	return &HomeHandler{pages: pages}
}

// Index handles GET /: the Groups page without results.
func (h *HomeHandler) Index(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, h.pages, views.GroupsPage, groupsPageTitle, NewResultsViewModel(true))
}

// Error handles GET /error?message=.
func (h *HomeHandler) Error(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, h.pages, views.ErrorPage, "Error", r.URL.Query().Get("message"))
}

// Health handles GET /health.
func (h *HomeHandler) Health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{Status: "ok"})
}
