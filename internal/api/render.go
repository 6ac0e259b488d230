package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/graph-snippets/internal/api/shared"
	"github.com/phrazzld/graph-snippets/internal/api/views"
)

// PageRenderer writes HTML pages.
type PageRenderer interface {
	Render(w http.ResponseWriter, status int, name string, page views.Page) error
}

// renderPage renders the named page for the current user. A template failure
// is logged and answered with a bare 500.
func renderPage(w http.ResponseWriter, r *http.Request, pages PageRenderer, name, title string, data any) {
	page := views.Page{
		Title:    title,
		UserName: shared.GetUserName(r.Context()),
		Data:     data,
	}
	if err := pages.Render(w, http.StatusOK, name, page); err != nil {
		shared.LogErrorResponse(r, slog.LevelError, "failed to render page", err, slog.String("page", name))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
