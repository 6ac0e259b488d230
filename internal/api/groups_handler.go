package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/graph-snippets/internal/api/shared"
	"github.com/phrazzld/graph-snippets/internal/api/views"
	"github.com/phrazzld/graph-snippets/internal/domain"
	"github.com/phrazzld/graph-snippets/internal/service"
)

// Challenger asks the user to sign in again. It writes the complete
// response.
type Challenger interface {
	Challenge(w http.ResponseWriter, r *http.Request)
}

// groupsPageTitle is the title of the Groups page.
const groupsPageTitle = "Groups"

// GroupsHandler serves the group operations. Each route makes exactly one
// GroupsService call.
type GroupsHandler struct {
	groups     service.GroupsService
	challenger Challenger
	pages      PageRenderer
	logger     *slog.Logger
}

// NewGroupsHandler creates a new GroupsHandler.
func NewGroupsHandler(
	groups service.GroupsService,
	challenger Challenger,
	pages PageRenderer,
	logger *slog.Logger,
) (*GroupsHandler, error) {
	if groups == nil {
		return nil, errors.New("groups service cannot be nil")
	}
	if challenger == nil {
		return nil, errors.New("challenger cannot be nil")
	}
	if pages == nil {
		return nil, errors.New("page renderer cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	return &GroupsHandler{
		groups:     groups,
		challenger: challenger,
		pages:      pages,
		logger:     logger.With(slog.String("component", "groups_handler")),
	}, nil
}

// Index handles GET /groups: the Groups page without results.
func (h *GroupsHandler) Index(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, h.pages, views.GroupsPage, groupsPageTitle, NewResultsViewModel(true))
}

// GetGroups handles GET /groups/list.
func (h *GroupsHandler) GetGroups(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, true, h.groups.GetGroups)
}

// GetUnifiedGroups handles GET /groups/unified.
func (h *GroupsHandler) GetUnifiedGroups(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, true, h.groups.GetUnifiedGroups)
}

// GetMyMemberOfGroups handles GET /groups/mine.
func (h *GroupsHandler) GetMyMemberOfGroups(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, true, h.groups.GetMyMemberOfGroups)
}

// CreateGroup handles POST /groups/create.
func (h *GroupsHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, true, h.groups.CreateGroup)
}

// GetGroup handles GET /groups/{id}.
func (h *GroupsHandler) GetGroup(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.run(w, r, true, func(ctx context.Context) ([]domain.ResultItem, error) {
		return h.groups.GetGroup(ctx, id)
	})
}

// GetMembers handles GET /groups/{id}/members.
func (h *GroupsHandler) GetMembers(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.run(w, r, false, func(ctx context.Context) ([]domain.ResultItem, error) {
		return h.groups.GetMembers(ctx, id)
	})
}

// GetOwners handles GET /groups/{id}/owners.
func (h *GroupsHandler) GetOwners(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.run(w, r, false, func(ctx context.Context) ([]domain.ResultItem, error) {
		return h.groups.GetOwners(ctx, id)
	})
}

// UpdateGroup handles POST /groups/{id}/update. The new display name comes
// from the form or the query string.
func (h *GroupsHandler) UpdateGroup(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	name := r.FormValue("name")
	h.run(w, r, false, func(ctx context.Context) ([]domain.ResultItem, error) {
		return h.groups.UpdateGroup(ctx, id, name)
	})
}

// DeleteGroup handles POST /groups/{id}/delete.
func (h *GroupsHandler) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.run(w, r, false, func(ctx context.Context) ([]domain.ResultItem, error) {
		return h.groups.DeleteGroup(ctx, id)
	})
}

// run makes one directory call and answers the request with its outcome:
// the Groups page on success, a sign-in challenge when the user has to
// authenticate again, or a redirect to the error page.
func (h *GroupsHandler) run(
	w http.ResponseWriter,
	r *http.Request,
	selectable bool,
	call func(ctx context.Context) ([]domain.ResultItem, error),
) {
	results := NewResultsViewModel(selectable)

	items, err := call(r.Context())
	if err != nil {
		if NeedsChallenge(err) {
			shared.LogErrorResponse(r, slog.LevelInfo, "sign-in required for directory call", err)
			h.challenger.Challenge(w, r)
			return
		}

		shared.LogErrorResponse(r, errorLogLevel(err), "directory call failed", err)
		shared.RedirectToError(w, r, ErrorMessage(r.RequestURI, err))
		return
	}

	results.Items = items
	renderPage(w, r, h.pages, views.GroupsPage, groupsPageTitle, results)
}
