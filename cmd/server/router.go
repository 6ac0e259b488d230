package main

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/graph-snippets/internal/api"
	apiMiddleware "github.com/phrazzld/graph-snippets/internal/api/middleware"
	"github.com/phrazzld/graph-snippets/internal/platform/identity"
)

// setupRouter creates the application router with all routes and middleware.
func (app *application) setupRouter() (http.Handler, error) {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(middleware.Recoverer)

	accountHandler, err := api.NewAccountHandler(
		app.identity,
		app.sessions,
		app.tokens,
		identity.UserName,
		app.config.Auth,
		app.logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create account handler: %w", err)
	}
	groupsHandler, err := api.NewGroupsHandler(app.groups, accountHandler, app.pages, app.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create groups handler: %w", err)
	}
	homeHandler := api.NewHomeHandler(app.pages)
	sessionMiddleware := apiMiddleware.NewSessionMiddleware(
		app.tokens,
		app.sessions,
		app.identity,
		accountHandler,
	)

	// Public routes
	r.Get("/", homeHandler.Index)
	r.Get("/error", homeHandler.Error)
	r.Get("/health", homeHandler.Health)
	r.Get(api.SignInPath, accountHandler.SignIn)
	r.Get(api.CallbackPath, accountHandler.Callback)
	r.Post(api.SignOutPath, accountHandler.SignOut)

	// Group operations require a signed-in user
	r.Route("/groups", func(r chi.Router) {
		r.Use(sessionMiddleware.Authenticate)

		r.Get("/", groupsHandler.Index)
		r.Get("/list", groupsHandler.GetGroups)
		r.Get("/unified", groupsHandler.GetUnifiedGroups)
		r.Get("/mine", groupsHandler.GetMyMemberOfGroups)
		r.Post("/create", groupsHandler.CreateGroup)
		r.Get("/{id}", groupsHandler.GetGroup)
		r.Get("/{id}/members", groupsHandler.GetMembers)
		r.Get("/{id}/owners", groupsHandler.GetOwners)
		r.Post("/{id}/update", groupsHandler.UpdateGroup)
		r.Post("/{id}/delete", groupsHandler.DeleteGroup)
	})

	return r, nil
}
