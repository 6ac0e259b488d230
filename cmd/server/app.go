package main

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/graph-snippets/internal/api/views"
	"github.com/phrazzld/graph-snippets/internal/config"
	"github.com/phrazzld/graph-snippets/internal/platform/graph"
	"github.com/phrazzld/graph-snippets/internal/platform/identity"
	"github.com/phrazzld/graph-snippets/internal/service"
	"github.com/phrazzld/graph-snippets/internal/service/auth"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// Directory access
	graph  *graph.Client
	groups service.GroupsService

	// Sign-in and sessions
	identity *identity.Provider
	sessions auth.SessionStore
	tokens   auth.SessionTokenService

	pages *views.Renderer
}

// newApplication creates a new application instance with all dependencies initialized.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	var err error
	app.graph, err = graph.NewClient(cfg.Graph, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create graph client: %w", err)
	}

	app.groups, err = service.NewGroupsService(app.graph, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create groups service: %w", err)
	}

	app.identity, err = identity.NewProvider(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create identity provider: %w", err)
	}

	app.sessions, err = auth.NewMemorySessionStore(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create session store: %w", err)
	}

	app.tokens, err = auth.NewSessionTokenService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create session token service: %w", err)
	}
	logger.Info("session management initialized",
		"session_lifetime_minutes", cfg.Auth.SessionLifetimeMinutes,
		"session_capacity", cfg.Auth.SessionCapacity)

	app.pages, err = views.New()
	if err != nil {
		return nil, fmt.Errorf("failed to load page templates: %w", err)
	}

	return app, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	app.graph.Close()
	app.logger.Info("application resources released")
}
