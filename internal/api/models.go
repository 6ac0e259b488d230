package api

import (
	"github.com/phrazzld/graph-snippets/internal/domain"
)

// ResultsViewModel is the data shown on the Groups page.
type ResultsViewModel struct {
	// Items holds the directory objects returned by the operation.
	Items []domain.ResultItem

	// Selectable marks list results whose items link to follow-up
	// operations (get, members, owners, update, delete).
	Selectable bool
}

// NewResultsViewModel creates an empty container.
func NewResultsViewModel(selectable bool) *ResultsViewModel {
	return &ResultsViewModel{Selectable: selectable}
}

// HealthResponse is the body of the health endpoint.
type HealthResponse struct {
	Status string `json:"status"`
}
