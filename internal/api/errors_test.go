package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"testing"

	"github.com/phrazzld/graph-snippets/internal/platform/graph"
	"github.com/stretchr/testify/assert"
)

func TestNeedsChallenge(t *testing.T) {
	t.Parallel()

	challenge := &graph.AuthenticationError{Code: graph.ErrorCodeAuthChallengeNeeded}

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nested in service error", &graph.ServiceError{Code: graph.CodeGeneralException, Inner: challenge}, true},
		{"wrapped service error", fmt.Errorf("op: %w", &graph.ServiceError{Inner: challenge}), true},
		{"other auth code", &graph.ServiceError{Inner: &graph.AuthenticationError{Code: "other"}}, false},
		{"service error without inner", &graph.ServiceError{Code: "Request_ResourceNotFound"}, false},
		{"plain error", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NeedsChallenge(tt.err))
		})
	}
}

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("delete: %w", &graph.ServiceError{Code: "Request_ResourceNotFound", Message: "Group not found"})
	assert.Equal(t,
		"Error in /groups/missing-1/delete: Request_ResourceNotFound Group not found",
		ErrorMessage("/groups/missing-1/delete", err))

	assert.Equal(t,
		"Error in /groups/list: generalException boom",
		ErrorMessage("/groups/list", errors.New("boom")))
}

func TestErrorLogLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.LevelWarn, errorLogLevel(&graph.ServiceError{StatusCode: http.StatusNotFound}))
	assert.Equal(t, slog.LevelError, errorLogLevel(&graph.ServiceError{StatusCode: http.StatusBadGateway}))
	assert.Equal(t, slog.LevelError, errorLogLevel(&graph.ServiceError{}))
	assert.Equal(t, slog.LevelError, errorLogLevel(errors.New("boom")))
}

func TestSafeReturnPath(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"":                         DefaultReturnPath,
		"/groups/g-1/members":      "/groups/g-1/members",
		"/groups/list?x=1":         "/groups/list?x=1",
		"//evil.example.com":       DefaultReturnPath,
		`/\evil.example.com`:       DefaultReturnPath,
		"https://evil.example.com": DefaultReturnPath,
		"groups":                   DefaultReturnPath,
	}

	for in, want := range tests {
		assert.Equal(t, want, safeReturnPath(in), in)
	}
}
