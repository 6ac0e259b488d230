package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/graph-snippets/internal/platform/graph"
)

// NeedsChallenge reports whether err asks for the user to sign in again:
// its chain holds an AuthenticationError with the challenge code.
func NeedsChallenge(err error) bool {
	var authErr *graph.AuthenticationError
	return errors.As(err, &authErr) && authErr.Code == graph.ErrorCodeAuthChallengeNeeded
}

// ErrorMessage builds the text shown on the error page for a failed request
// to requestURI. Errors without a ServiceError are reported as
// generalException with their own text.
func ErrorMessage(requestURI string, err error) string {
	code, message := graph.CodeGeneralException, err.Error()
	if se, ok := graph.IsServiceError(err); ok {
		code, message = se.Code, se.Message
	}
	return fmt.Sprintf("Error in %s: %s %s", requestURI, code, message)
}

// errorLogLevel picks the log level of a failed directory call. Client
// errors reported by the directory are expected (missing groups, denied
// permissions) and log at WARN; everything else logs at ERROR.
func errorLogLevel(err error) slog.Level {
	if se, ok := graph.IsServiceError(err); ok &&
		se.StatusCode >= http.StatusBadRequest && se.StatusCode < http.StatusInternalServerError {
		return slog.LevelWarn
	}
	return slog.LevelError
}
