package shared

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/goccy/go-json"
	"github.com/phrazzld/graph-snippets/internal/platform/logger"
	"github.com/phrazzld/graph-snippets/internal/redact"
)

// ErrorPath is the route of the error view.
const ErrorPath = "/error"

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode JSON response", "error", err)
	}
}

// RedirectToError sends the browser to the error view showing message.
// 303 turns a failed POST into a GET of the error page.
func RedirectToError(w http.ResponseWriter, r *http.Request, message string) {
	target := ErrorPath + "?" + url.Values{"message": {message}}.Encode()
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// RedirectEmpty writes a redirect without a body.
func RedirectEmpty(w http.ResponseWriter, location string, status int) {
	w.Header().Set("Location", location)
	w.WriteHeader(status)
}

// LogErrorResponse logs a failed request at level with the redacted error
// and the request coordinates.
func LogErrorResponse(r *http.Request, level slog.Level, msg string, err error, attrs ...slog.Attr) {
	logAttrs := []slog.Attr{
		slog.String("trace_id", GetTraceID(r.Context())),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
	}
	if err != nil {
		logAttrs = append(logAttrs,
			slog.String("error", redact.Error(err)),
			slog.String("error_type", fmt.Sprintf("%T", err)))
	}
	logAttrs = append(logAttrs, attrs...)

	logger.FromContext(r.Context()).LogAttrs(r.Context(), level, msg, logAttrs...)
}
