// Package shared holds request context values, cookies and response helpers
// used by both the handlers and the middleware.
package shared
