// Package middleware provides the HTTP middleware of the web application:
// request tracing and session authentication.
package middleware
