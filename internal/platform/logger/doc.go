// Package logger provides structured logging functionality for the application.
//
// It builds on Go's standard library log/slog package: JSON output for
// deployed environments and a colorized text handler (lmittmann/tint) for
// local development. Request-scoped loggers travel in the context.
package logger
