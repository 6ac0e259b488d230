// Package views renders the server-side HTML pages from embedded templates.
package views
