// Package identity signs users in against the Microsoft identity platform
// with the OAuth 2.0 authorization-code flow and hands out refreshing token
// sources for the directory client.
package identity
