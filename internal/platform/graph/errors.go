package graph

import (
	"errors"
	"fmt"
)

// Error codes produced by this client. Codes returned by Graph itself
// (Request_ResourceNotFound, Authorization_RequestDenied, ...) are passed
// through unchanged.
const (
	// CodeGeneralException marks failures that did not come from a Graph
	// error body: transport errors, undecodable responses, token errors.
	CodeGeneralException = "generalException"

	// ErrorCodeAuthChallengeNeeded is the AuthenticationError code meaning
	// the user must sign in again interactively.
	ErrorCodeAuthChallengeNeeded = "authChallengeNeeded"
)

// ErrNoTokenSource is returned when the context carries no token source.
var ErrNoTokenSource = errors.New("no token source in request context")

// ErrUntrustedNextLink is returned when a collection's @odata.nextLink points
// to a different origin than the configured base URL.
var ErrUntrustedNextLink = errors.New("next link outside graph base url")

// ServiceError is a failed Graph call.
type ServiceError struct {
	// StatusCode is the HTTP status, 0 when no response was received.
	StatusCode int
	Code       string
	Message    string
	// RequestID is Graph's request-id, useful when reporting issues.
	RequestID string
	// Inner is the underlying cause, e.g. an *AuthenticationError.
	Inner error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("graph service error: %s: %s", e.Code, e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Inner
}

// AuthenticationError reports that no usable access token could be obtained.
type AuthenticationError struct {
	Code    string
	Message string
	Err     error
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication error: %s: %s", e.Code, e.Message)
}

func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

// newAuthChallengeError builds the ServiceError reported when the request
// context cannot yield an access token.
func newAuthChallengeError(message string, cause error) *ServiceError {
	return &ServiceError{
		Code:    CodeGeneralException,
		Message: "Unable to acquire an access token for the signed-in user.",
		Inner: &AuthenticationError{
			Code:    ErrorCodeAuthChallengeNeeded,
			Message: message,
			Err:     cause,
		},
	}
}

// errorResponse is the Graph error envelope.
type errorResponse struct {
	Error struct {
		Code       string `json:"code"`
		Message    string `json:"message"`
		InnerError struct {
			RequestID string `json:"request-id"`
			Date      string `json:"date"`
		} `json:"innerError"`
	} `json:"error"`
}
