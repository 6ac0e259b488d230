package service

import "fmt"

// GroupsServiceError records which operation failed. The cause, usually a
// *graph.ServiceError, stays reachable through errors.As.
type GroupsServiceError struct {
	Operation string
	Err       error
}

// Error implements the error interface for GroupsServiceError.
func (e *GroupsServiceError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("groups service %s failed", e.Operation)
	}
	return fmt.Sprintf("groups service %s failed: %v", e.Operation, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *GroupsServiceError) Unwrap() error {
	return e.Err
}
