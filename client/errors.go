package client

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes client-side failures.
type ErrorCode string

const (
	// CodeNetwork indicates a request failed in transit or the service
	// returned a non-success status.
	CodeNetwork ErrorCode = "NETWORK_FAILURE"

	// CodeValidation indicates malformed user input, rejected before any
	// request is issued.
	CodeValidation ErrorCode = "VALIDATION_FAILURE"

	// CodeAuth indicates credentials rejected by the auth service.
	CodeAuth ErrorCode = "AUTH_FAILURE"

	// CodeNotFound indicates the requested property id is absent.
	CodeNotFound ErrorCode = "NOT_FOUND"

	// CodeRateLimited indicates the secondary provider throttled the
	// request; treated as transient.
	CodeRateLimited ErrorCode = "RATE_LIMITED"
)

// Error is the failure surfaced to screens. Retryable failures are
// presented with a retry affordance; retry is always an explicit user
// action, never automatic.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Retryable reports whether the failure should be shown with a retry
// action. Validation failures are fixed by the user editing input, not by
// retrying.
func (e *Error) Retryable() bool {
	return e.Code != CodeValidation
}

// CodeOf extracts the ErrorCode from err, or "" if err is not a client
// Error.
func CodeOf(err error) ErrorCode {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ""
}
