package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("version conflict")
	ErrNotSupported = errors.New("not supported")
	ErrUserCanceled = errors.New("user canceled")
)

// ValidationError is a local validation failure. It never reaches the
// network layer.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// RemoteError represents a non-success response from the remote service.
// StatusCode is the HTTP status; Message carries the service-supplied
// error message when one was present. A 409 wraps ErrConflict so callers
// can message stale-version failures distinctly.
type RemoteError struct {
	Op         string // "createTask", "updateTask", etc.
	TaskID     int    // optional: the task the call targeted
	StatusCode int
	Message    string
	Err        error
}

func (e *RemoteError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if msg == "" {
		msg = fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	if e.TaskID != 0 {
		return fmt.Sprintf("taiga %s [%d]: %s", e.Op, e.TaskID, msg)
	}
	return fmt.Sprintf("taiga %s: %s", e.Op, msg)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// IsConflict reports whether err is a stale-version rejection.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// AuthError is a terminal authentication failure: the token refresh
// itself failed, or a refreshed token was rejected again. Callers must
// treat it as a forced logout.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("authentication expired: %v", e.Err)
	}
	return "authentication expired"
}

func (e *AuthError) Unwrap() error {
	return e.Err
}
