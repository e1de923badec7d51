package taiga

import (
	"encoding/json"
	"net/http"

	"github.com/riordanpawley/melia/internal/domain"
)

// serviceError is the error envelope the service returns on failures.
type serviceError struct {
	Message string `json:"_error_message"`
}

// newRemoteError maps a non-success response onto the domain error
// taxonomy. 409 wraps domain.ErrConflict so stale-version rejections
// stay distinguishable; 404 and 405 wrap ErrNotFound/ErrNotSupported,
// which the bulk-create fallback relies on.
func newRemoteError(op string, taskID, status int, body []byte) error {
	var envelope serviceError
	_ = json.Unmarshal(body, &envelope)

	var cause error
	switch status {
	case http.StatusConflict:
		cause = domain.ErrConflict
	case http.StatusNotFound:
		cause = domain.ErrNotFound
	case http.StatusMethodNotAllowed:
		cause = domain.ErrNotSupported
	}

	return &domain.RemoteError{
		Op:         op,
		TaskID:     taskID,
		StatusCode: status,
		Message:    envelope.Message,
		Err:        cause,
	}
}

// newTransportError wraps a failure that happened before any response
// arrived (connection refused, context canceled, bad payload).
func newTransportError(op string, taskID int, err error) error {
	return &domain.RemoteError{Op: op, TaskID: taskID, Err: err}
}

// newAuthError marks the terminal authentication failure that forces a
// logout.
func newAuthError(err error) error {
	return &domain.AuthError{Err: err}
}
