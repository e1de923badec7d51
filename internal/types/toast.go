// Package types holds small shared UI types.
package types

import "time"

// DefaultToastTTL is how long a toast stays on screen.
const DefaultToastTTL = 4 * time.Second

// Toast is a transient, non-blocking notification.
type Toast struct {
	Level   ToastLevel
	Message string
	Expires time.Time
}

// NewToast creates a toast expiring after the default TTL.
func NewToast(level ToastLevel, message string) Toast {
	return Toast{
		Level:   level,
		Message: message,
		Expires: time.Now().Add(DefaultToastTTL),
	}
}

// ToastLevel indicates the severity of a toast
type ToastLevel int

const (
	ToastInfo ToastLevel = iota
	ToastSuccess
	ToastWarning
	ToastError
)

// String returns the level name for logging.
func (l ToastLevel) String() string {
	switch l {
	case ToastSuccess:
		return "success"
	case ToastWarning:
		return "warning"
	case ToastError:
		return "error"
	default:
		return "info"
	}
}
