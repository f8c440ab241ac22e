package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds used across the booking and payment services. Handlers map
// them onto HTTP statuses; transient errors are the only retry-safe kind.
const (
	ErrKindValidation = "validation"
	ErrKindNotFound   = "not_found"
	ErrKindConflict   = "conflict"
	ErrKindTransient  = "transient"
	ErrKindGateway    = "gateway"
)

// ServiceError is a typed failure surfaced to the caller.
type ServiceError struct {
	Kind    string
	Message string
	// GatewayStatus carries the provider's literal status string when
	// Kind is gateway; it is reported, never interpreted.
	GatewayStatus string
}

func (e *ServiceError) Error() string {
	if e.GatewayStatus != "" {
		return fmt.Sprintf("%s: %s (gateway status: %s)", e.Kind, e.Message, e.GatewayStatus)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func NewValidationError(format string, args ...interface{}) error {
	return &ServiceError{Kind: ErrKindValidation, Message: fmt.Sprintf(format, args...)}
}

func NewNotFoundError(format string, args ...interface{}) error {
	return &ServiceError{Kind: ErrKindNotFound, Message: fmt.Sprintf(format, args...)}
}

func NewConflictError(format string, args ...interface{}) error {
	return &ServiceError{Kind: ErrKindConflict, Message: fmt.Sprintf(format, args...)}
}

func NewTransientError(format string, args ...interface{}) error {
	return &ServiceError{Kind: ErrKindTransient, Message: fmt.Sprintf(format, args...)}
}

func NewGatewayError(status, format string, args ...interface{}) error {
	return &ServiceError{Kind: ErrKindGateway, Message: fmt.Sprintf(format, args...), GatewayStatus: status}
}

// IsKind reports whether err is a ServiceError of the given kind.
func IsKind(err error, kind string) bool {
	var se *ServiceError
	return errors.As(err, &se) && se.Kind == kind
}

// HTTPStatus maps a service error onto an HTTP status code.
func HTTPStatus(err error) int {
	var se *ServiceError
	if !errors.As(err, &se) {
		return http.StatusInternalServerError
	}
	switch se.Kind {
	case ErrKindValidation:
		return http.StatusBadRequest
	case ErrKindNotFound:
		return http.StatusNotFound
	case ErrKindConflict:
		return http.StatusConflict
	case ErrKindTransient:
		return http.StatusServiceUnavailable
	case ErrKindGateway:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the message safe to surface past the service
// boundary; unexpected errors collapse to a generic line.
func PublicMessage(err error) string {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Message
	}
	return "an unexpected error occurred"
}
