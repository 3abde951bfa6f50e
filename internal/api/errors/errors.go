package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorKind represents different types of API errors
type ErrorKind string

const (
	KindValidation         ErrorKind = "validation"
	KindBadRequest         ErrorKind = "bad_request"
	KindNotFound           ErrorKind = "not_found"
	KindTooLarge           ErrorKind = "too_large"
	KindServiceUnavailable ErrorKind = "service_unavailable"
	KindInternal           ErrorKind = "internal"
)

// CodeDecodeError marks uploads ffmpeg could not read.
const CodeDecodeError = "decode_error"

var statusByKind = map[ErrorKind]int{
	KindValidation:         http.StatusUnprocessableEntity,
	KindBadRequest:         http.StatusBadRequest,
	KindNotFound:           http.StatusNotFound,
	KindTooLarge:           http.StatusRequestEntityTooLarge,
	KindServiceUnavailable: http.StatusServiceUnavailable,
	KindInternal:           http.StatusInternalServerError,
}

// APIError is the JSON body of every failed API response.
type APIError struct {
	Kind      ErrorKind         `json:"kind"`
	Message   string            `json:"message"`
	Code      string            `json:"code,omitempty"`
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

func (e *APIError) Error() string {
	return e.Message
}

// HTTPStatus maps the kind to a status code; unknown kinds are 500.
func (e *APIError) HTTPStatus() int {
	if status, ok := statusByKind[e.Kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

func newError(kind ErrorKind, message string) *APIError {
	return &APIError{Kind: kind, Message: message}
}

// NewValidationError creates a validation error with field details
func NewValidationError(message string, fields map[string]string) *APIError {
	apiErr := newError(KindValidation, message)
	apiErr.Details = fields
	return apiErr
}

// NewDecodeError reports an upload that could not be converted to WAV.
// stderr is ffmpeg's complaint, passed through for the caller.
func NewDecodeError(stderr string) *APIError {
	apiErr := NewValidationError("Audio could not be decoded", map[string]string{"file": stderr})
	apiErr.Code = CodeDecodeError
	return apiErr
}

func NewNotFoundError(resource string) *APIError {
	return newError(KindNotFound, fmt.Sprintf("%s not found", resource))
}

func NewBadRequestError(message string) *APIError {
	return newError(KindBadRequest, message)
}

// NewTooLargeError reports an upload over the configured limit.
func NewTooLargeError(limitBytes int64) *APIError {
	return newError(KindTooLarge, fmt.Sprintf("upload exceeds %d bytes", limitBytes))
}

func NewServiceUnavailableError(message string) *APIError {
	return newError(KindServiceUnavailable, message)
}

func NewInternalError(message string) *APIError {
	return newError(KindInternal, message)
}

// FromError returns the APIError in err's chain. ok is false when there is
// none, in which case a generic internal error is returned.
func FromError(err error) (apiErr *APIError, ok bool) {
	if stderrors.As(err, &apiErr) {
		return apiErr, true
	}
	return NewInternalError("Internal server error"), false
}
