// Package services provides the business logic layer between handlers and
// the alignment engine. Services validate payloads, translate wire series
// into engine series and map engine errors onto stable error codes.
package services

import (
	"errors"

	"github.com/tsalign/tsalign/internal/timeseries"
)

// ServiceError represents a service layer error
type ServiceError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func (e *ServiceError) Error() string {
	return e.Message
}

// NewServiceError creates a new ServiceError
func NewServiceError(code, message string) *ServiceError {
	return &ServiceError{
		Code:    code,
		Message: message,
	}
}

// NewServiceErrorWithDetails creates a new ServiceError with details
func NewServiceErrorWithDetails(code, message string, details map[string]interface{}) *ServiceError {
	return &ServiceError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// Stable error codes exposed on the wire
const (
	CodeInvalidRequest         = "INVALID_REQUEST"
	CodeUnsupportedShape       = "UNSUPPORTED_SHAPE"
	CodeMissingFormat          = "MISSING_FORMAT"
	CodeUnsupportedTimestamp   = "UNSUPPORTED_TIMESTAMP"
	CodeResolutionUndetermined = "RESOLUTION_UNDETERMINED"
	CodeDuplicateKey           = "DUPLICATE_KEY"
	CodeLengthMismatch         = "LENGTH_MISMATCH"
	CodeProtectedField         = "PROTECTED_FIELD"
	CodeTypeMismatch           = "TYPE_MISMATCH"
	CodeConflictingParameters  = "CONFLICTING_PARAMETERS"
	CodePayloadTooLarge        = "PAYLOAD_TOO_LARGE"
	CodeInternal               = "INTERNAL"
)

// engineError maps an alignment engine error onto a ServiceError with a
// stable code. Unknown errors map to INTERNAL.
func engineError(err error) *ServiceError {
	code := CodeInternal
	switch {
	case errors.Is(err, timeseries.ErrUnsupportedShape):
		code = CodeUnsupportedShape
	case errors.Is(err, timeseries.ErrMissingLayout):
		code = CodeMissingFormat
	case errors.Is(err, timeseries.ErrUnsupportedTimestampType):
		code = CodeUnsupportedTimestamp
	case errors.Is(err, timeseries.ErrResolutionUndetermined):
		code = CodeResolutionUndetermined
	case errors.Is(err, timeseries.ErrDuplicateKey):
		code = CodeDuplicateKey
	case errors.Is(err, timeseries.ErrLengthMismatch):
		code = CodeLengthMismatch
	case errors.Is(err, timeseries.ErrProtectedField):
		code = CodeProtectedField
	case errors.Is(err, timeseries.ErrTypeMismatch):
		code = CodeTypeMismatch
	case errors.Is(err, timeseries.ErrConflictingParameters):
		code = CodeConflictingParameters
	case errors.Is(err, timeseries.ErrUnknownKey):
		code = CodeInvalidRequest
	}
	return NewServiceError(code, err.Error())
}
