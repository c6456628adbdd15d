package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Error codes
const (
	CodeAPIError   = "API_ERROR"
	CodeValidation = "VALIDATION_ERROR"
	CodeStorage    = "STORAGE_ERROR"
	CodeCache      = "CACHE_ERROR"
	CodeService    = "SERVICE_ERROR"
)

type VizError struct {
	Message    string
	Code       string
	StatusCode int
	Context    map[string]any
	Cause      error
}

func (e *VizError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *VizError) Unwrap() error {
	return e.Cause
}

// HTTPStatus is promoted to every typed wrapper below.
func (e *VizError) HTTPStatus() int {
	return e.StatusCode
}

func (e *VizError) WithCause(cause error) *VizError {
	e.Cause = cause
	return e
}

// APIError is returned when the remote stats API answers but the answer is
// not a success envelope.
type APIError struct {
	*VizError
}

func NewAPIError(message string, statusCode int, context map[string]any) *APIError {
	return &APIError{
		VizError: &VizError{
			Message:    message,
			Code:       CodeAPIError,
			StatusCode: statusCode,
			Context:    context,
		},
	}
}

type ValidationError struct {
	*VizError
	Field string
	Value interface{}
}

func NewValidationError(message, field string, value interface{}) *ValidationError {
	return &ValidationError{
		VizError: &VizError{
			Message:    message,
			Code:       CodeValidation,
			StatusCode: http.StatusBadRequest,
			Context: map[string]any{
				"field": field,
				"value": value,
			},
		},
		Field: field,
		Value: value,
	}
}

type StorageError struct {
	*VizError
	Operation string
}

func NewStorageError(message, operation string, cause error) *StorageError {
	return &StorageError{
		VizError: &VizError{
			Message:    message,
			Code:       CodeStorage,
			StatusCode: http.StatusInternalServerError,
			Context:    map[string]any{"operation": operation},
			Cause:      cause,
		},
		Operation: operation,
	}
}

type CacheError struct {
	*VizError
	Operation string
	Key       string
}

func NewCacheError(message, operation, key string, cause error) *CacheError {
	return &CacheError{
		VizError: &VizError{
			Message:    message,
			Code:       CodeCache,
			StatusCode: http.StatusInternalServerError,
			Context: map[string]any{
				"operation": operation,
				"key":       key,
			},
			Cause: cause,
		},
		Operation: operation,
		Key:       key,
	}
}

// ServiceError covers transport failures talking to another service.
type ServiceError struct {
	*VizError
	Service   string
	Operation string
}

func NewServiceError(message, service, operation string, cause error) *ServiceError {
	return &ServiceError{
		VizError: &VizError{
			Message:    message,
			Code:       CodeService,
			StatusCode: http.StatusBadGateway,
			Context: map[string]any{
				"service":   service,
				"operation": operation,
			},
			Cause: cause,
		},
		Service:   service,
		Operation: operation,
	}
}

// StatusCode reports the HTTP status carried by err, or 500.
func StatusCode(err error) int {
	var se interface{ HTTPStatus() int }
	if stderrors.As(err, &se) && se.HTTPStatus() != 0 {
		return se.HTTPStatus()
	}
	return http.StatusInternalServerError
}

// IsAPIError reports whether err (or anything it wraps) is an *APIError.
func IsAPIError(err error) bool {
	var ae *APIError
	return stderrors.As(err, &ae)
}

// IsServiceError reports whether err (or anything it wraps) is a *ServiceError.
func IsServiceError(err error) bool {
	var se *ServiceError
	return stderrors.As(err, &se)
}
