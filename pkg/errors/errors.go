// Package errors provides standardized error types for the SQL runner service.
package errors

import (
	"errors"
	"fmt"
)

// Error codes used across services and handlers.
const (
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeNotFound         = "NOT_FOUND"
	CodeAlreadyExists    = "ALREADY_EXISTS"
	CodeQueryFailed      = "QUERY_FAILED"
	CodeConnectionFailed = "CONNECTION_FAILED"
	CodeMetadataFailed   = "METADATA_FAILED"
	CodeInternal         = "INTERNAL_ERROR"
	CodeUnavailable      = "UNAVAILABLE"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodePermissionDenied = "PERMISSION_DENIED"
)

// ServiceError represents a service error with code, message, and optional details.
type ServiceError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// Is implements error comparison by code.
func (e *ServiceError) Is(target error) bool {
	t, ok := target.(*ServiceError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithDetail adds a single detail to the error.
func (e *ServiceError) WithDetail(key string, value interface{}) *ServiceError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// Common errors.
var (
	ErrInvalidQuery       = &ServiceError{Code: CodeInvalidRequest, Message: "invalid query"}
	ErrTableNotFound      = &ServiceError{Code: CodeNotFound, Message: "table not found"}
	ErrUserNotFound       = &ServiceError{Code: CodeNotFound, Message: "user not found"}
	ErrUserExists         = &ServiceError{Code: CodeAlreadyExists, Message: "username already registered"}
	ErrEmailExists        = &ServiceError{Code: CodeAlreadyExists, Message: "email already registered"}
	ErrInvalidCredentials = &ServiceError{Code: CodeUnauthorized, Message: "incorrect username or password"}
	ErrInvalidToken       = &ServiceError{Code: CodeUnauthorized, Message: "invalid or expired token"}
	ErrUserInactive       = &ServiceError{Code: CodePermissionDenied, Message: "user account is inactive"}
	ErrConnectionFailed   = &ServiceError{Code: CodeUnavailable, Message: "database connection failed"}
)

// New creates a new ServiceError with the given code and message.
func New(code, message string) *ServiceError {
	return &ServiceError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with a ServiceError.
func Wrap(err error, code, message string) *ServiceError {
	if err == nil {
		return nil
	}
	return &ServiceError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with a formatted message.
func Wrapf(err error, code, format string, args ...interface{}) *ServiceError {
	if err == nil {
		return nil
	}
	return &ServiceError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   err,
	}
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	var serviceErr *ServiceError
	if errors.As(err, &serviceErr) {
		return serviceErr.Code == CodeNotFound
	}
	return false
}

// IsAlreadyExists checks if an error is an already exists error.
func IsAlreadyExists(err error) bool {
	var serviceErr *ServiceError
	if errors.As(err, &serviceErr) {
		return serviceErr.Code == CodeAlreadyExists
	}
	return false
}

// IsUnauthorized checks if an error is an authorization error.
func IsUnauthorized(err error) bool {
	var serviceErr *ServiceError
	if errors.As(err, &serviceErr) {
		return serviceErr.Code == CodeUnauthorized
	}
	return false
}

// GetCode extracts the error code from an error.
func GetCode(err error) string {
	var serviceErr *ServiceError
	if errors.As(err, &serviceErr) {
		return serviceErr.Code
	}
	return CodeInternal
}

// GetMessage extracts the user-facing message from an error.
func GetMessage(err error) string {
	var serviceErr *ServiceError
	if errors.As(err, &serviceErr) {
		return serviceErr.Message
	}
	return err.Error()
}
