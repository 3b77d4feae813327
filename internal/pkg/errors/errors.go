package errors

import (
	"errors"
	"fmt"
	"net/http"
)

type AppError struct {
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
	Errors     []string               `json:"errors,omitempty"`
	StatusCode int                    `json:"-"`
	cause      error
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.cause
}

func New(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    make(map[string]interface{}),
	}
}

func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	e.Details = details
	return e
}

// WithErrors attaches a list of field-level messages, rendered as the
// envelope's "errors" array.
func (e *AppError) WithErrors(msgs []string) *AppError {
	e.Errors = msgs
	return e
}

func Validation(message string) *AppError {
	return New(CodeValidation, message, http.StatusBadRequest)
}

func Validationf(format string, args ...interface{}) *AppError {
	return Validation(fmt.Sprintf(format, args...))
}

func MissingField(field string) *AppError {
	return Validation("Missing required field: " + field)
}

func NotFound(message string) *AppError {
	return New(CodeNotFound, message, http.StatusNotFound)
}

// Unauthorized is the single 403 answer for every failed session or role
// check; callers must not say which check failed.
func Unauthorized() *AppError {
	return New(CodeUnauthorized, "Unauthorized", http.StatusForbidden)
}

func Forbidden(message string) *AppError {
	return New(CodeUnauthorized, message, http.StatusForbidden)
}

// Internal wraps an unexpected failure. The cause text is embedded in the
// message.
func Internal(err error) *AppError {
	e := New(CodeInternal, fmt.Sprintf("Server error: %v", err), http.StatusInternalServerError)
	e.cause = err
	return e
}

// As reports whether err carries an *AppError and returns it.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Is is re-exported so callers importing this package as "errors" keep
// access to the standard helper.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
