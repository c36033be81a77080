// Package errors provides the standardized error type used across the webhook relay.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeInvalidPayload ErrorCode = "INVALID_PAYLOAD"

	ErrCodeNotificationValidationFailed ErrorCode = "NOTIFICATION_VALIDATION_FAILED"
	ErrCodeNotificationSendFailed       ErrorCode = "NOTIFICATION_SEND_FAILED"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	cause     error
}

// Error returns the message text surfaced to webhook callers.
func (e *StandardError) Error() string {
	if e.Details == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, e.Details)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// ==========================
// 2. Error Constructors
// ==========================

// NewInvalidPayloadError wraps a request body that could not be decoded.
func NewInvalidPayloadError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidPayload,
		Message:   "Invalid webhook payload",
		Details:   err.Error(),
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewNotificationValidationFailedError reports an outbound message that failed schema checks.
func NewNotificationValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationValidationFailed,
		Message:   "Notification validation failed",
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationSendFailedError reports a delivery collaborator failure.
func NewNotificationSendFailedError(provider string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   "Notification delivery failed",
		Details:   err.Error(),
		Metadata:  map[string]interface{}{"provider": provider},
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewInternalError wraps anything unexpected, including recovered panics.
func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// Normalize ensures we always have a StandardError.
func Normalize(err error) *StandardError {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr
	}
	return NewInternalError(err)
}

// HTTPStatus is the status returned for an error at the HTTP edge. The taxonomy is
// flat: client and collaborator failures both map to 500.
func HTTPStatus(_ ErrorCode) int {
	return http.StatusInternalServerError
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "PAYLOAD"):
		return "PAYLOAD"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	default:
		return "OTHER"
	}
}
