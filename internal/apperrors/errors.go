// Package apperrors defines the structured error kinds surfaced to callers of the auditor.
package apperrors

import (
	"errors"
	"fmt"
	"time"
)

// Kind classifies an auditor error.
type Kind string

const (
	// KindConfiguration indicates a missing or unparseable template, config, or environment.
	KindConfiguration Kind = "configuration"
	// KindValidation indicates malformed user input that must be re-submitted.
	KindValidation Kind = "validation"
	// KindRateLimit indicates the caller exceeded its request budget.
	KindRateLimit Kind = "rate_limit"
)

// Error is a structured auditor error.
type Error struct {
	Err        error
	Kind       Kind
	Op         string
	Message    string
	RetryAfter time.Duration
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s error: %s", e.Op, e.Kind, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Retryable reports whether the caller may simply try again later.
func (e *Error) Retryable() bool {
	return e.Kind == KindRateLimit
}

// Configuration returns a configuration error for op.
func Configuration(op, message string) *Error {
	return &Error{Kind: KindConfiguration, Op: op, Message: message}
}

// WrapConfiguration wraps err as a configuration error for op.
func WrapConfiguration(op string, err error) *Error {
	return &Error{Kind: KindConfiguration, Op: op, Message: err.Error(), Err: err}
}

// Validation returns a validation error for op.
func Validation(op, format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Op: op, Message: fmt.Sprintf(format, args...)}
}

// WrapValidation wraps err as a validation error for op.
func WrapValidation(op string, err error) *Error {
	return &Error{Kind: KindValidation, Op: op, Message: err.Error(), Err: err}
}

// RateLimited returns a rate limit error telling the caller how long to wait.
func RateLimited(op string, retryAfter time.Duration) *Error {
	return &Error{
		Kind:       KindRateLimit,
		Op:         op,
		Message:    fmt.Sprintf("rate limit exceeded, retry after %s", retryAfter.Round(time.Second)),
		RetryAfter: retryAfter,
	}
}

// IsConfiguration checks if err is a configuration error.
func IsConfiguration(err error) bool {
	return hasKind(err, KindConfiguration)
}

// IsValidation checks if err is a validation error.
func IsValidation(err error) bool {
	return hasKind(err, KindValidation)
}

// IsRateLimited checks if err is a rate limit error.
func IsRateLimited(err error) bool {
	return hasKind(err, KindRateLimit)
}

func hasKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
