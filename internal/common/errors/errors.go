package errors

import (
	"fmt"
	"time"
)

// ErrorCode identifies a class of application error.
type ErrorCode string

const (
	ErrCodeInternal   ErrorCode = "INTERNAL_ERROR"
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"
	ErrCodeNotFound   ErrorCode = "NOT_FOUND"
	ErrCodeConflict   ErrorCode = "CONFLICT"
	ErrCodeBadRequest ErrorCode = "BAD_REQUEST"

	ErrCodeGiveawayNotFound ErrorCode = "GIVEAWAY_NOT_FOUND"
	ErrCodeEntryNotFound    ErrorCode = "ENTRY_NOT_FOUND"

	// Conflicting timing fields, invalid status transition, invalid reroll position.
	ErrCodeInvalidConfiguration ErrorCode = "INVALID_CONFIGURATION"

	// Draw/reroll over zero eligible entries. Draw tolerates it; reroll rejects it.
	ErrCodeEmptyPool ErrorCode = "EMPTY_POOL"

	// A dependent operation failed and the parent operation was aborted,
	// e.g. entry deletion failing during a giveaway cascade delete.
	ErrCodeDependencyFailure ErrorCode = "DEPENDENCY_FAILURE"

	ErrCodeDatabaseError ErrorCode = "DATABASE_ERROR"
)

// AppError is the typed application error carried across layers.
type AppError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Cause     error                  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) IsNotFound() bool {
	return e.Code == ErrCodeNotFound ||
		e.Code == ErrCodeGiveawayNotFound ||
		e.Code == ErrCodeEntryNotFound
}

func (e *AppError) IsValidation() bool {
	return e.Code == ErrCodeValidation || e.Code == ErrCodeInvalidConfiguration
}

// WithDetail attaches a named value callers can use to fix the request.
func (e *AppError) WithDetail(key string, value interface{}) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// New creates a new application error.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// Wrap attaches a cause to a new application error.
func Wrap(err error, code ErrorCode, message string) *AppError {
	appErr := New(code, message)
	appErr.Cause = err
	return appErr
}

// Wrapf wraps an existing error with formatting.
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *AppError {
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// NewValidationError reports a request field that failed validation.
func NewValidationError(field, reason string) *AppError {
	return New(ErrCodeValidation, fmt.Sprintf("Validation failed for field '%s': %s", field, reason)).
		WithDetail("field", field).
		WithDetail("reason", reason)
}

// NewGiveawayNotFoundError reports an absent giveaway.
func NewGiveawayNotFoundError(giveawayID string) *AppError {
	return New(ErrCodeGiveawayNotFound, fmt.Sprintf("Giveaway not found: %s", giveawayID)).
		WithDetail("giveaway_id", giveawayID)
}

// NewEntryNotFoundError reports an absent entry.
func NewEntryNotFoundError(entryID string) *AppError {
	return New(ErrCodeEntryNotFound, fmt.Sprintf("Entry not found: %s", entryID)).
		WithDetail("entry_id", entryID)
}

// NewInvalidConfigurationError reports a request that conflicts with the
// giveaway's current configuration or state machine.
func NewInvalidConfigurationError(reason string) *AppError {
	return New(ErrCodeInvalidConfiguration, fmt.Sprintf("Invalid configuration: %s", reason)).
		WithDetail("reason", reason)
}

// NewEmptyPoolError reports a selection over zero eligible entries.
func NewEmptyPoolError(giveawayID string) *AppError {
	return New(ErrCodeEmptyPool, "No eligible entries to select from").
		WithDetail("giveaway_id", giveawayID)
}

// NewDependencyFailureError reports an aborted parent operation.
func NewDependencyFailureError(operation string, err error) *AppError {
	return Wrap(err, ErrCodeDependencyFailure, fmt.Sprintf("Dependent operation failed: %s", operation)).
		WithDetail("operation", operation)
}

// NewDatabaseError reports a store failure.
func NewDatabaseError(operation string, err error) *AppError {
	return Wrap(err, ErrCodeDatabaseError, fmt.Sprintf("Database operation failed: %s", operation)).
		WithDetail("operation", operation)
}

// AsAppError converts err to *AppError if it is one.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if err != nil {
		appErr, _ = err.(*AppError)
	}
	return appErr, appErr != nil
}
