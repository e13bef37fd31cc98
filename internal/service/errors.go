package service

import (
	"errors"
	"strings"

	"github.com/delta/codecharacter/api/internal/model"
)

// Centralized service layer errors.
// All errors returned by service methods are defined here so handlers can
// map them to HTTP responses in one place.

// ===== Authentication Errors =====
var (
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrEmailAlreadyExists    = errors.New("email already registered")
	ErrUsernameAlreadyExists = errors.New("username already taken")
	ErrUserNotFound          = errors.New("user not found")
	ErrPasswordRequired      = errors.New("password is required")
	ErrPasswordTooShort      = errors.New("password must be at least 8 characters")
	ErrPasswordTooLong       = errors.New("password must be at most 128 characters")
	ErrInvalidEmail          = errors.New("invalid email format")
	ErrInvalidUsername       = errors.New("username must be 3-32 letters, digits or underscores")
)

// ===== Pagination Errors =====
var (
	ErrInvalidPageNumber = errors.New("page number must be a positive integer")
	ErrInvalidPageSize   = errors.New("page size must not be negative")
	ErrPageSizeTooLarge  = errors.New("page size exceeds the maximum")
)

// ===== Notification Errors =====
var (
	ErrNotificationNotFound    = errors.New("notification not found")
	ErrInvalidNotificationType = errors.New("invalid notification type")
	ErrInvalidUserID           = errors.New("user id must be a positive integer")
)

// ===== Match Errors =====
var (
	ErrMatchNotFound          = errors.New("match not found")
	ErrInvalidMatchID         = errors.New("match id must be a positive integer")
	ErrInvalidMatchTransition = errors.New("match cannot move to that status")
	ErrMatchFinished          = errors.New("match is already finished")
)

// ===== Game Errors =====
var (
	ErrGameNotFound    = errors.New("game not found")
	ErrInvalidGameID   = errors.New("game id must be a positive integer")
	ErrGameLogNotFound = errors.New("game log not found")
)

// ValidationError carries per-field failures of a request
type ValidationError struct {
	Fields []model.FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// validationError returns nil when there are no field failures
func validationError(fields []model.FieldError) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}
