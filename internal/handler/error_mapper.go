package handler

import (
	"errors"
	"log/slog"

	"github.com/delta/codecharacter/api/internal/database"
	"github.com/delta/codecharacter/api/internal/model"
	"github.com/delta/codecharacter/api/internal/service"
)

// MapServiceError converts a service error to a ProblemDetails response so
// every handler reports the same failure with the same status.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	var vErr *service.ValidationError
	if errors.As(err, &vErr) {
		return model.NewValidationError(vErr.Fields)
	}

	switch {
	// ===== Authentication Errors → 401 =====
	case errors.Is(err, service.ErrInvalidCredentials):
		pd := model.NewUnauthorizedError(err.Error())
		pd.Code = model.ErrCodeLoginFailed
		return pd

	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrNotificationNotFound):
		return model.NewNotFoundError("notification")
	case errors.Is(err, service.ErrMatchNotFound):
		return model.NewNotFoundError("match")
	case errors.Is(err, service.ErrGameNotFound):
		return model.NewNotFoundError("game")
	case errors.Is(err, service.ErrGameLogNotFound):
		return model.NewNotFoundError("game log")
	case errors.Is(err, service.ErrUserNotFound):
		return model.NewNotFoundError("user")

	// ===== Conflict Errors → 409 =====
	case errors.Is(err, service.ErrEmailAlreadyExists),
		errors.Is(err, service.ErrUsernameAlreadyExists):
		pd := model.NewConflictError(err.Error())
		pd.Code = model.ErrCodeAlreadyExists
		return pd
	case errors.Is(err, service.ErrMatchFinished),
		errors.Is(err, service.ErrInvalidMatchTransition),
		errors.Is(err, database.ErrConflict):
		return model.NewConflictError(err.Error())

	// ===== Invalid Arguments → 400 =====
	case errors.Is(err, service.ErrInvalidPageNumber),
		errors.Is(err, service.ErrInvalidPageSize),
		errors.Is(err, service.ErrPageSizeTooLarge),
		errors.Is(err, service.ErrInvalidNotificationType),
		errors.Is(err, service.ErrInvalidUserID),
		errors.Is(err, service.ErrInvalidMatchID),
		errors.Is(err, service.ErrInvalidGameID):
		return model.NewBadRequestError(err.Error())

	// ===== Validation Errors → 422 =====
	case errors.Is(err, service.ErrInvalidEmail):
		return model.NewValidationError([]model.FieldError{{Field: "email", Message: err.Error()}})
	case errors.Is(err, service.ErrInvalidUsername):
		return model.NewValidationError([]model.FieldError{{Field: "username", Message: err.Error()}})
	case errors.Is(err, service.ErrPasswordRequired),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrPasswordTooLong):
		return model.NewValidationError([]model.FieldError{{Field: "password", Message: err.Error()}})

	// ===== Store Unavailable → 503 =====
	case errors.Is(err, database.ErrConnection):
		return model.NewServiceUnavailableError("database unavailable")

	// ===== Default → 500 =====
	default:
		slog.Error("unhandled service error", slog.String("error", err.Error()))
		return model.NewInternalError("")
	}
}
