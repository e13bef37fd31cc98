package model

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// ProblemDetails Tests
// ============================================================================

func TestProblemDetails_Error_ReturnsFormattedMessage(t *testing.T) {
	t.Parallel()

	pd := &ProblemDetails{Status: http.StatusNotFound, Title: "Not Found", Detail: "match not found"}

	msg := pd.Error()
	assert.Contains(t, msg, "404")
	assert.Contains(t, msg, "Not Found")
	assert.Contains(t, msg, "match not found")
}

func TestProblemDetails_WriteJSON(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	NewNotFoundError("notification").WriteJSON(rec)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))

	var body ProblemDetails
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "notification not found", body.Detail)
	assert.Equal(t, ErrCodeNotFound, body.Code)
	assert.True(t, strings.HasSuffix(body.Type, "/not-found"))
}

// ============================================================================
// Constructor Tests
// ============================================================================

func TestConstructors_StatusAndCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		pd     *ProblemDetails
		status int
		code   ErrorCode
	}{
		{"unauthorized", NewUnauthorizedError("missing token"), http.StatusUnauthorized, ErrCodeUnauthorized},
		{"forbidden", NewForbiddenError("not yours"), http.StatusForbidden, ErrCodeForbidden},
		{"not found", NewNotFoundError("game"), http.StatusNotFound, ErrCodeNotFound},
		{"conflict", NewConflictError("already finished"), http.StatusConflict, ErrCodeConflict},
		{"internal", NewInternalError("boom"), http.StatusInternalServerError, ErrCodeInternal},
		{"unavailable", NewServiceUnavailableError("db down"), http.StatusServiceUnavailable, ErrCodeUnavailable},
		{"bad request", NewBadRequestError("page must be a number"), http.StatusBadRequest, ErrCodeInvalidInput},
		{"rate limited", NewRateLimitError(30), http.StatusTooManyRequests, ErrCodeRateLimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.status, tt.pd.Status)
			assert.Equal(t, tt.code, tt.pd.Code)
			assert.NotEmpty(t, tt.pd.Title)
			assert.True(t, strings.HasPrefix(tt.pd.Type, problemTypeBase))
		})
	}
}

func TestNewInternalError_EmptyDetail_UsesDefault(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "An unexpected error occurred", NewInternalError("").Detail)
}

func TestNewValidationError_SingleField(t *testing.T) {
	t.Parallel()

	pd := NewValidationError([]FieldError{{Field: "title", Message: "title is required"}})

	assert.Equal(t, http.StatusUnprocessableEntity, pd.Status)
	assert.Equal(t, "title: title is required", pd.Detail)
	assert.Len(t, pd.Errors, 1)
}

func TestNewValidationError_MultipleFields_SummarizesCount(t *testing.T) {
	t.Parallel()

	pd := NewValidationError([]FieldError{
		{Field: "title", Message: "title is required"},
		{Field: "type", Message: "type is invalid"},
		{Field: "user_id", Message: "user_id must be positive"},
	})

	assert.Equal(t, "title: title is required (and 2 more errors)", pd.Detail)
}

func TestNewValidationError_Empty_UsesDefault(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "One or more fields failed validation", NewValidationError(nil).Detail)
}
