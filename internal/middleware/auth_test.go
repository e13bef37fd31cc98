package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/delta/codecharacter/api/internal/model"
	"github.com/delta/codecharacter/api/pkg/jwt"
)

// ============================================================================
// Mock TokenValidator
// ============================================================================

type mockValidator struct {
	validateFunc func(token string) (*model.TokenClaims, error)
}

func (m *mockValidator) ValidateAccessToken(token string) (*model.TokenClaims, error) {
	return m.validateFunc(token)
}

func acceptingValidator(userID int, isAdmin bool) *mockValidator {
	return &mockValidator{
		validateFunc: func(token string) (*model.TokenClaims, error) {
			return &model.TokenClaims{UserID: userID, Username: "player", IsAdmin: isAdmin}, nil
		},
	}
}

func rejectingValidator(err error) *mockValidator {
	return &mockValidator{
		validateFunc: func(token string) (*model.TokenClaims, error) {
			return nil, err
		},
	}
}

// ============================================================================
// Test Helpers
// ============================================================================

func newTestRequest(authHeader string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	return req
}

// captureHandler captures the request context for inspection
type captureHandler struct {
	called bool
	ctx    context.Context
}

func (h *captureHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.called = true
	h.ctx = r.Context()
	w.WriteHeader(http.StatusOK)
}

func decodeProblem(t *testing.T, rr *httptest.ResponseRecorder) model.ProblemDetails {
	t.Helper()
	var pd model.ProblemDetails
	if err := json.NewDecoder(rr.Body).Decode(&pd); err != nil {
		t.Fatalf("failed to decode problem: %v", err)
	}
	return pd
}

// ============================================================================
// Auth() Middleware Tests
// ============================================================================

func TestAuth_RejectsBadHeaders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		header     string
		wantDetail string
	}{
		{"missing", "", "missing authorization header"},
		{"no bearer prefix", "Token abc", "invalid authorization header format"},
		{"only bearer", "Bearer", "invalid authorization header format"},
		{"empty token", "Bearer ", "invalid authorization header format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			next := &captureHandler{}
			rr := httptest.NewRecorder()

			Auth(acceptingValidator(1, false))(next).ServeHTTP(rr, newTestRequest(tt.header))

			if rr.Code != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d", rr.Code)
			}
			if next.called {
				t.Error("next handler should not be called")
			}
			if pd := decodeProblem(t, rr); pd.Detail != tt.wantDetail {
				t.Errorf("expected detail %q, got %q", tt.wantDetail, pd.Detail)
			}
		})
	}
}

func TestAuth_ValidToken_SetsClaims(t *testing.T) {
	t.Parallel()
	next := &captureHandler{}
	rr := httptest.NewRecorder()

	Auth(acceptingValidator(42, true))(next).ServeHTTP(rr, newTestRequest("bearer abc.def.ghi"))

	if !next.called {
		t.Fatal("expected next handler to be called")
	}
	userID, ok := GetUserID(next.ctx)
	if !ok || userID != 42 {
		t.Errorf("expected user 42, got %d (%v)", userID, ok)
	}
	if !IsAdmin(next.ctx) {
		t.Error("expected admin flag in context")
	}
}

func TestAuth_TokenErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantDetail string
		wantCode   model.ErrorCode
	}{
		{"expired", jwt.ErrTokenExpired, "token expired", model.ErrCodeTokenExpired},
		{"bad signature", jwt.ErrInvalidSignature, "invalid token signature", model.ErrCodeTokenInvalid},
		{"anything else", errors.New("garbled"), "invalid token", model.ErrCodeTokenInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			next := &captureHandler{}
			rr := httptest.NewRecorder()

			Auth(rejectingValidator(tt.err))(next).ServeHTTP(rr, newTestRequest("Bearer token"))

			if rr.Code != http.StatusUnauthorized || next.called {
				t.Fatalf("expected rejection, got %d (called=%v)", rr.Code, next.called)
			}
			pd := decodeProblem(t, rr)
			if pd.Detail != tt.wantDetail || pd.Code != tt.wantCode {
				t.Errorf("expected %q/%d, got %q/%d", tt.wantDetail, tt.wantCode, pd.Detail, pd.Code)
			}
		})
	}
}

// ============================================================================
// AdminOnly Tests
// ============================================================================

func TestAdminOnly(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		claims     *model.TokenClaims
		wantStatus int
	}{
		{"no claims", nil, http.StatusUnauthorized},
		{"player", &model.TokenClaims{UserID: 1}, http.StatusForbidden},
		{"admin", &model.TokenClaims{UserID: 1, IsAdmin: true}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := newTestRequest("")
			if tt.claims != nil {
				req = req.WithContext(WithClaims(req.Context(), tt.claims))
			}
			rr := httptest.NewRecorder()

			AdminOnly(&captureHandler{}).ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d", tt.wantStatus, rr.Code)
			}
		})
	}
}

// ============================================================================
// Context Helper Tests
// ============================================================================

func TestGetUserID_Missing(t *testing.T) {
	t.Parallel()

	if _, ok := GetUserID(context.Background()); ok {
		t.Error("expected no user id")
	}
	if GetClaims(context.Background()) != nil {
		t.Error("expected nil claims")
	}
	if IsAdmin(context.Background()) {
		t.Error("expected non-admin")
	}
}

func TestGetClaims_WrongType_ReturnsNil(t *testing.T) {
	t.Parallel()
	ctx := context.WithValue(context.Background(), ClaimsKey, "not-claims")

	if GetClaims(ctx) != nil {
		t.Error("expected nil for wrong type")
	}
}
