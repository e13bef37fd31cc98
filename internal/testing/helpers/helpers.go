package helpers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v4"

	"github.com/delta/codecharacter/api/internal/database"
	"github.com/delta/codecharacter/api/internal/model"
	"github.com/delta/codecharacter/api/pkg/jwt"
)

// ============================================================================
// JWT Helpers
// ============================================================================

const (
	testSecret = "helpers-test-secret-0123456789abcdef"
	testIssuer = "codecharacter-test"
)

// JWTHelper signs real HS256 tokens for tests and validates them the way
// the API does
type JWTHelper struct {
	t   *testing.T
	svc *jwt.Service
}

// NewJWTHelper creates a new JWT helper with a fixed test secret
func NewJWTHelper(t *testing.T) *JWTHelper {
	t.Helper()
	return &JWTHelper{t: t, svc: NewTestJWTService(t)}
}

// GenerateToken creates a valid token for user
func (h *JWTHelper) GenerateToken(user *model.User) string {
	return h.sign(user, nil)
}

// GenerateExpiredToken creates a token that expired an hour ago
func (h *JWTHelper) GenerateExpiredToken(user *model.User) string {
	return h.sign(user, jwtlib.NewNumericDate(time.Now().Add(-time.Hour)))
}

func (h *JWTHelper) sign(user *model.User, expiresAt *jwtlib.NumericDate) string {
	h.t.Helper()
	claims := jwt.Claims{
		UserID:   user.ID,
		Username: user.Username,
		IsAdmin:  user.IsAdmin,
	}
	claims.ExpiresAt = expiresAt

	token, err := h.svc.Sign(claims)
	if err != nil {
		h.t.Fatalf("helpers: failed to sign token: %v", err)
	}
	return token
}

// ValidateAccessToken lets the helper stand in as the router's token validator
func (h *JWTHelper) ValidateAccessToken(token string) (*model.TokenClaims, error) {
	claims, err := h.svc.Validate(token)
	if err != nil {
		return nil, err
	}
	return &model.TokenClaims{UserID: claims.UserID, Username: claims.Username, IsAdmin: claims.IsAdmin}, nil
}

// NewTestJWTService creates a JWT service with the helper's test secret
func NewTestJWTService(t *testing.T) *jwt.Service {
	t.Helper()

	svc, err := jwt.NewService(jwt.Config{
		Secret:         testSecret,
		Issuer:         testIssuer,
		ExpirationMins: 15,
	})
	if err != nil {
		t.Fatalf("helpers: failed to create JWT service: %v", err)
	}
	return svc
}

// ============================================================================
// HTTP Request Helpers
// ============================================================================

// RequestBuilder helps construct HTTP requests for testing
type RequestBuilder struct {
	t       *testing.T
	method  string
	path    string
	body    interface{}
	headers map[string]string
	jwt     *JWTHelper
	user    *model.User
}

// NewRequest creates a new request builder
func NewRequest(t *testing.T, method, path string) *RequestBuilder {
	t.Helper()
	return &RequestBuilder{
		t:       t,
		method:  method,
		path:    path,
		headers: make(map[string]string),
	}
}

// WithBody sets the request body (will be JSON encoded)
func (rb *RequestBuilder) WithBody(body interface{}) *RequestBuilder {
	rb.body = body
	return rb
}

// WithHeader adds a header to the request
func (rb *RequestBuilder) WithHeader(key, value string) *RequestBuilder {
	rb.headers[key] = value
	return rb
}

// WithAuth adds a bearer token for the given user
func (rb *RequestBuilder) WithAuth(jwt *JWTHelper, user *model.User) *RequestBuilder {
	rb.jwt = jwt
	rb.user = user
	return rb
}

// Build creates the HTTP request
func (rb *RequestBuilder) Build() *http.Request {
	rb.t.Helper()

	var bodyReader io.Reader
	if rb.body != nil {
		bodyBytes, err := json.Marshal(rb.body)
		if err != nil {
			rb.t.Fatalf("helpers: failed to marshal body: %v", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req := httptest.NewRequest(rb.method, rb.path, bodyReader)
	if rb.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range rb.headers {
		req.Header.Set(k, v)
	}
	if rb.jwt != nil && rb.user != nil {
		req.Header.Set("Authorization", "Bearer "+rb.jwt.GenerateToken(rb.user))
	}

	return req
}

// Serve runs the built request through h and returns the recorded response
func (rb *RequestBuilder) Serve(h http.Handler) *httptest.ResponseRecorder {
	rb.t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, rb.Build())
	return rr
}

// ============================================================================
// Response Assertion Helpers
// ============================================================================

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, resp *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if resp.Code != expected {
		t.Errorf("expected status %d, got %d. Body: %s", expected, resp.Code, resp.Body.String())
	}
}

// AssertProblemDetails validates an RFC 9457 Problem Details error response
func AssertProblemDetails(t *testing.T, resp *httptest.ResponseRecorder, expectedStatus int, expectedCode model.ErrorCode) {
	t.Helper()

	AssertStatus(t, resp, expectedStatus)

	if ct := resp.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("expected problem+json content type, got %q", ct)
	}

	var problem model.ProblemDetails
	bodyBytes := resp.Body.Bytes()
	if err := json.Unmarshal(bodyBytes, &problem); err != nil {
		t.Fatalf("failed to decode problem details: %v. Body: %s", err, string(bodyBytes))
	}

	if problem.Status != expectedStatus {
		t.Errorf("expected problem.status %d, got %d", expectedStatus, problem.Status)
	}
	if expectedCode != 0 && problem.Code != expectedCode {
		t.Errorf("expected problem.code %d, got %d", expectedCode, problem.Code)
	}
}

// AssertValidationError checks for a validation error on a specific field
func AssertValidationError(t *testing.T, resp *httptest.ResponseRecorder, field string) {
	t.Helper()

	AssertStatus(t, resp, http.StatusUnprocessableEntity)

	var problem model.ProblemDetails
	if err := json.Unmarshal(resp.Body.Bytes(), &problem); err != nil {
		t.Fatalf("failed to decode problem details: %v", err)
	}

	for _, fe := range problem.Errors {
		if fe.Field == field {
			return
		}
	}
	t.Errorf("expected validation error on field %q, but not found. Errors: %+v", field, problem.Errors)
}

// DecodeResponse decodes the response body into the given value
func DecodeResponse(t *testing.T, resp *httptest.ResponseRecorder, v interface{}) {
	t.Helper()

	bodyBytes := resp.Body.Bytes()
	if err := json.Unmarshal(bodyBytes, v); err != nil {
		t.Fatalf("failed to decode response: %v. Body: %s", err, string(bodyBytes))
	}
}

// ============================================================================
// Database Assertion Helpers
// ============================================================================

// AssertRecordExists checks that table:id exists
func AssertRecordExists(t *testing.T, db database.Database, table string, id int) {
	t.Helper()
	if !recordExists(t, db, table, id) {
		t.Errorf("expected record %s:%d to exist, but it doesn't", table, id)
	}
}

// AssertRecordNotExists checks that table:id is absent
func AssertRecordNotExists(t *testing.T, db database.Database, table string, id int) {
	t.Helper()
	if recordExists(t, db, table, id) {
		t.Errorf("expected record %s:%d to not exist, but it does", table, id)
	}
}

func recordExists(t *testing.T, db database.Database, table string, id int) bool {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	query := `SELECT VALUE record::id(id) FROM ONLY type::thing($table, $id)`
	results, err := db.Query(ctx, query, map[string]interface{}{
		"table": table,
		"id":    id,
	})
	if err != nil {
		t.Fatalf("failed to query for record: %v", err)
	}
	return hasResults(results)
}

func hasResults(results []interface{}) bool {
	if len(results) == 0 {
		return false
	}

	resp, ok := results[0].(map[string]interface{})
	if !ok {
		return false
	}

	switch v := resp["result"].(type) {
	case []interface{}:
		return len(v) > 0
	case nil:
		return false
	default:
		return true
	}
}
