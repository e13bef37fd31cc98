package jwt

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v4"
)

// ============================================================================
// Test Helpers
// ============================================================================

const testSecret = "test-secret-at-least-32-bytes-long!!"

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc, err := NewService(Config{Secret: testSecret, Issuer: "test-issuer", ExpirationMins: 15})
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	return svc
}

// ============================================================================
// NewService Tests
// ============================================================================

func TestNewService_ShortSecret_ReturnsErrInvalidKey(t *testing.T) {
	t.Parallel()

	_, err := NewService(Config{Secret: "short", Issuer: "x"})
	if !errors.Is(err, ErrInvalidKey) {
		t.Errorf("expected ErrInvalidKey, got %v", err)
	}
}

func TestNewService_DefaultExpiration(t *testing.T) {
	t.Parallel()

	svc, err := NewService(Config{Secret: testSecret})
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	if svc.GetExpiration() != time.Hour {
		t.Errorf("expected 1h default expiration, got %v", svc.GetExpiration())
	}
}

// ============================================================================
// Sign / Validate Tests
// ============================================================================

func TestSignValidate_RoundTrip(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)

	token, err := svc.Sign(Claims{UserID: 42, Username: "alice", IsAdmin: true})
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	if strings.Count(token, ".") != 2 {
		t.Fatalf("expected three token segments, got %q", token)
	}

	claims, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.UserID != 42 || claims.Username != "alice" || !claims.IsAdmin {
		t.Errorf("unexpected claims: %+v", claims)
	}
	if claims.Subject != "42" {
		t.Errorf("expected subject 42, got %q", claims.Subject)
	}
	if claims.Issuer != "test-issuer" {
		t.Errorf("expected issuer test-issuer, got %q", claims.Issuer)
	}
}

func TestSign_SetsDefaultExpiration(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)
	fixed := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	token, _ := svc.Sign(Claims{UserID: 1})

	parsed := &Claims{}
	if _, _, err := new(jwtlib.Parser).ParseUnverified(token, parsed); err != nil {
		t.Fatalf("ParseUnverified failed: %v", err)
	}
	if !parsed.ExpiresAt.Time.Equal(fixed.Add(15 * time.Minute)) {
		t.Errorf("expected exp %v, got %v", fixed.Add(15*time.Minute), parsed.ExpiresAt.Time)
	}
}

func TestValidate_ExpiredToken_ReturnsErrTokenExpired(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)

	token, _ := svc.Sign(Claims{
		UserID:           1,
		RegisteredClaims: jwtlib.RegisteredClaims{ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(-time.Hour))},
	})

	if _, err := svc.Validate(token); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestValidate_TokenNotYetValid_ReturnsErrTokenNotYetValid(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)
	svc.now = func() time.Time { return time.Now().Add(time.Hour) }

	token, _ := svc.Sign(Claims{UserID: 1})

	if _, err := svc.Validate(token); !errors.Is(err, ErrTokenNotYetValid) {
		t.Errorf("expected ErrTokenNotYetValid, got %v", err)
	}
}

func TestValidate_TamperedClaims_ReturnsErrInvalidSignature(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)

	token, _ := svc.Sign(Claims{UserID: 1})
	parts := strings.Split(token, ".")
	forged := base64.RawURLEncoding.EncodeToString([]byte(`{"user_id":999,"is_admin":true,"iss":"test-issuer"}`))

	_, err := svc.Validate(parts[0] + "." + forged + "." + parts[2])
	if !errors.Is(err, ErrInvalidSignature) {
		t.Errorf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestValidate_OtherSecret_ReturnsErrInvalidSignature(t *testing.T) {
	t.Parallel()
	other, _ := NewService(Config{Secret: "another-secret-of-sufficient-size", Issuer: "test-issuer"})

	token, _ := other.Sign(Claims{UserID: 1})

	if _, err := newTestService(t).Validate(token); !errors.Is(err, ErrInvalidSignature) {
		t.Errorf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestValidate_WrongIssuer_ReturnsErrInvalidToken(t *testing.T) {
	t.Parallel()
	other, _ := NewService(Config{Secret: testSecret, Issuer: "someone-else"})

	token, _ := other.Sign(Claims{UserID: 1})

	if _, err := newTestService(t).Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestValidate_Malformed_ReturnsErrInvalidToken(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)

	for _, token := range []string{"", "abc", "a.b", "a.b.c.d", "!!!.???.###"} {
		if _, err := svc.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Validate(%q): expected ErrInvalidToken, got %v", token, err)
		}
	}
}

func TestValidate_RejectsNoneAlgorithm(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)

	unsigned := jwtlib.NewWithClaims(jwtlib.SigningMethodNone, Claims{
		UserID:           1,
		RegisteredClaims: jwtlib.RegisteredClaims{Issuer: "test-issuer"},
	})
	token, err := unsigned.SignedString(jwtlib.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("SignedString failed: %v", err)
	}

	if _, err := svc.Validate(token); err == nil {
		t.Error("expected unsigned token to be rejected")
	}
}
