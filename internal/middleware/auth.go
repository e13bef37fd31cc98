package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/delta/codecharacter/api/internal/model"
	"github.com/delta/codecharacter/api/pkg/jwt"
)

// TokenValidator checks a bearer token and returns the identity inside it
type TokenValidator interface {
	ValidateAccessToken(token string) (*model.TokenClaims, error)
}

// Auth rejects requests without a valid bearer token and stores the
// token's claims in the request context.
func Auth(validator TokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				if r.Header.Get("Authorization") == "" {
					model.NewUnauthorizedError("missing authorization header").WriteJSON(w)
				} else {
					model.NewUnauthorizedError("invalid authorization header format").WriteJSON(w)
				}
				return
			}

			claims, err := validator.ValidateAccessToken(token)
			if err != nil {
				writeTokenError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// AdminOnly lets through only requests whose claims carry the admin flag.
// It must run after Auth.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := GetClaims(r.Context())
		if claims == nil {
			model.NewUnauthorizedError("authentication required").WriteJSON(w)
			return
		}
		if !claims.IsAdmin {
			model.NewForbiddenError("admin access required").WriteJSON(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WithClaims returns a copy of ctx carrying claims
func WithClaims(ctx context.Context, claims *model.TokenClaims) context.Context {
	return context.WithValue(ctx, ClaimsKey, claims)
}

// GetClaims extracts the token claims from context
func GetClaims(ctx context.Context) *model.TokenClaims {
	if claims, ok := ctx.Value(ClaimsKey).(*model.TokenClaims); ok {
		return claims
	}
	return nil
}

// GetUserID extracts the authenticated user id from context
func GetUserID(ctx context.Context) (int, bool) {
	claims := GetClaims(ctx)
	if claims == nil || claims.UserID <= 0 {
		return 0, false
	}
	return claims.UserID, true
}

// IsAdmin reports whether the authenticated user is an admin
func IsAdmin(ctx context.Context) bool {
	claims := GetClaims(ctx)
	return claims != nil && claims.IsAdmin
}

func bearerToken(r *http.Request) (string, bool) {
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func writeTokenError(w http.ResponseWriter, err error) {
	pd := model.NewUnauthorizedError("invalid token")
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		pd.Detail = "token expired"
		pd.Code = model.ErrCodeTokenExpired
	case errors.Is(err, jwt.ErrInvalidSignature):
		pd.Detail = "invalid token signature"
		pd.Code = model.ErrCodeTokenInvalid
	default:
		pd.Code = model.ErrCodeTokenInvalid
	}
	pd.WriteJSON(w)
}
