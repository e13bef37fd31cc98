// Package jwt issues and validates HS256 access tokens.
//
//	svc, err := jwt.NewService(jwt.Config{Secret: secret, Issuer: "codecharacter", ExpirationMins: 60})
//	token, err := svc.Sign(jwt.Claims{UserID: 42, Username: "alice"})
//	claims, err := svc.Validate(token)
package jwt

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v4"
)

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrTokenExpired     = errors.New("token expired")
	ErrTokenNotYetValid = errors.New("token not yet valid")
	ErrInvalidSignature = errors.New("invalid signature")
	ErrInvalidKey       = errors.New("invalid key")
)

// minSecretLength is the shortest HMAC secret accepted
const minSecretLength = 16

// Claims carries the user identity inside an access token
type Claims struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username,omitempty"`
	IsAdmin  bool   `json:"is_admin,omitempty"`
	jwtlib.RegisteredClaims
}

// Service signs and validates tokens with a shared secret
type Service struct {
	secret     []byte
	issuer     string
	expiration time.Duration
	now        func() time.Time
}

// Config holds JWT service configuration
type Config struct {
	Secret         string
	Issuer         string
	ExpirationMins int
}

// NewService creates a new JWT service
func NewService(cfg Config) (*Service, error) {
	if len(cfg.Secret) < minSecretLength {
		return nil, fmt.Errorf("%w: secret must be at least %d bytes", ErrInvalidKey, minSecretLength)
	}
	if cfg.ExpirationMins <= 0 {
		cfg.ExpirationMins = 60
	}

	return &Service{
		secret:     []byte(cfg.Secret),
		issuer:     cfg.Issuer,
		expiration: time.Duration(cfg.ExpirationMins) * time.Minute,
		now:        time.Now,
	}, nil
}

// Sign creates a signed token. Issuer, subject and timestamps are filled in;
// a caller-set ExpiresAt is kept.
func (s *Service) Sign(claims Claims) (string, error) {
	now := s.now()

	claims.Issuer = s.issuer
	claims.Subject = strconv.Itoa(claims.UserID)
	claims.IssuedAt = jwtlib.NewNumericDate(now)
	claims.NotBefore = jwtlib.NewNumericDate(now)
	if claims.ExpiresAt == nil {
		claims.ExpiresAt = jwtlib.NewNumericDate(now.Add(s.expiration))
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign: %w", err)
	}
	return signed, nil
}

// Validate checks the signature, timestamps and issuer and returns the claims
func (s *Service) Validate(tokenString string) (*Claims, error) {
	parser := jwtlib.Parser{ValidMethods: []string{jwtlib.SigningMethodHS256.Alg()}}

	claims := &Claims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(*jwtlib.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, translateError(err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	if !claims.VerifyIssuer(s.issuer, true) || claims.UserID <= 0 {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// GetExpiration returns the token expiration duration
func (s *Service) GetExpiration() time.Duration {
	return s.expiration
}

func translateError(err error) error {
	switch {
	case errors.Is(err, jwtlib.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwtlib.ErrTokenNotValidYet):
		return ErrTokenNotYetValid
	case errors.Is(err, jwtlib.ErrTokenSignatureInvalid):
		return ErrInvalidSignature
	default:
		return ErrInvalidToken
	}
}
