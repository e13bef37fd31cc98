package service

import (
	"github.com/delta/codecharacter/api/internal/model"
	"github.com/delta/codecharacter/api/pkg/jwt"
)

// TokenService issues and checks access tokens
type TokenService struct {
	jwtService *jwt.Service
}

// TokenServiceConfig holds configuration for the token service
type TokenServiceConfig struct {
	JWTService *jwt.Service
}

// NewTokenService creates a new token service
func NewTokenService(cfg TokenServiceConfig) *TokenService {
	return &TokenService{jwtService: cfg.JWTService}
}

// IssueAccessToken signs a token for user and wraps it in an AuthResponse
func (s *TokenService) IssueAccessToken(user *model.User) (*model.AuthResponse, error) {
	token, err := s.jwtService.Sign(jwt.Claims{
		UserID:   user.ID,
		Username: user.Username,
		IsAdmin:  user.IsAdmin,
	})
	if err != nil {
		return nil, err
	}

	return &model.AuthResponse{
		User:        user,
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(s.jwtService.GetExpiration().Seconds()),
	}, nil
}

// ValidateAccessToken validates an access token and returns the claims
func (s *TokenService) ValidateAccessToken(token string) (*jwt.Claims, error) {
	return s.jwtService.Validate(token)
}
