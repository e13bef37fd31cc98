package handler

import (
	"net/http"

	"github.com/delta/codecharacter/api/internal/middleware"
)

// RouterConfig holds everything the route table is built from
type RouterConfig struct {
	Auth          *AuthHandler
	Notifications *NotificationHandler
	Matches       *MatchHandler
	Games         *GameHandler
	Health        *HealthHandler

	Tokens      middleware.TokenValidator
	LoginLimit  *middleware.RateLimiter
	Idempotency *middleware.IdempotencyStore
}

// NewRouter registers every route on a ServeMux. Cross-cutting middleware
// (request id, logging, recovery, CORS) is applied by the caller.
func NewRouter(cfg RouterConfig) *http.ServeMux {
	mux := http.NewServeMux()

	user := func(h http.HandlerFunc) http.Handler {
		return middleware.Chain(h, middleware.Auth(cfg.Tokens))
	}
	admin := func(h http.HandlerFunc) http.Handler {
		return middleware.Chain(h, middleware.Auth(cfg.Tokens), middleware.AdminOnly)
	}
	adminCreate := func(h http.HandlerFunc) http.Handler {
		return middleware.Chain(h, middleware.Auth(cfg.Tokens), middleware.AdminOnly, middleware.Idempotency(cfg.Idempotency))
	}
	limited := func(h http.HandlerFunc) http.Handler {
		return middleware.Chain(h, middleware.RateLimit(cfg.LoginLimit))
	}

	// Health check endpoint
	mux.HandleFunc("GET /health", cfg.Health.Health)

	// Auth
	mux.Handle("POST /auth/register", limited(cfg.Auth.Register))
	mux.Handle("POST /auth/login", limited(cfg.Auth.Login))
	mux.Handle("GET /auth/me", user(cfg.Auth.Me))

	// Games
	mux.Handle("GET /game/log/game/{gameId}", middleware.Chain(http.HandlerFunc(cfg.Games.GetLog),
		middleware.Auth(cfg.Tokens), middleware.Compress))
	mux.Handle("PUT /game/log/game/{gameId}", admin(cfg.Games.PutLog))
	mux.Handle("PUT /game/{gameId}/result", admin(cfg.Games.PutResult))

	// Matches
	mux.HandleFunc("GET /match/top/{PageNo}/{PageSize}", cfg.Matches.TopMatches)
	mux.Handle("GET /match/{matchId}", user(cfg.Matches.Get))
	mux.Handle("POST /match", adminCreate(cfg.Matches.Create))
	mux.Handle("POST /match/{matchId}/start", admin(cfg.Matches.Start))
	mux.Handle("POST /match/{matchId}/finish", admin(cfg.Matches.Finish))

	// Notifications
	mux.Handle("POST /notifications", adminCreate(cfg.Notifications.Create))
	mux.Handle("GET /notifications", user(cfg.Notifications.List))
	mux.Handle("GET /notifications/unread", user(cfg.Notifications.ListUnread))
	mux.Handle("GET /notifications/type/{type}", user(cfg.Notifications.ListByType))
	mux.Handle("DELETE /notifications/type/{type}", user(cfg.Notifications.DeleteByType))
	mux.Handle("GET /notifications/{notificationId}", user(cfg.Notifications.Get))
	mux.Handle("PATCH /notifications/{notificationId}/read", user(cfg.Notifications.MarkRead))
	mux.Handle("DELETE /notifications/{notificationId}", user(cfg.Notifications.Delete))

	return mux
}
