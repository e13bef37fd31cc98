// Package middleware provides HTTP middleware for the Code Character API.
//
// The server wraps every route in RequestID, Logger, Recovery and CORS:
//
//	handler := middleware.Chain(mux,
//	    middleware.RequestID,
//	    middleware.Logger,
//	    middleware.Recovery,
//	    middleware.CORS(cfg.AllowedOrigins),
//	)
//
// Per-route middleware:
//
//   - Auth: requires a bearer token; handlers read the identity with GetUserID and IsAdmin
//   - AdminOnly: restricts a route to admins, after Auth
//   - RateLimit: fixed-window attempt counting for login and registration
//   - Idempotency: replays POST responses for a repeated Idempotency-Key
//   - Compress: gzip for large bodies such as game logs
package middleware
