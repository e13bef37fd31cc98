// Package jwt signs and validates HS256 access tokens for the Code Character API.
//
//	svc, err := jwt.NewService(jwt.Config{
//	    Secret:         os.Getenv("JWT_SECRET"), // at least 32 bytes
//	    Issuer:         "codecharacter",
//	    ExpirationMins: 30,
//	})
//
//	token, err := svc.Sign(jwt.Claims{UserID: 42, Username: "alice"})
//	claims, err := svc.Validate(token)
//
// Validate only accepts HMAC tokens from the configured issuer. Failures map
// to ErrTokenExpired, ErrTokenNotYetValid, ErrInvalidSignature or
// ErrInvalidToken so callers can tell an expired session from a forged one.
package jwt
