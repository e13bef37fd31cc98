// Package config manages application configuration for the Code Character API.
//
// Configuration is read from environment variables. A .env file in the
// working directory, when present, is loaded into the environment first.
//
//	cfg, err := config.Load()
//	if err != nil { ... }
//	if err := cfg.Validate(); err != nil { ... }
//
// # Configuration Groups
//
//   - ServerConfig: HTTP server settings (port, timeouts, CORS origins)
//   - DatabaseConfig: SurrealDB connection settings
//   - JWTConfig: access token signing settings
//   - LogStoreConfig: S3-compatible bucket holding game logs
//   - PaginationConfig: upper bound on requested page sizes
//   - JobsConfig: background job schedules
//
// # Environment Variables
//
//	SERVER_PORT                  - HTTP server port (default: 8080)
//	SERVER_ENV                   - development | production | test
//	DB_HOST, DB_PORT             - SurrealDB address (default: localhost:8000)
//	DB_NAMESPACE, DB_DATABASE    - SurrealDB namespace and database
//	DB_USER, DB_PASSWORD         - SurrealDB root credentials
//	JWT_SECRET                   - HMAC secret for access tokens (required)
//	JWT_EXPIRATION_MINS          - access token lifetime (default: 60)
//	LOG_STORE_ENDPOINT           - custom S3 endpoint (R2, MinIO); empty for AWS
//	LOG_STORE_BUCKET             - bucket holding game logs
//	LOG_STORE_ACCESS_KEY_ID      - static credentials, paired with the secret
//	MAX_PAGE_SIZE                - largest accepted page size (default: 100)
//	MATCH_SETTLE_INTERVAL        - how often finished games settle their match (default: 30s)
package config
