package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	LogStore   LogStoreConfig
	Pagination PaginationConfig
	Jobs       JobsConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port           string
	Env            string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	AllowedOrigins []string
}

// DatabaseConfig holds SurrealDB connection settings
type DatabaseConfig struct {
	Host      string
	Port      string
	Namespace string
	Database  string
	User      string
	Password  string
}

// JWTConfig holds access token signing settings
type JWTConfig struct {
	Secret         string
	ExpirationMins int
	Issuer         string
}

// LogStoreConfig holds the S3-compatible bucket used for game logs
type LogStoreConfig struct {
	Endpoint        string
	Region          string
	Bucket          string
	Prefix          string
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    bool
}

// PaginationConfig bounds page sizes accepted by list endpoints
type PaginationConfig struct {
	MaxPageSize int
}

// JobsConfig holds background job schedules
type JobsConfig struct {
	SettleInterval time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is loaded first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	} else if err != nil {
		slog.Debug("no .env file found, reading environment only")
	}

	return &Config{
		Server: ServerConfig{
			Port:           getEnv("SERVER_PORT", "8080"),
			Env:            getEnv("SERVER_ENV", "development"),
			ReadTimeout:    getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:   getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
			AllowedOrigins: getSliceEnv("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		},
		Database: DatabaseConfig{
			Host:      getEnv("DB_HOST", "localhost"),
			Port:      getEnv("DB_PORT", "8000"),
			Namespace: getEnv("DB_NAMESPACE", "codecharacter"),
			Database:  getEnv("DB_DATABASE", "main"),
			User:      getEnv("DB_USER", "root"),
			Password:  getEnv("DB_PASSWORD", "root"),
		},
		JWT: JWTConfig{
			Secret:         getEnv("JWT_SECRET", ""),
			ExpirationMins: getIntEnv("JWT_EXPIRATION_MINS", 60),
			Issuer:         getEnv("JWT_ISSUER", "codecharacter"),
		},
		LogStore: LogStoreConfig{
			Endpoint:        getEnv("LOG_STORE_ENDPOINT", ""),
			Region:          getEnv("LOG_STORE_REGION", "auto"),
			Bucket:          getEnv("LOG_STORE_BUCKET", "codecharacter-logs"),
			Prefix:          getEnv("LOG_STORE_PREFIX", "game-logs"),
			AccessKeyID:     getEnv("LOG_STORE_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("LOG_STORE_SECRET_ACCESS_KEY", ""),
			UsePathStyle:    getBoolEnv("LOG_STORE_PATH_STYLE", false),
		},
		Pagination: PaginationConfig{
			MaxPageSize: getIntEnv("MAX_PAGE_SIZE", 100),
		},
		Jobs: JobsConfig{
			SettleInterval: getDurationEnv("MATCH_SETTLE_INTERVAL", 30*time.Second),
		},
	}, nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Validate checks that all required configuration values are present and valid.
// It returns an error describing all validation failures, or nil if valid.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port == "" {
		errs = append(errs, errors.New("SERVER_PORT is required"))
	}
	if c.Server.Env != "development" && c.Server.Env != "production" && c.Server.Env != "test" {
		errs = append(errs, fmt.Errorf("SERVER_ENV must be 'development', 'production', or 'test', got '%s'", c.Server.Env))
	}
	if len(c.Server.AllowedOrigins) == 0 {
		errs = append(errs, errors.New("CORS_ALLOWED_ORIGINS must have at least one origin"))
	}

	if c.Database.Host == "" {
		errs = append(errs, errors.New("DB_HOST is required"))
	}
	if c.Database.Port == "" {
		errs = append(errs, errors.New("DB_PORT is required"))
	}
	if c.Database.Namespace == "" {
		errs = append(errs, errors.New("DB_NAMESPACE is required"))
	}
	if c.Database.Database == "" {
		errs = append(errs, errors.New("DB_DATABASE is required"))
	}

	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	} else if c.IsProduction() && len(c.JWT.Secret) < 32 {
		errs = append(errs, errors.New("JWT_SECRET must be at least 32 bytes in production"))
	}
	if c.JWT.ExpirationMins <= 0 {
		errs = append(errs, errors.New("JWT_EXPIRATION_MINS must be positive"))
	}

	if c.LogStore.Bucket == "" {
		errs = append(errs, errors.New("LOG_STORE_BUCKET is required"))
	}
	if c.LogStore.HasStaticCredentials() != (c.LogStore.AccessKeyID != "" || c.LogStore.SecretAccessKey != "") {
		errs = append(errs, errors.New("LOG_STORE_ACCESS_KEY_ID and LOG_STORE_SECRET_ACCESS_KEY must be set together"))
	}

	if c.Pagination.MaxPageSize <= 0 {
		errs = append(errs, errors.New("MAX_PAGE_SIZE must be positive"))
	}
	if c.Jobs.SettleInterval <= 0 {
		errs = append(errs, errors.New("MATCH_SETTLE_INTERVAL must be positive"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// HasStaticCredentials returns true if both log store keys are set
func (l LogStoreConfig) HasStaticCredentials() bool {
	return l.AccessKeyID != "" && l.SecretAccessKey != ""
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
