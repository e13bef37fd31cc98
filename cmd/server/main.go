package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/delta/codecharacter/api/internal/config"
	"github.com/delta/codecharacter/api/internal/database"
	"github.com/delta/codecharacter/api/internal/handler"
	"github.com/delta/codecharacter/api/internal/jobs"
	"github.com/delta/codecharacter/api/internal/middleware"
	"github.com/delta/codecharacter/api/internal/repository"
	"github.com/delta/codecharacter/api/internal/service"
	"github.com/delta/codecharacter/api/internal/storage"
	"github.com/delta/codecharacter/api/pkg/jwt"
)

func main() {
	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection
	db := database.NewSurrealDB(database.Config{
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
	})

	ctx := context.Background()
	if err := db.Connect(ctx); err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	slog.Info("connected to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Database),
	)

	// Initialize game log bucket
	logStore, err := storage.NewLogStore(ctx, storage.Config{
		Endpoint:        cfg.LogStore.Endpoint,
		Region:          cfg.LogStore.Region,
		Bucket:          cfg.LogStore.Bucket,
		Prefix:          cfg.LogStore.Prefix,
		AccessKeyID:     cfg.LogStore.AccessKeyID,
		SecretAccessKey: cfg.LogStore.SecretAccessKey,
		UsePathStyle:    cfg.LogStore.UsePathStyle,
	})
	if err != nil {
		slog.Error("failed to initialize log store", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize JWT service
	jwtService, err := jwt.NewService(jwt.Config{
		Secret:         cfg.JWT.Secret,
		Issuer:         cfg.JWT.Issuer,
		ExpirationMins: cfg.JWT.ExpirationMins,
	})
	if err != nil {
		slog.Error("failed to initialize JWT service", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize repositories
	sequenceRepo := repository.NewSequenceRepository(db)
	userRepo := repository.NewUserRepository(db, sequenceRepo)
	notificationRepo := repository.NewNotificationRepository(db, sequenceRepo)
	matchRepo := repository.NewMatchRepository(db, sequenceRepo)
	gameRepo := repository.NewGameRepository(db)

	// Initialize services
	tokenService := service.NewTokenService(service.TokenServiceConfig{
		JWTService: jwtService,
	})
	authService := service.NewAuthService(service.AuthServiceConfig{
		UserRepo:     userRepo,
		TokenService: tokenService,
	})
	notificationService := service.NewNotificationService(service.NotificationServiceConfig{
		Repo:        notificationRepo,
		Users:       userRepo,
		MaxPageSize: cfg.Pagination.MaxPageSize,
	})
	matchService := service.NewMatchService(service.MatchServiceConfig{
		Repo:        matchRepo,
		Games:       gameRepo,
		Players:     userRepo,
		MaxPageSize: cfg.Pagination.MaxPageSize,
	})
	gameService := service.NewGameService(service.GameServiceConfig{
		Repo: gameRepo,
		Logs: logStore,
	})

	// Start match settler
	matchSettler := jobs.NewMatchSettler(matchService, notificationService, cfg.Jobs.SettleInterval)
	matchSettler.Start()
	defer matchSettler.Stop()

	// Initialize rate limiter for register and login
	loginLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		Limit:   10, // 10 attempts per minute
		Period:  time.Minute,
		Cleanup: 5 * time.Minute,
	})
	defer loginLimiter.Stop()

	// Initialize idempotency store
	idempotencyStore := middleware.NewIdempotencyStore(middleware.IdempotencyConfig{
		TTL:     24 * time.Hour,
		Cleanup: time.Hour,
	})
	defer idempotencyStore.Stop()

	mux := handler.NewRouter(handler.RouterConfig{
		Auth:          handler.NewAuthHandler(authService),
		Notifications: handler.NewNotificationHandler(notificationService),
		Matches:       handler.NewMatchHandler(matchService),
		Games:         handler.NewGameHandler(gameService),
		Health: handler.NewHealthHandler(map[string]handler.Pinger{
			"database":  db,
			"log_store": logStore,
		}),
		Tokens:      authService,
		LoginLimit:  loginLimiter,
		Idempotency: idempotencyStore,
	})

	// Apply global middleware
	wrapped := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(cfg.Server.AllowedOrigins),
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      wrapped,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}
