package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/terrapoint/terrapoint/application/usecase"
	"github.com/terrapoint/terrapoint/infrastructure/adapter/postgres"
	"github.com/terrapoint/terrapoint/infrastructure/config"
	server "github.com/terrapoint/terrapoint/infrastructure/http"
	"github.com/terrapoint/terrapoint/infrastructure/http/handler"
	"github.com/terrapoint/terrapoint/infrastructure/http/middleware"
	"github.com/terrapoint/terrapoint/infrastructure/service/csvio"
	"github.com/terrapoint/terrapoint/infrastructure/service/jwt"
	"github.com/terrapoint/terrapoint/infrastructure/service/logger"
	"github.com/terrapoint/terrapoint/infrastructure/service/password"
	"github.com/terrapoint/terrapoint/infrastructure/service/ratelimit"
	"github.com/terrapoint/terrapoint/infrastructure/service/storage"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	structuredLogger := logger.NewStructuredLogger(logger.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: "terrapoint",
	})
	structuredLogger.Info(ctx, "Application starting", map[string]interface{}{
		"env": cfg.Environment,
	})

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		structuredLogger.Error(ctx, "Failed to ping database", err, nil)
		log.Fatalf("Failed to ping database: %v", err)
	}
	structuredLogger.Info(ctx, "Database connection established", nil)

	rateLimitService, err := ratelimit.NewRateLimitService(ratelimit.Config{
		Enabled:  cfg.RateLimitEnabled,
		RedisURL: cfg.RedisURL,
	}, structuredLogger)
	if err != nil {
		structuredLogger.Error(ctx, "Failed to initialize rate limit service", err, map[string]interface{}{
			"redis_url": cfg.RedisURL,
		})
		log.Fatalf("Failed to initialize rate limit service: %v", err)
	}

	tokenService, err := jwt.NewJWTService(cfg.JWTSecret, cfg.AccessTokenTTL)
	if err != nil {
		log.Fatalf("Failed to initialize JWT service: %v", err)
	}
	passwordService := password.NewBcryptPasswordService(10)
	fileStorage := storage.NewAFSStorage(cfg.StorageBaseURL, cfg.PublicBaseURL)
	csvCodec := csvio.NewCodec()

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	actionRepo := postgres.NewPendingActionRepository(db)
	auditRepo := postgres.NewAuditRepository(db)
	documentRepo := postgres.NewDocumentRepository(db)
	registry := postgres.NewRegistry(db)
	unitOfWork := postgres.NewSQLUnitOfWork(db)

	// Use cases
	schema := usecase.NewSchemaValidator()
	approvalUseCase := usecase.NewApprovalUseCase(unitOfWork, actionRepo, auditRepo, registry, schema)
	entityUseCase := usecase.NewEntityUseCase(registry, approvalUseCase, schema, csvCodec, auditRepo)
	authUseCase := usecase.NewAuthUseCase(userRepo, tokenService, passwordService, rateLimitService, structuredLogger)
	userUseCase := usecase.NewUserManagementUseCase(userRepo, passwordService, schema)
	documentUseCase := usecase.NewDocumentUseCase(documentRepo, fileStorage)

	// HTTP wiring
	authMiddleware := middleware.NewAuthMiddleware(tokenService)
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(rateLimitService, structuredLogger)

	handlers := server.Handlers{
		Auth:          handler.NewAuthHandler(authUseCase, authMiddleware),
		Entity:        handler.NewEntityHandler(entityUseCase, authMiddleware),
		PendingAction: handler.NewPendingActionHandler(approvalUseCase, authMiddleware),
		User:          handler.NewUserManagementHandler(userUseCase, authMiddleware),
		Document:      handler.NewDocumentHandler(documentUseCase, authMiddleware),
	}

	srv := server.NewServer(server.ServerConfig{
		Port:                cfg.ServerPort,
		ReadTimeout:         15 * time.Second,
		WriteTimeout:        30 * time.Second,
		IdleTimeout:         60 * time.Second,
		CORSAllowedOrigins:  cfg.CORSAllowedOrigins,
		CorrelationIDHeader: cfg.LogCorrelationIDHeader,
	}, handlers, rateLimitMiddleware, db, structuredLogger)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			structuredLogger.Error(ctx, "Server failed", err, nil)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		structuredLogger.Error(ctx, "Server forced to shutdown", err, nil)
	}
	structuredLogger.Info(ctx, "Server exited", nil)
}
