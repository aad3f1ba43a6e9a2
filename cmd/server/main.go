package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/slatrack/slatrack/internal/adapter/persistence"
	"github.com/slatrack/slatrack/internal/adapter/ratelimit"
	"github.com/slatrack/slatrack/internal/config"
	"github.com/slatrack/slatrack/internal/service/jwt"
	"github.com/slatrack/slatrack/internal/service/logger"
	"github.com/slatrack/slatrack/internal/service/password"
	"github.com/slatrack/slatrack/internal/sla"
	"github.com/slatrack/slatrack/internal/usecase"

	httpadapter "github.com/slatrack/slatrack/internal/adapter/http"
)

func main() {
	ctx := context.Background()

	// .env is optional, real environments set variables directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	structuredLogger := logger.NewStructuredLogger(logger.LoggerConfig{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		ServiceName: "slatrack",
	})
	structuredLogger.Info(ctx, "Application starting", map[string]interface{}{
		"env": cfg.Server.Environment,
	})

	// Connect to database
	db, err := sql.Open("postgres", cfg.GetDatabaseURL())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.Database.MaxConnections)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Database.ConnectTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		structuredLogger.Error(ctx, "Failed to ping database", err, nil)
		log.Fatalf("Failed to ping database: %v", err)
	}
	structuredLogger.Info(ctx, "Database connection established", nil)

	// Repositories
	chatRepo := persistence.NewPostgresChatRepository(db)
	messageRepo := persistence.NewPostgresMessageRepository(db)
	metricsRepo := persistence.NewPostgresSLAMetricsRepository(db)
	settingsRepo := persistence.NewPostgresSettingsRepository(db)
	userRepo := persistence.NewPostgresUserRepository(db)

	// Services
	tokenService, err := jwt.NewJWTService(cfg.Security.JWTSecret, cfg.Security.JWTExpiration)
	if err != nil {
		log.Fatalf("Failed to initialize JWT service: %v", err)
	}
	passwordService := password.NewBcryptPasswordService(cfg.Security.BcryptCost)

	runLock, err := ratelimit.NewRunLock(ratelimit.RunLockConfig{
		Enabled:  cfg.Redis.Enabled,
		RedisURL: cfg.Redis.URL,
	}, structuredLogger)
	if err != nil {
		structuredLogger.Error(ctx, "Failed to initialize run lock", err, nil)
		log.Fatalf("Failed to initialize run lock: %v", err)
	}

	// Use cases
	engine := sla.NewEngine()
	settingsUseCase := usecase.NewSettingsUseCase(settingsRepo, structuredLogger)
	slaUseCase := usecase.NewSLAUseCase(chatRepo, messageRepo, metricsRepo, settingsUseCase, engine)
	recalcUseCase := usecase.NewRecalculationUseCase(chatRepo, messageRepo, metricsRepo, settingsUseCase, engine, structuredLogger)
	authUseCase := usecase.NewAuthUseCase(userRepo, passwordService, tokenService)

	// HTTP server
	slaHandler := httpadapter.NewSLAHandler(recalcUseCase, slaUseCase, runLock)
	authHandler := httpadapter.NewAuthHandler(authUseCase)
	authMiddleware := httpadapter.NewAuthMiddleware(tokenService)

	server := httpadapter.NewServer(httpadapter.ServerConfig{
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}, slaHandler, authHandler, authMiddleware, structuredLogger)

	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			structuredLogger.Error(ctx, "HTTP server failed", err, nil)
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 30*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		structuredLogger.Error(ctx, "Graceful shutdown failed", err, nil)
	}
	structuredLogger.Info(ctx, "Application stopped", nil)
}
