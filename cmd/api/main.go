package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"community-api/internal/config"
	"community-api/internal/database"
	"community-api/internal/job"
	"community-api/internal/metrics"
	"community-api/internal/repository"
	"community-api/internal/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := initLogger(cfg.Logger.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Community API",
		zap.String("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode),
		zap.String("base_path", cfg.Server.BasePath),
	)

	// Initialize database
	db, err := database.New(database.Config{
		DSN:             cfg.Database.GetDSN(),
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)
	logger.Info("Database connected successfully")

	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}
	logger.Info("Database migrations completed")

	// Initialize metrics and database instrumentation
	m := metrics.NewWithLogger(logger)
	database.RegisterMetricsCallbacks(db, m)
	statsDone := database.StartDBStatsCollector(db, m)
	defer close(statsDone)

	collector := metrics.NewBusinessMetricsCollector(db, m, logger)
	collector.Start()
	defer collector.Stop()
	logger.Info("Metrics initialized")

	// Initialize redis for the token blacklist. The service still runs
	// without it, with logout revocation disabled.
	redisClient, err := database.NewRedis(cfg.Redis)
	if err != nil {
		logger.Warn("Failed to connect to redis, token revocation disabled", zap.Error(err))
		redisClient = nil
	} else {
		defer redisClient.Close()
		logger.Info("Redis connected successfully")
	}

	// Schedule expired token cleanup
	userRepo := repository.NewUserRepository(db)
	cleanupJob := job.NewCleanupJob(userRepo, logger)
	scheduler := cron.New()
	if _, err := scheduler.AddJob("@hourly", cleanupJob); err != nil {
		logger.Error("Failed to schedule cleanup job", zap.Error(err))
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Setup router with all dependencies
	r := router.Setup(&router.Config{
		DB:             db,
		Redis:          redisClient,
		Logger:         logger,
		Metrics:        m,
		JWTSecret:      cfg.JWT.Secret,
		JWTExpiresIn:   cfg.JWT.ExpiresIn,
		BasePath:       cfg.Server.BasePath,
		Mode:           cfg.Server.Mode,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Community API started successfully",
			zap.String("address", srv.Addr),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}

// initLogger initializes the zap logger with the specified level
func initLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      zapLevel == zapcore.DebugLevel,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return config.Build()
}
