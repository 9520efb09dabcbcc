package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	api "notespace-backend/cmd/api"
	authdomain "notespace-backend/internal/auth/domain"
	authRepo "notespace-backend/internal/auth/repository"
	authUsecase "notespace-backend/internal/auth/usecase"
	notedomain "notespace-backend/internal/note/domain"
	noteRepo "notespace-backend/internal/note/repository"
	noteUsecase "notespace-backend/internal/note/usecase"
	"notespace-backend/pkg/config"
	"notespace-backend/pkg/database"
	"notespace-backend/pkg/logger"
	"notespace-backend/pkg/telemetry"

	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	zapLogger, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatal("Failed to init logger:", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	shutdownTelemetry := telemetry.Setup(cfg, zapLogger)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTelemetry(ctx)
	}()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		zapLogger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() { _ = database.Close(db) }()

	// Auto-migrate database schemas; notes reference users with ON DELETE CASCADE
	if err := db.AutoMigrate(&authdomain.User{}, &notedomain.Note{}); err != nil {
		zapLogger.Fatal("failed to migrate database", zap.Error(err))
	}

	// Initialize repositories (dependency injection)
	userRepository := authRepo.NewUserRepository(db)
	noteRepository := noteRepo.NewGormNoteRepository(db)

	// Initialize use cases (dependency injection)
	authUsecaseInstance := authUsecase.NewAuthUsecase(userRepository, cfg, zapLogger)
	noteUsecaseInstance := noteUsecase.NewNoteUsecase(noteRepository, zapLogger)

	// Initialize HTTP handler
	handler := api.NewHandler(authUsecaseInstance, noteUsecaseInstance, db, cfg, zapLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := handler.Start(ctx); err != nil {
		zapLogger.Error("server stopped with error", zap.Error(err))
		os.Exit(1)
	}
	zapLogger.Info("server stopped gracefully")
}
