package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/exp/slog"

	"github.com/giveawayhq/sweepstakes-backend/api/routes"
	"github.com/giveawayhq/sweepstakes-backend/internal/config"
	"github.com/giveawayhq/sweepstakes-backend/internal/draw"
	"github.com/giveawayhq/sweepstakes-backend/internal/handlers"
	"github.com/giveawayhq/sweepstakes-backend/internal/repositories"
	mongorepo "github.com/giveawayhq/sweepstakes-backend/internal/repositories/mongodb"
	"github.com/giveawayhq/sweepstakes-backend/internal/services"
	mongodb "github.com/giveawayhq/sweepstakes-backend/pkg/mongodb"
)

func main() {
	// Load .env if present, real environment wins
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogger(cfg.LogLevel)

	// Connect to MongoDB
	mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			slog.Error("Error disconnecting from MongoDB", "error", err)
		}
	}()

	db := mongoClient.Database(cfg.MongoDB.Database)

	// Initialize repositories
	var participantRepo repositories.ParticipantRepository = mongorepo.NewParticipantRepository(db)
	var winnerRepo repositories.WinnerRepository = mongorepo.NewWinnerRepository(db)
	var drawRecordRepo repositories.DrawRecordRepository = mongorepo.NewDrawRecordRepository(db)
	var auditRepo repositories.AuditRepository = mongorepo.NewAuditRepository(db)
	var adminRepo repositories.AdminUserRepository = mongorepo.NewAdminUserRepository(db)

	// Initialize services
	newRand := draw.NewDefault
	if cfg.Draw.SecureRandom {
		newRand = draw.NewSecure
	}
	authService := services.NewAuthService(adminRepo, cfg)
	participantService := services.NewParticipantService(participantRepo)
	sessionService := services.NewDrawSessionService(participantRepo, winnerRepo, drawRecordRepo, auditRepo, newRand)
	winnerService := services.NewWinnerService(winnerRepo, drawRecordRepo, auditRepo)

	// Initialize handlers
	handlerDeps := routes.HandlerDependencies{
		AuthHandler:        handlers.NewAuthHandler(authService),
		ParticipantHandler: handlers.NewParticipantHandler(participantService),
		DrawSessionHandler: handlers.NewDrawSessionHandler(sessionService),
		WinnerHandler:      handlers.NewWinnerHandler(winnerService),
	}

	router := routes.SetupRouter(cfg, handlerDeps)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		slog.Info("Server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	slog.Info("Server exited")
}

func setupLogger(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
