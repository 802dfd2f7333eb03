package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/rs/zerolog"

	"github.com/edusuite/virtualschool-backend/internal/config"
	"github.com/edusuite/virtualschool-backend/internal/handler"
	"github.com/edusuite/virtualschool-backend/internal/logger"
	"github.com/edusuite/virtualschool-backend/internal/router"
	"github.com/edusuite/virtualschool-backend/internal/service"
	"github.com/edusuite/virtualschool-backend/internal/session"
	"github.com/edusuite/virtualschool-backend/internal/validator"
	"github.com/edusuite/virtualschool-backend/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("text_model", cfg.TextModel).
		Str("image_model", cfg.ImageModel).
		Msg("Starting Virtual School Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	// ─── Provider Client ───────────────────────────────────────────────
	// One client serves both text and image calls. The timeout is the only
	// ceiling on provider calls; no retries happen anywhere in this path.
	clientCfg := openai.DefaultConfig(cfg.ProviderAPIKey)
	if cfg.ProviderBaseURL != "" {
		clientCfg.BaseURL = cfg.ProviderBaseURL
	}
	clientCfg.HTTPClient = &http.Client{Timeout: cfg.ProviderTimeout}
	client := openai.NewClientWithConfig(clientCfg)

	// ─── Initialize Services ──────────────────────────────────────────
	images, err := service.NewImageService(client, cfg.ImagesDir, cfg.ImageModel, logger.Component(log, "imagestore"))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize image store")
	}
	generator := service.NewGeneratorService(client, images, cfg.TextModel, logger.Component(log, "generator"))
	store := session.NewStore(cfg.SessionSecret)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Generate: handler.NewGenerateHandler(generator, logger.Component(log, "generate")),
		Image:    handler.NewImageHandler(images, logger.Component(log, "image")),
		Study:    handler.NewStudyHandler(logger.Component(log, "study")),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	cleanup := worker.NewCleanupWorker(images.Dir(), cfg.ImageRetention, log)
	go cleanup.Start(workerCtx)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(handlers, store, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	workerCancel()

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
