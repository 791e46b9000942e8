package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Abhinandangithub01/PhotoSet/internal/genai"
	"github.com/Abhinandangithub01/PhotoSet/internal/http/handlers"
	"github.com/Abhinandangithub01/PhotoSet/internal/http/httpapi"
	"github.com/Abhinandangithub01/PhotoSet/internal/infra"
	"github.com/Abhinandangithub01/PhotoSet/internal/storage"
	"github.com/Abhinandangithub01/PhotoSet/internal/studio"
)

func main() {
	// Load .env (optional).
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	storePath := cfg.SessionStorePath
	if !filepath.IsAbs(storePath) {
		if abs, err := filepath.Abs(storePath); err == nil {
			storePath = abs
		}
	}
	store, err := storage.NewFileStore(storePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("studio: failed to configure session store")
	}

	client := genai.NewClient(genai.Options{
		APIKey:     cfg.GeminiAPIKey,
		BaseURL:    cfg.GeminiBaseURL,
		TextModel:  cfg.GeminiModel,
		ImageModel: cfg.GeminiImageModel,
		HTTPClient: &http.Client{Timeout: 120 * time.Second},
		Logger:     logger,
	})

	session := studio.New(studio.Options{
		Client: client,
		KV:     store,
		Logger: logger,
	})

	app := handlers.NewApp(session, logger)
	router := httpapi.NewRouter(app, httpapi.Options{
		Logger:          logger,
		AllowedOrigins:  cfg.AllowedOrigins,
		RateLimitPerMin: cfg.RateLimitPerMin,
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("studio listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
	logger.Info().Msg("studio stopped")
}
