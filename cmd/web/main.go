package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/yt-insights/ytwatch/internal/api"
	"github.com/yt-insights/ytwatch/internal/config"
	"github.com/yt-insights/ytwatch/internal/session"
	"github.com/yt-insights/ytwatch/internal/view"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		slog.Warn(".env file not found")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	if cfg.LogLevel > slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}

	renderer, err := view.NewRenderer(view.NewLocale(cfg.Language))
	if err != nil {
		logger.Error("failed to load templates", slog.Any("error", err))
		os.Exit(1)
	}

	client := api.NewClient(cfg.APIBaseURL, api.WithRateLimit(cfg.UpstreamRateLimit, cfg.UpstreamBurst))
	sessions := session.NewStore(cfg.SessionTTL)
	server := api.NewServer(cfg, client, sessions, renderer, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go sessions.Run(ctx, time.Minute, func(removed int) {
		logger.Debug("expired sessions removed", slog.Int("count", removed))
	})

	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: server.Handler(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", slog.Any("error", err))
		}
	}()

	logger.Info("server starting",
		slog.String("port", cfg.Port),
		slog.String("api", cfg.APIBaseURL),
		slog.String("playback", string(cfg.PlaybackMode)),
	)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("server stopped")
}
