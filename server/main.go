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

	"fishing-clash/internal/config"
	"fishing-clash/internal/notify"
	"fishing-clash/internal/profile"
	"fishing-clash/internal/species"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Error running application", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		slog.Warn("No .env file loaded", "error", err)
	}

	cfg, err := config.New()
	if err != nil {
		return err
	}

	logger := newLogger(cfg.Server.LogFormat)
	slog.SetDefault(logger)

	notifier, err := notify.New(cfg.Telegram.Token, cfg.Telegram.ChatID)
	if err != nil {
		return err
	}

	hub, err := NewHub(HubOptions{
		Match:     cfg.Match,
		LobbySlot: cfg.Lobby.Slot,
		Profiles:  profile.NewRepository(cfg.Profile.StartingCoins),
		Species:   species.Default(),
		Notifier:  notifier,
		Logger:    logger,
	})
	if err != nil {
		return err
	}
	if err := hub.Start(); err != nil {
		return err
	}
	defer func() {
		if err := hub.Shutdown(); err != nil {
			slog.Error("Error stopping hub", "error", err)
		}
	}()

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: SetupRouter(hub),
	}

	go func() {
		slog.Info("Starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Error starting HTTP server", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newLogger(format string) *slog.Logger {
	if format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
