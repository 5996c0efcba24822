package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mhpenta/imagestudio"
	"github.com/mhpenta/imagestudio/archive"
	"github.com/mhpenta/imagestudio/config"
	"github.com/mhpenta/imagestudio/imagestore"
	"github.com/mhpenta/imagestudio/provider/gemini"
)

// Run loads configuration, wires the generation stack, and serves HTTP
// until the process receives an interrupt.
func Run(cfgPath string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := newLogger(cfg.Logging.Level)
	slog.SetDefault(logger)

	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	provider, err := gemini.New(ctx, cfg.Gemini.APIKey)
	if err != nil {
		return fmt.Errorf("creating gemini provider: %w", err)
	}

	store, err := imagestore.New(cfg.Images.MaxBytes, time.Duration(cfg.Images.TTLMinutes)*time.Minute)
	if err != nil {
		return fmt.Errorf("creating image store: %w", err)
	}
	defer store.Close()

	temperature := cfg.Gemini.Temperature
	opts := []imagestudio.ManagerOption{
		imagestudio.WithLogger(logger),
		imagestudio.WithConfig(&imagestudio.GenerateConfig{
			Model:           imagestudio.Model(cfg.Gemini.Model),
			Temperature:     &temperature,
			MaxOutputTokens: cfg.Gemini.MaxOutputTokens,
		}),
		imagestudio.WithTokenEstimator(imagestudio.NewTiktokenEstimator()),
	}

	if cfg.Archive.Path != "" {
		arch, err := archive.Open(cfg.Archive.Path)
		if err != nil {
			return fmt.Errorf("opening archive: %w", err)
		}
		defer arch.Close()
		opts = append(opts, imagestudio.WithStorage(arch))
		logger.Info("archive enabled", "path", cfg.Archive.Path)
	}

	manager := imagestudio.NewManager(provider, opts...)
	defer manager.Close()

	handlers := NewHandlers(manager, store, logger)
	router := NewRouter(handlers, cfg.Logging.AccessLog)

	srv := &http.Server{
		Addr:         cfg.Server.Listen,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutMs) * time.Millisecond,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutMs) * time.Millisecond,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", cfg.Server.Listen, "model", cfg.Gemini.Model)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func newLogger(level string) *slog.Logger {
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
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
