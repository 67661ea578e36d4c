package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"kiosk-backend/internal/config"
	"kiosk-backend/pkg/container"
	"kiosk-backend/pkg/logger"
)

func main() {
	// Missing .env is fine in production; everything comes from the
	// environment there
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("❌ Invalid configuration", map[string]interface{}{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	logger.Init(cfg.App.Environment)

	c, err := container.NewContainer(cfg)
	if err != nil {
		logger.Error("❌ Failed to initialize container", map[string]interface{}{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer c.Cleanup()

	router := setupRouter(c)

	server := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("🚀 API server starting", map[string]interface{}{
			"port":    cfg.App.Port,
			"version": cfg.App.Version,
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("❌ Server failed", map[string]interface{}{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("❌ Forced shutdown", map[string]interface{}{
			"error": err.Error(),
		})
	}

	logger.Info("✅ Server stopped", nil)
}
