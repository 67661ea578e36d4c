package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"kiosk-backend/internal/config"
	"kiosk-backend/internal/infrastructure/queue"
	"kiosk-backend/pkg/container"
	"kiosk-backend/pkg/logger"
)

func main() {
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

	server, mux := buildServer(c)

	scheduler, err := queue.NewScheduler(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Error("❌ Failed to build scheduler", map[string]interface{}{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	if err := scheduler.Start(); err != nil {
		logger.Error("❌ Failed to start scheduler", map[string]interface{}{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	go func() {
		logger.Info("🚀 Worker starting", map[string]interface{}{
			"redis": cfg.Redis.Host,
		})
		if err := server.Run(mux); err != nil {
			logger.Error("❌ Worker failed", map[string]interface{}{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down worker", nil)
	scheduler.Shutdown()
	server.Shutdown()
	logger.Info("✅ Worker stopped", nil)
}
