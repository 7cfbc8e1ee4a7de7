package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"wa-coach-bot/internal/config"
	"wa-coach-bot/internal/handler"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}
	// Wiring
	container := config.NewContainer()

	// Load the user store before accepting traffic
	container.Users.Load()
	container.Logger.Info("User store loaded", "users", container.Users.Count())

	// Router
	router := handler.NewRouter(container)

	// Background sweeps and session backups
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	container.Scheduler.Start(ctx)

	// start server
	server := &http.Server{
		Addr:    ":" + container.Config.GetServerPort(),
		Handler: router,
	}

	// Run server
	go func() {
		container.Logger.Info("Server listening", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			container.Logger.Error("Server failed to start", err)
			os.Exit(1)
		}
	}()
	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	container.Logger.Info("Shutting down server...")
	cancel()
	_ = server.Close()

	// Final snapshots on the way out
	if err := container.Users.Persist(); err != nil {
		container.Logger.Error("Failed to persist user store on shutdown", err)
	}
	if err := container.Backup.Backup(); err != nil {
		container.Logger.Warn("Final session backup failed", "error", err)
	}

	container.Logger.Info("Server exited")
}
