package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pdf-fusion/internal/config"
	"pdf-fusion/internal/handler"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}
	// Wiring
	container := config.NewContainer()

	// Handlers
	sessionHandler := handler.NewSessionHandler(container.SessionService, container.Logger)
	mergeHandler := handler.NewMergeHandler(container.SessionService, container.MergeService, container.Logger)
	splitHandler := handler.NewSplitHandler(container.SplitService, container.Logger)
	previewHandler := handler.NewPreviewHandler(container.SessionService, container.PreviewService, container.Logger)

	requestLogger := handler.NewRequestLogger(container.Logger)

	// Router
	router := handler.NewRouter(
		sessionHandler,
		mergeHandler,
		splitHandler,
		previewHandler,
		container.Config.GetAllowedOrigins(),
		requestLogger.Middleware,
	)

	// start server
	server := &http.Server{
		Addr:              ":" + container.Config.GetServerPort(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Run server
	go func() {
		container.Logger.Info("Server listening", "address", server.Addr, "merge_log", container.MergeLog.Path())
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
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		container.Logger.Error("Graceful shutdown failed", err)
		_ = server.Close()
	}

	container.Logger.Info("Server exited")
}
