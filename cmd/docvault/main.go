package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"docvault/internal/app"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: no .env file loaded")
	}

	log.SetOutput(os.Stderr)

	service, err := app.InitializeService()
	if err != nil {
		log.Fatalf("Failed to initialize service: %v", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- service.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received %s, shutting down", sig)

		ctx, cancel := context.WithTimeout(context.Background(), service.ShutdownGrace())
		defer cancel()

		if err := service.Shutdown(ctx); err != nil {
			log.Fatalf("Shutdown failed: %v", err)
		}
	}
}
