package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adfharrison1/protondb/pkg/server"
)

func main() {
	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		if errors.Is(err, errHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	log.Printf("INFO: Using data directory: %s", cfg.Storage.Root)
	if cfg.Server.Debug {
		log.Printf("INFO: Debug logging enabled")
	}

	srv := server.NewServer(cfg)

	// Create HTTP server
	httpServer := &http.Server{
		Addr:    cfg.Address(),
		Handler: srv.Router(),
	}

	// Start server in a goroutine
	go func() {
		log.Printf("INFO: Starting protondb server on %s", cfg.Address())
		log.Printf("INFO: API endpoints available at http://%s", cfg.Address())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
