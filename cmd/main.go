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

	"comment-pulse/analysis"
	"comment-pulse/server"
	"comment-pulse/shared/ai"
	"comment-pulse/shared/config"
	"comment-pulse/shared/monitoring"
	"comment-pulse/shared/storage"
	"comment-pulse/youtube"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Create context that responds to signals
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	store, err := storage.Open(&cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to open report store: %v", err)
	}
	log.Printf("Report store opened at %s", cfg.Storage.DatabasePath)

	youtubeClient, err := youtube.NewClient(ctx, &cfg.YouTube)
	if err != nil {
		log.Fatalf("Failed to create YouTube client: %v", err)
	}

	classifier, err := ai.NewClassifier(ctx, &cfg.AI)
	if err != nil {
		log.Fatalf("Failed to create stance classifier: %v", err)
	}

	monitor := monitoring.NewMonitor()
	analyzer := analysis.NewAnalyzer(youtubeClient, classifier, store)
	srv := server.New(analyzer, store, monitor)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: srv.Handler(),
	}

	go func() {
		log.Printf("Starting comment analysis server on :%d", cfg.Server.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
