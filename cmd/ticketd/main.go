package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/ticketbase-dev/ticketbase/db"
	"github.com/ticketbase-dev/ticketbase/internal/auth"
	"github.com/ticketbase-dev/ticketbase/internal/blobstore"
	"github.com/ticketbase-dev/ticketbase/internal/config"
	"github.com/ticketbase-dev/ticketbase/internal/images"
	"github.com/ticketbase-dev/ticketbase/internal/router"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	cfg, err := config.Load()

	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	gdb, err := db.Connect(cfg.DatabaseURL)

	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	defer func() {
		if err := db.Close(gdb); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}()

	if err := db.Migrate(gdb); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	tokens := auth.NewService(cfg.JWTSecret, time.Duration(cfg.TokenTTLMinutes)*time.Minute)
	blobs := blobstore.NewStore(gdb)
	processor := images.NewProcessor(blobs, cfg.ImageMaxWidth, cfg.ImageQuality, cfg.MaxConcurrentTranscodes)

	r := router.New(router.Deps{
		DB:     gdb,
		Tokens: tokens,
		Blobs:  blobs,
		Images: processor,
		Config: cfg,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Server is running on %s", cfg.BaseURL)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}
