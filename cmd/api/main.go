package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/giastylez/image-board/backend/internal/auth"
	"github.com/giastylez/image-board/backend/internal/database"
	"github.com/giastylez/image-board/backend/internal/server"
	"github.com/giastylez/image-board/backend/internal/sweeper"
)

func main() {
	db, err := database.New()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is required")
	}
	tokens := auth.NewTokenService(secret)

	srv := server.NewServer(db, tokens)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The sweeper is owned by the process lifecycle: cancelled on
	// shutdown and waited for before the DB closes.
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		sweeper.New(db.GetDB()).Run(ctx)
	}()

	go func() {
		log.Printf("🚀 Server starting on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	stop()
	wg.Wait()

	if err := db.Close(); err != nil {
		log.Printf("Database close error: %v", err)
	}
}
