package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/diewo77/autoparts/internal/config"
	"github.com/diewo77/autoparts/internal/counter"
	"github.com/diewo77/autoparts/internal/db"
	"github.com/diewo77/autoparts/internal/store"
	"github.com/diewo77/autoparts/internal/store/gormstore"
	"github.com/diewo77/autoparts/internal/store/memory"
	"github.com/joho/godotenv"
)

var (
	migrateOnlyFlag = flag.Bool("migrate-only", false, "Run DB migrations and exit")
	seedOnlyFlag    = flag.Bool("seed-only", false, "Run DB seed and exit")
)

func main() {
	flag.Parse()

	// Load environment variables from .env file
	_ = godotenv.Load()

	cfg := config.Load()
	ctx := context.Background()

	st, ping, closeStore, err := openStore(cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer closeStore()
	if *migrateOnlyFlag {
		log.Println("Migrations completed successfully")
		return
	}

	if *seedOnlyFlag || cfg.App.Seed || cfg.Database.Driver == config.DriverMemory {
		if err := db.Seed(ctx, st, time.Now()); err != nil {
			log.Fatalf("Seeding failed: %v", err)
		}
		log.Println("Demo data loaded")
		if *seedOnlyFlag {
			return
		}
	}

	opts := AppOptions{Ping: ping}
	if cfg.Redis.URL != "" {
		rc, err := counter.Dial(ctx, cfg.Redis.URL)
		if err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		defer rc.Close()
		opts.Counter = rc
		log.Println("Invoice numbers drawn from redis")
	}

	appHandler, err := NewApp(st, cfg.Invoicing, opts)
	if err != nil {
		log.Fatalf("Failed to configure application: %v", err)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      withLogging(appHandler),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Printf("Server starting on port %s (driver=%s dev=%v)", cfg.Server.Port, cfg.Database.Driver, cfg.App.Dev)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server stopped gracefully")
}

// openStore returns the configured record store with its schema up to date,
// a database ping for health checks and a close function.
func openStore(cfg *config.Config) (store.Store, func(context.Context) error, func(), error) {
	if cfg.Database.Driver == config.DriverMemory {
		log.Println("Using in-memory store; data is lost on exit")
		return memory.New(), nil, func() {}, nil
	}

	conn, err := db.Open(cfg.Database)
	if err != nil {
		return nil, nil, nil, err
	}
	sqlDB, err := conn.DB()
	if err != nil {
		return nil, nil, nil, err
	}
	closeFn := func() {
		if err := sqlDB.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}
	if err := db.Prepare(conn, cfg); err != nil {
		closeFn()
		return nil, nil, nil, err
	}
	return gormstore.New(conn), sqlDB.PingContext, closeFn, nil
}
