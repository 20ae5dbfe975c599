// Package main is the entry point for the booking dashboard server.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/booking-dashboard/backend/internal/api"
	"github.com/booking-dashboard/backend/internal/auth"
	"github.com/booking-dashboard/backend/internal/config"
	"github.com/booking-dashboard/backend/internal/schedule"
	"github.com/booking-dashboard/backend/internal/storage"
)

// version is set at build time via -ldflags "-X main.version=x.y.z".
// Defaults to "dev" when not provided.
var version = "dev"

func main() {
	configPath := flag.String("config", "./config.yaml", "Path to the YAML configuration file")
	addr := flag.String("addr", "", "HTTP server address (overrides config)")
	dataDir := flag.String("data", "", "Data directory for SQLite database (overrides config)")
	staticDir := flag.String("static", "", "Directory for static frontend files (overrides config)")
	healthCheck := flag.Bool("health-check", false, "Run health check and exit")
	flag.Parse()

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}
	if *addr != "" {
		cfg.Listen = *addr
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	if *staticDir != "" {
		cfg.StaticDir = *staticDir
	}

	// Health check mode for Docker HEALTHCHECK
	if *healthCheck {
		if err := runHealthCheck(cfg.Listen); err != nil {
			log.WithError(err).Fatal("Health check failed")
		}
		os.Exit(0)
	}

	if envVer := os.Getenv("VERSION"); envVer != "" {
		version = envVer
	}

	log.WithField("version", version).Info("Starting booking dashboard server...")

	// Initialize database
	dbPath := cfg.DataDir + "/booking-dashboard.db"
	db, err := storage.NewDB(dbPath)
	if err != nil {
		log.WithError(err).Fatal("Failed to open database")
	}
	defer db.Close()

	if err := storage.RunMigrations(db); err != nil {
		log.WithError(err).Fatal("Failed to run migrations")
	}
	log.Info("Database migrations complete")

	// Initialize repositories and services
	reservations := storage.NewReservationRepository(db)
	users := storage.NewUserRepository(db)

	secret, generated := cfg.Secret()
	if generated {
		log.Warn("No jwt_secret configured; using a random secret, tokens will not survive restarts")
	}
	authService := auth.NewService(users, secret, time.Duration(cfg.TokenTTLHours)*time.Hour)

	checker := schedule.NewConflictChecker(reservations.FindOverlapping)

	sweeper := schedule.NewSweeper(reservations, cfg.SweepCron)
	if err := sweeper.Start(); err != nil {
		log.WithError(err).Warn("Failed to start reservation sweeper")
	}

	router := api.NewRouter(db, reservations, checker, authService, cfg.StaticDir)

	server := &http.Server{
		Addr:         cfg.Listen,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		log.WithField("addr", cfg.Listen).Info("Server listening")
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.WithError(err).Fatal("Server error")
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	sweeper.Stop()

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("Server shutdown error")
	}

	log.Info("Server stopped")
}

// runHealthCheck performs a health check against the running server.
func runHealthCheck(addr string) error {
	url := "http://localhost" + addr + "/api/health"
	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return http.ErrAbortHandler
	}
	return nil
}
