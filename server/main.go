package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chepyr/task-tracker-api/internal/auth"
	"github.com/chepyr/task-tracker-api/internal/config"
	"github.com/chepyr/task-tracker-api/internal/db"
	"github.com/chepyr/task-tracker-api/internal/db/migrations"
	"github.com/chepyr/task-tracker-api/internal/handlers"
	"github.com/chepyr/task-tracker-api/internal/logging"
	"github.com/chepyr/task-tracker-api/internal/metrics"
	"github.com/chepyr/task-tracker-api/internal/service"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

var log = logging.Logger

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if err := logging.Init(logging.Options{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		File:    cfg.LogFile,
		Service: "task-tracker-api",
	}); err != nil {
		log.Fatalf("Failed to configure logging: %v", err)
	}

	dbConn := initDB(cfg)
	defer func() {
		if err := dbConn.Close(); err != nil {
			log.Errorf("Error closing database connection: %v", err)
		}
	}()

	stop := make(chan struct{})
	defer close(stop)

	handler := initHandlers(cfg, dbConn, stop)
	server := initServer(cfg, handler)
	startServer(cfg, server)
}

func initDB(cfg *config.Config) *sqlx.DB {
	ctx := context.Background()
	dbConn, err := db.Connect(ctx, cfg.DBDriver, cfg.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if !cfg.AutoMigrate {
		return dbConn
	}

	dialect, err := migrations.ParseDialect(cfg.DBDriver)
	if err != nil {
		log.Fatalf("Failed to migrate: %v", err)
	}
	if err := migrations.Apply(ctx, dbConn, dialect); err != nil {
		log.Fatalf("Failed to migrate: %v", err)
	}
	ref, err := migrations.DefaultReferenceData()
	if err != nil {
		log.Fatalf("Failed to load reference data: %v", err)
	}
	added, err := migrations.Seed(ctx, dbConn, ref, time.Now().UTC())
	if err != nil {
		log.Fatalf("Failed to seed reference data: %v", err)
	}
	log.WithField("added", added).Info("Schema migrated")
	return dbConn
}

func initHandlers(cfg *config.Config, dbConn *sqlx.DB, stop <-chan struct{}) *handlers.Handler {
	store := db.NewStore(dbConn)
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience, cfg.JWTExpires)

	rateLimiter := handlers.NewRateLimiter(cfg.LoginRatePerMinute, time.Minute)
	rateLimiter.StartCleanup(time.Minute, stop)

	return &handlers.Handler{
		Services:       service.New(store, service.WithRecorder(metrics.Recorder{})),
		Auth:           auth.NewAuthenticator(store.Users, tokens),
		Tokens:         tokens,
		RateLimiter:    rateLimiter,
		DB:             store,
		RequestTimeout: cfg.RequestTimeout,
		AllowedOrigins: cfg.AllowedOrigins(),
	}
}

func initServer(cfg *config.Config, handler *handlers.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func startServer(cfg *config.Config, server *http.Server) {
	log.Infof("Starting server on %s", server.Addr)

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Errorf("Server shutdown failed: %v", err)
		return
	}
	log.Info("Server stopped")
}
