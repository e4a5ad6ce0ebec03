package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/rohits-web03/sharevault/internal/api"
	"github.com/rohits-web03/sharevault/internal/api/handlers"
	"github.com/rohits-web03/sharevault/internal/api/services"
	"github.com/rohits-web03/sharevault/internal/config"
	"github.com/rohits-web03/sharevault/internal/registry"
	"github.com/rohits-web03/sharevault/internal/repositories"
	"github.com/rohits-web03/sharevault/internal/transfer"
)

// blobBackend is what the registry and the pipeline need from a blob store.
type blobBackend interface {
	transfer.BlobStore
	URL(name string) string
}

// @title ShareVault API
// @version 1.0
// @description Authenticated file sharing: upload, list, download, delete and change visibility of files.
// @host localhost:5001
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
func main() {
	cfg := config.Load()
	logger := newLogger(cfg)
	l := logger.WithField("component", "main")

	if err := run(cfg, logger); err != nil {
		l.WithError(err).Fatal("server stopped")
	}
	l.Info("server stopped")
}

func run(cfg config.Config, logger *log.Logger) error {
	l := log.NewEntry(logger)
	if err := cfg.Validate(); err != nil {
		return err
	}

	db, err := repositories.ConnectDatabase(cfg.DB_URL, logger)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	blobs, err := newBlobBackend(cfg, l)
	if err != nil {
		return err
	}

	tokens, err := services.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return err
	}

	reg := registry.New(repositories.NewFileRepository(db), blobs.URL, l)
	pipeline := transfer.New(reg, blobs, l)

	router := api.SetupRouter(api.RouterDeps{
		Files:  handlers.NewFileHandler(pipeline, reg, cfg.MaxUploadSize, l),
		Auth:   handlers.NewAuthHandler(repositories.NewUserRepository(db), tokens, services.NewGoogleOAuthConfig(cfg.Google), cfg.IsProduction(), l),
		Tokens: tokens,
		Cors:   cfg.CorsConfig,
		Logger: l.WithField("component", "http"),
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
		// Timeouts prevent resource exhaustion from slow clients; the write
		// timeout is left open so large downloads can finish.
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		l.WithFields(log.Fields{"port": cfg.Port, "blob_backend": cfg.BlobBackend}).Info("Starting ShareVault server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("could not listen on port %s: %w", cfg.Port, err)
		}
		return nil
	})
	g.Go(func() error {
		return pipeline.RunAudit(gCtx, cfg.AuditInterval)
	})
	g.Go(func() error {
		<-gCtx.Done()
		l.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func newBlobBackend(cfg config.Config, l *log.Entry) (blobBackend, error) {
	switch cfg.BlobBackend {
	case config.BlobBackendR2:
		return repositories.NewR2Store(cfg.R2, l)
	case config.BlobBackendLocal:
		return repositories.NewLocalStore(cfg.LocalBlobDir, cfg.PublicBaseURL, l)
	default:
		return nil, fmt.Errorf("unknown blob backend %q", cfg.BlobBackend)
	}
}

func newLogger(cfg config.Config) *log.Logger {
	logger := log.New()
	if cfg.IsProduction() {
		logger.SetFormatter(&log.JSONFormatter{})
	} else {
		logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}
