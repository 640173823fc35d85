package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"grocinv/internal/catalog"
	"grocinv/internal/config"
	"grocinv/internal/database"
	"grocinv/internal/handler"
	"grocinv/internal/localstore"
	"grocinv/internal/remote"
	"grocinv/internal/router"
	"grocinv/internal/service"
	"grocinv/internal/sync"

	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env if present, then configuration from the environment
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting grocinv API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load the local list document
	store := localstore.New(cfg.Store.Path, logger)
	lists := store.Load()

	// Initialize the list service over the loaded collection
	listService := service.NewListService(lists, store, logger)

	// Initialize catalog loader with S3 and local fallback
	fileLoader := catalog.NewFileLoader(logger)
	var catalogLoader catalog.Loader = fileLoader

	if cfg.Catalog.S3Enabled {
		s3Loader, err := catalog.NewS3Loader(ctx, cfg.Catalog.S3Bucket, cfg.Catalog.S3Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 catalog loader, falling back to local file system only")
		} else {
			catalogLoader = catalog.NewFallbackLoader(s3Loader, fileLoader, cfg.Catalog.S3Prefix, true, logger)
		}
	} else {
		logger.Info().Msg("using local file system for the product catalog (S3 disabled)")
	}

	catalogService := catalog.NewService(catalogLoader, cfg.Catalog.Path, logger)

	// Run one reconciliation pass in the background. A failed database
	// connection disables this session's push; the local collection is
	// unaffected and the next start retries.
	if cfg.Sync.Enabled {
		pool, err := database.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("remote store unreachable, skipping reconciliation this session")
		} else {
			defer pool.Close()
			engine := sync.New(remote.NewPostgresStore(pool, logger), logger)
			go engine.Run(ctx, listService.Snapshot())
		}
	} else {
		logger.Info().Msg("reconciliation disabled by configuration")
	}

	// Initialize HTTP handlers
	listHandler := handler.NewListHandler(listService, logger)
	productHandler := handler.NewProductHandler(listService, logger)
	catalogHandler := handler.NewCatalogHandler(catalogService, logger)

	// Initialize router
	mux := router.New(listHandler, productHandler, catalogHandler, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
