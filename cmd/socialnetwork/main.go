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

	"github.com/deppfellow/social-network/internal/config"
	"github.com/deppfellow/social-network/internal/database"
	"github.com/deppfellow/social-network/internal/handler"
	"github.com/deppfellow/social-network/internal/logger"
	"github.com/deppfellow/social-network/internal/repository"
	"github.com/deppfellow/social-network/internal/router"
	"github.com/deppfellow/social-network/internal/server"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const defaultShutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	appLogger := logger.NewLoggerWithService(cfg.Observability, loggerService)

	if err := run(cfg, &appLogger, loggerService); err != nil {
		appLogger.Error().Err(err).Msg("server stopped with error")
		loggerService.Shutdown()
		os.Exit(1)
	}
	loggerService.Shutdown()
}

// run serves until SIGINT/SIGTERM or a serve failure, then shuts the server
// down. Failures are returned, never fatal, so New Relic is always flushed.
func run(cfg *config.Config, appLogger *zerolog.Logger, loggerService *logger.LoggerService) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The schema is owned by the embedded migrations in every environment.
	if err := database.Migrate(ctx, appLogger, cfg); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	srv, err := server.New(cfg, appLogger, loggerService)
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	repos := repository.NewRepositories(srv.DB)
	handlers := handler.NewHandlers(srv, repos)
	srv.SetupHTTPServer(router.NewRouter(srv, handlers))

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var startErr error
	select {
	case <-ctx.Done():
		appLogger.Info().Msg("shutdown signal received")
	case err, ok := <-serveErr:
		if ok {
			startErr = fmt.Errorf("failed to start server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Join(startErr, fmt.Errorf("server forced to shutdown: %w", err))
	}

	if startErr == nil {
		appLogger.Info().Msg("server exited properly")
	}
	return startErr
}
