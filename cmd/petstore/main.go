package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pawmart/petstore/internal/config"
	"github.com/pawmart/petstore/internal/database"
	"github.com/pawmart/petstore/internal/handler"
	"github.com/pawmart/petstore/internal/logger"
	"github.com/pawmart/petstore/internal/middleware"
	"github.com/pawmart/petstore/internal/repository"
	"github.com/pawmart/petstore/internal/router"
	"github.com/pawmart/petstore/internal/server"
	"github.com/pawmart/petstore/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// config.Load exits on failure; this is belt and braces.
		os.Exit(1)
	}

	log := logger.New(cfg.Logging)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := database.Migrate(ctx, log, cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to run database migrations")
	}

	app, err := server.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize server")
	}

	middlewares := middleware.NewMiddlewares(app)
	repos := repository.NewRepositories(app)

	services, err := service.NewService(app, repos)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize services")
	}

	handlers := handler.NewHandlers(app, services)

	e := router.New(app, middlewares, handlers)
	app.SetupHTTPServer(e)

	go func() {
		if err := app.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownTimeout := time.Duration(cfg.Server.ShutdownTimeout) * time.Second
	if shutdownTimeout == 0 {
		shutdownTimeout = 10 * time.Second
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := app.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}
