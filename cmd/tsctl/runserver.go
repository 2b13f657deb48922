package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"timesketch/internal/handlers"
	"timesketch/internal/logger"
	"timesketch/internal/repository"
	"timesketch/internal/server"
	"timesketch/internal/service"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const shutdownTimeout = 10 * time.Second

func runServerCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "runserver",
		Short: "Run the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := appLogger()

			sqlDB, err := openDB()
			if err != nil {
				return err
			}
			defer func() {
				if cerr := sqlDB.Close(); cerr != nil {
					log.Errorw("failed to close sqlite", "err", cerr)
				}
			}()

			ds, err := newDatastore()
			if err != nil {
				return err
			}

			repos := repository.NewRepository(sqlDB)
			services := service.NewService(repos, ds, authConfig())
			apiHandler := handlers.NewHandler(services, log)

			srv := &server.Server{}
			runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

			waitForShutdown(srv, log)
			return nil
		},
	}
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		log.Infow("starting server", "port", port)
		if err := srv.Run(port, handler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
