package main

import (
	"context"
	"errors"
	"forum/internal/api"
	"forum/internal/api/handler/v1handler"
	"forum/internal/app"
	"forum/internal/config"
	"forum/pkg/logger"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func setupServer(ctx context.Context, cfg *config.Config, a *app.App) func(ctx context.Context) {
	server, err := api.NewServer(api.Deps{Deps: v1handler.Deps{
		Auth:        a.Auth,
		Posts:       a.Posts,
		Comments:    a.Comments,
		Communities: a.Communities,
		Tokens:      a.Tokens,
		Validator:   a.Validator,
	}}, api.NewOptions(cfg))
	if err != nil {
		logger.Fatal(ctx, "could not create webserver", zap.Error(err))
	}

	go func() {
		logger.Info(ctx, "starting webserver...", zap.String("addr", cfg.HTTP.Addr))
		if err := server.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error(ctx, "could not start webserver", zap.Error(err))
			}
		}
	}()

	return func(ctx context.Context) {
		logger.Info(ctx, "stopping webserver...")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(ctx, "could not stop webserver", zap.Error(err))
		}
	}
}

func serveCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Starts the API server",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, closeApp := getApp(ctx, cfg)
			defer closeApp()

			stopWebserver := setupServer(ctx, cfg, a)

			// wait for interrupt
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
			defer cancel()

			stopWebserver(shutdownCtx)
		},
	}

	return cmd
}
