package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	_ "github.com/frontdesk/visitor-pass/docs"
	"github.com/frontdesk/visitor-pass/internal/api"
)

const shutdownTimeout = 15 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx)
		},
	}
}

func serve(ctx context.Context) error {
	cfg, log, err := bootstrap(ctx)
	if err != nil {
		return err
	}

	a, err := wire(ctx, cfg, log, true)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialise dependencies")
		return err
	}

	// Workers outlive the request context so queued messages drain on shutdown.
	a.dispatcher.Start(context.WithoutCancel(ctx))

	e := api.NewRouter(a.routerDeps())

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("http server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("http server failed")
			_ = a.close(context.Background())
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown failed")
	}
	if err := a.close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("failed to release connections")
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}
