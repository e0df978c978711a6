package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"investpro/api"
	"investpro/dashboard"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

func newServeCommand(engine *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), *engine)
		},
	}
}

func runServe(parent context.Context, engine string) error {
	cfg, a, err := setup(engine, false)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.close(); err != nil {
			a.log.Error().Err(err).Msg("failed to close search engine")
		}
	}()

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := dashboard.NewSessionStore(a.newDashboard, cfg.SessionTTL, cfg.SessionLimit, a.log)
	go store.Run(ctx)

	handler := api.NewHandler(a.engine, a.market, store)
	srv := &http.Server{
		Addr:              cfg.Address(),
		Handler:           api.SetupRouter(handler, cfg, a.log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info().Str("address", srv.Addr).Msg("server starting")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
