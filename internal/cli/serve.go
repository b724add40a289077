package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"kalshi-trader/internal/api"
	"kalshi-trader/internal/broker"
	"kalshi-trader/internal/registry"
)

func newServeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the trading API server.

The server holds a single in-memory order registry for its lifetime, backed
by a stub broker gateway with demo balance and positions.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port, _ := cmd.Flags().GetInt("port"); port != 0 {
				app.Config.Server.Port = port
			}
			return runServe(app)
		},
	}

	cmd.Flags().Int("port", 0, "override the configured listen port")

	return cmd
}

func runServe(app *App) error {
	gateway := broker.NewStubGateway(broker.StubConfig{
		Currency:      app.Config.Trading.Currency,
		InitialCash:   app.Config.Trading.InitialCash,
		SimulateFills: app.Config.Trading.SimulateFills,
	})

	reg := registry.New(
		registry.WithGateway(gateway),
		registry.WithLogger(app.Logger),
	)

	server := api.NewServer(reg, gateway, app.Config.Server, app.Logger)

	httpServer := &http.Server{
		Addr:              app.Config.Server.Addr(),
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Fill notifications from the gateway feed back into the registry.
	go reg.ConsumeFills(ctx)

	errCh := make(chan error, 1)
	go func() {
		app.Logger.Info().Str("addr", httpServer.Addr).Msg("HTTP server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	app.Logger.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
