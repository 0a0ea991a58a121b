package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aretw0/reorder/internal/cli"
	httpAdapter "github.com/aretw0/reorder/pkg/adapters/http"
	"github.com/aretw0/reorder/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Serves splice calculations, trace simulation and the trace store over
HTTP. The OpenAPI document is at /swagger and Prometheus metrics at /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := app.cfg.Server.Addr
		if cmd.Flags().Changed("addr") {
			addr, _ = cmd.Flags().GetString("addr")
		}

		backend, err := openBackend(cmd)
		if err != nil {
			return err
		}
		defer backend.Close()

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics := observability.NewMetrics(reg)

		handler := httpAdapter.NewHandler(&httpAdapter.Server{
			Runner:   newRunner(backend.Store, metrics.Hooks()),
			Store:    backend.Store,
			Locker:   backend.Locker,
			Gatherer: reg,
			Streams:  httpAdapter.NewStreamManager(app.logger),
			Logger:   app.logger,
		})

		srv := &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		serverErrors := make(chan error, 1)
		go func() {
			app.logger.Info("HTTP server listening", "addr", addr, "store", app.cfg.Store.Kind)
			serverErrors <- srv.ListenAndServe()
		}()

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
			app.logger.Info("Shutting down", "signal", fmt.Sprint(ctx.Signal()))
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				_ = srv.Close()
				return fmt.Errorf("graceful shutdown did not complete in %v: %w", shutdownTimeout, err)
			}
			app.logger.Info("HTTP server stopped")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Address to listen on (overrides server.addr)")
}
