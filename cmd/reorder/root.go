package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/reorder/internal/cli"
	"github.com/aretw0/reorder/internal/config"
	"github.com/aretw0/reorder/pkg/domain"
	"github.com/aretw0/reorder/pkg/observability"
	"github.com/aretw0/reorder/pkg/ports"
	"github.com/aretw0/reorder/pkg/runner"
	"github.com/spf13/cobra"
)

// app holds what PersistentPreRunE resolved for the running command.
var app struct {
	cfg    config.File
	logger *slog.Logger
}

var rootCmd = &cobra.Command{
	Use:   "reorder",
	Short: "Reorder classifies pointer gestures on vertical lists",
	Long: `Reorder tells taps, scrolls and drag-to-reorder gestures apart.

Recorded gesture traces can be replayed, stored, served over HTTP or MCP,
and tried out interactively in the terminal.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		debug, _ := cmd.Flags().GetBool("debug")

		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		logger, err := cli.NewLogger(os.Stderr, cfg.Log, debug)
		if err != nil {
			return err
		}
		if kind, _ := cmd.Flags().GetString("store"); kind != "" {
			cfg.Store.Kind = kind
			if err := cfg.Validate(); err != nil {
				return err
			}
		}
		slog.SetDefault(logger)
		app.cfg = cfg
		app.logger = logger
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Configuration file, YAML or JSON (default "+config.DefaultPath+")")
	rootCmd.PersistentFlags().Bool("debug", false, "Log at debug level")
	rootCmd.PersistentFlags().String("store", "", "Trace store override: memory, file or redis")
}

// newRunner builds a runner from the loaded config. Extra hooks run after
// the logging hooks.
func newRunner(store ports.TraceStore, hooks ...domain.LifecycleHooks) *runner.Runner {
	opts := []runner.Option{
		runner.WithConfig(app.cfg.Engine),
		runner.WithLogger(app.logger),
		runner.WithLifecycleHooks(domain.MergeHooks(append([]domain.LifecycleHooks{observability.LogHooks(app.logger)}, hooks...)...)),
	}
	if store != nil {
		opts = append(opts, runner.WithStore(store))
	}
	return runner.New(opts...)
}

// openBackend opens the configured store. Callers close it.
func openBackend(cmd *cobra.Command) (*cli.Backend, error) {
	return cli.OpenBackend(cmd.Context(), app.cfg.Store)
}
