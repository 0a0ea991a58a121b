package main

import (
	"github.com/aretw0/reorder/internal/cli"
	"github.com/spf13/cobra"
)

var demoCmd = &cobra.Command{
	Use:   "demo [label...]",
	Short: "Try the gestures on an interactive list",
	Long: `Shows a list in the terminal. Click an item to tap it, hold the button
to pick it up and drag it to a new place. Esc cancels a drag, q quits.

With --record the session is saved as a trace that replay can run again.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		record, _ := cmd.Flags().GetString("record")

		backend, err := openBackend(cmd)
		if err != nil {
			return err
		}
		defer backend.Close()

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		return cli.RunDemo(ctx, nil, backend.Store, cmd.OutOrStdout(), cli.DemoOptions{
			Labels: args,
			Config: app.cfg.Engine,
			Record: record,
			Logger: app.logger,
		})
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
	demoCmd.Flags().String("record", "", "Save the session under this trace ID")
}
