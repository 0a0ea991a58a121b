package main

import (
	"github.com/aretw0/reorder/internal/cli"
	"github.com/spf13/cobra"
)

var replayCmd = &cobra.Command{
	Use:   "replay <file|id>",
	Short: "Replay a recorded gesture trace",
	Long: `Replays a trace through the gesture engine on a virtual clock and reports
the outcome. The argument is a trace file (JSON or YAML) or the ID of a
stored trace.

Output is styled markdown on a terminal, plain markdown when piped, and
JSON with --json.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonMode, _ := cmd.Flags().GetBool("json")
		mermaid, _ := cmd.Flags().GetBool("mermaid")

		backend, err := openBackend(cmd)
		if err != nil {
			return err
		}
		defer backend.Close()

		_, err = cli.Replay(cmd.Context(), newRunner(backend.Store), backend.Store, cmd.OutOrStdout(), cli.ReplayOptions{
			Source:  args[0],
			JSON:    jsonMode,
			Mermaid: mermaid,
		})
		return err
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().Bool("json", false, "Print the result as JSON")
	replayCmd.Flags().Bool("mermaid", false, "Print the gesture machine with the replayed path as a Mermaid diagram")
	replayCmd.MarkFlagsMutuallyExclusive("json", "mermaid")
}
