package main

import (
	"fmt"

	"github.com/aretw0/reorder/internal/presentation/graph"
	"github.com/aretw0/reorder/pkg/domain"
	"github.com/spf13/cobra"
)

var spliceCmd = &cobra.Command{
	Use:   "splice",
	Short: "Compute where a dragged item lands",
	Long: `Computes the splice index for a dragged item. Positions are the signed
distances from the item's center to each sibling's nearest edge, negative
above the item, and dy is the vertical displacement of the drag.

  reorder splice --positions=-100,-50,50,100 --dy=-60`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		positions, _ := cmd.Flags().GetFloat64Slice("positions")
		dy, _ := cmd.Flags().GetFloat64("dy")

		snap, err := domain.SnapshotFromPositions(positions)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), snap.SpliceIndex(dy))
		return nil
	},
}

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Print the gesture state machine as a Mermaid diagram",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(graph.GestureMachine(), nil))
	},
}

func init() {
	rootCmd.AddCommand(spliceCmd, graphCmd)
	spliceCmd.Flags().Float64Slice("positions", nil, "Ascending sibling positions")
	spliceCmd.Flags().Float64("dy", 0, "Vertical displacement of the drag")
	_ = spliceCmd.MarkFlagRequired("positions")
}
