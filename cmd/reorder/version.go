package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/reorder"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of reorder",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "reorder version %s\n", strings.TrimSpace(reorder.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
