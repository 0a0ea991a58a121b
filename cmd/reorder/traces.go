package main

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/reorder/internal/cli"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var tracesCmd = &cobra.Command{
	Use:   "traces",
	Short: "Manage stored gesture traces",
}

var tracesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored trace IDs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := openBackend(cmd)
		if err != nil {
			return err
		}
		defer backend.Close()

		ids, err := backend.Store.List(cmd.Context())
		if err != nil {
			return err
		}
		for _, id := range ids {
			fmt.Fprintln(cmd.OutOrStdout(), id)
		}
		return nil
	},
}

var tracesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a stored trace",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonMode, _ := cmd.Flags().GetBool("json")

		backend, err := openBackend(cmd)
		if err != nil {
			return err
		}
		defer backend.Close()

		tr, err := backend.Store.Load(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if jsonMode {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(tr)
		}
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(tr)
	},
}

var tracesImportCmd = &cobra.Command{
	Use:   "import <file>...",
	Short: "Copy trace files into the store",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := openBackend(cmd)
		if err != nil {
			return err
		}
		defer backend.Close()

		for _, path := range args {
			id, err := cli.ImportTrace(cmd.Context(), backend.Store, path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %s as %s\n", path, id)
		}
		return nil
	},
}

var tracesDeleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Remove stored traces",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := openBackend(cmd)
		if err != nil {
			return err
		}
		defer backend.Close()

		for _, id := range args {
			if err := cli.DeleteTrace(cmd.Context(), backend.Store, id); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tracesCmd)
	tracesCmd.AddCommand(tracesListCmd, tracesShowCmd, tracesImportCmd, tracesDeleteCmd)
	tracesShowCmd.Flags().Bool("json", false, "Print JSON instead of YAML")
}
