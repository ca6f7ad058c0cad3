package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"datadeck/internal/api"
)

func newClearCommand(ctx *commandContext) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every stored record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !force {
				return fmt.Errorf("refusing to clear the dataset without --force")
			}

			removed, err := api.ClearRecords(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d records\n", removed)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Confirm removal of all records")
	return cmd
}
