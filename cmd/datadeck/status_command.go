package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"datadeck/internal/preflight"
	"datadeck/internal/records"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check the environment and report dataset statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			fmt.Fprintln(out, "Environment:")
			results := preflight.CheckDirectories(cfg)
			for _, res := range results {
				kind := statusError
				if res.Passed {
					kind = statusOK
				}
				fmt.Fprintln(out, renderStatusLine(res.Name, kind, res.Detail, colorize))
			}

			store, err := records.Open(cfg)
			if err != nil {
				fmt.Fprintln(out, renderStatusLine("Record store", statusError, err.Error(), colorize))
				return fmt.Errorf("open record store: %w", err)
			}
			defer store.Close()

			count, err := store.Count(cmd.Context())
			if err != nil {
				return fmt.Errorf("count records: %w", err)
			}
			fmt.Fprintln(out, renderStatusLine("Record store", statusOK, store.Path(), colorize))
			fmt.Fprintln(out)
			fmt.Fprintf(out, "Stored records: %d\n", count)

			if !preflight.Passed(results) {
				return fmt.Errorf("environment checks failed")
			}
			return nil
		},
	}
}
