package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"datadeck/internal/api"
	"datadeck/internal/config"
	"datadeck/internal/interchange"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	var formatFlag string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a dataset document, replacing the stored contents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			path, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve import path: %w", err)
			}

			var format interchange.Format
			if formatFlag != "" {
				format, err = interchange.ParseFormat(formatFlag)
				if err != nil {
					return err
				}
			}

			res, err := api.ImportDataset(cmd.Context(), api.ImportRequest{
				Config: cfg,
				Path:   path,
				Format: format,
				Logger: ctx.ensureLogger(),
			})
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, map[string]any{
					"records": res.Records,
					"format":  string(res.Format),
					"batchId": res.BatchID,
					"backup":  res.BackupPath,
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported %d records from %s (%s)\n", res.Records, path, res.Format)
			if res.BackupPath != "" {
				fmt.Fprintf(out, "Previous dataset backed up to %s\n", res.BackupPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&formatFlag, "format", "f", "", "Document format (inferred from the file extension when omitted)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit machine-readable output")
	return cmd
}
