package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"datadeck/internal/api"
	"datadeck/internal/config"
	"datadeck/internal/interchange"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var outputPath string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "export <format>",
		Short: "Export the stored dataset in an interchange format",
		Long: "Export the stored dataset in an interchange format.\n\n" +
			"Formats: " + formatListHelp(),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			format, err := interchange.ParseFormat(args[0])
			if err != nil {
				return err
			}

			target := outputPath
			if target != "" {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve output path: %w", err)
				}
				target = expanded
			}

			res, err := api.ExportDataset(cmd.Context(), api.ExportRequest{
				Config:     cfg,
				Format:     format,
				OutputPath: target,
				Logger:     ctx.ensureLogger(),
			})
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, map[string]any{
					"path":    res.Path,
					"format":  string(res.Format),
					"mime":    res.MIME,
					"records": res.Records,
					"size":    res.Size,
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Exported %d records to %s (%s)\n", res.Records, res.Path, res.MIME)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the document to this path instead of the export directory")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit machine-readable output")
	return cmd
}

func formatListHelp() string {
	names := ""
	for i, f := range interchange.Formats() {
		if i > 0 {
			names += ", "
		}
		names += string(f)
	}
	return names
}
