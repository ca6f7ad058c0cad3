package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"datadeck/internal/api"
	"datadeck/internal/config"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	var fromFile string

	cmd := &cobra.Command{
		Use:   "add [agent-type] [output]",
		Short: "Append a single record to the stored dataset",
		Long: "Append a single record to the stored dataset.\n\n" +
			"The output argument is parsed as JSON when possible and stored as a\n" +
			"plain string otherwise. Use --file to read the output from a file, or\n" +
			"pass \"-\" as the output argument to read it from stdin. When --file is\n" +
			"given the agent type may be omitted; it is then inferred from the file\n" +
			"extension (image, audio, and video files map to the matching agent,\n" +
			"everything else to \"text\").",
		Args: cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			agentType := ""
			if len(args) > 0 {
				agentType = args[0]
			}
			if agentType == "" {
				if fromFile == "" {
					return fmt.Errorf("agent type is required unless --file is given")
				}
				agentType = api.AgentTypeForFile(fromFile)
			}

			output, err := resolveOutputText(cmd, args, fromFile)
			if err != nil {
				return err
			}

			res, err := api.AddRecord(cmd.Context(), api.AddRecordRequest{
				Config:    cfg,
				AgentType: agentType,
				Output:    output,
				Logger:    ctx.ensureLogger(),
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added record %d (%s)\n", res.ID, displayLabel(res.AgentType))
			return nil
		},
	}

	cmd.Flags().StringVarP(&fromFile, "file", "f", "", "Read the record output from this file")
	return cmd
}

func resolveOutputText(cmd *cobra.Command, args []string, fromFile string) (string, error) {
	if fromFile != "" {
		path, err := config.ExpandPath(fromFile)
		if err != nil {
			return "", fmt.Errorf("resolve output file: %w", err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read output file: %w", err)
		}
		return string(data), nil
	}
	if len(args) < 2 {
		return "", fmt.Errorf("record output is required (pass it as an argument or use --file)")
	}
	if args[1] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	return args[1], nil
}
