package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"datadeck/internal/api"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show [index]",
		Short: "Show the full output of a record (latest when no index is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			index := 0
			if len(args) == 1 {
				parsed, err := strconv.Atoi(args[0])
				if err != nil || parsed < 1 {
					return fmt.Errorf("invalid record index %q (must be a positive integer)", args[0])
				}
				index = parsed
			}

			detail, err := api.ShowRecord(cmd.Context(), cfg, index)
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, map[string]any{
					"agentType": detail.AgentType,
					"summary":   detail.Summary,
					"output":    detail.OutputJSON,
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Agent:   %s\n", displayLabel(detail.AgentType))
			if detail.Summary != "" {
				fmt.Fprintf(out, "Summary: %s\n", detail.Summary)
			}
			fmt.Fprintln(out, "Output:")
			fmt.Fprintln(out, detail.OutputJSON)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit machine-readable output")
	return cmd
}
