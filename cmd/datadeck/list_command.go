package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"datadeck/internal/api"
	"datadeck/internal/textutil"
)

const summaryColumnWidth = 60

func newListCommand(ctx *commandContext) *cobra.Command {
	var typeFilter string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored records with content summaries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			views, err := api.ListRecords(cmd.Context(), cfg, typeFilter)
			if err != nil {
				return err
			}

			if jsonOutput {
				type recordJSON struct {
					Index     int    `json:"index"`
					AgentType string `json:"agentType"`
					Summary   string `json:"summary"`
					Created   string `json:"created,omitempty"`
				}
				payload := make([]recordJSON, 0, len(views))
				for _, v := range views {
					created := ""
					if !v.Created.IsZero() {
						created = v.Created.Format(time.RFC3339)
					}
					payload = append(payload, recordJSON{Index: v.Index, AgentType: v.AgentType, Summary: v.Summary, Created: created})
				}
				return writeJSON(cmd, payload)
			}

			out := cmd.OutOrStdout()
			if len(views) == 0 {
				fmt.Fprintln(out, "No records stored")
				return nil
			}

			rows := make([][]string, 0, len(views))
			for _, v := range views {
				created := ""
				if !v.Created.IsZero() {
					created = v.Created.Local().Format("2006-01-02 15:04")
				}
				rows = append(rows, []string{
					strconv.Itoa(v.Index),
					displayLabel(v.AgentType),
					textutil.Truncate(v.Summary, summaryColumnWidth),
					created,
				})
			}
			fmt.Fprintln(out, renderTable([]string{"#", "Agent", "Summary", "Added"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVarP(&typeFilter, "type", "t", "", "Only list records of this agent type")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit machine-readable output")
	return cmd
}
