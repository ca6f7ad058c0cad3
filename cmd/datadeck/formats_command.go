package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"datadeck/internal/interchange"
)

func newFormatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "formats",
		Short:       "List the supported interchange formats",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := make([][]string, 0, 4)
			for i, f := range interchange.Formats() {
				rows = append(rows, []string{
					fmt.Sprintf("%d", i+1),
					string(f),
					"." + f.Extension(),
					f.MIME(),
					yesNo(f.DecodeSupported()),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"#", "Format", "Extension", "MIME", "Import"},
				rows,
			))
			return nil
		},
	}
}
