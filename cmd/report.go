package cmd

import (
	"github.com/spf13/cobra"

	"github.com/neuppl/are-we-sdd-yet/internal/report"
	"github.com/neuppl/are-we-sdd-yet/internal/result"
)

var flagFormat string

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report FILE",
		Short: "Render a JSON report written by run --output",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			batch, err := result.ReadBatch(args[0])
			if err != nil {
				return err
			}
			return report.Generate(batch, flagFormat, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&flagFormat, "format", "text", "output format (text, table, markdown, json)")
	return cmd
}
