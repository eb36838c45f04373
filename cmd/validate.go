package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/neuppl/are-we-sdd-yet/internal/adapter"
	"github.com/neuppl/are-we-sdd-yet/internal/config"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check that every configured tool can be executed",
		Long:  "Check each configured tool's executable (or container image). Fails only when a mandatory tool is unavailable.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			baseline, comparisons := cfg.Adapters(nil)

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TOOL\tCRITICALITY\tPATH\tSTATUS")
			var missing []string
			for _, a := range append([]*adapter.Adapter{baseline}, comparisons...) {
				status := "ok"
				if err := a.Exec.Check(cmd.Context(), a.Path); err != nil {
					status = err.Error()
					if a.Criticality == adapter.Mandatory {
						missing = append(missing, a.Name)
					}
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", a.Name, a.Criticality, a.Path, status)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			if len(missing) > 0 {
				return fmt.Errorf("mandatory tools unavailable: %v", missing)
			}
			return nil
		},
	}
}
