package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/neuppl/are-we-sdd-yet/internal/adapter"
	"github.com/neuppl/are-we-sdd-yet/internal/config"
	"github.com/neuppl/are-we-sdd-yet/internal/strategy"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List strategies and the native flag each tool uses for them",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			baseline, comparisons := cfg.Adapters(nil)
			tools := append([]*adapter.Adapter{baseline}, comparisons...)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Tools:")
			for _, a := range tools {
				fmt.Fprintf(out, "  - %s (family: %s, %s) %s\n", a.Name, a.Family.Name, a.Criticality, a.Path)
			}
			fmt.Fprintln(out, "\nStrategies:")

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			header := []string{"ID", "LABEL"}
			for _, a := range tools {
				header = append(header, strings.ToUpper(a.Name))
			}
			fmt.Fprintln(tw, strings.Join(header, "\t"))
			for _, s := range strategy.All() {
				row := []string{s.ID(), s.String()}
				if s == strategy.Default {
					row[0] += " (default)"
				}
				for _, a := range tools {
					row = append(row, tokenCell(a.Token(s)))
				}
				fmt.Fprintln(tw, strings.Join(row, "\t"))
			}
			return tw.Flush()
		},
	}
}

func tokenCell(token string, ok bool) string {
	switch {
	case !ok:
		return "-"
	case token == "":
		return "(no flag)"
	default:
		return token
	}
}
