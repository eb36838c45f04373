package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	flagDebug bool
)

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "are-we-sdd-yet",
		Short:        "Benchmark rsdd against other knowledge compilers",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "tool config file (default: built-in rsdd, sdd, cnf2obdd)")
	root.PersistentFlags().BoolVarP(&flagDebug, "debug", "d", false, "show tool diagnostics and debug logs")
	root.AddCommand(newRunCmd())
	root.AddCommand(newListCmd())
	root.AddCommand(newReportCmd())
	root.AddCommand(newValidateCmd())
	return root
}
