package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "tabular",
		Short:         "Grouped statistics on tabular data files",
		Long:          "tabular reads CSV, TSV, JSON Lines and Excel files (optionally lz4-compressed, matched by a glob) and computes quantile buckets, group RMSD, aggregations, counts, outlier filters, k-fold splits and correlation tables.",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}
	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "YAML config file; TABULAR_* environment variables take precedence")
	flags.StringVarP(&a.output, "output", "o", "", "write the result to a .csv, .tsv or .xlsx file (optionally .lz4) instead of stdout")
	flags.StringVar(&a.logLevel, "log-level", "", "one of trace, debug, info, warn, error (default from config: info)")

	root.AddCommand(
		newQuantilesCmd(a),
		newRMSDCmd(a),
		newAggCmd(a),
		newCountCmd(a),
		newOutliersCmd(a),
		newKSplitCmd(a),
		newCorrCmd(a),
	)
	return root
}

// intFlag returns the value of an int flag if it was set, or def
func intFlag(cmd *cobra.Command, name string, def int) int {
	if cmd.Flags().Changed(name) {
		v, _ := cmd.Flags().GetInt(name)
		return v
	}
	return def
}
