package main

import (
	"fmt"

	"github.com/go-sif/tabular/bucket"
	"github.com/go-sif/tabular/frame"
	"github.com/go-sif/tabular/groupstats"
	"github.com/go-sif/tabular/outlier"
	"github.com/go-sif/tabular/split"
	"github.com/spf13/cobra"
)

func newQuantilesCmd(a *app) *cobra.Command {
	var cols []string
	var nilToMedian bool
	cmd := &cobra.Command{
		Use:   "quantiles <file> --col <name>...",
		Short: "Replace numeric columns by quantile bucket labels",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.load(args[0])
			if err != nil {
				return err
			}
			n := intFlag(cmd, "n", a.cfg.Analysis.NQuantiles)
			conf := &bucket.QuantileConf{Signif: intFlag(cmd, "signif", a.cfg.Analysis.Signif), NilToMedian: nilToMedian}
			for _, col := range cols {
				if f, err = bucket.QuantileSplit(f, col, n, conf); err != nil {
					return err
				}
			}
			return a.write(cmd, f)
		},
	}
	cmd.Flags().StringSliceVar(&cols, "col", nil, "the columns to split")
	cmd.Flags().Int("n", 0, "the number of quantile buckets (default from config: 10)")
	cmd.Flags().Int("signif", 0, "significant digits of the bucket bounds; negative disables rounding (default from config: 2)")
	cmd.Flags().BoolVar(&nilToMedian, "nil-to-median", false, "bucket missing values with the median")
	cmd.MarkFlagRequired("col")
	return cmd
}

func newRMSDCmd(a *app) *cobra.Command {
	var xs, groups []string
	var hue, agg string
	var standardize, toAbs bool
	cmd := &cobra.Command{
		Use:   "rmsd <file> --x <name>...",
		Short: "Rank grouping columns by the RMSD between their group aggregates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.load(args[0])
			if err != nil {
				return err
			}
			res, err := groupstats.DfRMSD(cmd.Context(), f, xs, &groupstats.DfRMSDConf{
				Groups:      groups,
				Hue:         hue,
				NQuantiles:  intFlag(cmd, "n", a.cfg.Analysis.NQuantiles),
				RMSD:        &groupstats.RMSDConf{AggFunc: agg, Standardize: standardize, ToAbs: toAbs},
				Parallelism: intFlag(cmd, "parallelism", a.cfg.Analysis.Parallelism),
				Logger:      a.logger,
			})
			if err != nil {
				return err
			}
			return a.write(cmd, res)
		},
	}
	cmd.Flags().StringSliceVar(&xs, "x", nil, "the columns to aggregate")
	cmd.Flags().StringSliceVar(&groups, "groups", nil, "the grouping columns (default every other column)")
	cmd.Flags().StringVar(&hue, "hue", "", "evaluate each level of this column separately")
	cmd.Flags().StringVar(&agg, "agg", "median", "the aggregation compared between groups")
	cmd.Flags().BoolVar(&standardize, "standardize", false, "standardize x before aggregating")
	cmd.Flags().BoolVar(&toAbs, "abs", false, "aggregate the absolute value of x")
	cmd.Flags().Int("n", 0, "quantile buckets for numeric groups (default from config: 10)")
	cmd.Flags().Int("parallelism", 0, "concurrent evaluations (default from config: 1)")
	cmd.MarkFlagRequired("x")
	return cmd
}

func newAggCmd(a *app) *cobra.Command {
	var x, group, hue string
	var aggs []string
	var skipP bool
	cmd := &cobra.Command{
		Use:   "agg <file> --x <name> --group <name>",
		Short: "Aggregate a column per group level, with p-values against the other levels",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.load(args[0])
			if err != nil {
				return err
			}
			res, err := groupstats.DfAgg(f, x, group, &groupstats.DfAggConf{
				Hue:        hue,
				Aggs:       aggs,
				NQuantiles: intFlag(cmd, "n", a.cfg.Analysis.NQuantiles),
				SkipP:      skipP,
				Logger:     a.logger,
			})
			if err != nil {
				return err
			}
			return a.write(cmd, res)
		},
	}
	cmd.Flags().StringVar(&x, "x", "", "the column to aggregate")
	cmd.Flags().StringVar(&group, "group", "", "the grouping column")
	cmd.Flags().StringVar(&hue, "hue", "", "further split each group by this column")
	cmd.Flags().StringSliceVar(&aggs, "aggs", nil, "aggregations (default mean,median,std)")
	cmd.Flags().BoolVar(&skipP, "skip-p", false, "omit p-values")
	cmd.Flags().Int("n", 0, "quantile buckets for numeric groups (default from config: 10)")
	cmd.MarkFlagRequired("x")
	cmd.MarkFlagRequired("group")
	return cmd
}

func newCountCmd(a *app) *cobra.Command {
	var x, hue string
	var xInt float64
	var keepNil bool
	cmd := &cobra.Command{
		Use:   "count <file> --x <name>",
		Short: "Count the values of a column, optionally per hue level",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.load(args[0])
			if err != nil {
				return err
			}
			res, err := groupstats.DfCount(f, x, &groupstats.DfCountConf{
				Hue:     hue,
				TopN:    intFlag(cmd, "top-n", a.cfg.Analysis.TopN),
				XInt:    xInt,
				KeepNil: keepNil,
			})
			if err != nil {
				return err
			}
			return a.write(cmd, res)
		},
	}
	cmd.Flags().StringVar(&x, "x", "", "the column to count")
	cmd.Flags().StringVar(&hue, "hue", "", "count each combination of x and this column")
	cmd.Flags().Int("top-n", 0, "recode all but the most frequent values; negative disables (default from config: 5)")
	cmd.Flags().Float64Var(&xInt, "x-int", 0, "round numeric x to multiples of this interval")
	cmd.Flags().BoolVar(&keepNil, "keep-nil", false, "count missing values")
	cmd.MarkFlagRequired("x")
	return cmd
}

func newOutliersCmd(a *app) *cobra.Command {
	var col string
	var groupBy []string
	var stdCutoff float64
	cmd := &cobra.Command{
		Use:   "outliers <file> --col <name>",
		Short: "Set outliers of a column to nil, based on their difference to neighbouring values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.load(args[0])
			if err != nil {
				return err
			}
			cutoff := a.cfg.Analysis.StdCutoff
			if cmd.Flags().Changed("std-cutoff") {
				cutoff = stdCutoff
			}
			res, err := outlier.ToNaN(f, col, &outlier.Conf{
				GroupBy:   groupBy,
				StdCutoff: cutoff,
				Reps:      intFlag(cmd, "reps", a.cfg.Analysis.Reps),
				Logger:    a.logger,
			})
			if err != nil {
				return err
			}
			return a.write(cmd, res)
		},
	}
	cmd.Flags().StringVar(&col, "col", "", "the numeric column to filter")
	cmd.Flags().StringSliceVar(&groupBy, "group-by", nil, "filter each group separately")
	cmd.Flags().Float64Var(&stdCutoff, "std-cutoff", 0, "standard deviations beyond which a value is an outlier (default from config: 3)")
	cmd.Flags().Int("reps", 0, "the number of filter passes (default from config: 1)")
	cmd.MarkFlagRequired("col")
	return cmd
}

func newKSplitCmd(a *app) *cobra.Command {
	var groupBy, sortBy []string
	var seed int64
	cmd := &cobra.Command{
		Use:   "ksplit <file>",
		Short: "Assign each row to one of k parts, adding a _k_index column",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.load(args[0])
			if err != nil {
				return err
			}
			conf := &split.KSplitConf{
				K:       intFlag(cmd, "k", a.cfg.Analysis.K),
				GroupBy: groupBy,
				Logger:  a.logger,
			}
			for _, col := range sortBy {
				conf.SortBy = append(conf.SortBy, frame.Asc(col))
			}
			if !cmd.Flags().Changed("seed") {
				seed = a.cfg.Analysis.Seed
			}
			if seed != 0 {
				conf.Seed = &seed
			}
			res, err := f.To(split.WithKIndex(conf))
			if err != nil {
				return err
			}
			return a.write(cmd, res)
		},
	}
	cmd.Flags().Int("k", 0, "the number of parts (default from config: 5)")
	cmd.Flags().StringSliceVar(&groupBy, "group-by", nil, "spread each group over all parts")
	cmd.Flags().StringSliceVar(&sortBy, "sort-by", nil, "order rows by these columns instead of randomly")
	cmd.Flags().Int64Var(&seed, "seed", 0, "seed of the random order; zero draws a random seed")
	return cmd
}

func newCorrCmd(a *app) *cobra.Command {
	var target string
	var groupBy []string
	var top int
	cmd := &cobra.Command{
		Use:   "corr <file>",
		Short: "List the Pearson correlations between numeric columns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.load(args[0])
			if err != nil {
				return err
			}
			res, err := groupstats.Corr(f, &groupstats.CorrConf{Target: target, GroupBy: groupBy})
			if err != nil {
				return err
			}
			if top < 0 {
				return fmt.Errorf("top must not be negative: %d", top)
			}
			if top > 0 {
				res = res.Head(top)
			}
			return a.write(cmd, res)
		},
	}
	cmd.Flags().StringVar(&target, "target", "", "only list correlations with this column")
	cmd.Flags().StringSliceVar(&groupBy, "group-by", nil, "correlate within each group")
	cmd.Flags().IntVar(&top, "top", 0, "only list the strongest correlations")
	return cmd
}
