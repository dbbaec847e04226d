package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"benchguard/internal/compare"
	"benchguard/internal/report"
)

var compareCmd = &cobra.Command{
	Use:   "compare <baseline-label> <candidate-label>",
	Short: "Compare two stored measurement sets",
	Long: `Compare loads two previously stored measurement sets and prints the
comparison report without running any benchmarks. Useful for re-evaluating
old measurements with a different threshold.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		// The run command binds "threshold" too, and viper keeps only the
		// last binding, so read this command's flag explicitly.
		threshold := viper.GetFloat64("threshold")
		if cmd.Flags().Changed("threshold") {
			threshold, _ = cmd.Flags().GetFloat64("threshold")
		}

		s, err := newStoreFunc()
		if err != nil {
			return err
		}
		defer s.Close()

		rep, err := compare.Labels(cmd.Context(), s, args[0], args[1], threshold)
		if err != nil {
			return err
		}

		if err := report.Render(cmd.OutOrStdout(), rep, report.Options{Color: report.ColorEnabled()}); err != nil {
			return err
		}
		if rep.Verdict == compare.VerdictRegression {
			return errRegressionDetected
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)

	compareCmd.Flags().Float64("threshold", 0, "Relative regression threshold, e.g. 0.05 for 5%")
}
