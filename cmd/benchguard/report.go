package main

import (
	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"benchguard/internal/compare"
	"benchguard/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report <baseline-label> <candidate-label>",
	Short: "Render a comparison report as Markdown",
	Long: `Report compares two stored measurement sets and prints the result as a
Markdown document, suitable for pasting into a pull request. With --pretty the
Markdown is rendered for the terminal instead.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pretty, _ := cmd.Flags().GetBool("pretty")

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

		md := report.Markdown(rep)
		if pretty {
			renderer, err := glamour.NewTermRenderer(
				glamour.WithAutoStyle(),
				glamour.WithWordWrap(100),
			)
			if err != nil {
				return err
			}
			out, err := renderer.Render(md)
			if err != nil {
				return err
			}
			cmd.Print(out)
		} else {
			cmd.Print(md)
		}

		if rep.Verdict == compare.VerdictRegression {
			return errRegressionDetected
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().Float64("threshold", 0, "Relative regression threshold, e.g. 0.05 for 5%")
	reportCmd.Flags().Bool("pretty", false, "Render the Markdown for the terminal")
}
