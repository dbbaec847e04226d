package main

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"benchguard/internal/compare"
	"benchguard/internal/orchestrator"
	"benchguard/internal/report"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Measure two revisions and compare them",
	Long: `Run clones the repository twice, checks out the baseline and candidate
revisions, executes the benchmark suite on each, stores both measurement sets
under their labels, and prints a comparison report.

The exit code carries the verdict: 0 for ok or inconclusive, 1 when a
regression was detected, 2 when the harness itself failed.`,
	Example: `  benchguard run --baseline-ref main --candidate-ref feature-branch
  benchguard run --baseline-ref v1.2.0 --candidate-ref HEAD --suite Lookup --threshold 0.10
  benchguard run --baseline-ref main --candidate-ref HEAD --runner docker --image golang:1.25`,
	RunE: func(cmd *cobra.Command, args []string) error {
		baselineRef, _ := cmd.Flags().GetString("baseline-ref")
		candidateRef, _ := cmd.Flags().GetString("candidate-ref")
		repoPath, _ := cmd.Flags().GetString("repo")
		keepWork, _ := cmd.Flags().GetBool("keep-work")

		logger := slog.Default()

		s, err := newStoreFunc()
		if err != nil {
			return err
		}
		defer s.Close()

		r, err := newRunnerFunc(logger)
		if err != nil {
			return err
		}

		notifier, err := newNotifierFunc()
		if err != nil {
			return err
		}

		h := orchestrator.New(newGitFunc(), r, s, notifier, logger, orchestrator.Config{
			RepoPath:       repoPath,
			Suite:          viper.GetString("suite"),
			Threshold:      viper.GetFloat64("threshold"),
			BaselineLabel:  viper.GetString("baseline_label"),
			CandidateLabel: viper.GetString("candidate_label"),
			KeepWork:       keepWork,
		})

		rep, err := h.Run(cmd.Context(), baselineRef, candidateRef)
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
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("baseline-ref", "", "Revision to measure as the baseline (required)")
	runCmd.Flags().String("candidate-ref", "", "Revision to measure as the candidate (required)")
	runCmd.MarkFlagRequired("baseline-ref")
	runCmd.MarkFlagRequired("candidate-ref")

	runCmd.Flags().String("repo", ".", "Path or URL of the repository to benchmark")
	runCmd.Flags().String("suite", "", "Benchmark name pattern to run (default: all benchmarks)")
	runCmd.Flags().Float64("threshold", 0, "Relative regression threshold, e.g. 0.05 for 5%")
	runCmd.Flags().Int("count", 0, "Benchmark repetitions per revision")
	runCmd.Flags().String("runner", "", "Execution backend: local or docker")
	runCmd.Flags().String("image", "", "Container image for the docker runner")
	runCmd.Flags().String("baseline-label", "", "Label to store the baseline set under")
	runCmd.Flags().String("candidate-label", "", "Label to store the candidate set under")
	runCmd.Flags().Bool("keep-work", false, "Keep the temporary checkouts after the run")
	runCmd.Flags().Bool("notify", false, "Send a Slack notification when a regression is detected")

	viper.BindPFlag("suite", runCmd.Flags().Lookup("suite"))
	viper.BindPFlag("threshold", runCmd.Flags().Lookup("threshold"))
	viper.BindPFlag("count", runCmd.Flags().Lookup("count"))
	viper.BindPFlag("runner", runCmd.Flags().Lookup("runner"))
	viper.BindPFlag("image", runCmd.Flags().Lookup("image"))
	viper.BindPFlag("baseline_label", runCmd.Flags().Lookup("baseline-label"))
	viper.BindPFlag("candidate_label", runCmd.Flags().Lookup("candidate-label"))
	viper.BindPFlag("notifications.slack.enabled", runCmd.Flags().Lookup("notify"))
}
