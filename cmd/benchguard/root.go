package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"benchguard/internal/config"
	"benchguard/internal/telemetry"
)

// Exit codes let CI distinguish a detected regression from a broken harness:
// 0 verdict ok/inconclusive, 1 regression, 2 checkout/run/storage failure.
const (
	exitRegression = 1
	exitFailure    = 2
)

// errRegressionDetected marks a completed comparison whose verdict is
// regression. The report has already been rendered when it is returned.
var errRegressionDetected = errors.New("benchmark regression detected")

var exit = os.Exit
var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "benchguard",
	Short: "Benchmark regression harness",
	Long: `benchguard runs a benchmark suite against two revisions of a repository,
persists both measurement sets as named baselines, and compares them with a
median + relative-threshold rule to decide whether the candidate regressed.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the CLI and maps outcomes to exit codes.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errRegressionDetected) {
			exit(exitRegression)
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exit(exitFailure)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./.benchguard.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().String("store", "", "Store backend: file, sqlite or postgres")
	rootCmd.PersistentFlags().String("store-path", "", "Store location: directory, db file or DSN")
	rootCmd.PersistentFlags().String("log-file", "", "Also write logs to this file")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("store.type", rootCmd.PersistentFlags().Lookup("store"))
	viper.BindPFlag("store.path", rootCmd.PersistentFlags().Lookup("store-path"))
	viper.BindPFlag("log_file", rootCmd.PersistentFlags().Lookup("log-file"))
}

// initConfig reads the config file and environment, then sets up logging
// and the optional metrics endpoint.
func initConfig() {
	if err := config.Load(cfgFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exit(exitFailure)
		return
	}

	telemetry.InitLogger(viper.GetBool("verbose"), viper.GetString("log_file"))

	if addr := viper.GetString("metrics_addr"); addr != "" {
		go func() {
			if err := telemetry.StartMetricsServer(addr); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: metrics server failed: %v\n", err)
			}
		}()
	}
}
