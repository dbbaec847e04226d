// Package config wires viper configuration for the harness: defaults, an
// optional config file and BENCHGUARD_* environment variables.
package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load initializes configuration from file and environment variables.
// cfgFile overrides the default search (a .benchguard.yaml in the working
// directory).
func Load(cfgFile string) error {
	// .env files are common on CI runners for injecting tokens.
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".benchguard")
	}

	viper.SetEnvPrefix("BENCHGUARD")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	// A missing config file is fine; defaults and env cover everything.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			return err
		}
	}

	return Validate()
}

func setDefaults() {
	viper.SetDefault("threshold", 0.05)
	viper.SetDefault("suite", "")
	viper.SetDefault("count", 5)

	viper.SetDefault("runner", "local")
	viper.SetDefault("image", "golang:1.25")

	viper.SetDefault("store.type", "file")
	viper.SetDefault("store.path", "")

	viper.SetDefault("baseline_label", "before")
	viper.SetDefault("candidate_label", "after")

	viper.SetDefault("verbose", false)
	viper.SetDefault("log_file", "")
	viper.SetDefault("metrics_addr", "")

	viper.SetDefault("notifications.slack.enabled", false)
	viper.SetDefault("notifications.slack.channel", "#performance")
}
