package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Validate rejects configurations the harness cannot act on. Called after
// Load and again after flag binding, since flags may override file values.
func Validate() error {
	threshold := viper.GetFloat64("threshold")
	if threshold <= 0 || threshold >= 1 {
		return fmt.Errorf("threshold must be a fraction in (0, 1), got %v", threshold)
	}

	if count := viper.GetInt("count"); count < 1 {
		return fmt.Errorf("count must be at least 1, got %d", count)
	}

	switch runner := viper.GetString("runner"); runner {
	case "local", "docker":
	default:
		return fmt.Errorf("runner must be \"local\" or \"docker\", got %q", runner)
	}

	switch storeType := viper.GetString("store.type"); storeType {
	case "", "file", "sqlite", "sqlite3", "postgres", "postgresql":
	default:
		return fmt.Errorf("unsupported store.type %q", storeType)
	}

	if viper.GetString("baseline_label") == viper.GetString("candidate_label") {
		return fmt.Errorf("baseline_label and candidate_label must differ")
	}

	return nil
}
