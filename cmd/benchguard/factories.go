package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/viper"

	"benchguard/internal/docker"
	"benchguard/internal/git"
	"benchguard/internal/notify"
	"benchguard/internal/orchestrator"
	"benchguard/internal/runner"
	"benchguard/internal/store"
)

// Factory variables so command tests can substitute fakes without a real
// git binary, docker daemon or Slack workspace.
var (
	newStoreFunc = func() (store.Store, error) {
		return store.New(store.Config{
			Type: viper.GetString("store.type"),
			Path: viper.GetString("store.path"),
		})
	}

	newGitFunc = func() orchestrator.Checkout {
		return git.NewClient()
	}

	newRunnerFunc = func(logger *slog.Logger) (runner.Runner, error) {
		count := viper.GetInt("count")
		switch viper.GetString("runner") {
		case "docker":
			client, err := docker.NewClient()
			if err != nil {
				return nil, err
			}
			return runner.NewDocker(client, viper.GetString("image"), count, logger), nil
		case "local", "":
			return runner.NewGoBench(count, logger), nil
		default:
			return nil, fmt.Errorf("unsupported runner %q", viper.GetString("runner"))
		}
	}

	newNotifierFunc = func() (notify.Notifier, error) {
		if !viper.GetBool("notifications.slack.enabled") {
			return notify.Noop{}, nil
		}
		return notify.NewSlackNotifier(
			viper.GetString("notifications.slack.token"),
			viper.GetString("notifications.slack.channel"),
		)
	}
)
