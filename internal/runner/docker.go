package runner

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"benchguard/internal/docker"
	"benchguard/internal/measure"
)

const containerWorkdir = "/src"

// Docker runs the suite inside a container with the checkout bind mounted,
// so the host needs no toolchain and the build environment is pinned by the
// image.
type Docker struct {
	Client *docker.Client
	Image  string
	Count  int
	Logger *slog.Logger
}

// NewDocker creates a containerized runner using the given image.
func NewDocker(client *docker.Client, image string, count int, logger *slog.Logger) *Docker {
	if count <= 0 {
		count = DefaultCount
	}
	return &Docker{
		Client: client,
		Image:  image,
		Count:  count,
		Logger: logger.With(slog.String("runner", "docker"), slog.String("image", image)),
	}
}

// RunSuite executes the suite in a one-shot container and parses the
// observations from its stdout.
func (r *Docker) RunSuite(ctx context.Context, dir, suite string) (map[string]measure.Sample, error) {
	if err := r.Client.CheckDaemon(ctx); err != nil {
		return nil, &Error{Suite: suite, Err: err}
	}
	if err := r.Client.PullImage(ctx, r.Image); err != nil {
		return nil, &Error{Suite: suite, Err: err}
	}

	cmd := append([]string{"go"}, benchArgs(suite, r.Count)...)

	r.Logger.Info("running benchmark suite in container",
		slog.String("suite", suite),
		slog.String("dir", dir),
		slog.String("cmd", strings.Join(cmd, " ")),
	)

	start := time.Now()
	res, err := r.Client.RunOneShot(ctx, r.Image, dir, containerWorkdir, cmd)
	if err != nil {
		return nil, &Error{Suite: suite, Err: err}
	}
	if res.ExitCode != 0 {
		return nil, &Error{
			Suite:  suite,
			Output: res.Stdout + res.Stderr,
			Err:    fmt.Errorf("container exited with status %d", res.ExitCode),
		}
	}

	r.Logger.Info("benchmark suite finished",
		slog.Duration("elapsed", time.Since(start)),
	)

	return ParseBenchOutput(strings.NewReader(res.Stdout))
}
