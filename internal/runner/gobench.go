package runner

import (
	"bytes"
	"context"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"benchguard/internal/measure"
)

// execCommandContext allows mocking the go toolchain invocation in tests.
var execCommandContext = exec.CommandContext

// DefaultCount is the number of repetitions per benchmark case, giving each
// sample enough observations for a meaningful median.
const DefaultCount = 5

// GoBench runs the suite with the local go toolchain:
// go test -bench=<suite> -benchmem -run=^$ -count=N ./...
type GoBench struct {
	Count  int
	Logger *slog.Logger
}

// NewGoBench creates a local toolchain runner.
func NewGoBench(count int, logger *slog.Logger) *GoBench {
	if count <= 0 {
		count = DefaultCount
	}
	return &GoBench{Count: count, Logger: logger.With(slog.String("runner", "local"))}
}

// benchArgs builds the go test invocation for a suite selector. An empty
// suite selects every benchmark.
func benchArgs(suite string, count int) []string {
	if suite == "" {
		suite = "."
	}
	return []string{
		"test",
		"-bench=" + suite,
		"-benchmem",
		"-run=^$",
		"-count=" + strconv.Itoa(count),
		"./...",
	}
}

// RunSuite executes the suite in dir and parses the observations.
func (r *GoBench) RunSuite(ctx context.Context, dir, suite string) (map[string]measure.Sample, error) {
	args := benchArgs(suite, r.Count)

	r.Logger.Info("running benchmark suite",
		slog.String("suite", suite),
		slog.String("dir", dir),
		slog.String("cmd", "go "+strings.Join(args, " ")),
	)

	cmd := execCommandContext(ctx, "go", args...)
	cmd.Dir = dir

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	start := time.Now()
	if err := cmd.Run(); err != nil {
		return nil, &Error{Suite: suite, Output: out.String(), Err: err}
	}

	r.Logger.Info("benchmark suite finished",
		slog.Duration("elapsed", time.Since(start)),
	)

	return ParseBenchOutput(&out)
}
