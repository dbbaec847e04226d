// Package runner holds the benchmark runner adapters. An adapter executes a
// named suite against a prepared checkout and produces raw samples; building
// the code and keeping the machine quiet are its problem, not the harness's.
package runner

import (
	"context"
	"fmt"

	"benchguard/internal/measure"
)

// Runner executes the benchmark suite in the checkout at dir. Adapters
// substitute freely: a local toolchain run and a containerized run satisfy
// the same single-operation contract.
type Runner interface {
	RunSuite(ctx context.Context, dir, suite string) (map[string]measure.Sample, error)
}

// Error is a failed suite execution with the adapter's raw output attached,
// so CI logs show verbatim what the build or benchmark printed.
type Error struct {
	Suite  string
	Output string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("benchmark suite %q failed: %v\noutput:\n%s", e.Suite, e.Err, e.Output)
}

func (e *Error) Unwrap() error { return e.Err }
