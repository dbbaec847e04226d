// Package orchestrator drives one harness invocation: check out the baseline
// revision, measure it, check out the candidate, measure it, compare, and
// emit a verdict. Strictly sequential — benchmark runs need a quiet machine,
// so nothing here is concurrent.
package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"benchguard/internal/compare"
	"benchguard/internal/measure"
	"benchguard/internal/notify"
	"benchguard/internal/report"
	"benchguard/internal/runner"
	"benchguard/internal/store"
	"benchguard/internal/telemetry"
)

// State tracks harness progress through the run.
type State string

const (
	StateIdle                State = "idle"
	StateCheckedOutBaseline  State = "checked_out_baseline"
	StateBaselineMeasured    State = "baseline_measured"
	StateCheckedOutCandidate State = "checked_out_candidate"
	StateCandidateMeasured   State = "candidate_measured"
	StateCompared            State = "compared"
	StateDone                State = "done"
	StateFailed              State = "failed"
)

// Checkout is the source-control side of the harness: produce a working copy
// of the repository pinned to a revision.
type Checkout interface {
	Clone(ctx context.Context, src, dest string) error
	Checkout(ctx context.Context, dir, ref string) error
	RevParse(ctx context.Context, dir, ref string) (string, error)
}

// CheckoutError is a failed clone or checkout, surfaced verbatim.
type CheckoutError struct {
	Ref string
	Err error
}

func (e *CheckoutError) Error() string {
	return fmt.Sprintf("checkout of %q failed: %v", e.Ref, e.Err)
}

func (e *CheckoutError) Unwrap() error { return e.Err }

// Config holds the per-invocation parameters of the harness.
type Config struct {
	RepoPath       string // repository to clone revisions from
	Suite          string
	Threshold      float64
	BaselineLabel  string
	CandidateLabel string
	WorkDir        string // optional; a temp dir is created when empty
	KeepWork       bool
}

// Harness wires checkout, runner, store and notifier into the state machine.
type Harness struct {
	Git      Checkout
	Runner   runner.Runner
	Store    store.Store
	Notifier notify.Notifier
	Logger   *slog.Logger
	Config   Config

	state State
}

// New creates a harness in the Idle state.
func New(git Checkout, r runner.Runner, s store.Store, n notify.Notifier, logger *slog.Logger, cfg Config) *Harness {
	if n == nil {
		n = notify.Noop{}
	}
	if cfg.BaselineLabel == "" {
		cfg.BaselineLabel = "before"
	}
	if cfg.CandidateLabel == "" {
		cfg.CandidateLabel = "after"
	}
	return &Harness{
		Git:      git,
		Runner:   r,
		Store:    s,
		Notifier: n,
		Logger:   logger,
		Config:   cfg,
		state:    StateIdle,
	}
}

// State returns the current state of the run.
func (h *Harness) State() State { return h.state }

func (h *Harness) transition(next State) {
	h.Logger.Debug("state transition",
		slog.String("from", string(h.state)),
		slog.String("to", string(next)),
	)
	h.state = next
}

func (h *Harness) fail(err error) error {
	h.transition(StateFailed)
	return err
}

// Run executes the whole workflow and returns the comparison report. On a
// checkout, runner or storage failure the state machine halts in Failed and
// the error is returned verbatim; there are no retries, since a benchmark
// run is expensive and a silent retry would mask a flaky environment.
func (h *Harness) Run(ctx context.Context, baselineRef, candidateRef string) (*compare.Report, error) {
	workDir := h.Config.WorkDir
	if workDir == "" {
		var err error
		workDir, err = os.MkdirTemp("", "benchguard-*")
		if err != nil {
			return nil, h.fail(fmt.Errorf("failed to create work dir: %w", err))
		}
	}
	if !h.Config.KeepWork {
		defer os.RemoveAll(workDir)
	}

	// Baseline phase.
	if err := h.measurePhase(ctx, "baseline", baselineRef, h.Config.BaselineLabel,
		filepath.Join(workDir, "baseline"), StateCheckedOutBaseline, StateBaselineMeasured); err != nil {
		return nil, h.fail(err)
	}

	// Candidate phase.
	if err := h.measurePhase(ctx, "candidate", candidateRef, h.Config.CandidateLabel,
		filepath.Join(workDir, "candidate"), StateCheckedOutCandidate, StateCandidateMeasured); err != nil {
		return nil, h.fail(err)
	}

	// Compare.
	rep, err := compare.Labels(ctx, h.Store, h.Config.BaselineLabel, h.Config.CandidateLabel, h.Config.Threshold)
	if err != nil {
		return nil, h.fail(err)
	}
	h.transition(StateCompared)
	telemetry.Verdicts.WithLabelValues(string(rep.Verdict)).Inc()

	if rep.Verdict == compare.VerdictRegression {
		summary := report.Summary(rep)
		h.Logger.Warn("regression detected", slog.String("summary", summary))
		if err := h.Notifier.Notify(ctx, report.Markdown(rep)); err != nil {
			// A lost notification must not turn a completed comparison
			// into a harness failure.
			h.Logger.Error("failed to send notification", slog.String("error", err.Error()))
		}
	}

	h.transition(StateDone)
	return rep, nil
}

// measurePhase checks out ref into dir, runs the suite and stores the
// measurement set under label. The label only becomes visible after a fully
// successful run, so an interrupted phase can simply be re-run.
func (h *Harness) measurePhase(ctx context.Context, phase, ref, label, dir string, checkedOut, measured State) error {
	logger := h.Logger.With(slog.String("phase", phase), slog.String("ref", ref))

	logger.Info("checking out revision", slog.String("dir", dir))
	if err := h.Git.Clone(ctx, h.Config.RepoPath, dir); err != nil {
		return &CheckoutError{Ref: ref, Err: err}
	}
	if err := h.Git.Checkout(ctx, dir, ref); err != nil {
		return &CheckoutError{Ref: ref, Err: err}
	}
	revision, err := h.Git.RevParse(ctx, dir, "HEAD")
	if err != nil {
		return &CheckoutError{Ref: ref, Err: err}
	}
	h.transition(checkedOut)

	logger.Info("running benchmark suite",
		slog.String("suite", h.Config.Suite),
		slog.String("revision", revision),
	)
	start := time.Now()
	samples, err := h.Runner.RunSuite(ctx, dir, h.Config.Suite)
	telemetry.SuiteDuration.WithLabelValues(phase).Observe(time.Since(start).Seconds())
	if err != nil {
		telemetry.SuiteRuns.WithLabelValues(phase, "error").Inc()
		return err
	}
	telemetry.SuiteRuns.WithLabelValues(phase, "ok").Inc()

	set := measure.NewSet(label, h.Config.Suite, revision, samples)
	if err := h.Store.Put(ctx, set); err != nil {
		return err
	}

	logger.Info("measurement set stored",
		slog.String("label", label),
		slog.Int("benchmarks", len(samples)),
		slog.Duration("elapsed", time.Since(start)),
	)
	h.transition(measured)
	return nil
}
