// Package compare aligns two measurement sets and classifies the change per
// benchmark. The significance rule is a median per sample and a fixed
// relative threshold; this stands in for the statistical test of dedicated
// comparison tools and is documented as such.
package compare

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"benchguard/internal/measure"
	"benchguard/internal/store"
)

// Comparison preconditions.
var (
	ErrMissingBaseline  = errors.New("baseline measurement set is missing")
	ErrMissingCandidate = errors.New("candidate measurement set is missing")
)

// Outcome classifies one benchmark's change between baseline and candidate.
type Outcome string

const (
	OutcomeUnchanged    Outcome = "unchanged"
	OutcomeImproved     Outcome = "improved"
	OutcomeRegressed    Outcome = "regressed"
	OutcomeInconclusive Outcome = "inconclusive" // zero baseline median, delta undefined
)

// Verdict is the machine-checkable summary of a whole comparison.
type Verdict string

const (
	VerdictOk           Verdict = "ok"
	VerdictInconclusive Verdict = "inconclusive"
	VerdictRegression   Verdict = "regression"
)

// Entry pairs one benchmark's samples with the computed medians, the
// relative delta and the classification. Delta is NaN when the outcome is
// inconclusive.
type Entry struct {
	Name            string
	Baseline        measure.Sample
	Candidate       measure.Sample
	BaselineMedian  float64
	CandidateMedian float64
	Delta           float64
	Outcome         Outcome
}

// Report is the immutable result of one comparison. Entries are ordered by
// descending |delta| so the largest regressions surface first; inconclusive
// entries sort last.
type Report struct {
	BaselineLabel  string
	CandidateLabel string
	Threshold      float64
	Entries        []Entry
	Added          []string // present only in the candidate set
	Removed        []string // present only in the baseline set
	Verdict        Verdict
	GeneratedAt    time.Time
}

// Sets compares two measurement sets with the given relative threshold
// (e.g. 0.05 for 5%). Identifiers present in only one set are reported as
// added or removed and never influence the verdict.
func Sets(baseline, candidate measure.Set, threshold float64) (*Report, error) {
	if threshold <= 0 {
		return nil, fmt.Errorf("threshold must be positive, got %v", threshold)
	}

	report := &Report{
		BaselineLabel:  baseline.Label,
		CandidateLabel: candidate.Label,
		Threshold:      threshold,
		GeneratedAt:    time.Now().UTC(),
	}

	for _, name := range candidate.Names() {
		if _, ok := baseline.Samples[name]; !ok {
			report.Added = append(report.Added, name)
		}
	}
	for _, name := range baseline.Names() {
		candSample, ok := candidate.Samples[name]
		if !ok {
			report.Removed = append(report.Removed, name)
			continue
		}
		report.Entries = append(report.Entries,
			classify(name, baseline.Samples[name], candSample, threshold))
	}

	sortEntries(report.Entries)
	report.Verdict = verdict(report.Entries)
	return report, nil
}

// Labels loads both labels from the store and compares them.
func Labels(ctx context.Context, s store.Store, baselineLabel, candidateLabel string, threshold float64) (*Report, error) {
	baseline, err := s.Get(ctx, baselineLabel)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: label %q", ErrMissingBaseline, baselineLabel)
		}
		return nil, err
	}

	candidate, err := s.Get(ctx, candidateLabel)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: label %q", ErrMissingCandidate, candidateLabel)
		}
		return nil, err
	}

	return Sets(*baseline, *candidate, threshold)
}

func classify(name string, baseline, candidate measure.Sample, threshold float64) Entry {
	entry := Entry{
		Name:            name,
		Baseline:        baseline,
		Candidate:       candidate,
		BaselineMedian:  baseline.Median(),
		CandidateMedian: candidate.Median(),
	}

	if entry.BaselineMedian == 0 {
		entry.Delta = math.NaN()
		entry.Outcome = OutcomeInconclusive
		return entry
	}

	entry.Delta = (entry.CandidateMedian - entry.BaselineMedian) / entry.BaselineMedian

	// Boundaries are inclusive so a delta of exactly +-threshold is never
	// silently treated as unchanged.
	switch {
	case entry.Delta >= threshold:
		entry.Outcome = OutcomeRegressed
	case entry.Delta <= -threshold:
		entry.Outcome = OutcomeImproved
	default:
		entry.Outcome = OutcomeUnchanged
	}
	return entry
}

func sortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		di, dj := math.Abs(entries[i].Delta), math.Abs(entries[j].Delta)
		iNaN, jNaN := math.IsNaN(di), math.IsNaN(dj)
		if iNaN != jNaN {
			return jNaN // defined deltas before inconclusive ones
		}
		if iNaN || di == dj {
			return entries[i].Name < entries[j].Name
		}
		return di > dj
	})
}

func verdict(entries []Entry) Verdict {
	v := VerdictOk
	for _, e := range entries {
		switch e.Outcome {
		case OutcomeRegressed:
			return VerdictRegression
		case OutcomeInconclusive:
			v = VerdictInconclusive
		}
	}
	return v
}
