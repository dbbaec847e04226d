package compare

import (
	"context"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"benchguard/internal/measure"
	"benchguard/internal/store"
)

func setOf(label string, samples map[string]measure.Sample) measure.Set {
	return measure.NewSet(label, "lookup", "", samples)
}

func TestIdenticalSetsAreOk(t *testing.T) {
	samples := map[string]measure.Sample{
		"BenchmarkA": {100, 102, 98},
		"BenchmarkB": {50, 51, 49},
	}

	for _, threshold := range []float64{0.001, 0.05, 0.5, 10} {
		report, err := Sets(setOf("before", samples), setOf("after", samples), threshold)
		require.NoError(t, err)
		assert.Equal(t, VerdictOk, report.Verdict)
		for _, e := range report.Entries {
			assert.Equal(t, OutcomeUnchanged, e.Outcome)
		}
	}
}

func TestRegressionScenario(t *testing.T) {
	baseline := setOf("before", map[string]measure.Sample{
		"BenchmarkLookup": {100, 102, 98},
	})
	candidate := setOf("after", map[string]measure.Sample{
		"BenchmarkLookup": {150, 148, 152},
	})

	report, err := Sets(baseline, candidate, 0.05)
	require.NoError(t, err)

	require.Len(t, report.Entries, 1)
	entry := report.Entries[0]
	assert.Equal(t, 100.0, entry.BaselineMedian)
	assert.Equal(t, 150.0, entry.CandidateMedian)
	assert.InDelta(t, 0.5, entry.Delta, 1e-9)
	assert.Equal(t, OutcomeRegressed, entry.Outcome)
	assert.Equal(t, VerdictRegression, report.Verdict)
}

func TestThresholdBoundariesInclusive(t *testing.T) {
	baseline := setOf("before", map[string]measure.Sample{
		"BenchmarkUp":   {100},
		"BenchmarkDown": {100},
	})
	candidate := setOf("after", map[string]measure.Sample{
		"BenchmarkUp":   {105}, // delta exactly +0.05
		"BenchmarkDown": {95},  // delta exactly -0.05
	})

	report, err := Sets(baseline, candidate, 0.05)
	require.NoError(t, err)

	outcomes := map[string]Outcome{}
	for _, e := range report.Entries {
		outcomes[e.Name] = e.Outcome
	}
	assert.Equal(t, OutcomeRegressed, outcomes["BenchmarkUp"])
	assert.Equal(t, OutcomeImproved, outcomes["BenchmarkDown"])
}

func TestThresholdMonotonicity(t *testing.T) {
	baseline := setOf("before", map[string]measure.Sample{
		"BenchmarkA": {100}, "BenchmarkB": {100}, "BenchmarkC": {100},
	})
	candidate := setOf("after", map[string]measure.Sample{
		"BenchmarkA": {103}, "BenchmarkB": {112}, "BenchmarkC": {130},
	})

	regressedAt := func(threshold float64) map[string]bool {
		report, err := Sets(baseline, candidate, threshold)
		require.NoError(t, err)
		out := map[string]bool{}
		for _, e := range report.Entries {
			out[e.Name] = e.Outcome == OutcomeRegressed
		}
		return out
	}

	loose := regressedAt(0.10)
	tight := regressedAt(0.02)
	for name, regressed := range loose {
		if regressed {
			assert.True(t, tight[name], "%s regressed at 0.10 but not at 0.02", name)
		}
	}
}

func TestZeroBaselineIsInconclusive(t *testing.T) {
	baseline := setOf("before", map[string]measure.Sample{"BenchmarkZ": {0, 0, 0}})
	candidate := setOf("after", map[string]measure.Sample{"BenchmarkZ": {50}})

	report, err := Sets(baseline, candidate, 0.05)
	require.NoError(t, err)

	require.Len(t, report.Entries, 1)
	assert.Equal(t, OutcomeInconclusive, report.Entries[0].Outcome)
	assert.True(t, math.IsNaN(report.Entries[0].Delta))
	assert.Equal(t, VerdictInconclusive, report.Verdict)
}

func TestRegressionOutranksInconclusive(t *testing.T) {
	baseline := setOf("before", map[string]measure.Sample{
		"BenchmarkZero": {0},
		"BenchmarkSlow": {100},
	})
	candidate := setOf("after", map[string]measure.Sample{
		"BenchmarkZero": {10},
		"BenchmarkSlow": {200},
	})

	report, err := Sets(baseline, candidate, 0.05)
	require.NoError(t, err)
	assert.Equal(t, VerdictRegression, report.Verdict)
}

func TestAddedAndRemovedBenchmarks(t *testing.T) {
	baseline := setOf("before", map[string]measure.Sample{
		"BenchmarkShared":  {100},
		"BenchmarkRemoved": {100},
	})
	candidate := setOf("after", map[string]measure.Sample{
		"BenchmarkShared": {101},
		"parse_small":     {40},
	})

	report, err := Sets(baseline, candidate, 0.05)
	require.NoError(t, err)

	assert.Equal(t, []string{"parse_small"}, report.Added)
	assert.Equal(t, []string{"BenchmarkRemoved"}, report.Removed)
	require.Len(t, report.Entries, 1)
	assert.Equal(t, "BenchmarkShared", report.Entries[0].Name)
	// Added/removed identifiers never produce a regression on their own.
	assert.Equal(t, VerdictOk, report.Verdict)
}

func TestEntriesOrderedByAbsDelta(t *testing.T) {
	baseline := setOf("before", map[string]measure.Sample{
		"BenchmarkSmall": {100},
		"BenchmarkBig":   {100},
		"BenchmarkFast":  {100},
		"BenchmarkZero":  {0},
	})
	candidate := setOf("after", map[string]measure.Sample{
		"BenchmarkSmall": {101},
		"BenchmarkBig":   {180},
		"BenchmarkFast":  {60},
		"BenchmarkZero":  {5},
	})

	report, err := Sets(baseline, candidate, 0.05)
	require.NoError(t, err)

	var names []string
	for _, e := range report.Entries {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"BenchmarkBig", "BenchmarkFast", "BenchmarkSmall", "BenchmarkZero"}, names)
}

func TestInvalidThreshold(t *testing.T) {
	set := setOf("before", map[string]measure.Sample{"BenchmarkA": {1}})
	_, err := Sets(set, set, 0)
	assert.Error(t, err)
	_, err = Sets(set, set, -0.1)
	assert.Error(t, err)
}

func TestLabelsMissingPreconditions(t *testing.T) {
	ctx := context.Background()
	s, err := store.NewFileStore(filepath.Join(t.TempDir(), "baselines"))
	require.NoError(t, err)

	_, err = Labels(ctx, s, "before", "after", 0.05)
	assert.ErrorIs(t, err, ErrMissingBaseline)

	require.NoError(t, s.Put(ctx, setOf("before", map[string]measure.Sample{"BenchmarkA": {1}})))
	_, err = Labels(ctx, s, "before", "after", 0.05)
	assert.ErrorIs(t, err, ErrMissingCandidate)

	require.NoError(t, s.Put(ctx, setOf("after", map[string]measure.Sample{"BenchmarkA": {1}})))
	report, err := Labels(ctx, s, "before", "after", 0.05)
	require.NoError(t, err)
	assert.Equal(t, VerdictOk, report.Verdict)
}
