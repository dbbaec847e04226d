package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"benchguard/internal/measure"
)

func TestReportCmd(t *testing.T) {
	s := newMemStore()
	seedStore(t, s, "before", map[string]measure.Sample{"BenchmarkLookup": {100}})
	seedStore(t, s, "after", map[string]measure.Sample{"BenchmarkLookup": {150}})
	defer withFakes(s, nil, nil, nil)()

	t.Run("markdown with regression exit", func(t *testing.T) {
		output, err := executeCommand(rootCmd, "report", "before", "after")
		require.ErrorIs(t, err, errRegressionDetected)
		assert.Contains(t, output, "| BenchmarkLookup |")
		assert.Contains(t, output, "**verdict: regression**")
	})

	t.Run("ok verdict exits cleanly", func(t *testing.T) {
		output, err := executeCommand(rootCmd, "report", "before", "after", "--threshold", "0.9")
		require.NoError(t, err)
		assert.Contains(t, output, "ok")
	})

	t.Run("missing label", func(t *testing.T) {
		_, err := executeCommand(rootCmd, "report", "before", "nope")
		require.Error(t, err)
	})
}

func TestVersionCmd(t *testing.T) {
	output, err := executeCommand(rootCmd, "version")
	require.NoError(t, err)
	assert.Contains(t, output, "benchguard dev")
	assert.Contains(t, output, "commit: none")
}
