package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"benchguard/internal/measure"
)

func TestListCmd(t *testing.T) {
	s := newMemStore()
	defer withFakes(s, nil, nil, nil)()

	t.Run("empty store", func(t *testing.T) {
		output, err := executeCommand(rootCmd, "list")
		require.NoError(t, err)
		assert.Contains(t, output, "No baselines stored.")
	})

	t.Run("labels with metadata", func(t *testing.T) {
		set := measure.NewSet("before", "lookup", "0123456789abcdef0123", map[string]measure.Sample{
			"BenchmarkLookup/hash":  {100},
			"BenchmarkLookup/array": {50},
		})
		set.CreatedAt = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
		require.NoError(t, s.Put(context.Background(), set))
		seedStore(t, s, "after", map[string]measure.Sample{"BenchmarkLookup/hash": {110}})

		output, err := executeCommand(rootCmd, "ls")
		require.NoError(t, err)
		assert.Contains(t, output, "LABEL")
		assert.Contains(t, output, "before")
		assert.Contains(t, output, "after")
		assert.Contains(t, output, "lookup")
		// Revisions are shortened to 12 characters.
		assert.Contains(t, output, "0123456789ab")
		assert.NotContains(t, output, "0123456789abcdef")
		assert.Contains(t, output, "2026-08-30 12:00:00")
	})
}

func TestShowCmd(t *testing.T) {
	s := newMemStore()
	seedStore(t, s, "before", map[string]measure.Sample{
		"BenchmarkLookup/hash": {100, 102, 98},
	})
	defer withFakes(s, nil, nil, nil)()

	t.Run("table output", func(t *testing.T) {
		output, err := executeCommand(rootCmd, "show", "before")
		require.NoError(t, err)
		assert.Contains(t, output, "Label:    before")
		assert.Contains(t, output, "Suite:    lookup")
		assert.Contains(t, output, "BenchmarkLookup/hash")
		assert.Contains(t, output, "100.00")
	})

	t.Run("json output", func(t *testing.T) {
		output, err := executeCommand(rootCmd, "show", "before", "--json")
		require.NoError(t, err)
		assert.Contains(t, output, `"label": "before"`)
		assert.Contains(t, output, `"BenchmarkLookup/hash"`)
	})

	t.Run("unknown label", func(t *testing.T) {
		_, err := executeCommand(rootCmd, "show", "nope")
		require.Error(t, err)
	})
}
