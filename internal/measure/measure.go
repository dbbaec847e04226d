// Package measure defines the benchmark measurement data model shared by the
// store, the runners and the comparator.
package measure

import (
	"fmt"
	"sort"
	"time"
)

// Sample is an ordered sequence of observations (ns/op) for one benchmark
// case within a single run. A valid sample is non-empty and non-negative.
type Sample []float64

// Validate checks the sample invariants.
func (s Sample) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("sample is empty")
	}
	for i, v := range s {
		if v < 0 {
			return fmt.Errorf("sample observation %d is negative: %v", i, v)
		}
	}
	return nil
}

// Median returns the median observation. It is the central tendency used for
// comparisons because it resists outliers caused by system noise.
// Median of an empty sample is 0.
func (s Sample) Median() float64 {
	if len(s) == 0 {
		return 0
	}

	sorted := make([]float64, len(s))
	copy(sorted, s)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// Set is one stored measurement run: every benchmark case of a suite mapped
// to its sample, tagged with the label it is persisted under.
type Set struct {
	Label     string            `json:"label"`
	Suite     string            `json:"suite"`
	Revision  string            `json:"revision,omitempty"` // resolved git commit
	CreatedAt time.Time         `json:"created_at"`
	Samples   map[string]Sample `json:"samples"`
}

// NewSet creates a tagged measurement set with the current timestamp.
func NewSet(label, suite, revision string, samples map[string]Sample) Set {
	return Set{
		Label:     label,
		Suite:     suite,
		Revision:  revision,
		CreatedAt: time.Now().UTC(),
		Samples:   samples,
	}
}

// Validate checks the set and every contained sample.
func (m Set) Validate() error {
	if m.Label == "" {
		return fmt.Errorf("measurement set has no label")
	}
	if len(m.Samples) == 0 {
		return fmt.Errorf("measurement set %q has no samples", m.Label)
	}
	for name, sample := range m.Samples {
		if err := sample.Validate(); err != nil {
			return fmt.Errorf("benchmark %q: %w", name, err)
		}
	}
	return nil
}

// Names returns the benchmark identifiers in sorted order.
func (m Set) Names() []string {
	names := make([]string, 0, len(m.Samples))
	for name := range m.Samples {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
