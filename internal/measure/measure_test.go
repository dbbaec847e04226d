package measure

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSampleMedian(t *testing.T) {
	tests := []struct {
		name     string
		sample   Sample
		expected float64
	}{
		{"odd length", Sample{100, 102, 98}, 100},
		{"even length", Sample{10, 20, 30, 40}, 25},
		{"single", Sample{42}, 42},
		{"unsorted", Sample{150, 148, 152}, 150},
		{"empty", Sample{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.sample.Median())
		})
	}
}

func TestSampleMedianDoesNotMutate(t *testing.T) {
	s := Sample{3, 1, 2}
	_ = s.Median()
	assert.Equal(t, Sample{3, 1, 2}, s)
}

func TestSampleValidate(t *testing.T) {
	assert.NoError(t, Sample{0, 1, 2}.Validate())
	assert.Error(t, Sample{}.Validate())
	assert.Error(t, Sample{1, -0.5}.Validate())
}

func TestSetValidate(t *testing.T) {
	set := NewSet("before", "lookup", "abc123", map[string]Sample{
		"BenchmarkLookup": {100, 102, 98},
	})
	assert.NoError(t, set.Validate())
	assert.False(t, set.CreatedAt.IsZero())

	noLabel := set
	noLabel.Label = ""
	assert.Error(t, noLabel.Validate())

	empty := NewSet("before", "lookup", "", nil)
	assert.Error(t, empty.Validate())

	bad := NewSet("before", "lookup", "", map[string]Sample{"B": {}})
	assert.Error(t, bad.Validate())
}

func TestSetNamesSorted(t *testing.T) {
	set := NewSet("after", "lookup", "", map[string]Sample{
		"BenchmarkZ": {1},
		"BenchmarkA": {1},
		"BenchmarkM": {1},
	})
	assert.Equal(t, []string{"BenchmarkA", "BenchmarkM", "BenchmarkZ"}, set.Names())
}
