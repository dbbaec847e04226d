package runner

import (
	"bufio"
	"io"
	"regexp"
	"strconv"

	"benchguard/internal/measure"
)

// benchLineRegex matches standard go test benchmark output:
// BenchmarkName/case-8   1000000   1043 ns/op   96 B/op   2 allocs/op
// The -N GOMAXPROCS suffix is stripped from the identifier so runs from
// machines with different core counts stay comparable.
var benchLineRegex = regexp.MustCompile(`^(Benchmark[^\s]*?)(?:-\d+)?\s+(\d+)\s+([\d.]+)\s+ns/op`)

// ParseBenchOutput collects ns/op observations per benchmark identifier.
// With -count=N the same identifier appears N times; each occurrence becomes
// one observation in the identifier's sample.
func ParseBenchOutput(r io.Reader) (map[string]measure.Sample, error) {
	samples := make(map[string]measure.Sample)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		matches := benchLineRegex.FindStringSubmatch(scanner.Text())
		if matches == nil {
			continue
		}

		nsPerOp, err := strconv.ParseFloat(matches[3], 64)
		if err != nil {
			continue
		}
		name := matches[1]
		samples[name] = append(samples[name], nsPerOp)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return samples, nil
}
