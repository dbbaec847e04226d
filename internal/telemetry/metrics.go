package telemetry

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// SuiteRuns counts runner adapter invocations by phase
	// ("baseline"/"candidate") and result ("ok"/"error").
	SuiteRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "benchguard_suite_runs_total",
		Help: "Benchmark suite executions by phase and result.",
	}, []string{"phase", "result"})

	// SuiteDuration observes wall-clock duration of suite executions, the
	// only long-running step of a harness invocation.
	SuiteDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "benchguard_suite_duration_seconds",
		Help:    "Wall-clock duration of benchmark suite executions.",
		Buckets: prometheus.ExponentialBuckets(1, 4, 8), // 1s .. ~4.5h
	}, []string{"phase"})

	// Verdicts counts comparison outcomes.
	Verdicts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "benchguard_verdicts_total",
		Help: "Comparison verdicts by outcome.",
	}, []string{"verdict"})
)

// StartMetricsServer exposes /metrics on addr. Meant for supervisors that
// scrape progress during long benchmark runs; the harness works fine
// without it.
func StartMetricsServer(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	slog.Info("metrics server listening", slog.String("addr", addr))
	return http.ListenAndServe(addr, mux)
}
