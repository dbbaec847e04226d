// Package report renders comparison reports for terminals, CI logs and
// markdown consumers. Rendering is pure: the same report always produces the
// same text, and the machine-checkable verdict is the final line.
package report

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"benchguard/internal/compare"
)

var (
	styleRegressed = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	styleImproved  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	styleMuted     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Options controls cosmetic aspects of Render. Zero value is plain output.
type Options struct {
	Color bool
}

// ColorEnabled reports whether the current terminal supports color output.
// CI logs and pipes get plain text so the verdict line stays grep-able.
func ColorEnabled() bool {
	return termenv.DefaultOutput().Profile != termenv.Ascii
}

// Render writes the full report: every entry, added/removed benchmarks, and
// the verdict as the final line.
func Render(w io.Writer, r *compare.Report, opts Options) error {
	fmt.Fprintf(w, "benchmark comparison: %s vs %s (threshold %s)\n\n",
		r.BaselineLabel, r.CandidateLabel, formatPercent(r.Threshold))

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "BENCHMARK\tBASELINE\tCANDIDATE\tDELTA\tSTATUS")
	for _, e := range r.Entries {
		fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%s\t%s\n",
			e.Name,
			e.BaselineMedian,
			e.CandidateMedian,
			formatDelta(e.Delta),
			status(e.Outcome, opts.Color),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(r.Added) > 0 {
		fmt.Fprintf(w, "\nadded benchmarks (not compared): %s\n", strings.Join(r.Added, ", "))
	}
	if len(r.Removed) > 0 {
		fmt.Fprintf(w, "removed benchmarks (not compared): %s\n", strings.Join(r.Removed, ", "))
	}

	fmt.Fprintf(w, "\nverdict: %s\n", r.Verdict)
	return nil
}

// Markdown renders the report as a markdown document, suitable for PR
// comments, Slack messages and `report --pretty`.
func Markdown(r *compare.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## Benchmark Comparison\n\n")
	fmt.Fprintf(&b, "`%s` vs `%s` at threshold %s\n\n",
		r.BaselineLabel, r.CandidateLabel, formatPercent(r.Threshold))

	b.WriteString("| Benchmark | Baseline | Candidate | Delta | Status |\n")
	b.WriteString("|-----------|----------|-----------|-------|--------|\n")
	for _, e := range r.Entries {
		fmt.Fprintf(&b, "| %s | %.2f | %.2f | %s | %s |\n",
			e.Name, e.BaselineMedian, e.CandidateMedian,
			formatDelta(e.Delta), string(e.Outcome))
	}

	if len(r.Added) > 0 {
		fmt.Fprintf(&b, "\nAdded (not compared): %s\n", strings.Join(r.Added, ", "))
	}
	if len(r.Removed) > 0 {
		fmt.Fprintf(&b, "\nRemoved (not compared): %s\n", strings.Join(r.Removed, ", "))
	}

	fmt.Fprintf(&b, "\n**verdict: %s**\n", r.Verdict)
	return b.String()
}

// Summary is a one-line digest used for notifications.
func Summary(r *compare.Report) string {
	var regressed, improved int
	for _, e := range r.Entries {
		switch e.Outcome {
		case compare.OutcomeRegressed:
			regressed++
		case compare.OutcomeImproved:
			improved++
		}
	}
	return fmt.Sprintf("%s vs %s: verdict %s (%d regressed, %d improved, %d compared)",
		r.BaselineLabel, r.CandidateLabel, r.Verdict, regressed, improved, len(r.Entries))
}

func status(o compare.Outcome, color bool) string {
	s := string(o)
	if !color {
		return s
	}
	switch o {
	case compare.OutcomeRegressed:
		return styleRegressed.Render(s)
	case compare.OutcomeImproved:
		return styleImproved.Render(s)
	case compare.OutcomeInconclusive:
		return styleMuted.Render(s)
	default:
		return s
	}
}

func formatDelta(delta float64) string {
	if math.IsNaN(delta) {
		return "n/a"
	}
	return fmt.Sprintf("%+.2f%%", delta*100)
}

func formatPercent(fraction float64) string {
	s := fmt.Sprintf("%.2f", fraction*100)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s + "%"
}
