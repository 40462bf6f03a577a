// Package report renders analysis output: a plain-text summary, PNG
// charts of the binned series, and an interactive HTML page.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/dynamic-pathfinding/bench.report/internal/analysis"
	"github.com/dynamic-pathfinding/bench.report/internal/units"
)

// isMillisMetric reports whether a metric carries millisecond values
// and should honor the requested display units.
func isMillisMetric(name string) bool {
	return strings.HasSuffix(name, "_time_ms")
}

// formatMetricValue renders one metric value, converting millisecond
// metrics into the requested units.
func formatMetricValue(metric string, v float64, timeUnits string) string {
	if isMillisMetric(metric) {
		return fmt.Sprintf("%.3f%s", units.ConvertMillis(v, timeUnits), timeUnits)
	}
	return fmt.Sprintf("%.3f", v)
}

// WriteSummary writes the plain-text report: per-algorithm success
// breakdown, overall and per-difficulty aggregates, and the pairwise
// comparisons. Millisecond metrics are displayed in timeUnits.
func WriteSummary(w io.Writer, rep *analysis.Report, timeUnits string) error {
	if !units.IsValid(timeUnits) {
		return fmt.Errorf("invalid units %q (valid: %s)", timeUnits, units.GetValidUnitsString())
	}

	fmt.Fprintln(w, "=== PATHFINDING BENCHMARK REPORT ===")
	fmt.Fprintf(w, "run: %s\n", rep.RunID)
	fmt.Fprintf(w, "records: %d (%d successful, %d failed)\n",
		len(rep.Records), len(rep.Successful), len(rep.Failed))
	fmt.Fprintf(w, "algorithms: %s vs %s\n", rep.AlgorithmA, rep.AlgorithmB)

	for _, s := range rep.Summaries {
		fmt.Fprintf(w, "\n%s:\n", s.Algorithm)
		fmt.Fprintf(w, "  success rate: %d/%d (%.1f%%)\n", s.Successes, s.Runs, s.SuccessRate*100)
		for _, st := range rep.Overall {
			if st.Algorithm != s.Algorithm {
				continue
			}
			line := fmt.Sprintf("  %s: mean %s", st.Metric, formatMetricValue(st.Metric, st.Mean, timeUnits))
			if st.HasStd() {
				line += fmt.Sprintf(" (std %s, n=%d)", formatMetricValue(st.Metric, st.Std, timeUnits), st.Count)
			} else {
				line += fmt.Sprintf(" (n=%d, std undefined)", st.Count)
			}
			fmt.Fprintln(w, line)
		}
	}

	if len(rep.ByDifficulty) > 0 {
		fmt.Fprintln(w, "\n=== BY DIFFICULTY ===")
		for _, st := range rep.ByDifficulty {
			fmt.Fprintf(w, "  %s / %s / %s: mean %s (n=%d)\n",
				st.Algorithm, st.Key, st.Metric,
				formatMetricValue(st.Metric, st.Mean, timeUnits), st.Count)
		}
	}

	fmt.Fprintf(w, "\n=== COMPARISON (%s vs %s, by grid size) ===\n", rep.AlgorithmA, rep.AlgorithmB)
	for _, c := range rep.Comparisons {
		if !c.HasOverlap() {
			fmt.Fprintf(w, "  %s: no overlapping grid sizes\n", c.Metric)
			continue
		}
		fmt.Fprintf(w, "  %s: mean abs diff %s over %d shared grid sizes\n",
			c.Metric, formatMetricValue(c.Metric, c.MeanAbsDiff, timeUnits), c.SharedKeys)
	}

	return nil
}
