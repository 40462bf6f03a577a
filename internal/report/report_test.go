package report

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dynamic-pathfinding/bench.report/internal/analysis"
)

var reportColumns = []string{
	"algorithm", "grid_size", "num_walls", "num_obstacles", "success",
	"total_moves", "optimal_path_length", "route_efficiency",
	"execution_time_ms", "a_star_calls", "d_star_calls",
	"average_find_path_time_ns", "total_pathfinding_calls",
}

func testReport(t *testing.T) *analysis.Report {
	t.Helper()
	row := func(algo, gridSize, execMs string) []string {
		return []string{algo, gridSize, "5", "5", "true", "20", "18", "0.9", execMs, "1", "0", "42000", "12"}
	}
	table := &analysis.Table{
		Columns: reportColumns,
		Rows: [][]string{
			row("a_star", "10", "5"),
			row("a_star", "10", "7"),
			row("a_star", "20", "9"),
			row("d_star_lite", "10", "6"),
			row("d_star_lite", "10", "8"),
			row("d_star_lite", "20", "11"),
		},
	}
	rep, err := analysis.Run(table, analysis.Options{})
	require.NoError(t, err)
	return rep
}

func TestWriteSummary(t *testing.T) {
	rep := testReport(t)

	t.Run("includes all sections", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteSummary(&buf, rep, "ms"))
		out := buf.String()

		assert.Contains(t, out, rep.RunID)
		assert.Contains(t, out, "a_star:")
		assert.Contains(t, out, "d_star_lite:")
		assert.Contains(t, out, "success rate: 3/3 (100.0%)")
		assert.Contains(t, out, "execution_time_ms")
		assert.Contains(t, out, "=== BY DIFFICULTY ===")
		assert.Contains(t, out, "mean abs diff")
	})

	t.Run("converts millisecond metrics to requested units", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteSummary(&buf, rep, "s"))
		out := buf.String()

		// a_star overall execution mean is 7ms = 0.007s.
		assert.Contains(t, out, "execution_time_ms: mean 0.007s")
		// Unitless metrics are untouched.
		assert.Contains(t, out, "route_efficiency: mean 0.900")
	})

	t.Run("rejects unknown units", func(t *testing.T) {
		var buf bytes.Buffer
		err := WriteSummary(&buf, rep, "hours")
		assert.Error(t, err)
	})

	t.Run("reports missing overlap as text", func(t *testing.T) {
		rep := &analysis.Report{
			AlgorithmA: "a_star",
			AlgorithmB: "d_star_lite",
			Comparisons: []analysis.ComparisonResult{
				{Metric: "execution_time_ms", AlgorithmA: "a_star", AlgorithmB: "d_star_lite", MeanAbsDiff: math.NaN()},
			},
		}
		var buf bytes.Buffer
		require.NoError(t, WriteSummary(&buf, rep, "ms"))
		assert.Contains(t, buf.String(), "no overlapping grid sizes")
		assert.NotContains(t, buf.String(), "NaN")
	})
}

func TestWriteBinCharts(t *testing.T) {
	rep := testReport(t)
	dir := t.TempDir()

	files, err := WriteBinCharts(rep, dir)
	require.NoError(t, err)
	require.Len(t, files, 3)

	for _, file := range files {
		info, err := os.Stat(file)
		require.NoError(t, err, "chart file %s", file)
		assert.Greater(t, info.Size(), int64(0))
	}
	assert.Contains(t, files, filepath.Join(dir, "bins_execution_time_ms.png"))
}

func TestWriteHTMLReport(t *testing.T) {
	rep := testReport(t)
	path := filepath.Join(t.TempDir(), "report.html")

	require.NoError(t, WriteHTMLReport(rep, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "echarts")
	assert.Contains(t, out, "a_star")
	assert.Contains(t, out, "d_star_lite")
	assert.Contains(t, out, "Run Outcomes")
}

func TestGenerateColors(t *testing.T) {
	colors := generateColors(4)
	if len(colors) != 4 {
		t.Fatalf("got %d colors, want 4", len(colors))
	}
	seen := map[[3]uint32]bool{}
	for _, c := range colors {
		r, g, b, _ := c.RGBA()
		key := [3]uint32{r, g, b}
		if seen[key] {
			t.Error("palette colors not distinct")
		}
		seen[key] = true
	}
	if generateColors(0) != nil {
		t.Error("expected nil palette for n=0")
	}
}
