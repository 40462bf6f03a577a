package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scenarioTable is the worked four-record scenario: two runs per
// algorithm on a 10x10 grid with 5 walls and 5 obstacles, execution
// times [5,7] for a_star and [6,8] for d_star_lite.
func scenarioTable() *Table {
	row := func(algo, execMs string) []string {
		return []string{algo, "10", "5", "5", "true", "20", "18", "0.9", execMs, "1", "0", "42000", "12"}
	}
	return &Table{
		Columns: benchColumns,
		Rows: [][]string{
			row(AlgoAStar, "5"),
			row(AlgoAStar, "7"),
			row(AlgoDStarLite, "6"),
			row(AlgoDStarLite, "8"),
		},
	}
}

func TestRun(t *testing.T) {
	t.Run("worked scenario", func(t *testing.T) {
		rep, err := Run(scenarioTable(), Options{})
		require.NoError(t, err)

		require.Len(t, rep.Records, 4)
		for _, rec := range rep.Records {
			assert.InDelta(t, 100.0, rec.GridArea, 1e-12)
			assert.InDelta(t, 0.10, rec.TotalDensity, 1e-12)
			assert.Equal(t, DifficultyMedium, rec.Difficulty)
		}

		assert.Equal(t, AlgoAStar, rep.AlgorithmA)
		assert.Equal(t, AlgoDStarLite, rep.AlgorithmB)
		assert.Len(t, rep.Successful, 4)
		assert.Empty(t, rep.Failed)

		// All four records share grid size 10, so the comparison has one
		// shared key: |mean([5,7]) - mean([6,8])| = 1.
		var execCmp *ComparisonResult
		for i := range rep.Comparisons {
			if rep.Comparisons[i].Metric == "execution_time_ms" {
				execCmp = &rep.Comparisons[i]
			}
		}
		require.NotNil(t, execCmp)
		assert.Equal(t, 1, execCmp.SharedKeys)
		assert.InDelta(t, 1.0, execCmp.MeanAbsDiff, 1e-12)
	})

	t.Run("summaries count successes per algorithm", func(t *testing.T) {
		tbl := scenarioTable()
		tbl.Rows[1][4] = "false"

		rep, err := Run(tbl, Options{})
		require.NoError(t, err)
		require.Len(t, rep.Summaries, 2)

		assert.Equal(t, 2, rep.Summaries[0].Runs)
		assert.Equal(t, 1, rep.Summaries[0].Successes)
		assert.InDelta(t, 0.5, rep.Summaries[0].SuccessRate, 1e-12)
		assert.InDelta(t, 1.0, rep.Summaries[1].SuccessRate, 1e-12)
	})

	t.Run("bins cover every configured metric and both algorithms", func(t *testing.T) {
		rep, err := Run(scenarioTable(), Options{})
		require.NoError(t, err)

		for _, m := range []string{"execution_time_ms", "find_path_time_ms", "route_efficiency"} {
			require.Contains(t, rep.Bins, m)
			assert.Contains(t, rep.Bins[m], AlgoAStar)
			assert.Contains(t, rep.Bins[m], AlgoDStarLite)
		}
	})

	t.Run("single algorithm input is unsupported", func(t *testing.T) {
		tbl := scenarioTable()
		tbl.Rows = tbl.Rows[:2]

		_, err := Run(tbl, Options{})
		var cmpErr *UnsupportedComparisonError
		assert.ErrorAs(t, err, &cmpErr)
	})

	t.Run("repeated runs produce identical statistics", func(t *testing.T) {
		rep1, err := Run(scenarioTable(), Options{})
		require.NoError(t, err)
		rep2, err := Run(scenarioTable(), Options{})
		require.NoError(t, err)

		assert.Equal(t, rep1.Overall, rep2.Overall)
		assert.Equal(t, rep1.ByGridSize, rep2.ByGridSize)
		assert.Equal(t, rep1.Bins, rep2.Bins)
		assert.Equal(t, rep1.Comparisons, rep2.Comparisons)
		assert.NotEqual(t, rep1.RunID, rep2.RunID)
	})
}
