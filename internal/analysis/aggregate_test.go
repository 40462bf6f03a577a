package analysis

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func aggRecord(algo string, gridSize int, execMs float64) DerivedRecord {
	return DerivedRecord{
		BenchmarkRecord: BenchmarkRecord{
			Algorithm:       algo,
			GridSize:        gridSize,
			Success:         true,
			ExecutionTimeMs: execMs,
		},
	}
}

func TestGroupStats(t *testing.T) {
	t.Run("count mean and sample std per group", func(t *testing.T) {
		recs := []DerivedRecord{
			aggRecord(AlgoAStar, 10, 5.0),
			aggRecord(AlgoAStar, 10, 7.0),
			aggRecord(AlgoDStarLite, 10, 6.0),
			aggRecord(AlgoDStarLite, 10, 8.0),
		}

		stats := GroupStats(recs, nil, MetricExecutionTime)
		require.Len(t, stats, 2)

		assert.Equal(t, AlgoAStar, stats[0].Algorithm)
		assert.Equal(t, 2, stats[0].Count)
		assert.InDelta(t, 6.0, stats[0].Mean, 1e-12)
		// Sample std of {5,7} is sqrt(2).
		assert.InDelta(t, math.Sqrt2, stats[0].Std, 1e-12)

		assert.Equal(t, AlgoDStarLite, stats[1].Algorithm)
		assert.InDelta(t, 7.0, stats[1].Mean, 1e-12)
	})

	t.Run("std undefined for a group of one", func(t *testing.T) {
		stats := GroupStats([]DerivedRecord{aggRecord(AlgoAStar, 10, 5.0)}, nil, MetricExecutionTime)
		require.Len(t, stats, 1)
		assert.Equal(t, 1, stats[0].Count)
		assert.False(t, stats[0].HasStd())
		assert.True(t, math.IsNaN(stats[0].Std), "std must be NaN, not zero")
	})

	t.Run("empty groups produce no entry", func(t *testing.T) {
		recs := []DerivedRecord{aggRecord(AlgoAStar, 10, 5.0)}
		stats := GroupStats(recs, nil, MetricExecutionTime)
		for _, s := range stats {
			assert.NotEqual(t, AlgoDStarLite, s.Algorithm)
		}
	})

	t.Run("secondary key splits groups deterministically", func(t *testing.T) {
		recs := []DerivedRecord{
			aggRecord(AlgoAStar, 20, 9.0),
			aggRecord(AlgoAStar, 10, 5.0),
			aggRecord(AlgoDStarLite, 10, 6.0),
		}

		stats := GroupStats(recs, GridSizeKey, MetricExecutionTime)
		want := []AggregateStat{
			{Algorithm: AlgoAStar, Key: "10", Metric: "execution_time_ms", Count: 1, Mean: 5.0},
			{Algorithm: AlgoAStar, Key: "20", Metric: "execution_time_ms", Count: 1, Mean: 9.0},
			{Algorithm: AlgoDStarLite, Key: "10", Metric: "execution_time_ms", Count: 1, Mean: 6.0},
		}
		if diff := cmp.Diff(want, stats, cmpopts.IgnoreFields(AggregateStat{}, "Std")); diff != "" {
			t.Errorf("GroupStats mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("one stat per metric per group", func(t *testing.T) {
		recs := []DerivedRecord{
			aggRecord(AlgoAStar, 10, 5.0),
			aggRecord(AlgoDStarLite, 10, 6.0),
		}
		stats := GroupStats(recs, nil, MetricExecutionTime, MetricGridSize)
		assert.Len(t, stats, 4)
	})
}

func TestMeanSeries(t *testing.T) {
	recs := []DerivedRecord{
		aggRecord(AlgoAStar, 10, 5.0),
		aggRecord(AlgoAStar, 10, 7.0),
		aggRecord(AlgoAStar, 20, 9.0),
		aggRecord(AlgoDStarLite, 10, 6.0),
	}
	stats := GroupStats(recs, GridSizeKey, MetricExecutionTime)

	series := MeanSeries(stats, AlgoAStar, "execution_time_ms")
	require.Len(t, series, 2)
	assert.InDelta(t, 6.0, series["10"], 1e-12)
	assert.InDelta(t, 9.0, series["20"], 1e-12)
}
