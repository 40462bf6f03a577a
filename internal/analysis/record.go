// Package analysis implements the benchmark comparison pipeline: schema
// validation of raw pathfinding benchmark tables, per-record metric
// derivation, density binning, grouped aggregation, and pairwise
// algorithm comparison. Every stage consumes an immutable input and
// returns a new result; nothing here performs I/O.
package analysis

// Recognized algorithm identifiers. Exactly these two survive schema
// validation; any other label in the algorithm column is dropped.
const (
	AlgoAStar     = "a_star"
	AlgoDStarLite = "d_star_lite"
)

// RecognizedAlgorithms lists the algorithm labels kept after filtering.
var RecognizedAlgorithms = []string{AlgoAStar, AlgoDStarLite}

// Table is an untyped tabular input: a header row naming columns and
// string-valued data rows, as produced by a CSV reader or a results
// database query.
type Table struct {
	Columns []string
	Rows    [][]string
}

// ColumnIndex returns the index of the named column, or -1 if absent.
// Column names are case-sensitive.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// BenchmarkRecord is one raw simulation run.
type BenchmarkRecord struct {
	Algorithm             string
	GridSize              int
	NumWalls              int
	NumObstacles          int
	Success               bool
	TotalMoves            int
	OptimalPathLength     int
	RouteEfficiency       float64
	ExecutionTimeMs       float64
	AverageFindPathTimeNs float64
	TotalPathfindingCalls int
	// Optional columns, zero when absent from the input.
	AStarCalls int
	DStarCalls int
}

// Difficulty is the ordinal difficulty category derived from total density.
type Difficulty string

const (
	DifficultyLow     Difficulty = "Low"
	DifficultyMedium  Difficulty = "Medium"
	DifficultyHigh    Difficulty = "High"
	DifficultyExtreme Difficulty = "Extreme"
	// DifficultyNone marks a record whose total density exceeds 1.0; such
	// a record is a legitimate data point but falls outside the category
	// scale.
	DifficultyNone Difficulty = ""
)

// DerivedRecord is a BenchmarkRecord plus the metrics derived from it.
// Derived fields are pure functions of the raw record.
type DerivedRecord struct {
	BenchmarkRecord

	GridArea           float64
	ObstacleDensity    float64
	WallDensity        float64
	TotalDensity       float64
	CombinedDifficulty int
	Difficulty         Difficulty
	FindPathTimeMs     float64
}

// Metric names a numeric column of a DerivedRecord together with its
// accessor, so binning and aggregation can be parameterised by column.
type Metric struct {
	Name  string
	Value func(*DerivedRecord) float64
}

// Metrics available to the binner and aggregator.
var (
	MetricExecutionTime = Metric{"execution_time_ms", func(r *DerivedRecord) float64 { return r.ExecutionTimeMs }}
	MetricFindPathTime  = Metric{"find_path_time_ms", func(r *DerivedRecord) float64 { return r.FindPathTimeMs }}
	MetricRouteEff      = Metric{"route_efficiency", func(r *DerivedRecord) float64 { return r.RouteEfficiency }}
	MetricTotalMoves    = Metric{"total_moves", func(r *DerivedRecord) float64 { return float64(r.TotalMoves) }}
	MetricTotalCalls    = Metric{"total_pathfinding_calls", func(r *DerivedRecord) float64 { return float64(r.TotalPathfindingCalls) }}
	MetricGridSize      = Metric{"grid_size", func(r *DerivedRecord) float64 { return float64(r.GridSize) }}
	MetricObstacleDens  = Metric{"obstacle_density", func(r *DerivedRecord) float64 { return r.ObstacleDensity }}
	MetricWallDens      = Metric{"wall_density", func(r *DerivedRecord) float64 { return r.WallDensity }}
	MetricTotalDensity  = Metric{"total_density", func(r *DerivedRecord) float64 { return r.TotalDensity }}
	MetricCombinedDiff  = Metric{"combined_difficulty", func(r *DerivedRecord) float64 { return float64(r.CombinedDifficulty) }}
)

// FilterAlgorithm returns the records belonging to one algorithm group.
func FilterAlgorithm(recs []DerivedRecord, algorithm string) []DerivedRecord {
	var out []DerivedRecord
	for _, r := range recs {
		if r.Algorithm == algorithm {
			out = append(out, r)
		}
	}
	return out
}

// SplitBySuccess partitions records into successful and failed runs.
// Only successful runs carry meaningful path-length, efficiency and
// timing semantics.
func SplitBySuccess(recs []DerivedRecord) (successful, failed []DerivedRecord) {
	for _, r := range recs {
		if r.Success {
			successful = append(successful, r)
		} else {
			failed = append(failed, r)
		}
	}
	return successful, failed
}
