package analysis

import (
	"strconv"

	"github.com/dynamic-pathfinding/bench.report/internal/units"
)

// Difficulty category boundaries over total density. Each bucket is
// half-open on the right except the last, which includes 1.0.
const (
	difficultyMediumMin  = 0.1
	difficultyHighMin    = 0.3
	difficultyExtremeMin = 0.5
	difficultyMax        = 1.0
)

// Derive computes the derived metrics for one validated record. A
// non-positive grid size is a precondition violation and returns an
// *InvalidRecordError instead of propagating an infinite density.
func Derive(rec BenchmarkRecord) (DerivedRecord, error) {
	if rec.GridSize <= 0 {
		return DerivedRecord{}, &InvalidRecordError{
			Column: "grid_size",
			Value:  strconv.Itoa(rec.GridSize),
			Reason: "must be positive",
		}
	}

	area := float64(rec.GridSize) * float64(rec.GridSize)
	d := DerivedRecord{
		BenchmarkRecord:    rec,
		GridArea:           area,
		ObstacleDensity:    float64(rec.NumObstacles) / area,
		WallDensity:        float64(rec.NumWalls) / area,
		TotalDensity:       float64(rec.NumObstacles+rec.NumWalls) / area,
		CombinedDifficulty: rec.NumObstacles + rec.NumWalls,
		FindPathTimeMs:     units.NanosToMillis(rec.AverageFindPathTimeNs),
	}
	d.Difficulty = categorize(d.TotalDensity)
	return d, nil
}

// DeriveAll derives every record or fails for the whole input on the
// first precondition violation, carrying the offending row index.
func DeriveAll(recs []BenchmarkRecord) ([]DerivedRecord, error) {
	out := make([]DerivedRecord, 0, len(recs))
	for i, rec := range recs {
		d, err := Derive(rec)
		if err != nil {
			if ire, ok := err.(*InvalidRecordError); ok {
				ire.Row = i
			}
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// categorize maps total density onto the ordinal difficulty scale.
// Densities above 1.0 are legitimate but off the scale, so the category
// stays unset.
func categorize(totalDensity float64) Difficulty {
	switch {
	case totalDensity > difficultyMax:
		return DifficultyNone
	case totalDensity >= difficultyExtremeMin:
		return DifficultyExtreme
	case totalDensity >= difficultyHighMin:
		return DifficultyHigh
	case totalDensity >= difficultyMediumMin:
		return DifficultyMedium
	default:
		return DifficultyLow
	}
}
