package analysis

import (
	"gonum.org/v1/gonum/stat"
)

// DefaultBinCount is the number of boundary points used when the caller
// does not specify one, giving DefaultBinCount-1 equal-width intervals.
const DefaultBinCount = 20

// BinPoint is one non-empty density bin: the interval midpoint used as
// the plotted x-value, the mean of the target metric over the records
// assigned to the interval, and how many records contributed.
type BinPoint struct {
	Center float64
	Mean   float64
	Count  int
}

// BinSeries partitions the source metric's observed range into
// equal-width intervals and reduces the target metric to one mean per
// non-empty interval, ordered by bin center ascending.
//
// If every record holds the same source value the result is a single
// degenerate bin centered on that value. Bins with no assigned records
// are omitted entirely rather than emitted as zero or NaN. The binner
// is intended to be invoked once per algorithm group; the two groups
// may legitimately produce different bin sets over the same nominal
// range.
func BinSeries(recs []DerivedRecord, source, target Metric, n int) []BinPoint {
	if len(recs) == 0 {
		return nil
	}
	if n < 2 {
		n = DefaultBinCount
	}

	minVal := source.Value(&recs[0])
	maxVal := minVal
	for i := range recs {
		v := source.Value(&recs[i])
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}

	// Degenerate range: one bin centered at the constant value.
	if minVal == maxVal {
		vals := make([]float64, len(recs))
		for i := range recs {
			vals[i] = target.Value(&recs[i])
		}
		return []BinPoint{{Center: minVal, Mean: stat.Mean(vals, nil), Count: len(vals)}}
	}

	intervals := n - 1
	width := (maxVal - minVal) / float64(intervals)
	buckets := make([][]float64, intervals)
	for i := range recs {
		v := source.Value(&recs[i])
		idx := int((v - minVal) / width)
		if idx >= intervals {
			// The maximum lands in the last interval, closed on its
			// upper bound.
			idx = intervals - 1
		}
		buckets[idx] = append(buckets[idx], target.Value(&recs[i]))
	}

	out := make([]BinPoint, 0, intervals)
	for i, vals := range buckets {
		if len(vals) == 0 {
			continue
		}
		center := minVal + (float64(i)+0.5)*width
		out = append(out, BinPoint{Center: center, Mean: stat.Mean(vals, nil), Count: len(vals)})
	}
	return out
}

// BinSeriesByAlgorithm bins each recognized algorithm group
// independently over the same source and target metrics.
func BinSeriesByAlgorithm(recs []DerivedRecord, source, target Metric, n int) map[string][]BinPoint {
	out := make(map[string][]BinPoint, len(RecognizedAlgorithms))
	for _, algo := range RecognizedAlgorithms {
		group := FilterAlgorithm(recs, algo)
		if len(group) == 0 {
			continue
		}
		out[algo] = BinSeries(group, source, target, n)
	}
	return out
}
