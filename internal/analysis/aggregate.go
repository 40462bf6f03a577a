package analysis

import (
	"math"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/stat"
)

// KeyFunc derives an optional secondary grouping key from a record.
type KeyFunc func(*DerivedRecord) string

// Secondary grouping keys.
func GridSizeKey(r *DerivedRecord) string   { return strconv.Itoa(r.GridSize) }
func DifficultyKey(r *DerivedRecord) string { return string(r.Difficulty) }

// AggregateStat is the count/mean/sample-std of one metric over one
// (algorithm, key) group. Std is NaN when the group holds fewer than
// two records; it is never reported as zero in that case.
type AggregateStat struct {
	Algorithm string
	Key       string // secondary key, empty when grouping by algorithm only
	Metric    string
	Count     int
	Mean      float64
	Std       float64
}

// HasStd reports whether the sample standard deviation is defined.
func (s AggregateStat) HasStd() bool { return s.Count >= 2 }

// GroupStats groups records by algorithm and the optional secondary
// key, and computes one AggregateStat per (group, metric) combination
// present in the data. Empty groups produce no entry. The aggregator is
// success-agnostic: callers requesting success-conditioned metrics must
// pre-filter to successful runs.
//
// Output order is deterministic: algorithm, then key, then metric, all
// ascending.
func GroupStats(recs []DerivedRecord, secondary KeyFunc, metrics ...Metric) []AggregateStat {
	type groupID struct {
		algorithm string
		key       string
	}
	groups := make(map[groupID][]*DerivedRecord)
	for i := range recs {
		id := groupID{algorithm: recs[i].Algorithm}
		if secondary != nil {
			id.key = secondary(&recs[i])
		}
		groups[id] = append(groups[id], &recs[i])
	}

	ids := make([]groupID, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(a, b int) bool {
		if ids[a].algorithm != ids[b].algorithm {
			return ids[a].algorithm < ids[b].algorithm
		}
		return ids[a].key < ids[b].key
	})

	out := make([]AggregateStat, 0, len(ids)*len(metrics))
	for _, id := range ids {
		members := groups[id]
		vals := make([]float64, len(members))
		for _, m := range metrics {
			for i, rec := range members {
				vals[i] = m.Value(rec)
			}
			s := AggregateStat{
				Algorithm: id.algorithm,
				Key:       id.key,
				Metric:    m.Name,
				Count:     len(vals),
				Mean:      stat.Mean(vals, nil),
				Std:       math.NaN(),
			}
			if len(vals) >= 2 {
				s.Std = stat.StdDev(vals, nil)
			}
			out = append(out, s)
		}
	}
	return out
}

// Series maps a shared key to one value per key for a single algorithm,
// the shape the comparative analyzer consumes.
type Series map[string]float64

// MeanSeries extracts the per-key means of one metric for one algorithm
// from a set of aggregate stats.
func MeanSeries(stats []AggregateStat, algorithm, metric string) Series {
	s := make(Series)
	for _, st := range stats {
		if st.Algorithm == algorithm && st.Metric == metric {
			s[st.Key] = st.Mean
		}
	}
	return s
}

// BinSeriesValues converts a binned series into a key/value Series
// keyed by formatted bin center, so binned output can flow through the
// same comparison path as keyed aggregates.
func BinSeriesValues(bins []BinPoint) Series {
	s := make(Series, len(bins))
	for _, b := range bins {
		s[strconv.FormatFloat(b.Center, 'g', -1, 64)] = b.Mean
	}
	return s
}
