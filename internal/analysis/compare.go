package analysis

import (
	"math"
	"sort"
)

// ComparisonResult is the outcome of comparing one metric between the
// two algorithm groups at a shared key kind (grid size, bin center, or
// a single overall value).
//
// When SharedKeys is zero the two series had no keys in common and
// MeanAbsDiff is NaN; callers must report "no overlap" rather than a
// number.
type ComparisonResult struct {
	Metric      string
	AlgorithmA  string
	AlgorithmB  string
	SharedKeys  int
	MeanAbsDiff float64
}

// HasOverlap reports whether the compared series shared any keys.
func (c ComparisonResult) HasOverlap() bool { return c.SharedKeys > 0 }

// AlgorithmPair returns the two algorithm groups present in the record
// set, ordered ascending. A record set with other than exactly two
// distinct algorithm labels fails with *UnsupportedComparisonError: the
// pipeline is designed for pairwise comparison only.
func AlgorithmPair(recs []DerivedRecord) (a, b string, err error) {
	seen := make(map[string]bool)
	var groups []string
	for i := range recs {
		if !seen[recs[i].Algorithm] {
			seen[recs[i].Algorithm] = true
			groups = append(groups, recs[i].Algorithm)
		}
	}
	if len(groups) != 2 {
		sort.Strings(groups)
		return "", "", &UnsupportedComparisonError{Groups: groups}
	}
	sort.Strings(groups)
	return groups[0], groups[1], nil
}

// CompareSeries intersects the keys of two per-algorithm series and
// returns the mean of the absolute elementwise differences over that
// intersection. Keys present in only one series are ignored.
func CompareSeries(metric, algorithmA, algorithmB string, a, b Series) ComparisonResult {
	res := ComparisonResult{
		Metric:      metric,
		AlgorithmA:  algorithmA,
		AlgorithmB:  algorithmB,
		MeanAbsDiff: math.NaN(),
	}

	var sum float64
	for key, va := range a {
		vb, ok := b[key]
		if !ok {
			continue
		}
		sum += math.Abs(va - vb)
		res.SharedKeys++
	}
	if res.SharedKeys > 0 {
		res.MeanAbsDiff = sum / float64(res.SharedKeys)
	}
	return res
}

// ComparePointwise compares two raw per-record value sequences
// positionally over the shorter sequence's length.
//
// Positional pairing does not guarantee the two entries describe
// comparable runs when the sequences differ in length or were
// materialised in different orders; there is no common identifier in
// the data model to join on, so this behaviour is preserved as a
// documented limitation rather than silently corrected.
func ComparePointwise(metric, algorithmA, algorithmB string, a, b []float64) ComparisonResult {
	res := ComparisonResult{
		Metric:      metric,
		AlgorithmA:  algorithmA,
		AlgorithmB:  algorithmB,
		MeanAbsDiff: math.NaN(),
	}

	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if n == 0 {
		return res
	}

	var sum float64
	for i := 0; i < n; i++ {
		sum += math.Abs(a[i] - b[i])
	}
	res.SharedKeys = n
	res.MeanAbsDiff = sum / float64(n)
	return res
}
