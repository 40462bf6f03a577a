package analysis

import (
	"github.com/google/uuid"
)

// Options configures one pipeline run.
type Options struct {
	// BinCount is the number of boundary points for density binning;
	// zero means DefaultBinCount.
	BinCount int
	// BinSource is the continuous column the binner partitions; zero
	// value means total density.
	BinSource Metric
	// Metrics are the success-conditioned target metrics to bin,
	// aggregate and compare; nil means execution time, find-path time
	// and route efficiency.
	Metrics []Metric
}

// AlgorithmSummary is the per-algorithm success breakdown.
type AlgorithmSummary struct {
	Algorithm   string
	Runs        int
	Successes   int
	SuccessRate float64
}

// Report is the full output of one analysis run: plain data consumed by
// the text, PNG and HTML rendering collaborators.
type Report struct {
	RunID string

	Records    []DerivedRecord
	Successful []DerivedRecord
	Failed     []DerivedRecord

	AlgorithmA string
	AlgorithmB string
	Summaries  []AlgorithmSummary

	// BinSource names the continuous column the bins partition.
	BinSource string

	// Aggregates over successful runs.
	Overall      []AggregateStat
	ByGridSize   []AggregateStat
	ByDifficulty []AggregateStat

	// Bins maps metric name -> algorithm -> ordered non-empty bins over
	// the configured source column, successful runs only.
	Bins map[string]map[string][]BinPoint

	// Comparisons holds one grid-size-keyed comparison per configured
	// metric, in the metric order of Options.
	Comparisons []ComparisonResult
}

// Run executes the whole pipeline on one tabular input: validation,
// derivation, success split, aggregation, binning and pairwise
// comparison. The pipeline is a pure batch transform; running it twice
// on the same input produces identical results apart from the RunID.
func Run(t *Table, opts Options) (*Report, error) {
	if opts.BinCount == 0 {
		opts.BinCount = DefaultBinCount
	}
	if opts.BinSource.Value == nil {
		opts.BinSource = MetricTotalDensity
	}
	if opts.Metrics == nil {
		opts.Metrics = []Metric{MetricExecutionTime, MetricFindPathTime, MetricRouteEff}
	}

	raw, err := ValidateTable(t)
	if err != nil {
		return nil, err
	}
	derived, err := DeriveAll(raw)
	if err != nil {
		return nil, err
	}

	algoA, algoB, err := AlgorithmPair(derived)
	if err != nil {
		return nil, err
	}

	successful, failed := SplitBySuccess(derived)

	rep := &Report{
		RunID:      uuid.NewString(),
		Records:    derived,
		Successful: successful,
		Failed:     failed,
		AlgorithmA: algoA,
		AlgorithmB: algoB,
		Summaries:  summarize(derived, algoA, algoB),
		BinSource:  opts.BinSource.Name,
		Bins:       make(map[string]map[string][]BinPoint, len(opts.Metrics)),
	}

	rep.Overall = GroupStats(successful, nil, opts.Metrics...)
	rep.ByGridSize = GroupStats(successful, GridSizeKey, opts.Metrics...)
	rep.ByDifficulty = GroupStats(successful, DifficultyKey, opts.Metrics...)

	for _, m := range opts.Metrics {
		rep.Bins[m.Name] = BinSeriesByAlgorithm(successful, opts.BinSource, m, opts.BinCount)

		seriesA := MeanSeries(rep.ByGridSize, algoA, m.Name)
		seriesB := MeanSeries(rep.ByGridSize, algoB, m.Name)
		rep.Comparisons = append(rep.Comparisons, CompareSeries(m.Name, algoA, algoB, seriesA, seriesB))
	}

	return rep, nil
}

func summarize(recs []DerivedRecord, algorithms ...string) []AlgorithmSummary {
	out := make([]AlgorithmSummary, 0, len(algorithms))
	for _, algo := range algorithms {
		s := AlgorithmSummary{Algorithm: algo}
		for i := range recs {
			if recs[i].Algorithm != algo {
				continue
			}
			s.Runs++
			if recs[i].Success {
				s.Successes++
			}
		}
		if s.Runs > 0 {
			s.SuccessRate = float64(s.Successes) / float64(s.Runs)
		}
		out = append(out, s)
	}
	return out
}
