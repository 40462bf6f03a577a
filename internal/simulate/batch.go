package simulate

import (
	"fmt"
	"io"
	"log"
	"sort"
	"time"
)

// Sink receives finished results in batches. Implementations append to
// CSV files or insert into the results database.
type Sink interface {
	WriteResults([]Result) error
}

// BatchConfig drives a sweep over wall and obstacle counts. Each
// (walls, obstacles) configuration runs NumSimulations times per
// algorithm, and each simulation id shares its seed across algorithms
// so both planners face the same world.
type BatchConfig struct {
	GridSize       int
	MinWalls       int
	MaxWalls       int
	MinObstacles   int
	MaxObstacles   int
	NumSimulations int
	Algorithms     []string
	Timeout        time.Duration
	Seed           int64
	Quiet          bool
}

func (c BatchConfig) totalConfigurations() int {
	return (c.MaxWalls - c.MinWalls + 1) * (c.MaxObstacles - c.MinObstacles + 1)
}

// algoTally accumulates the per-algorithm running summary.
type algoTally struct {
	runs, successes         int
	sumMoves, sumEfficiency float64
	sumExecMs               float64
}

// Batch sweeps configurations and streams results to a sink.
type Batch struct {
	cfg       BatchConfig
	sink      Sink
	batchSize int
	pending   []Result
	written   int
	tallies   map[string]*algoTally
	started   time.Time
}

func NewBatch(cfg BatchConfig, sink Sink) *Batch {
	return &Batch{
		cfg:       cfg,
		sink:      sink,
		batchSize: 100,
		tallies:   map[string]*algoTally{},
	}
}

// Run executes the sweep. It stops early when the configured timeout
// elapses, flushing whatever has accumulated.
func (b *Batch) Run() error {
	b.started = time.Now()
	totalConfigs := b.cfg.totalConfigurations()
	totalSims := totalConfigs * b.cfg.NumSimulations * len(b.cfg.Algorithms)

	if !b.cfg.Quiet {
		log.Printf("batch sweep: grid=%d walls=%d..%d obstacles=%d..%d sims/config=%d algorithms=%v",
			b.cfg.GridSize, b.cfg.MinWalls, b.cfg.MaxWalls,
			b.cfg.MinObstacles, b.cfg.MaxObstacles, b.cfg.NumSimulations, b.cfg.Algorithms)
		log.Printf("batch sweep: %d configurations, %d simulations total", totalConfigs, totalSims)
	}

	completed := 0
	lastProgress := time.Now()
	seed := b.cfg.Seed

sweep:
	for walls := b.cfg.MinWalls; walls <= b.cfg.MaxWalls; walls++ {
		for obstacles := b.cfg.MinObstacles; obstacles <= b.cfg.MaxObstacles; obstacles++ {
			for simID := 0; simID < b.cfg.NumSimulations; simID++ {
				if b.cfg.Timeout > 0 && time.Since(b.started) > b.cfg.Timeout {
					if !b.cfg.Quiet {
						log.Printf("batch sweep: timeout after %d simulations", completed)
					}
					break sweep
				}

				seed++
				for _, algo := range b.cfg.Algorithms {
					cfg := RunConfig{
						GridSize:     b.cfg.GridSize,
						NumWalls:     walls,
						NumObstacles: obstacles,
						Algorithm:    algo,
						Seed:         seed,
					}
					runStart := time.Now()
					res, err := Run(cfg, simID)
					if err != nil {
						res = FailedResult(cfg, simID, time.Since(runStart))
					}
					if err := b.record(res); err != nil {
						return err
					}
					completed++
				}

				if time.Since(lastProgress) > 10*time.Second {
					elapsed := time.Since(b.started)
					pct := float64(completed) / float64(totalSims) * 100
					log.Printf("batch sweep: %.1f%% (%d/%d) elapsed=%s written=%d",
						pct, completed, totalSims, elapsed.Round(time.Second), b.written)
					lastProgress = time.Now()
				}
			}
		}
	}

	if err := b.flush(); err != nil {
		return err
	}
	if !b.cfg.Quiet {
		log.Printf("batch sweep: completed, %d results in %s", b.written, time.Since(b.started).Round(time.Millisecond))
	}
	return nil
}

func (b *Batch) record(res Result) error {
	t := b.tallies[res.Algorithm]
	if t == nil {
		t = &algoTally{}
		b.tallies[res.Algorithm] = t
	}
	t.runs++
	if res.Success {
		t.successes++
		t.sumMoves += float64(res.TotalMoves)
		t.sumEfficiency += res.RouteEfficiency
		t.sumExecMs += float64(res.ExecutionTimeMs)
	}

	b.pending = append(b.pending, res)
	if len(b.pending) >= b.batchSize {
		return b.flush()
	}
	return nil
}

func (b *Batch) flush() error {
	if len(b.pending) == 0 {
		return nil
	}
	if err := b.sink.WriteResults(b.pending); err != nil {
		return fmt.Errorf("flush results: %w", err)
	}
	b.written += len(b.pending)
	b.pending = b.pending[:0]
	return nil
}

// Written returns how many results have been flushed to the sink.
func (b *Batch) Written() int { return b.written }

// PrintSummary writes the per-algorithm success rates and successful
// run averages accumulated during the sweep.
func (b *Batch) PrintSummary(w io.Writer) {
	if len(b.tallies) == 0 {
		fmt.Fprintln(w, "no results to summarize")
		return
	}

	algos := make([]string, 0, len(b.tallies))
	for algo := range b.tallies {
		algos = append(algos, algo)
	}
	sort.Strings(algos)

	fmt.Fprintln(w, "=== BATCH SWEEP SUMMARY ===")
	for _, algo := range algos {
		t := b.tallies[algo]
		rate := float64(t.successes) / float64(t.runs) * 100
		fmt.Fprintf(w, "\n%s:\n", algo)
		fmt.Fprintf(w, "  success rate: %d/%d (%.1f%%)\n", t.successes, t.runs, rate)
		if t.successes > 0 {
			n := float64(t.successes)
			fmt.Fprintf(w, "  average moves: %.1f\n", t.sumMoves/n)
			fmt.Fprintf(w, "  average efficiency: %.3f\n", t.sumEfficiency/n)
			fmt.Fprintf(w, "  average execution time: %.1fms\n", t.sumExecMs/n)
		}
	}
}
