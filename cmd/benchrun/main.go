// Command benchrun sweeps pathfinding benchmark configurations and
// streams one result row per simulation to a CSV file and, optionally,
// the sqlite results database.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"

	"github.com/dynamic-pathfinding/bench.report/internal/config"
	"github.com/dynamic-pathfinding/bench.report/internal/results"
	"github.com/dynamic-pathfinding/bench.report/internal/simulate"
	"github.com/dynamic-pathfinding/bench.report/internal/version"
)

var (
	showVer      = flag.Bool("version", false, "print version and exit")
	configFile   = flag.String("config", "", "sweep config JSON file")
	gridSize     = flag.Int("grid-size", 0, "grid side length (overrides config)")
	minWalls     = flag.Int("min-walls", -1, "minimum wall count (overrides config)")
	maxWalls     = flag.Int("max-walls", -1, "maximum wall count (overrides config)")
	minObstacles = flag.Int("min-obstacles", -1, "minimum obstacle count (overrides config)")
	maxObstacles = flag.Int("max-obstacles", -1, "maximum obstacle count (overrides config)")
	numSims      = flag.Int("sims", 0, "simulations per configuration (overrides config)")
	seed         = flag.Int64("seed", 0, "base seed; 0 derives one from the clock")
	outputFile   = flag.String("out", "", "output CSV path (overrides config)")
	dbFile       = flag.String("db", "", "also store results in this sqlite database")
	runName      = flag.String("run", "", "run id for database storage; default is a fresh UUID")
	quiet        = flag.Bool("quiet", false, "suppress progress logging")
)

func main() {
	flag.Parse()

	if *showVer {
		fmt.Println("benchrun", version.String())
		return
	}

	cfg := config.EmptySweepConfig()
	if *configFile != "" {
		loaded, err := config.LoadSweepConfig(*configFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}

	batchCfg := simulate.BatchConfig{
		GridSize:       cfg.GetGridSize(),
		MinWalls:       cfg.GetMinWalls(),
		MaxWalls:       cfg.GetMaxWalls(),
		MinObstacles:   cfg.GetMinObstacles(),
		MaxObstacles:   cfg.GetMaxObstacles(),
		NumSimulations: cfg.GetNumSimulations(),
		Algorithms:     cfg.GetAlgorithms(),
		Timeout:        cfg.GetTimeout(),
		Seed:           cfg.GetSeed(),
		Quiet:          *quiet,
	}
	applyFlagOverrides(&batchCfg)

	outPath := cfg.GetOutputFile()
	if *outputFile != "" {
		outPath = *outputFile
	}

	runID := *runName
	if runID == "" {
		runID = uuid.NewString()
	}

	out, err := os.Create(outPath)
	if err != nil {
		log.Fatalf("Failed to create output file: %v", err)
	}
	defer out.Close()

	csvSink, err := results.NewCSVWriter(out)
	if err != nil {
		log.Fatalf("Failed to initialize CSV output: %v", err)
	}

	sink := results.MultiSink{csvSink}
	if *dbFile != "" {
		db, err := results.OpenDB(*dbFile)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer db.Close()
		if err := db.MigrateUp(); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		sink = append(sink, results.NewSink(db, runID))
		log.Printf("storing results under run %s in %s", runID, *dbFile)
	}

	batch := simulate.NewBatch(batchCfg, sink)
	if err := batch.Run(); err != nil {
		log.Fatalf("Batch sweep failed: %v", err)
	}
	log.Printf("wrote %d results to %s", batch.Written(), outPath)

	if !*quiet {
		batch.PrintSummary(os.Stdout)
	}
}

// applyFlagOverrides lets explicit flags win over the config file.
func applyFlagOverrides(batchCfg *simulate.BatchConfig) {
	if *gridSize > 0 {
		batchCfg.GridSize = *gridSize
	}
	if *minWalls >= 0 {
		batchCfg.MinWalls = *minWalls
	}
	if *maxWalls >= 0 {
		batchCfg.MaxWalls = *maxWalls
	}
	if *minObstacles >= 0 {
		batchCfg.MinObstacles = *minObstacles
	}
	if *maxObstacles >= 0 {
		batchCfg.MaxObstacles = *maxObstacles
	}
	if *numSims > 0 {
		batchCfg.NumSimulations = *numSims
	}
	if *seed != 0 {
		batchCfg.Seed = *seed
	}
}
