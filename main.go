// Command bench-report analyzes pathfinding benchmark results: it
// validates a results CSV or a stored database run, derives the
// difficulty metrics, and writes the text summary, PNG charts and the
// interactive HTML report.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/dynamic-pathfinding/bench.report/internal/analysis"
	"github.com/dynamic-pathfinding/bench.report/internal/report"
	"github.com/dynamic-pathfinding/bench.report/internal/results"
	"github.com/dynamic-pathfinding/bench.report/internal/units"
	"github.com/dynamic-pathfinding/bench.report/internal/version"
)

var (
	showVer   = flag.Bool("version", false, "print version and exit")
	inputFile = flag.String("input", "", "results CSV file to analyze")
	dbFile    = flag.String("db", "bench_results.db", "sqlite results database")
	runID     = flag.String("run", "", "stored run id to analyze from the database")
	listRuns  = flag.Bool("list-runs", false, "list stored runs and exit")
	outDir    = flag.String("outdir", "report", "directory for generated charts")
	binCount  = flag.Int("bins", 0, "boundary point count for density binning (0 uses the default)")
	timeUnits = flag.String("units", units.MS, "display units for time metrics")
	summary   = flag.Bool("summary", true, "write the text summary to stdout")
	writePNG  = flag.Bool("png", true, "write PNG bin charts")
	writeHTML = flag.Bool("html", true, "write the interactive HTML report")
)

func main() {
	flag.Parse()

	if *showVer {
		fmt.Println("bench-report", version.String())
		return
	}

	// Subcommand dispatch before the analysis flow.
	if flag.Arg(0) == "migrate" {
		results.RunMigrateCommand(flag.Args()[1:], *dbFile)
		return
	}

	if !units.IsValid(*timeUnits) {
		log.Fatalf("Invalid units %q (valid: %s)", *timeUnits, units.GetValidUnitsString())
	}

	if *listRuns {
		db, err := results.OpenDB(*dbFile)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer db.Close()

		runs, err := db.ListRuns()
		if err != nil {
			log.Fatalf("Failed to list runs: %v", err)
		}
		if len(runs) == 0 {
			fmt.Println("no stored runs")
			return
		}
		for _, info := range runs {
			fmt.Printf("%s  %6d results  %s\n", info.RunID, info.Results, info.Created)
		}
		return
	}

	table, err := loadTable()
	if err != nil {
		log.Fatalf("Failed to load results: %v", err)
	}

	rep, err := analysis.Run(table, analysis.Options{BinCount: *binCount})
	if err != nil {
		log.Fatalf("Analysis failed: %v", err)
	}

	if *summary {
		if err := report.WriteSummary(os.Stdout, rep, *timeUnits); err != nil {
			log.Fatalf("Failed to write summary: %v", err)
		}
	}

	if *writePNG {
		files, err := report.WriteBinCharts(rep, *outDir)
		if err != nil {
			log.Fatalf("Failed to write charts: %v", err)
		}
		for _, file := range files {
			log.Printf("wrote %s", file)
		}
	}

	if *writeHTML {
		if err := os.MkdirAll(*outDir, 0755); err != nil {
			log.Fatalf("Failed to create output dir: %v", err)
		}
		htmlPath := filepath.Join(*outDir, "report.html")
		if err := report.WriteHTMLReport(rep, htmlPath); err != nil {
			log.Fatalf("Failed to write HTML report: %v", err)
		}
		log.Printf("wrote %s", htmlPath)
	}
}

// loadTable reads the raw results table from the CSV input or the
// results database, whichever is selected.
func loadTable() (*analysis.Table, error) {
	switch {
	case *inputFile != "" && *runID != "":
		return nil, fmt.Errorf("-input and -run are mutually exclusive")

	case *inputFile != "":
		f, err := os.Open(*inputFile)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return results.ReadTable(f)

	case *runID != "":
		db, err := results.OpenDB(*dbFile)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		return db.LoadRun(*runID)

	default:
		return nil, fmt.Errorf("either -input or -run is required")
	}
}
