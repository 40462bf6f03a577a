package results

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/dynamic-pathfinding/bench.report/internal/analysis"
	"github.com/dynamic-pathfinding/bench.report/internal/simulate"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "results.db"))
	if err != nil {
		t.Fatalf("OpenDB: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.MigrateUp(); err != nil {
		t.Fatalf("MigrateUp: %v", err)
	}
	return db
}

func TestMigrateUpDown(t *testing.T) {
	db := setupTestDB(t)

	version, dirty, err := db.MigrateVersion()
	if err != nil {
		t.Fatalf("MigrateVersion: %v", err)
	}
	if version != 1 || dirty {
		t.Errorf("version = %d dirty = %v, want 1 clean", version, dirty)
	}

	// Idempotent when already at latest.
	if err := db.MigrateUp(); err != nil {
		t.Errorf("second MigrateUp: %v", err)
	}

	if err := db.MigrateDown(); err != nil {
		t.Fatalf("MigrateDown: %v", err)
	}
	version, _, err = db.MigrateVersion()
	if err != nil {
		t.Fatalf("MigrateVersion after down: %v", err)
	}
	if version != 0 {
		t.Errorf("version after down = %d, want 0", version)
	}
}

func TestInsertAndLoadRun(t *testing.T) {
	db := setupTestDB(t)

	batch := []simulate.Result{
		sampleResult("a_star", 0),
		sampleResult("d_star_lite", 0),
		sampleResult("a_star", 1),
	}
	if err := db.InsertResults("run-1", batch); err != nil {
		t.Fatalf("InsertResults: %v", err)
	}
	if err := db.InsertResults("run-2", batch[:1]); err != nil {
		t.Fatalf("InsertResults run-2: %v", err)
	}

	table, err := db.LoadRun("run-1")
	if err != nil {
		t.Fatalf("LoadRun: %v", err)
	}
	if len(table.Rows) != 3 {
		t.Fatalf("run-1 has %d rows, want 3", len(table.Rows))
	}

	// Loaded rows must validate the same way a results CSV does.
	recs, err := analysis.ValidateTable(table)
	if err != nil {
		t.Fatalf("ValidateTable on loaded run: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("validated %d records, want 3", len(recs))
	}
	if recs[1].Algorithm != "d_star_lite" {
		t.Errorf("row order not preserved: %q", recs[1].Algorithm)
	}
	if recs[0].ExecutionTimeMs != 12 {
		t.Errorf("ExecutionTimeMs = %f, want 12", recs[0].ExecutionTimeMs)
	}

	if _, err := db.LoadRun("missing"); err == nil {
		t.Error("expected error for unknown run id")
	}
}

func TestListRuns(t *testing.T) {
	db := setupTestDB(t)

	if err := db.InsertResults("run-a", []simulate.Result{sampleResult("a_star", 0)}); err != nil {
		t.Fatalf("InsertResults: %v", err)
	}
	if err := db.InsertResults("run-b", []simulate.Result{
		sampleResult("a_star", 0),
		sampleResult("d_star_lite", 0),
	}); err != nil {
		t.Fatalf("InsertResults: %v", err)
	}

	runs, err := db.ListRuns()
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}

	counts := map[string]int{}
	for _, info := range runs {
		counts[info.RunID] = info.Results
	}
	if counts["run-a"] != 1 || counts["run-b"] != 2 {
		t.Errorf("run counts = %v", counts)
	}
}

func TestSinkTagsRun(t *testing.T) {
	db := setupTestDB(t)
	sink := NewSink(db, "sweep-7")

	if err := sink.WriteResults([]simulate.Result{sampleResult("a_star", 0)}); err != nil {
		t.Fatalf("WriteResults: %v", err)
	}

	table, err := db.LoadRun("sweep-7")
	if err != nil {
		t.Fatalf("LoadRun: %v", err)
	}
	if len(table.Rows) != 1 {
		t.Errorf("got %d rows, want 1", len(table.Rows))
	}
}

type failingSink struct{}

func (failingSink) WriteResults([]simulate.Result) error {
	return errors.New("sink failed")
}

func TestMultiSink(t *testing.T) {
	db := setupTestDB(t)
	multi := MultiSink{NewSink(db, "multi-run"), NewSink(db, "multi-copy")}

	if err := multi.WriteResults([]simulate.Result{sampleResult("a_star", 0)}); err != nil {
		t.Fatalf("WriteResults: %v", err)
	}
	for _, runID := range []string{"multi-run", "multi-copy"} {
		if _, err := db.LoadRun(runID); err != nil {
			t.Errorf("LoadRun(%q): %v", runID, err)
		}
	}

	failing := MultiSink{failingSink{}}
	if err := failing.WriteResults(nil); err == nil {
		t.Error("expected error from failing sink")
	}
}
