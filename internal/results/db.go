package results

import (
	"database/sql"
	"fmt"
	"strconv"

	_ "modernc.org/sqlite"

	"github.com/dynamic-pathfinding/bench.report/internal/analysis"
	"github.com/dynamic-pathfinding/bench.report/internal/simulate"
)

type DB struct {
	*sql.DB
}

// OpenDB opens the sqlite results database. The schema is managed by
// migrations; callers run MigrateUp before first use.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Concurrent readers while the batch runner inserts.
	if _, err := db.Exec("PRAGMA journal_mode=WAL; PRAGMA busy_timeout=5000;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	return &DB{db}, nil
}

// loadColumns is the column order LoadRun presents to the analyzer.
// It matches CSVHeader so both sources validate identically.
var loadColumns = CSVHeader

// InsertResults stores a batch of results under the given run id in
// one transaction.
func (db *DB) InsertResults(runID string, rs []simulate.Result) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO benchmark_results (
		run_id, simulation_id, algorithm, grid_size, num_walls, num_obstacles,
		success, total_moves, optimal_path_length, route_efficiency,
		execution_time_ms, a_star_calls, d_star_calls,
		average_observe_time_ns, average_find_path_time_ns, total_pathfinding_calls
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, res := range rs {
		if _, err := stmt.Exec(
			runID, res.SimulationID, res.Algorithm, res.GridSize, res.NumWalls, res.NumObstacles,
			res.Success, res.TotalMoves, res.OptimalPathLength, res.RouteEfficiency,
			res.ExecutionTimeMs, res.AStarCalls, res.DStarCalls,
			res.AverageObserveTimeNs, res.AverageFindPathTimeNs, res.TotalPathfindingCalls,
		); err != nil {
			return fmt.Errorf("insert result: %w", err)
		}
	}
	return tx.Commit()
}

// LoadRun reads all rows for a run back as a raw table, in the same
// shape a results CSV parses to.
func (db *DB) LoadRun(runID string) (*analysis.Table, error) {
	rows, err := db.Query(`SELECT
		simulation_id, algorithm, grid_size, num_walls, num_obstacles,
		success, total_moves, optimal_path_length, route_efficiency,
		execution_time_ms, a_star_calls, d_star_calls,
		average_observe_time_ns, average_find_path_time_ns, total_pathfinding_calls
	FROM benchmark_results WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	t := &analysis.Table{Columns: loadColumns}
	for rows.Next() {
		var (
			simID, gridSize, numWalls, numObstacles int
			totalMoves, optimalPathLength           int
			aStarCalls, dStarCalls, totalCalls      int
			execMs, avgObserveNs, avgFindNs         int64
			routeEfficiency                         float64
			algorithm                               string
			success                                 bool
		)
		if err := rows.Scan(
			&simID, &algorithm, &gridSize, &numWalls, &numObstacles,
			&success, &totalMoves, &optimalPathLength, &routeEfficiency,
			&execMs, &aStarCalls, &dStarCalls,
			&avgObserveNs, &avgFindNs, &totalCalls,
		); err != nil {
			return nil, err
		}
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(simID),
			algorithm,
			strconv.Itoa(gridSize),
			strconv.Itoa(numWalls),
			strconv.Itoa(numObstacles),
			strconv.FormatBool(success),
			strconv.Itoa(totalMoves),
			strconv.Itoa(optimalPathLength),
			strconv.FormatFloat(routeEfficiency, 'f', 6, 64),
			strconv.FormatInt(execMs, 10),
			strconv.Itoa(aStarCalls),
			strconv.Itoa(dStarCalls),
			strconv.FormatInt(avgObserveNs, 10),
			strconv.FormatInt(avgFindNs, 10),
			strconv.Itoa(totalCalls),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(t.Rows) == 0 {
		return nil, fmt.Errorf("run %q has no results", runID)
	}
	return t, nil
}

// RunInfo summarizes one stored run.
type RunInfo struct {
	RunID   string
	Results int
	Created string
}

// ListRuns returns stored runs, newest first.
func (db *DB) ListRuns() ([]RunInfo, error) {
	rows, err := db.Query(`SELECT run_id, COUNT(*), MIN(created_at)
		FROM benchmark_results GROUP BY run_id ORDER BY MIN(created_at) DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []RunInfo
	for rows.Next() {
		var info RunInfo
		if err := rows.Scan(&info.RunID, &info.Results, &info.Created); err != nil {
			return nil, err
		}
		runs = append(runs, info)
	}
	return runs, rows.Err()
}

// Sink adapts the database to the batch runner's sink interface,
// tagging every insert with the sweep's run id.
type Sink struct {
	db    *DB
	runID string
}

func NewSink(db *DB, runID string) *Sink {
	return &Sink{db: db, runID: runID}
}

func (s *Sink) WriteResults(rs []simulate.Result) error {
	return s.db.InsertResults(s.runID, rs)
}

// MultiSink fans results out to several sinks, typically CSV plus the
// database.
type MultiSink []simulate.Sink

func (m MultiSink) WriteResults(rs []simulate.Result) error {
	for _, s := range m {
		if err := s.WriteResults(rs); err != nil {
			return err
		}
	}
	return nil
}
