// Package results moves benchmark records between the simulator, CSV
// files and the sqlite results database. CSV is the interchange format;
// the database keeps named runs so reports can be rebuilt later.
package results

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/dynamic-pathfinding/bench.report/internal/analysis"
	"github.com/dynamic-pathfinding/bench.report/internal/simulate"
)

// CSVHeader is the column order written by the batch runner. Readers
// locate columns by name, so reordered or extended files still load.
var CSVHeader = []string{
	"simulation_id",
	"algorithm",
	"grid_size",
	"num_walls",
	"num_obstacles",
	"success",
	"total_moves",
	"optimal_path_length",
	"route_efficiency",
	"execution_time_ms",
	"a_star_calls",
	"d_star_calls",
	"average_observe_time_ns",
	"average_find_path_time_ns",
	"total_pathfinding_calls",
}

// ReadTable parses a results CSV into a column-indexed table. Rows are
// kept as raw strings; schema validation happens downstream.
func ReadTable(r io.Reader) (*analysis.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // row width checked during validation

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty input, no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	var rows [][]string
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(rows)+1, err)
		}
		rows = append(rows, row)
	}

	return &analysis.Table{Columns: header, Rows: rows}, nil
}

// resultRow formats one result in CSVHeader order.
func resultRow(res simulate.Result) []string {
	return []string{
		strconv.Itoa(res.SimulationID),
		res.Algorithm,
		strconv.Itoa(res.GridSize),
		strconv.Itoa(res.NumWalls),
		strconv.Itoa(res.NumObstacles),
		strconv.FormatBool(res.Success),
		strconv.Itoa(res.TotalMoves),
		strconv.Itoa(res.OptimalPathLength),
		strconv.FormatFloat(res.RouteEfficiency, 'f', 6, 64),
		strconv.FormatInt(res.ExecutionTimeMs, 10),
		strconv.Itoa(res.AStarCalls),
		strconv.Itoa(res.DStarCalls),
		strconv.FormatInt(res.AverageObserveTimeNs, 10),
		strconv.FormatInt(res.AverageFindPathTimeNs, 10),
		strconv.Itoa(res.TotalPathfindingCalls),
	}
}

// CSVWriter streams results to a writer, emitting the header once.
type CSVWriter struct {
	w *csv.Writer
}

// NewCSVWriter writes the header row and returns a sink over w.
func NewCSVWriter(w io.Writer) (*CSVWriter, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	return &CSVWriter{w: cw}, nil
}

// WriteResults appends a batch of rows and flushes.
func (c *CSVWriter) WriteResults(rs []simulate.Result) error {
	for _, res := range rs {
		if err := c.w.Write(resultRow(res)); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	c.w.Flush()
	return c.w.Error()
}
