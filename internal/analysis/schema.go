package analysis

import (
	"strconv"
)

// RequiredColumns is the full set of columns a benchmark table must
// carry. Names are case-sensitive and match the CSV header emitted by
// the batch runner.
var RequiredColumns = []string{
	"algorithm",
	"grid_size",
	"num_walls",
	"num_obstacles",
	"success",
	"total_moves",
	"optimal_path_length",
	"route_efficiency",
	"execution_time_ms",
	"average_find_path_time_ns",
	"total_pathfinding_calls",
}

// OptionalColumns default to zero when absent; their presence is
// resolved once here, never re-checked during analysis.
var OptionalColumns = []string{"a_star_calls", "d_star_calls"}

// ValidateTable checks the table against the benchmark schema and
// parses its rows into typed records.
//
// Missing required columns fail with a *SchemaError naming every
// missing column. Cells that do not parse, negative counts and negative
// timings fail with an *InvalidRecordError for the whole input. Records
// whose algorithm is not one of the recognized identifiers are dropped
// silently; if nothing survives the filter the result is an
// *EmptyResultError. Extra columns are ignored.
func ValidateTable(t *Table) ([]BenchmarkRecord, error) {
	var missing []string
	for _, col := range RequiredColumns {
		if t.ColumnIndex(col) < 0 {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}

	recognized := make(map[string]bool, len(RecognizedAlgorithms))
	for _, a := range RecognizedAlgorithms {
		recognized[a] = true
	}

	var records []BenchmarkRecord
	for i, row := range t.Rows {
		p := rowParser{table: t, row: row, rowIdx: i}

		rec := BenchmarkRecord{
			Algorithm:             p.str("algorithm"),
			GridSize:              p.integer("grid_size"),
			NumWalls:              p.count("num_walls"),
			NumObstacles:          p.count("num_obstacles"),
			Success:               p.boolean("success"),
			TotalMoves:            p.count("total_moves"),
			OptimalPathLength:     p.count("optimal_path_length"),
			RouteEfficiency:       p.real("route_efficiency"),
			ExecutionTimeMs:       p.nonNegReal("execution_time_ms"),
			AverageFindPathTimeNs: p.nonNegReal("average_find_path_time_ns"),
			TotalPathfindingCalls: p.count("total_pathfinding_calls"),
			AStarCalls:            p.optionalCount("a_star_calls"),
			DStarCalls:            p.optionalCount("d_star_calls"),
		}
		if p.err != nil {
			return nil, p.err
		}

		if !recognized[rec.Algorithm] {
			continue
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, &EmptyResultError{Stage: "schema validation and algorithm filter"}
	}
	return records, nil
}

// rowParser accumulates the first parse error for a row so record
// construction stays flat. Cells after an error parse as zero values
// and are discarded with the row.
type rowParser struct {
	table  *Table
	row    []string
	rowIdx int
	err    error
}

func (p *rowParser) cell(col string) (string, bool) {
	idx := p.table.ColumnIndex(col)
	if idx < 0 || idx >= len(p.row) {
		return "", false
	}
	return p.row[idx], true
}

func (p *rowParser) fail(col, value, reason string) {
	if p.err == nil {
		p.err = &InvalidRecordError{Row: p.rowIdx, Column: col, Value: value, Reason: reason}
	}
}

func (p *rowParser) str(col string) string {
	v, ok := p.cell(col)
	if !ok {
		p.fail(col, "", "row is shorter than the header")
	}
	return v
}

func (p *rowParser) integer(col string) int {
	v, ok := p.cell(col)
	if !ok {
		p.fail(col, "", "row is shorter than the header")
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.fail(col, v, "not an integer")
		return 0
	}
	return n
}

func (p *rowParser) count(col string) int {
	n := p.integer(col)
	if n < 0 {
		p.fail(col, strconv.Itoa(n), "must be non-negative")
		return 0
	}
	return n
}

func (p *rowParser) optionalCount(col string) int {
	if p.table.ColumnIndex(col) < 0 {
		return 0
	}
	return p.count(col)
}

func (p *rowParser) boolean(col string) bool {
	v, ok := p.cell(col)
	if !ok {
		p.fail(col, "", "row is shorter than the header")
		return false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.fail(col, v, "not a boolean")
		return false
	}
	return b
}

func (p *rowParser) real(col string) float64 {
	v, ok := p.cell(col)
	if !ok {
		p.fail(col, "", "row is shorter than the header")
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.fail(col, v, "not a number")
		return 0
	}
	return f
}

func (p *rowParser) nonNegReal(col string) float64 {
	f := p.real(col)
	if f < 0 {
		p.fail(col, strconv.FormatFloat(f, 'g', -1, 64), "must be non-negative")
		return 0
	}
	return f
}
