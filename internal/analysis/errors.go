package analysis

import (
	"fmt"
	"strings"
)

// SchemaError reports required columns absent from the input table.
// It always carries the complete list of missing columns, not just the
// first one found.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
}

// InvalidRecordError reports a record that violates a structural
// precondition (an unparseable cell, a negative count, a non-positive
// grid size). One bad record rejects the whole input so aggregate
// statistics are never silently skewed by partial data.
type InvalidRecordError struct {
	Row    int // zero-based data row index
	Column string
	Value  string
	Reason string
}

func (e *InvalidRecordError) Error() string {
	return fmt.Sprintf("row %d: invalid %s %q: %s", e.Row, e.Column, e.Value, e.Reason)
}

// EmptyResultError reports that a pipeline stage produced zero records,
// leaving nothing to compare.
type EmptyResultError struct {
	Stage string
}

func (e *EmptyResultError) Error() string {
	return fmt.Sprintf("no records remain after %s", e.Stage)
}

// UnsupportedComparisonError reports a comparison request over other
// than exactly two algorithm groups.
type UnsupportedComparisonError struct {
	Groups []string
}

func (e *UnsupportedComparisonError) Error() string {
	return fmt.Sprintf("comparison requires exactly two algorithm groups, got %d (%s)",
		len(e.Groups), strings.Join(e.Groups, ", "))
}
