package store

import (
	"fmt"
	"io"
)

type ResultType int

const (
	QueryResultType ResultType = iota
	CommitResultType
)

type Result interface {
	Type() ResultType
	Display(w io.Writer)
}

// QueryResult holds the outcome of SelectAll: column names, declared
// column types, per-column skip markers, and the formatted data rows.
type QueryResult struct {
	Columns     []string
	Types       []string
	Skip        []bool
	Data        [][]string
	RecordsRead int
}

// CommitResult holds the outcome of a mutation.
type CommitResult struct {
	LastId         uint64 // id of the most recently written record
	RecordsWritten int
}

func (result QueryResult) Type() ResultType {
	return QueryResultType
}

func (result CommitResult) Type() ResultType {
	return CommitResultType
}

// Display renders the result as a fixed-width text table: a header row of
// column names, then one line per data row. Every cell is right-aligned
// to a uniform width derived from the longest column name.
func (result QueryResult) Display(w io.Writer) {
	grid := NewGrid(w)
	grid.Header(result.Columns)
	grid.Mask(result.Skip)
	grid.Bulk(result.Data)
	grid.Render()
}

func (result CommitResult) Display(w io.Writer) {
	fmt.Fprintf(w, "%d record(s) written\n", result.RecordsWritten)
}
