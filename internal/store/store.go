package store

import "context"

// Table names used by the pipeline. The store treats them as opaque
// namespaces; columns are fixed-position fields defined by the codec in
// rows.go.
const (
	TableStudents       = "Students"
	TableQuizQuestions  = "Quiz_Questions"
	TableQuizResults    = "Quiz_Results"
	TableShortlist      = "Shortlisted_Students"
	TableFinalSelection = "Final_Selection"
)

// RecordStore is a generic row/column-addressed table store, the system of
// record for the pipeline. Cells are addressed in A1 notation; ranges accept
// the forms "A1:C3", "A2:C", "A:C" and a bare cell "B2". Implementations
// return rows as raw strings; typing happens in the codec layer.
type RecordStore interface {
	// Read returns the rows covered by cellRange. Rows are trimmed to the
	// stored data width; rows past the data end are omitted. Readers must
	// treat short rows as having empty trailing cells.
	Read(ctx context.Context, table, cellRange string) ([][]string, error)

	// Write places rows into the table starting at startCell, overwriting
	// whatever the covered cells held.
	Write(ctx context.Context, table string, rows [][]string, startCell string) error

	// UpdateCell sets a single cell.
	UpdateCell(ctx context.Context, table, cell, value string) error
}
