package store

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/xuri/excelize/v2"
)

// MemoryStore is an in-memory RecordStore. It backs tests and local runs;
// a deployment against a real spreadsheet backend supplies its own
// implementation of the same port.
type MemoryStore struct {
	mu     sync.RWMutex
	tables map[string][][]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tables: make(map[string][][]string)}
}

func (s *MemoryStore) Read(ctx context.Context, table, cellRange string) ([][]string, error) {
	startCol, startRow, endCol, endRow, err := parseRange(cellRange)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	grid := s.tables[table]
	if endRow == 0 || endRow > len(grid) {
		endRow = len(grid)
	}
	if startRow > endRow {
		return nil, nil
	}

	var out [][]string
	for r := startRow; r <= endRow; r++ {
		row := grid[r-1]
		last := endCol
		if last == 0 || last > len(row) {
			last = len(row)
		}
		if startCol > last {
			out = append(out, []string{})
			continue
		}
		cells := make([]string, last-startCol+1)
		copy(cells, row[startCol-1:last])
		out = append(out, cells)
	}
	return out, nil
}

func (s *MemoryStore) Write(ctx context.Context, table string, rows [][]string, startCell string) error {
	col, row, err := excelize.CellNameToCoordinates(startCell)
	if err != nil {
		return fmt.Errorf("invalid start cell %q: %w", startCell, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, cells := range rows {
		for j, value := range cells {
			s.setCell(table, col+j, row+i, value)
		}
	}
	return nil
}

func (s *MemoryStore) UpdateCell(ctx context.Context, table, cell, value string) error {
	col, row, err := excelize.CellNameToCoordinates(cell)
	if err != nil {
		return fmt.Errorf("invalid cell %q: %w", cell, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.setCell(table, col, row, value)
	return nil
}

// setCell grows the grid as needed. Callers hold the write lock.
func (s *MemoryStore) setCell(table string, col, row int, value string) {
	grid := s.tables[table]
	for len(grid) < row {
		grid = append(grid, []string{})
	}
	cells := grid[row-1]
	for len(cells) < col {
		cells = append(cells, "")
	}
	cells[col-1] = value
	grid[row-1] = cells
	s.tables[table] = grid
}

// parseRange resolves the supported range forms into 1-based coordinates.
// endCol/endRow of 0 mean "to the end of the data".
func parseRange(cellRange string) (startCol, startRow, endCol, endRow int, err error) {
	parts := strings.SplitN(cellRange, ":", 2)

	startCol, startRow, err = parseRangePart(parts[0])
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("invalid range %q: %w", cellRange, err)
	}
	if startCol == 0 {
		return 0, 0, 0, 0, fmt.Errorf("invalid range %q: start must name a column", cellRange)
	}
	if startRow == 0 {
		startRow = 1
	}

	if len(parts) == 1 {
		// Bare cell: a single-cell range.
		return startCol, startRow, startCol, startRow, nil
	}

	endCol, endRow, err = parseRangePart(parts[1])
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("invalid range %q: %w", cellRange, err)
	}
	return startCol, startRow, endCol, endRow, nil
}

// parseRangePart accepts "C3" or a bare column "C"; a bare column leaves the
// row open (0).
func parseRangePart(part string) (col, row int, err error) {
	if part == "" {
		return 0, 0, fmt.Errorf("empty range part")
	}
	if isLettersOnly(part) {
		col, err = excelize.ColumnNameToNumber(part)
		return col, 0, err
	}
	return excelize.CellNameToCoordinates(part)
}

func isLettersOnly(s string) bool {
	for _, r := range s {
		if (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') {
			return false
		}
	}
	return true
}
