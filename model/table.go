package model

import (
	"fmt"
	"strings"
)

// TableFragment is a table whose grid was already resolved upstream. The
// pipeline treats it as one opaque fragment and never re-derives its cells.
type TableFragment struct {
	Rows [][]Cell
	BBox BBox
}

func (t *TableFragment) Kind() FragmentKind { return FragmentKindTable }
func (t *TableFragment) BoundingBox() BBox  { return t.BBox }

// NewTableFragment creates a table with given dimensions covering bbox
func NewTableFragment(bbox BBox, rows, cols int) *TableFragment {
	table := &TableFragment{
		Rows: make([][]Cell, rows),
		BBox: bbox,
	}
	for i := 0; i < rows; i++ {
		table.Rows[i] = make([]Cell, cols)
		for j := 0; j < cols; j++ {
			table.Rows[i][j] = Cell{
				RowSpan: 1,
				ColSpan: 1,
			}
		}
	}
	return table
}

// RowCount returns the number of rows
func (t *TableFragment) RowCount() int {
	return len(t.Rows)
}

// ColCount returns the number of columns in the first row
func (t *TableFragment) ColCount() int {
	if len(t.Rows) == 0 {
		return 0
	}
	return len(t.Rows[0])
}

// GetCell returns the cell at the given row and column (0-indexed)
func (t *TableFragment) GetCell(row, col int) *Cell {
	if row < 0 || row >= len(t.Rows) {
		return nil
	}
	if col < 0 || col >= len(t.Rows[row]) {
		return nil
	}
	return &t.Rows[row][col]
}

// SetCell sets the cell at the given position
func (t *TableFragment) SetCell(row, col int, cell Cell) error {
	if row < 0 || row >= len(t.Rows) {
		return fmt.Errorf("row index %d out of bounds", row)
	}
	if col < 0 || col >= len(t.Rows[row]) {
		return fmt.Errorf("col index %d out of bounds", col)
	}
	t.Rows[row][col] = cell
	return nil
}

// GetText returns the cell texts, tab separated by column and newline
// separated by row
func (t *TableFragment) GetText() string {
	var sb strings.Builder
	for _, row := range t.Rows {
		for j, cell := range row {
			sb.WriteString(cell.Text)
			if j < len(row)-1 {
				sb.WriteString("\t")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// Cell represents a table cell
type Cell struct {
	Text     string
	BBox     BBox
	RowSpan  int
	ColSpan  int
	IsHeader bool
}
