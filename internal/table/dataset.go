// Package table holds the in-memory tabular dataset every decoder produces and
// the classification cascade consumes.
package table

import (
	"strconv"
	"strings"
)

// CellKind distinguishes the three shapes a cell value can take.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellText
	CellNumber
)

// Cell is a single heterogeneous value: text, number, or missing.
type Cell struct {
	Kind   CellKind
	Text   string
	Number float64
}

// Empty returns a missing cell.
func Empty() Cell { return Cell{Kind: CellEmpty} }

// Text returns a text cell.
func Text(s string) Cell { return Cell{Kind: CellText, Text: s} }

// Number returns a numeric cell.
func Number(f float64) Cell { return Cell{Kind: CellNumber, Number: f} }

// IsBlank reports whether the cell is missing or whitespace-only text.
func (c Cell) IsBlank() bool {
	switch c.Kind {
	case CellEmpty:
		return true
	case CellText:
		return strings.TrimSpace(c.Text) == ""
	default:
		return false
	}
}

// String renders the cell the way it would appear in the source file.
func (c Cell) String() string {
	switch c.Kind {
	case CellText:
		return c.Text
	case CellNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	default:
		return ""
	}
}

// Dataset is an ordered sequence of rows over an ordered list of column names.
// Column names are not required to be unique, so cells are addressed by position.
type Dataset struct {
	Columns []string
	Rows    [][]Cell
}

// New creates an empty dataset with the given header.
func New(columns []string) *Dataset {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Dataset{Columns: cols}
}

// AddRow appends a row, padding with empty cells or truncating to the header width.
func (d *Dataset) AddRow(cells ...Cell) {
	row := make([]Cell, len(d.Columns))
	for i := range row {
		if i < len(cells) {
			row[i] = cells[i]
		} else {
			row[i] = Empty()
		}
	}
	d.Rows = append(d.Rows, row)
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Rows)
}

// IsEmpty reports whether the dataset has no rows or no columns.
func (d *Dataset) IsEmpty() bool {
	return d == nil || len(d.Rows) == 0 || len(d.Columns) == 0
}

// Column returns a copy of the cells at column position i.
func (d *Dataset) Column(i int) []Cell {
	out := make([]Cell, len(d.Rows))
	for r, row := range d.Rows {
		if i < len(row) {
			out[r] = row[i]
		}
	}
	return out
}

// IsNumeric reports whether column i already holds numbers: at least one
// numeric cell and no non-blank text.
func (d *Dataset) IsNumeric(i int) bool {
	seen := false
	for _, row := range d.Rows {
		if i >= len(row) {
			continue
		}
		switch {
		case row[i].Kind == CellNumber:
			seen = true
		case !row[i].IsBlank():
			return false
		}
	}
	return seen
}

// Clone returns a deep copy of the dataset.
func (d *Dataset) Clone() *Dataset {
	out := New(d.Columns)
	out.Rows = make([][]Cell, len(d.Rows))
	for i, row := range d.Rows {
		out.Rows[i] = append([]Cell(nil), row...)
	}
	return out
}
