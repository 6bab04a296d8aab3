package table

import (
	"math"
	"strconv"
	"strings"
)

// FromRecords builds a dataset from raw string records. The first non-blank
// record is the header; fully blank records are skipped. Blank header cells
// become "Unnamed: i" and repeated names get ".1", ".2" suffixes, the way a
// dataframe reader labels them.
func FromRecords(records [][]string) *Dataset {
	start := -1
	for i, rec := range records {
		if !blankRecord(rec) {
			start = i
			break
		}
	}
	if start < 0 {
		return New(nil)
	}

	header := make([]string, len(records[start]))
	for i, h := range records[start] {
		header[i] = strings.TrimSpace(h)
	}
	width := len(header)
	for _, rec := range records[start+1:] {
		if len(rec) > width {
			width = len(rec)
		}
	}
	for i := len(header); i < width; i++ {
		header = append(header, "")
	}

	d := New(headerNames(header))
	for _, rec := range records[start+1:] {
		if blankRecord(rec) {
			continue
		}
		cells := make([]Cell, len(rec))
		for i, v := range rec {
			if strings.TrimSpace(v) == "" {
				cells[i] = Empty()
			} else {
				cells[i] = Text(v)
			}
		}
		d.AddRow(cells...)
	}
	return d
}

// InferTypes returns a copy in which every column whose non-blank cells all
// parse as plain numbers is converted to numeric cells. Other columns are left
// as text, the way a dataframe reader assigns one dtype per column.
func (d *Dataset) InferTypes() *Dataset {
	out := d.Clone()
	for col := range out.Columns {
		values := make([]float64, len(out.Rows))
		numeric, seen := true, false
		for r, row := range out.Rows {
			c := row[col]
			switch c.Kind {
			case CellNumber:
				values[r], seen = c.Number, true
			case CellText:
				if c.IsBlank() {
					continue
				}
				f, ok := ParseNumber(c.Text)
				if !ok {
					numeric = false
				}
				values[r], seen = f, true
			}
			if !numeric {
				break
			}
		}
		if !numeric || !seen {
			continue
		}
		for r, row := range out.Rows {
			if row[col].IsBlank() {
				row[col] = Empty()
				continue
			}
			row[col] = Number(values[r])
		}
	}
	return out
}

// DropEmpty returns a copy without rows or columns that are entirely blank.
func (d *Dataset) DropEmpty() *Dataset {
	keep := make([]int, 0, len(d.Columns))
	for col := range d.Columns {
		for _, row := range d.Rows {
			if !row[col].IsBlank() {
				keep = append(keep, col)
				break
			}
		}
	}

	header := make([]string, len(keep))
	for i, col := range keep {
		header[i] = d.Columns[col]
	}
	out := New(header)
	for _, row := range d.Rows {
		cells := make([]Cell, len(keep))
		blank := true
		for i, col := range keep {
			cells[i] = row[col]
			if !row[col].IsBlank() {
				blank = false
			}
		}
		if !blank {
			out.AddRow(cells...)
		}
	}
	return out
}

// ParseNumber parses a plain decimal number, rejecting hex, NaN and infinities.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, "xXpP_") {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func headerNames(raw []string) []string {
	names := make([]string, len(raw))
	seen := make(map[string]bool, len(raw))
	for i, h := range raw {
		if h == "" {
			h = "Unnamed: " + strconv.Itoa(i)
		}
		name := h
		for n := 1; seen[name]; n++ {
			name = h + "." + strconv.Itoa(n)
		}
		seen[name] = true
		names[i] = name
	}
	return names
}

func blankRecord(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
