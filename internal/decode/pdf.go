package decode

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"equitylens/internal/table"
)

var (
	errNoPDFTables = errors.New("could not extract structured tables from PDF")

	// fieldSplitRe separates columns in plain-text lines.
	fieldSplitRe = regexp.MustCompile(`\s{2,}|\t`)
)

// PDF decodes tables from a PDF. It first rebuilds tables from positioned
// text rows and falls back to splitting plain-text lines on wide gaps.
type PDF struct{}

// NewPDF creates a PDF decoder.
func NewPDF() *PDF { return &PDF{} }

func (*PDF) Name() string { return "pdf" }

func (*PDF) Decode(data []byte) (*table.Dataset, error) {
	if !bytes.HasPrefix(bytes.TrimLeft(data, "\x00\t\r\n "), []byte("%PDF-")) {
		return nil, errors.New("missing PDF header")
	}
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	if ds := positionedTable(r); ds != nil {
		return ds, nil
	}
	if ds := plainTextTable(r); ds != nil {
		return ds, nil
	}
	return nil, errNoPDFTables
}

// positionedTable groups each text row into cells separated by horizontal
// gaps and keeps rows with at least two cells.
func positionedTable(r *pdf.Reader) *table.Dataset {
	var records [][]string
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		rows, err := p.GetTextByRow()
		if err != nil {
			continue
		}
		for _, row := range rows {
			if cells := splitRow(row.Content); len(cells) >= 2 {
				records = append(records, cells)
			}
		}
	}
	return recordsToDataset(records)
}

// plainTextTable splits extracted text lines on runs of two or more spaces.
func plainTextTable(r *pdf.Reader) *table.Dataset {
	var records [][]string
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			continue
		}
		records = append(records, splitLines(text)...)
	}
	return recordsToDataset(records)
}

func recordsToDataset(records [][]string) *table.Dataset {
	if len(records) < 2 {
		return nil
	}
	ds := table.FromRecords(records).DropEmpty()
	if ds.IsEmpty() {
		return nil
	}
	return ds
}

// splitLines turns plain text into records, keeping lines with at least two
// fields.
func splitLines(text string) [][]string {
	var records [][]string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || len(strings.Fields(line)) < 2 {
			continue
		}
		parts := fieldSplitRe.Split(line, -1)
		if len(parts) >= 2 {
			records = append(records, parts)
		}
	}
	return records
}

// splitRow joins text fragments left to right, starting a new cell whenever
// the gap to the previous fragment is wider than its font size.
func splitRow(texts pdf.TextHorizontal) []string {
	if len(texts) == 0 {
		return nil
	}
	sorted := make(pdf.TextHorizontal, len(texts))
	copy(sorted, texts)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })

	var cells []string
	var cur strings.Builder
	prevEnd, gap := 0.0, 0.0
	for i, t := range sorted {
		if i > 0 && t.X-prevEnd > gap {
			cells = appendCell(cells, cur.String())
			cur.Reset()
		}
		cur.WriteString(t.S)
		prevEnd = t.X + textWidth(t)
		gap = t.FontSize
		if gap <= 0 {
			gap = 4
		}
	}
	return appendCell(cells, cur.String())
}

func appendCell(cells []string, s string) []string {
	if s = strings.TrimSpace(s); s != "" {
		cells = append(cells, s)
	}
	return cells
}

func textWidth(t pdf.Text) float64 {
	if t.W > 0 {
		return t.W
	}
	return float64(utf8.RuneCountInString(t.S)) * t.FontSize * 0.5
}
