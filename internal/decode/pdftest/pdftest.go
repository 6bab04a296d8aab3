// Package pdftest builds small single-page PDFs for decoder tests.
package pdftest

import (
	"bytes"
	"fmt"
	"strings"
)

const (
	leftMargin  = 50
	columnWidth = 250
	topLine     = 700
	lineHeight  = 20
)

var literalEscaper = strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)

// Table renders rows as a one-page PDF. Each cell is drawn with its own
// text matrix, one column every 250 points and one row every 20 points from
// the top, using the standard Helvetica font.
func Table(rows [][]string) []byte {
	var content bytes.Buffer
	content.WriteString("BT\n/F1 12 Tf\n")
	for r, row := range rows {
		y := topLine - r*lineHeight
		for c, cell := range row {
			x := leftMargin + c*columnWidth
			fmt.Fprintf(&content, "1 0 0 1 %d %d Tm (%s) Tj\n", x, y, literalEscaper.Replace(cell))
		}
	}
	content.WriteString("ET\n")

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%sendstream", content.Len(), content.String()),
	}

	var out bytes.Buffer
	out.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = out.Len()
		fmt.Fprintf(&out, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := out.Len()
	fmt.Fprintf(&out, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&out, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&out, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return out.Bytes()
}
