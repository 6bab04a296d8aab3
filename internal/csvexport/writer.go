package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"equitylens/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the history CSV header row (10 columns).
var columns = []string{
	"Analysis ID",
	"File Name",
	"File Type",
	"Source",
	"Method",
	"Total Assets",
	"Total Liabilities",
	"Equity",
	"Warning",
	"Created At",
}

// detailColumns defines the header row of a single analysis' detail export.
var detailColumns = []string{
	"Classification",
	"Description",
	"Value",
}

// Writer wraps csv.Writer for exporting analyses as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the 10-column history header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteAnalyses converts a batch of analyses to CSV rows and writes them.
func (w *Writer) WriteAnalyses(analyses []domain.Analysis) error {
	for i := range analyses {
		if err := w.csv.Write(analysisToRow(&analyses[i])); err != nil {
			return err
		}
	}
	return nil
}

// WriteDetail writes the detail header followed by one row per classified
// line of a. Totals close the export so the file reconciles on its own.
func (w *Writer) WriteDetail(a *domain.Analysis) error {
	if err := w.csv.Write(detailColumns); err != nil {
		return err
	}
	for _, d := range a.Result.Detail {
		row := []string{string(d.Classification), d.Description, formatMoney(d.Value)}
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	totals := [][]string{
		{"total_assets", "", formatMoney(a.Result.TotalAssets)},
		{"total_liabilities", "", formatMoney(a.Result.TotalLiabilities)},
		{"equity", "", formatMoney(a.Result.Equity)},
	}
	return w.csv.WriteAll(totals)
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func analysisToRow(a *domain.Analysis) []string {
	return []string{
		a.ID.String(),
		a.FileName,
		string(a.FileType),
		string(a.Source),
		string(a.Result.Method),
		formatMoney(a.Result.TotalAssets),
		formatMoney(a.Result.TotalLiabilities),
		formatMoney(a.Result.Equity),
		a.Result.Warning,
		a.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" {
		s = "export"
	}
	return s
}

// BuildFilename returns a sanitized filename for Content-Disposition header.
// Format: {sanitized_name}_{YYYY-MM-DD}.csv
func BuildFilename(name string, at time.Time) string {
	return fmt.Sprintf("%s_%s.csv", SanitizeFilename(name), at.Format("2006-01-02"))
}
