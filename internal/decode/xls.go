package decode

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/shakinm/xlsReader/xls"

	"equitylens/internal/table"
)

// XLS decodes the first sheet of a legacy BIFF workbook.
type XLS struct{}

// NewXLS creates an .xls decoder.
func NewXLS() *XLS { return &XLS{} }

func (*XLS) Name() string { return "xls" }

func (*XLS) Decode(data []byte) (*table.Dataset, error) {
	book, err := xls.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	sheet, err := book.GetSheet(0)
	if err != nil || sheet == nil {
		return nil, errors.New("workbook has no sheets")
	}

	var records [][]string
	for _, row := range sheet.GetRows() {
		var rec []string
		for _, col := range row.GetCols() {
			rec = append(rec, col.GetString())
		}
		records = append(records, rec)
	}
	return table.FromRecords(records).InferTypes(), nil
}
