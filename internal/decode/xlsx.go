package decode

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"

	"equitylens/internal/table"
)

// XLSX decodes the first sheet of an Office Open XML workbook.
type XLSX struct{}

// NewXLSX creates an .xlsx/.xlsm decoder.
func NewXLSX() *XLSX { return &XLSX{} }

func (*XLSX) Name() string { return "xlsx" }

func (*XLSX) Decode(data []byte) (*table.Dataset, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}

	// Raw values keep numbers unformatted so column types can be inferred.
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return table.FromRecords(rows).InferTypes(), nil
}
