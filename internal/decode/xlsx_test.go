package decode_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"equitylens/internal/decode"
	"equitylens/internal/table"
)

func workbookBytes(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestXLSX_FirstSheet(t *testing.T) {
	data := workbookBytes(t, [][]interface{}{
		{"Classificação", "Valor"},
		{"Ativo circulante", 100},
		{"Passivo", 40.5},
	})

	ds, err := decode.NewXLSX().Decode(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"Classificação", "Valor"}, ds.Columns)
	require.Equal(t, 2, ds.Len())
	assert.Equal(t, table.Number(40.5), ds.Rows[1][1])
	assert.Equal(t, table.Text("Ativo circulante"), ds.Rows[0][0])
}

func TestXLSX_RejectsNonWorkbook(t *testing.T) {
	_, err := decode.NewXLSX().Decode([]byte("a,b\n1,2\n"))
	assert.Error(t, err)
}

func TestXLS_RejectsNonWorkbook(t *testing.T) {
	reg := decode.NewRegistryWith(nil, []decode.Decoder{decode.NewXLS()})
	_, _, err := reg.Decode([]byte("definitely not a compound document"), "")
	assert.Error(t, err)
}

func TestXLS_OpensWorkbookFromMemory(t *testing.T) {
	for _, data := range [][]byte{nil, []byte("definitely not a compound document")} {
		_, err := decode.NewXLS().Decode(data)
		assert.ErrorContains(t, err, "open workbook")
	}
}
