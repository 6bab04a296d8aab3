package decode

import (
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"equitylens/internal/decode/pdftest"
	"equitylens/internal/table"
)

var balanceRows = [][]string{
	{"Conta", "Valor"},
	{"Caixa ativo", "1000"},
	{"Fornecedores passivo", "400"},
}

func TestSplitRow_GapsStartNewCells(t *testing.T) {
	texts := pdf.TextHorizontal{
		{X: 200, W: 20, FontSize: 10, S: "100"},
		{X: 10, W: 30, FontSize: 10, S: "Caixa"},
		{X: 40, W: 5, FontSize: 10, S: " "},
		{X: 45, W: 30, FontSize: 10, S: "geral"},
	}
	assert.Equal(t, []string{"Caixa geral", "100"}, splitRow(texts))
}

func TestSplitRow_EstimatesWidthWithoutW(t *testing.T) {
	texts := pdf.TextHorizontal{
		{X: 0, FontSize: 10, S: "Ativo"},
		{X: 26, FontSize: 10, S: "s"},
		{X: 120, FontSize: 10, S: "50"},
	}
	assert.Equal(t, []string{"Ativos", "50"}, splitRow(texts))
}

func TestSplitRow_Empty(t *testing.T) {
	assert.Nil(t, splitRow(nil))
}

func TestSplitLines(t *testing.T) {
	text := "Balanço Patrimonial\n\nAtivo circulante    1.000,00\nPassivo\t400\nsingle\n"
	assert.Equal(t, [][]string{
		{"Ativo circulante", "1.000,00"},
		{"Passivo", "400"},
	}, splitLines(text))
}

func TestRecordsToDataset_NeedsTwoRows(t *testing.T) {
	assert.Nil(t, recordsToDataset([][]string{{"a", "b"}}))

	ds := recordsToDataset([][]string{{"Conta", "Valor"}, {"Caixa", "10"}})
	if assert.NotNil(t, ds) {
		assert.Equal(t, []string{"Conta", "Valor"}, ds.Columns)
		assert.Equal(t, 1, ds.Len())
	}
}

func TestPDF_RejectsNonPDF(t *testing.T) {
	_, err := NewPDF().Decode([]byte("a,b\n1,2\n"))
	assert.Error(t, err)
}

func TestPDF_DecodesPositionedColumns(t *testing.T) {
	ds, err := NewPDF().Decode(pdftest.Table(balanceRows))
	require.NoError(t, err)

	assert.Equal(t, []string{"Conta", "Valor"}, ds.Columns)
	require.Equal(t, 2, ds.Len())
	assert.Equal(t, []table.Cell{table.Text("Caixa ativo"), table.Text("1000")}, ds.Rows[0])
	assert.Equal(t, []table.Cell{table.Text("Fornecedores passivo"), table.Text("400")}, ds.Rows[1])
}

func TestPDF_SingleColumnPageHasNoTable(t *testing.T) {
	_, err := NewPDF().Decode(pdftest.Table([][]string{{"Balanco"}, {"sem valores"}}))
	assert.ErrorIs(t, err, errNoPDFTables)
}
