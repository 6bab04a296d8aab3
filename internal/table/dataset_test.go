package table_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"equitylens/internal/table"
)

func TestFromRecords_SkipsLeadingBlankRowsAndPadsHeader(t *testing.T) {
	d := table.FromRecords([][]string{
		{"", ""},
		{"Conta", "Valor"},
		{"Caixa", "100", "extra"},
		{" ", ""},
		{"Bancos"},
	})

	assert.Equal(t, []string{"Conta", "Valor", "Unnamed: 2"}, d.Columns)
	require.Equal(t, 2, d.Len())
	assert.Equal(t, table.Text("extra"), d.Rows[0][2])
	assert.Equal(t, table.Empty(), d.Rows[1][1])
}

func TestFromRecords_LabelsBlankAndRepeatedHeaders(t *testing.T) {
	d := table.FromRecords([][]string{
		{"Conta", "", "Valor", "Valor", " Valor ", "Valor.1"},
		{"Caixa", "x", "1", "2", "3", "4"},
	})

	assert.Equal(t, []string{"Conta", "Unnamed: 1", "Valor", "Valor.1", "Valor.2", "Valor.1.1"}, d.Columns)
	assert.Equal(t, table.Text("3"), d.Rows[0][4])
}

func TestFromRecords_Blank(t *testing.T) {
	d := table.FromRecords([][]string{{""}, {}})

	assert.True(t, d.IsEmpty())
}

func TestInferTypes_ConvertsFullyNumericColumnsOnly(t *testing.T) {
	d := table.FromRecords([][]string{
		{"Conta", "Valor", "Misto"},
		{"Caixa", "100", "10"},
		{"Bancos", "-2.5", "abc"},
		{"Outros", "", "3"},
	})

	typed := d.InferTypes()

	assert.False(t, typed.IsNumeric(0))
	assert.True(t, typed.IsNumeric(1))
	assert.False(t, typed.IsNumeric(2))
	assert.Equal(t, table.Number(-2.5), typed.Rows[1][1])
	assert.Equal(t, table.Empty(), typed.Rows[2][1])
	assert.Equal(t, table.Text("100"), d.Rows[0][1], "source dataset is untouched")
}

func TestDropEmpty(t *testing.T) {
	d := table.New([]string{"A", "", "B"})
	d.AddRow(table.Text("x"), table.Empty(), table.Number(1))
	d.AddRow(table.Empty(), table.Text(" "), table.Empty())

	out := d.DropEmpty()

	assert.Equal(t, []string{"A", "B"}, out.Columns)
	assert.Equal(t, 1, out.Len())
}

func TestParseNumber(t *testing.T) {
	v, ok := table.ParseNumber(" 1e3 ")
	assert.True(t, ok)
	assert.Equal(t, 1000.0, v)

	for _, s := range []string{"", "NaN", "inf", "0x10", "1,5"} {
		_, ok := table.ParseNumber(s)
		assert.False(t, ok, s)
	}
}

func TestCell_String(t *testing.T) {
	assert.Equal(t, "12.5", table.Number(12.5).String())
	assert.Equal(t, "abc", table.Text("abc").String())
	assert.Equal(t, "", table.Empty().String())
}
