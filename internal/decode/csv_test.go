package decode_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"equitylens/internal/decode"
	"equitylens/internal/table"
)

func TestCSV_CommaWithNumericInference(t *testing.T) {
	ds, err := decode.NewCSV().Decode([]byte("Ativo,Passivo\n100,30\n200,50\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"Ativo", "Passivo"}, ds.Columns)
	require.Equal(t, 2, ds.Len())
	assert.Equal(t, table.Number(200), ds.Rows[1][0])
	assert.True(t, ds.IsNumeric(1))
}

func TestCSV_SniffsSemicolon(t *testing.T) {
	data := "Classificação;Descrição;Valor\nAtivo;Caixa;1.234,56\nPassivo;Fornecedores;500\n"
	ds, err := decode.NewCSV().Decode([]byte(data))
	require.NoError(t, err)

	assert.Equal(t, []string{"Classificação", "Descrição", "Valor"}, ds.Columns)
	assert.Equal(t, table.Text("1.234,56"), ds.Rows[0][2], "locale-formatted values stay text")
	assert.False(t, ds.IsNumeric(2))
}

func TestCSV_SniffsTab(t *testing.T) {
	ds, err := decode.NewCSV().Decode([]byte("desc\tvalue\ncash\t10\nloan\t-4\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"desc", "value"}, ds.Columns)
	assert.Equal(t, table.Number(-4), ds.Rows[1][1])
}

func TestCSV_QuotedDelimiterIgnoredWhenSniffing(t *testing.T) {
	data := "Descricao;Valor\n\"Caixa, banco\";10\n\"Emprestimo, longo\";20\n"
	ds, err := decode.NewCSV().Decode([]byte(data))
	require.NoError(t, err)
	assert.Equal(t, []string{"Descricao", "Valor"}, ds.Columns)
	assert.Equal(t, table.Text("Caixa, banco"), ds.Rows[0][0])
}

func TestCSV_StripsBOM(t *testing.T) {
	ds, err := decode.NewCSV().Decode(append([]byte{0xEF, 0xBB, 0xBF}, []byte("Valor,Tipo\n1,a\n")...))
	require.NoError(t, err)
	assert.Equal(t, "Valor", ds.Columns[0])
}

func TestCSV_Windows1252Fallback(t *testing.T) {
	// "Descrição;Valor" with ç=0xE7 and ã=0xE3.
	data := []byte("Descri\xe7\xe3o;Valor\nCaixa;100\n")
	ds, err := decode.NewCSV().Decode(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"Descrição", "Valor"}, ds.Columns)
}

func TestCSV_RejectsBinaryAndEmpty(t *testing.T) {
	_, err := decode.NewCSV().Decode([]byte{0x89, 'P', 'N', 'G', 0x00, 0x01})
	assert.Error(t, err)

	_, err = decode.NewCSV().Decode([]byte("  \n\n"))
	assert.Error(t, err)
}
