package decode_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"equitylens/internal/decode"
	"equitylens/internal/domain"
	"equitylens/internal/table"
)

type stubDecoder struct {
	name  string
	ds    *table.Dataset
	err   error
	calls int
	panic bool
}

func (s *stubDecoder) Name() string { return s.name }

func (s *stubDecoder) Decode(_ []byte) (*table.Dataset, error) {
	s.calls++
	if s.panic {
		panic("corrupt input")
	}
	return s.ds, s.err
}

func sampleDataset() *table.Dataset {
	ds := table.New([]string{"a", "b"})
	ds.AddRow(table.Text("x"), table.Number(1))
	return ds
}

func TestRegistry_DeclaredTypeWins(t *testing.T) {
	csvDec := &stubDecoder{name: "csv", ds: sampleDataset()}
	pdfDec := &stubDecoder{name: "pdf", ds: sampleDataset()}
	reg := decode.NewRegistryWith(
		map[domain.FileType]decode.Decoder{domain.FileTypeCSV: csvDec},
		[]decode.Decoder{pdfDec, csvDec},
	)

	ds, name, err := reg.Decode([]byte("a,b"), domain.FileTypeCSV)
	require.NoError(t, err)
	assert.Equal(t, "csv", name)
	assert.Equal(t, 1, ds.Len())
	assert.Equal(t, 0, pdfDec.calls)
}

func TestRegistry_ProbesWhenDeclaredFails(t *testing.T) {
	pdfDec := &stubDecoder{name: "pdf", err: errors.New("not a pdf")}
	csvDec := &stubDecoder{name: "csv", ds: sampleDataset()}
	reg := decode.NewRegistryWith(
		map[domain.FileType]decode.Decoder{domain.FileTypePDF: pdfDec},
		[]decode.Decoder{pdfDec, csvDec},
	)

	_, name, err := reg.Decode([]byte("a,b"), domain.FileTypePDF)
	require.NoError(t, err)
	assert.Equal(t, "csv", name)
	assert.Equal(t, 1, pdfDec.calls, "declared decoder is not retried during probing")
}

func TestRegistry_PanicBecomesError(t *testing.T) {
	bad := &stubDecoder{name: "xls", panic: true}
	good := &stubDecoder{name: "csv", ds: sampleDataset()}
	reg := decode.NewRegistryWith(nil, []decode.Decoder{bad, good})

	_, name, err := reg.Decode([]byte("x"), domain.FileTypeUnknown)
	require.NoError(t, err)
	assert.Equal(t, "csv", name)
}

func TestRegistry_AllFail(t *testing.T) {
	reg := decode.NewRegistryWith(nil, []decode.Decoder{
		&stubDecoder{name: "pdf", err: errors.New("no")},
		&stubDecoder{name: "csv", err: errors.New("no")},
	})

	_, _, err := reg.Decode([]byte("x"), domain.FileTypeUnknown)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnreadableFormat)
	assert.Contains(t, err.Error(), "pdf: no")
}

func TestRegistry_NoDecoders(t *testing.T) {
	reg := decode.NewRegistryWith(nil, nil)
	_, _, err := reg.Decode([]byte("x"), domain.FileTypeCSV)
	assert.ErrorIs(t, err, domain.ErrUnreadableFormat)
}

func TestNewRegistry_ProbesCSVUnderWrongExtension(t *testing.T) {
	reg := decode.NewRegistry()
	ds, name, err := reg.Decode([]byte("Classificacao,Valor\nAtivo,100\nPassivo,40\n"), domain.FileTypePDF)
	require.NoError(t, err)
	assert.Equal(t, "csv", name)
	assert.Equal(t, 2, ds.Len())
}

func TestNewRegistry_RejectsImageBytes(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")
	_, _, err := decode.NewRegistry().Decode(png, domain.FileTypePNG)
	assert.ErrorIs(t, err, domain.ErrUnreadableFormat)
}
