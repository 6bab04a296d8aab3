package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"equitylens/internal/decode"
	"equitylens/internal/domain"
	"equitylens/internal/port"
	"equitylens/internal/service"
	"equitylens/internal/table"
	"equitylens/internal/vision"
	"equitylens/mocks"
)

const visionReply = `{"assets":[{"description":"Caixa","value":300}],"liabilities":[{"description":"Emprestimo","value":80}],"notes":"scanned"}`

type stubDecoder struct {
	ds    *table.Dataset
	name  string
	err   error
	calls int
}

func (s *stubDecoder) Decode([]byte, domain.FileType) (*table.Dataset, string, error) {
	s.calls++
	return s.ds, s.name, s.err
}

func TestFileTypeOf(t *testing.T) {
	assert.Equal(t, domain.FileTypeXLSX, service.FileTypeOf("Balanço.XLSX"))
	assert.Equal(t, domain.FileTypeCSV, service.FileTypeOf("a.txt"))
	assert.Equal(t, domain.FileTypeJPG, service.FileTypeOf("scan.jpeg"))
	assert.Equal(t, domain.FileTypeUnknown, service.FileTypeOf("statement.dat"))
	assert.Equal(t, domain.FileTypeUnknown, service.FileTypeOf("noext"))
}

func TestContentTypeOf(t *testing.T) {
	assert.Equal(t, "application/pdf", service.ContentTypeOf(domain.FileTypePDF, nil))
	assert.Equal(t, "image/png", service.ContentTypeOf(domain.FileTypeUnknown, []byte("\x89PNG\r\n\x1a\n")))
	assert.Equal(t, "text/plain", service.ContentTypeOf(domain.FileTypeUnknown, []byte("a,b\n1,2\n")))
}

func TestIntake_VisionFirstForImages(t *testing.T) {
	client := new(mocks.MockVisionClient)
	client.On("Extract", mock.Anything, mock.Anything).Return(&port.VisionOutput{Reply: visionReply, Provider: "claude"}, nil)
	dec := &stubDecoder{err: errors.New("unused")}

	in := service.NewIntake(vision.NewAdapter(client, 0), dec)
	res, err := in.Resolve(context.Background(), "scan.png", []byte("png"))
	require.NoError(t, err)

	assert.Equal(t, domain.SourceVision, res.Source)
	assert.Equal(t, "scanned", res.Notes)
	assert.Equal(t, 2, res.Dataset.Len())
	assert.Equal(t, 0, dec.calls)
}

func TestIntake_VisionFailureFallsThroughToDecoders(t *testing.T) {
	client := new(mocks.MockVisionClient)
	client.On("Extract", mock.Anything, mock.Anything).Return(nil, errors.New("provider down"))

	in := service.NewIntake(vision.NewAdapter(client, 0), decode.NewRegistry())
	_, err := in.Resolve(context.Background(), "statement.pdf", []byte("%PDF-1.4\x00broken"))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnreadableFormat)
	assert.False(t, errors.Is(err, domain.ErrVisionFailure), "vision failures stay advisory")
	client.AssertNumberOfCalls(t, "Extract", 1)
}

func TestIntake_SpreadsheetsSkipVision(t *testing.T) {
	client := new(mocks.MockVisionClient)

	in := service.NewIntake(vision.NewAdapter(client, 0), decode.NewRegistry())
	res, err := in.Resolve(context.Background(), "b.csv", []byte("Ativo,Passivo\n10,4\n"))
	require.NoError(t, err)

	assert.Equal(t, domain.SourceDecoder, res.Source)
	assert.Equal(t, "csv", res.Decoder)
	client.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything)
}

func TestIntake_DisabledVision(t *testing.T) {
	var disabled *vision.Adapter
	dec := &stubDecoder{ds: table.New([]string{"a"}), name: "pdf"}

	res, err := service.NewIntake(disabled, dec).Resolve(context.Background(), "s.pdf", []byte("%PDF"))
	require.NoError(t, err)
	assert.Equal(t, "pdf", res.Decoder)

	res, err = service.NewIntake(nil, dec).Resolve(context.Background(), "s.pdf", []byte("%PDF"))
	require.NoError(t, err)
	assert.Equal(t, domain.SourceDecoder, res.Source)
}

func TestIntake_DecoderErrorAlwaysUnreadable(t *testing.T) {
	dec := &stubDecoder{err: errors.New("weird")}
	_, err := service.NewIntake(nil, dec).Resolve(context.Background(), "x.csv", []byte("x"))
	assert.ErrorIs(t, err, domain.ErrUnreadableFormat)
}
