package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"equitylens/internal/decode"
	"equitylens/internal/decode/pdftest"
	"equitylens/internal/domain"
	"equitylens/internal/port"
	"equitylens/internal/service"
	"equitylens/mocks"
)

type statementFixture struct {
	repo    *mocks.MockAnalysisRepo
	storage *mocks.MockObjectStorage
	svc     service.StatementService
}

func newStatementFixture(withStorage bool) *statementFixture {
	f := &statementFixture{
		repo:    new(mocks.MockAnalysisRepo),
		storage: new(mocks.MockObjectStorage),
	}
	var storage port.ObjectStorage
	if withStorage {
		storage = f.storage
	}
	f.svc = service.NewStatementService(
		service.NewIntake(nil, decode.NewRegistry()),
		f.repo,
		storage,
		service.StatementServiceConfig{MaxFileSize: 1024, Bucket: "statements", PresignExpiry: 600},
	)
	return f
}

func TestStatementService_Analyze_PairedColumns(t *testing.T) {
	f := newStatementFixture(false)
	f.repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Analysis")).Return(nil)

	a, err := f.svc.Analyze(context.Background(), service.AnalyzeInput{
		FileName: "balanco.csv",
		Data:     []byte("Ativo,Passivo\n100,30\n200,50\n"),
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, a.ID)
	assert.Equal(t, domain.MethodPairedColumns, a.Result.Method)
	assert.InDelta(t, 300, a.Result.TotalAssets, 1e-9)
	assert.InDelta(t, 80, a.Result.TotalLiabilities, 1e-9)
	assert.InDelta(t, 220, a.Result.Equity, 1e-9)
	assert.Equal(t, domain.SourceDecoder, a.Source)
	assert.Equal(t, "csv", a.Decoder)
	assert.Equal(t, domain.FileTypeCSV, a.FileType)
	assert.Empty(t, a.S3Key)
	f.repo.AssertExpectations(t)
}

func TestStatementService_Analyze_PDFStatement(t *testing.T) {
	f := newStatementFixture(false)
	f.repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Analysis")).Return(nil)

	a, err := f.svc.Analyze(context.Background(), service.AnalyzeInput{
		FileName: "balanco.pdf",
		Data: pdftest.Table([][]string{
			{"Conta", "Valor"},
			{"Caixa ativo", "1000"},
			{"Fornecedores passivo", "400"},
		}),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.MethodDescriptionAndValue, a.Result.Method)
	assert.InDelta(t, 1000, a.Result.TotalAssets, 1e-9)
	assert.InDelta(t, 400, a.Result.TotalLiabilities, 1e-9)
	assert.InDelta(t, 600, a.Result.Equity, 1e-9)
	assert.Equal(t, "pdf", a.Decoder)
	assert.Equal(t, domain.FileTypePDF, a.FileType)
	f.repo.AssertExpectations(t)
}

func TestStatementService_Analyze_ArchivesSource(t *testing.T) {
	f := newStatementFixture(true)
	f.storage.On("Upload", mock.Anything, mock.MatchedBy(func(in port.UploadInput) bool {
		return in.Bucket == "statements" && strings.HasSuffix(in.Key, "/b.csv") && in.ContentType == "text/csv"
	})).Return(&port.UploadOutput{Location: "s3://statements/x"}, nil)
	f.repo.On("Create", mock.Anything, mock.MatchedBy(func(a *domain.Analysis) bool {
		return a.S3Bucket == "statements" && a.S3Key != ""
	})).Return(nil)

	a, err := f.svc.Analyze(context.Background(), service.AnalyzeInput{
		FileName: "b.csv",
		Data:     []byte("Classificacao,Valor\nAtivo,100\nPassivo,40\n"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.MethodClassificationAndValue, a.Result.Method)
	assert.Contains(t, a.S3Key, a.ID.String())
	f.storage.AssertExpectations(t)
	f.repo.AssertExpectations(t)
}

func TestStatementService_Analyze_AdvisoryFailures(t *testing.T) {
	f := newStatementFixture(true)
	f.storage.On("Upload", mock.Anything, mock.Anything).Return(nil, errors.New("s3 down"))
	f.repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

	a, err := f.svc.Analyze(context.Background(), service.AnalyzeInput{
		FileName: "b.csv",
		Data:     []byte("Ativo,Passivo\n1,1\n"),
	})
	require.NoError(t, err)
	assert.Empty(t, a.S3Key)
	assert.Empty(t, a.S3Bucket)
}

func TestStatementService_Analyze_DiscardsUnrecordedArchive(t *testing.T) {
	f := newStatementFixture(true)
	f.storage.On("Upload", mock.Anything, mock.Anything).Return(&port.UploadOutput{}, nil)
	f.repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))
	f.storage.On("Delete", mock.Anything, "statements", mock.MatchedBy(func(key string) bool {
		return strings.HasSuffix(key, "/b.csv")
	})).Return(nil)

	a, err := f.svc.Analyze(context.Background(), service.AnalyzeInput{
		FileName: "b.csv",
		Data:     []byte("Ativo,Passivo\n1,1\n"),
	})
	require.NoError(t, err)
	assert.Empty(t, a.S3Key)
	assert.Empty(t, a.S3Bucket)
	f.storage.AssertExpectations(t)
}

func TestStatementService_Analyze_Validation(t *testing.T) {
	f := newStatementFixture(false)

	_, err := f.svc.Analyze(context.Background(), service.AnalyzeInput{FileName: " ", Data: []byte("a")})
	assert.ErrorIs(t, err, domain.ErrMissingFile)

	_, err = f.svc.Analyze(context.Background(), service.AnalyzeInput{FileName: "a.csv", Data: make([]byte, 2048)})
	assert.ErrorIs(t, err, domain.ErrFileTooLarge)

	f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestStatementService_Analyze_FailureReasons(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		data   string
		reason domain.FailureReason
	}{
		{"header only", "a.csv", "Ativo,Passivo\n", domain.ReasonEmptyInput},
		{"unreadable", "a.xlsx", "\x00\x01\x02", domain.ReasonUnreadableFormat},
		{"no structure", "a.csv", "Nome,Cidade\nAna,Rio\nBeto,Recife\n", domain.ReasonNoClassifiableStructure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newStatementFixture(false)
			_, err := f.svc.Analyze(context.Background(), service.AnalyzeInput{FileName: tt.file, Data: []byte(tt.data)})
			require.Error(t, err)
			assert.Equal(t, tt.reason, domain.ReasonOf(err))
		})
	}
}

func TestStatementService_GetByID_PresignsArchive(t *testing.T) {
	f := newStatementFixture(true)
	id := uuid.New()
	f.repo.On("GetByID", mock.Anything, id).Return(&domain.Analysis{ID: id, S3Bucket: "statements", S3Key: "k"}, nil)
	f.storage.On("GetPresignedURL", mock.Anything, "statements", "k", int64(600)).Return("https://signed", nil)

	a, err := f.svc.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "https://signed", a.SourceURL)
}

func TestStatementService_GetByID_PresignFailureIsAdvisory(t *testing.T) {
	f := newStatementFixture(true)
	id := uuid.New()
	f.repo.On("GetByID", mock.Anything, id).Return(&domain.Analysis{ID: id, S3Bucket: "b", S3Key: "k"}, nil)
	f.storage.On("GetPresignedURL", mock.Anything, "b", "k", int64(600)).Return("", errors.New("no creds"))

	a, err := f.svc.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Empty(t, a.SourceURL)
}

func TestStatementService_GetByID_NotFound(t *testing.T) {
	f := newStatementFixture(false)
	id := uuid.New()
	f.repo.On("GetByID", mock.Anything, id).Return(nil, domain.ErrNotFound)

	_, err := f.svc.GetByID(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStatementService_List(t *testing.T) {
	f := newStatementFixture(false)
	f.repo.On("List", mock.Anything, 0, 20).Return([]domain.Analysis{{ID: uuid.New()}}, 7, nil)

	list, total, err := f.svc.List(context.Background(), 0, 20)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, 7, total)

	f2 := newStatementFixture(false)
	f2.repo.On("List", mock.Anything, 0, 20).Return(nil, 0, errors.New("db"))
	_, _, err = f2.svc.List(context.Background(), 0, 20)
	assert.Error(t, err)
}

func TestStatementService_Ready(t *testing.T) {
	f := newStatementFixture(false)
	f.repo.On("Ping", mock.Anything).Return(errors.New("down"))
	assert.Error(t, f.svc.Ready(context.Background()))
}
