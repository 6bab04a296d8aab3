package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"equitylens/internal/classify"
	"equitylens/internal/domain"
	"equitylens/internal/port"
	s3storage "equitylens/internal/storage/s3"
)

// AnalyzeInput is an uploaded statement file.
type AnalyzeInput struct {
	FileName string
	Data     []byte
}

// StatementService defines the statement analysis contract.
type StatementService interface {
	Analyze(ctx context.Context, input AnalyzeInput) (*domain.Analysis, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Analysis, error)
	List(ctx context.Context, offset, limit int) ([]domain.Analysis, int, error)
	Ready(ctx context.Context) error
}

// StatementServiceConfig holds the limits and archive settings of the service.
type StatementServiceConfig struct {
	MaxFileSize   int64
	Bucket        string
	PresignExpiry int64
}

type statementService struct {
	intake  *Intake
	repo    port.AnalysisRepository
	storage port.ObjectStorage
	cfg     StatementServiceConfig
	now     func() time.Time
}

// NewStatementService creates a new StatementService. storage may be nil,
// which disables archiving of source files.
func NewStatementService(
	intake *Intake,
	repo port.AnalysisRepository,
	storage port.ObjectStorage,
	cfg StatementServiceConfig,
) StatementService {
	return &statementService{
		intake:  intake,
		repo:    repo,
		storage: storage,
		cfg:     cfg,
		now:     time.Now,
	}
}

func (s *statementService) Analyze(ctx context.Context, input AnalyzeInput) (*domain.Analysis, error) {
	if strings.TrimSpace(input.FileName) == "" {
		return nil, domain.ErrMissingFile
	}
	size := int64(len(input.Data))
	if s.cfg.MaxFileSize > 0 && size > s.cfg.MaxFileSize {
		return nil, domain.ErrFileTooLarge
	}

	log.Printf("statementService.Analyze: analyzing %s (%d bytes)", input.FileName, size)

	resolved, err := s.intake.Resolve(ctx, input.FileName, input.Data)
	if err != nil {
		return nil, err
	}

	result, err := classify.Classify(resolved.Dataset)
	if err != nil {
		log.Printf("statementService.Analyze: classification failed for %s: %v", input.FileName, err)
		return nil, err
	}

	analysis := &domain.Analysis{
		ID:        uuid.New(),
		FileName:  input.FileName,
		FileType:  resolved.FileType,
		FileSize:  size,
		Source:    resolved.Source,
		Decoder:   resolved.Decoder,
		Notes:     resolved.Notes,
		Result:    *result,
		CreatedAt: s.now().UTC(),
	}

	s.archive(ctx, analysis, resolved.ContentType, input.Data)

	if err := s.repo.Create(ctx, analysis); err != nil {
		log.Printf("statementService.Analyze: failed to record analysis %s: %v", analysis.ID, err)
		s.discardArchive(ctx, analysis)
	}

	log.Printf("statementService.Analyze: %s classified by %s (assets=%.2f liabilities=%.2f)",
		analysis.ID, result.Method, result.TotalAssets, result.TotalLiabilities)
	return analysis, nil
}

// archive stores the source file. Failures leave the analysis without an
// archive reference.
func (s *statementService) archive(ctx context.Context, a *domain.Analysis, contentType string, data []byte) {
	if s.storage == nil || s.cfg.Bucket == "" {
		return
	}
	key := s3storage.ObjectKey(a.ID, a.FileName, a.CreatedAt)
	_, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.Bucket,
		Key:         key,
		Body:        bytes.NewReader(data),
		ContentType: contentType,
		Size:        int64(len(data)),
	})
	if err != nil {
		log.Printf("statementService.archive: upload failed for %s: %v", a.ID, err)
		return
	}
	a.S3Bucket = s.cfg.Bucket
	a.S3Key = key
}

// discardArchive removes an archived source whose analysis was never recorded,
// since nothing could reference it afterwards.
func (s *statementService) discardArchive(ctx context.Context, a *domain.Analysis) {
	if s.storage == nil || a.S3Key == "" {
		return
	}
	if err := s.storage.Delete(ctx, a.S3Bucket, a.S3Key); err != nil {
		log.Printf("statementService.discardArchive: delete failed for %s: %v", a.S3Key, err)
	}
	a.S3Bucket = ""
	a.S3Key = ""
}

func (s *statementService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Analysis, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.storage != nil && a.S3Key != "" {
		url, err := s.storage.GetPresignedURL(ctx, a.S3Bucket, a.S3Key, s.cfg.PresignExpiry)
		if err != nil {
			log.Printf("statementService.GetByID: presign failed for %s: %v", a.ID, err)
		} else {
			a.SourceURL = url
		}
	}
	return a, nil
}

func (s *statementService) List(ctx context.Context, offset, limit int) ([]domain.Analysis, int, error) {
	analyses, total, err := s.repo.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("listing analyses: %w", err)
	}
	return analyses, total, nil
}

func (s *statementService) Ready(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
