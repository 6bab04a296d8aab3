package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"equitylens/internal/domain"
	"equitylens/internal/port"
)

const analysisColumns = `id, file_name, file_type, file_size, source, decoder, notes,
	s3_bucket, s3_key, method, total_assets, total_liabilities, equity, result, created_at`

// analysisRow is the table shape of an analysis. The full strategy result is
// kept as JSON next to the denormalized totals used for listing.
type analysisRow struct {
	ID               uuid.UUID       `db:"id"`
	FileName         string          `db:"file_name"`
	FileType         domain.FileType `db:"file_type"`
	FileSize         int64           `db:"file_size"`
	Source           domain.Source   `db:"source"`
	Decoder          string          `db:"decoder"`
	Notes            string          `db:"notes"`
	S3Bucket         string          `db:"s3_bucket"`
	S3Key            string          `db:"s3_key"`
	Method           domain.Method   `db:"method"`
	TotalAssets      float64         `db:"total_assets"`
	TotalLiabilities float64         `db:"total_liabilities"`
	Equity           float64         `db:"equity"`
	Result           []byte          `db:"result"`
	CreatedAt        time.Time       `db:"created_at"`
}

func toRow(a *domain.Analysis) (*analysisRow, error) {
	result, err := json.Marshal(a.Result)
	if err != nil {
		return nil, fmt.Errorf("encoding result: %w", err)
	}
	return &analysisRow{
		ID:               a.ID,
		FileName:         a.FileName,
		FileType:         a.FileType,
		FileSize:         a.FileSize,
		Source:           a.Source,
		Decoder:          a.Decoder,
		Notes:            a.Notes,
		S3Bucket:         a.S3Bucket,
		S3Key:            a.S3Key,
		Method:           a.Result.Method,
		TotalAssets:      a.Result.TotalAssets,
		TotalLiabilities: a.Result.TotalLiabilities,
		Equity:           a.Result.Equity,
		Result:           result,
		CreatedAt:        a.CreatedAt,
	}, nil
}

func (r *analysisRow) toDomain() (*domain.Analysis, error) {
	a := &domain.Analysis{
		ID:        r.ID,
		FileName:  r.FileName,
		FileType:  r.FileType,
		FileSize:  r.FileSize,
		Source:    r.Source,
		Decoder:   r.Decoder,
		Notes:     r.Notes,
		S3Bucket:  r.S3Bucket,
		S3Key:     r.S3Key,
		CreatedAt: r.CreatedAt,
	}
	if err := json.Unmarshal(r.Result, &a.Result); err != nil {
		return nil, fmt.Errorf("decoding result of analysis %s: %w", r.ID, err)
	}
	return a, nil
}

type analysisRepo struct {
	db *sqlx.DB
}

// NewAnalysisRepo creates a new PostgreSQL-backed AnalysisRepository.
func NewAnalysisRepo(db *sqlx.DB) port.AnalysisRepository {
	return &analysisRepo{db: db}
}

func (r *analysisRepo) Create(ctx context.Context, analysis *domain.Analysis) error {
	if analysis.CreatedAt.IsZero() {
		analysis.CreatedAt = time.Now().UTC()
	}
	row, err := toRow(analysis)
	if err != nil {
		return fmt.Errorf("analysisRepo.Create: %w", err)
	}

	query := `INSERT INTO analyses (` + analysisColumns + `)
		VALUES (:id, :file_name, :file_type, :file_size, :source, :decoder, :notes,
		        :s3_bucket, :s3_key, :method, :total_assets, :total_liabilities, :equity, :result, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("analysisRepo.Create: %w", err)
	}
	return nil
}

func (r *analysisRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Analysis, error) {
	var row analysisRow
	err := r.db.GetContext(ctx, &row,
		"SELECT "+analysisColumns+" FROM analyses WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("analysisRepo.GetByID: %w", err)
	}
	return row.toDomain()
}

func (r *analysisRepo) List(ctx context.Context, offset, limit int) ([]domain.Analysis, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM analyses"); err != nil {
		return nil, 0, fmt.Errorf("analysisRepo.List count: %w", err)
	}

	var rows []analysisRow
	err := r.db.SelectContext(ctx, &rows,
		"SELECT "+analysisColumns+" FROM analyses ORDER BY created_at DESC LIMIT $1 OFFSET $2",
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("analysisRepo.List: %w", err)
	}

	analyses := make([]domain.Analysis, 0, len(rows))
	for i := range rows {
		a, err := rows[i].toDomain()
		if err != nil {
			return nil, 0, fmt.Errorf("analysisRepo.List: %w", err)
		}
		analyses = append(analyses, *a)
	}
	return analyses, total, nil
}

func (r *analysisRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
