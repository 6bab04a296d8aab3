package port

import (
	"context"

	"github.com/google/uuid"

	"equitylens/internal/domain"
)

// AnalysisRepository persists completed statement analyses.
type AnalysisRepository interface {
	Create(ctx context.Context, analysis *domain.Analysis) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Analysis, error)
	List(ctx context.Context, offset, limit int) ([]domain.Analysis, int, error)
	Ping(ctx context.Context) error
}
