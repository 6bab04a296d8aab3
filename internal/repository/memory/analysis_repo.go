// Package memory keeps recent analyses in process when no database is configured.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"equitylens/internal/domain"
	"equitylens/internal/port"
)

// DefaultCapacity bounds how many analyses are retained.
const DefaultCapacity = 500

type analysisRepo struct {
	mu       sync.RWMutex
	capacity int
	order    []uuid.UUID // oldest first
	byID     map[uuid.UUID]domain.Analysis
}

// NewAnalysisRepo creates an in-memory AnalysisRepository that evicts the
// oldest analysis once capacity is reached.
func NewAnalysisRepo(capacity int) port.AnalysisRepository {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &analysisRepo{
		capacity: capacity,
		byID:     make(map[uuid.UUID]domain.Analysis),
	}
}

func (r *analysisRepo) Create(_ context.Context, analysis *domain.Analysis) error {
	if analysis.CreatedAt.IsZero() {
		analysis.CreatedAt = time.Now().UTC()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byID[analysis.ID]; !exists {
		r.order = append(r.order, analysis.ID)
	}
	r.byID[analysis.ID] = *analysis
	for len(r.order) > r.capacity {
		delete(r.byID, r.order[0])
		r.order = r.order[1:]
	}
	return nil
}

func (r *analysisRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Analysis, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &a, nil
}

// List returns analyses newest first.
func (r *analysisRepo) List(_ context.Context, offset, limit int) ([]domain.Analysis, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit < 0 {
		limit = 0
	}
	if offset < 0 {
		offset = 0
	}
	total := len(r.order)
	out := make([]domain.Analysis, 0, limit)
	for i := total - 1 - offset; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.byID[r.order[i]])
	}
	return out, total, nil
}

func (r *analysisRepo) Ping(context.Context) error {
	return nil
}
