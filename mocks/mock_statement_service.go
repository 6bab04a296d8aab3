package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"equitylens/internal/domain"
	"equitylens/internal/service"
)

// MockStatementService is a mock implementation of service.StatementService.
type MockStatementService struct {
	mock.Mock
}

func (m *MockStatementService) Analyze(ctx context.Context, input service.AnalyzeInput) (*domain.Analysis, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Analysis), args.Error(1)
}

func (m *MockStatementService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Analysis, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Analysis), args.Error(1)
}

func (m *MockStatementService) List(ctx context.Context, offset, limit int) ([]domain.Analysis, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Analysis), args.Int(1), args.Error(2)
}

func (m *MockStatementService) Ready(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
