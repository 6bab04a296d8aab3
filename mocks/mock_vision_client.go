package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"equitylens/internal/port"
)

// MockVisionClient is a mock implementation of port.VisionClient.
type MockVisionClient struct {
	mock.Mock
}

func (m *MockVisionClient) Extract(ctx context.Context, input port.VisionInput) (*port.VisionOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.VisionOutput), args.Error(1)
}
