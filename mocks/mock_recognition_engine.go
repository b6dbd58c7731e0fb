package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"billscan/internal/port"
)

// MockRecognitionEngine is a mock implementation of port.RecognitionEngine.
type MockRecognitionEngine struct {
	mock.Mock
}

func (m *MockRecognitionEngine) Recognize(ctx context.Context, input port.RecognitionInput) (*port.RecognitionOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.RecognitionOutput), args.Error(1)
}
