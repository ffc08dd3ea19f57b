package inference

import (
	"context"

	"github.com/amankumarsingh77/cube-phase-detector/internal/classifier"
	"github.com/amankumarsingh77/cube-phase-detector/internal/models"
	"github.com/stretchr/testify/mock"
)

type MockDecoder struct {
	mock.Mock
}

func (m *MockDecoder) Probe(ctx context.Context, path string) (*models.VideoInfo, error) {
	args := m.Called(ctx, path)
	info, _ := args.Get(0).(*models.VideoInfo)
	return info, args.Error(1)
}

func (m *MockDecoder) DecodeFrames(ctx context.Context, path string) ([]models.Frame, *models.VideoInfo, error) {
	args := m.Called(ctx, path)
	frames, _ := args.Get(0).([]models.Frame)
	info, _ := args.Get(1).(*models.VideoInfo)
	return frames, info, args.Error(2)
}

type MockClassifier struct {
	mock.Mock
}

func (m *MockClassifier) Classify(ctx context.Context, tensor *classifier.Tensor) (int, error) {
	args := m.Called(ctx, tensor)
	return args.Int(0), args.Error(1)
}
