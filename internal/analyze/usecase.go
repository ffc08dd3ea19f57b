package analyze

import (
	"context"

	"github.com/amankumarsingh77/cube-phase-detector/internal/models"
)

type UseCase interface {
	Analyze(ctx context.Context, input *models.UploadInput) ([]models.Prediction, error)
}

// Runner is the inference pipeline as seen by the analyze flow.
type Runner interface {
	Run(ctx context.Context, path string, framesPerClip, stride int) ([]models.Prediction, error)
}
