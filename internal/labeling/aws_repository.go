package labeling

import (
	"context"

	"github.com/amankumarsingh77/cube-phase-detector/internal/models"
)

// ObjectRepository stores the uploaded video bytes.
type ObjectRepository interface {
	PutObject(ctx context.Context, input models.UploadInput) error
	GetObject(ctx context.Context, key string) (*models.Object, error)
	// FetchToFile makes the object available as a local file for ffmpeg.
	// The returned cleanup must always be called.
	FetchToFile(ctx context.Context, key string) (string, func(), error)
	RemoveObject(ctx context.Context, key string) error
}
