package labeling

import (
	"context"

	"github.com/amankumarsingh77/cube-phase-detector/internal/models"
)

// Repository keeps video summaries and annotation lists.
// Implementations return an error wrapping httpErrors.ErrNotFound for an unknown summary.
type Repository interface {
	SaveSummary(ctx context.Context, summary *models.VideoSummary) error
	GetSummary(ctx context.Context, videoID string) (*models.VideoSummary, error)
	ListSummaries(ctx context.Context) ([]*models.VideoSummary, error)

	SaveAnnotations(ctx context.Context, videoID string, annotations []models.Annotation) error
	GetAnnotations(ctx context.Context, videoID string) ([]models.Annotation, error)
}
