package labeling

import (
	"context"

	"github.com/amankumarsingh77/cube-phase-detector/internal/models"
	"github.com/amankumarsingh77/cube-phase-detector/pkg/utils"
)

type UseCase interface {
	UploadVideo(ctx context.Context, input *models.UploadInput) (*models.VideoSummary, error)
	GetVideo(ctx context.Context, videoID string) (*models.Object, error)
	ListVideos(ctx context.Context, pagination *utils.Pagination) (*models.VideoList, error)
	GetAnnotations(ctx context.Context, videoID string) (*models.AnnotationList, error)
	SaveAnnotations(ctx context.Context, videoID string, list *models.AnnotationList) (*models.SavedAnnotations, error)
	Resegment(ctx context.Context, videoID string, input *models.SegmentInput) (*models.VideoSummary, error)
}
