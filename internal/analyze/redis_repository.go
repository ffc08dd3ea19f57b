package analyze

import (
	"context"
	"time"

	"github.com/amankumarsingh77/cube-phase-detector/internal/models"
)

// RedisRepository caches predictions by upload content hash.
// GetPredictions returns (nil, nil) on a miss.
type RedisRepository interface {
	GetPredictions(ctx context.Context, key string) ([]models.Prediction, error)
	SetPredictions(ctx context.Context, key string, predictions []models.Prediction, ttl time.Duration) error
}
