package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/amankumarsingh77/cube-phase-detector/internal/analyze"
	"github.com/amankumarsingh77/cube-phase-detector/internal/models"
	"github.com/go-redis/redis/v8"
)

type analyzeRedisRepo struct {
	redisClient *redis.Client
}

func NewAnalyzeRedisRepo(redisClient *redis.Client) analyze.RedisRepository {
	return &analyzeRedisRepo{
		redisClient: redisClient,
	}
}

func (a *analyzeRedisRepo) GetPredictions(ctx context.Context, key string) ([]models.Prediction, error) {
	data, err := a.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get predictions: %w", err)
	}
	predictions := []models.Prediction{}
	if err = json.Unmarshal(data, &predictions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal predictions: %w", err)
	}
	return predictions, nil
}

func (a *analyzeRedisRepo) SetPredictions(ctx context.Context, key string, predictions []models.Prediction, ttl time.Duration) error {
	data, err := json.Marshal(predictions)
	if err != nil {
		return fmt.Errorf("failed to marshal predictions: %w", err)
	}
	if err = a.redisClient.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set predictions: %w", err)
	}
	return nil
}
