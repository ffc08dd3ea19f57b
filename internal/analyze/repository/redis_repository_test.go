package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/amankumarsingh77/cube-phase-detector/internal/models"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a real server when CUBE_TEST_REDIS_ADDR is set.
func TestAnalyzeRedisRepo(t *testing.T) {
	addr := os.Getenv("CUBE_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("CUBE_TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { client.Close() })
	require.NoError(t, client.Ping(ctx).Err())

	repo := NewAnalyzeRedisRepo(client)
	key := "analyze:test:" + uuid.New().String()
	t.Cleanup(func() { client.Del(ctx, key) })

	miss, err := repo.GetPredictions(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, miss)

	preds := []models.Prediction{{Time: 1.5, Phase: models.PhaseOLL}}
	require.NoError(t, repo.SetPredictions(ctx, key, preds, time.Minute))

	got, err := repo.GetPredictions(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, preds, got)

	ttl, err := client.TTL(ctx, key).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}
