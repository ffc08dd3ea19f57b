package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/amankumarsingh77/cube-phase-detector/internal/analyze"
	"github.com/amankumarsingh77/cube-phase-detector/internal/clips"
	"github.com/amankumarsingh77/cube-phase-detector/internal/config"
	"github.com/amankumarsingh77/cube-phase-detector/internal/metrics"
	"github.com/amankumarsingh77/cube-phase-detector/internal/models"
	"github.com/amankumarsingh77/cube-phase-detector/pkg/httpErrors"
	"github.com/amankumarsingh77/cube-phase-detector/pkg/logger"
	"github.com/pkg/errors"
)

const defaultCacheTTL = 24 * time.Hour

type analyzeUC struct {
	cfg       *config.Config
	runner    analyze.Runner
	redisRepo analyze.RedisRepository
	logger    logger.Logger
}

// NewAnalyzeUseCase builds the analyze flow. redisRepo may be nil, which disables caching.
func NewAnalyzeUseCase(cfg *config.Config, runner analyze.Runner, redisRepo analyze.RedisRepository, log logger.Logger) analyze.UseCase {
	return &analyzeUC{
		cfg:       cfg,
		runner:    runner,
		redisRepo: redisRepo,
		logger:    log,
	}
}

func (a *analyzeUC) Analyze(ctx context.Context, input *models.UploadInput) ([]models.Prediction, error) {
	if input == nil || input.File == nil {
		return nil, httpErrors.ErrNoFile
	}

	path, digest, err := a.spool(input)
	if err != nil {
		a.logger.Errorf("Analyze - spool error: %v", err)
		return nil, errors.Wrap(err, "analyzeUC.Analyze.spool")
	}
	defer func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			a.logger.Warnf("Analyze - failed to remove %s: %v", path, err)
		}
	}()

	params := clips.ResolveParams(models.SegmentInput{}, 0, nil, clips.Params{
		FramesPerClip: a.cfg.Clips.FramesPerClip,
		Stride:        a.cfg.Clips.Stride,
	})
	key := CacheKey(digest, params)

	if a.redisRepo != nil {
		cached, err := a.redisRepo.GetPredictions(ctx, key)
		switch {
		case err != nil:
			a.logger.Warnf("Analyze - GetPredictions error: %v", err)
			metrics.AnalyzeCacheTotal.WithLabelValues("error").Inc()
		case cached != nil:
			metrics.AnalyzeCacheTotal.WithLabelValues("hit").Inc()
			a.logger.Infof("Analyze - cache hit for %s", key)
			return cached, nil
		default:
			metrics.AnalyzeCacheTotal.WithLabelValues("miss").Inc()
		}
	}

	predictions, err := a.runner.Run(ctx, path, params.FramesPerClip, params.Stride)
	if err != nil {
		a.logger.Errorf("Analyze - Run error: %v", err)
		return nil, errors.Wrap(err, "analyzeUC.Analyze.Run")
	}

	if a.redisRepo != nil {
		if err = a.redisRepo.SetPredictions(ctx, key, predictions, a.cacheTTL()); err != nil {
			a.logger.Warnf("Analyze - SetPredictions error: %v", err)
		}
	}
	a.logger.Infof("Analyze - %s: %d predictions", input.Name, len(predictions))
	return predictions, nil
}

// spool copies the upload into a temp file, hashing it on the way.
func (a *analyzeUC) spool(input *models.UploadInput) (string, string, error) {
	f, err := os.CreateTemp(a.cfg.Media.TempDir, "analyze-*"+filepath.Ext(filepath.Base(input.Name)))
	if err != nil {
		return "", "", fmt.Errorf("failed to create temp file: %w", err)
	}
	hasher := sha256.New()
	if _, err = io.Copy(f, io.TeeReader(input.File, hasher)); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", "", fmt.Errorf("failed to write upload: %w", err)
	}
	if err = f.Close(); err != nil {
		os.Remove(f.Name())
		return "", "", fmt.Errorf("failed to write upload: %w", err)
	}
	return f.Name(), hex.EncodeToString(hasher.Sum(nil)), nil
}

func (a *analyzeUC) cacheTTL() time.Duration {
	if a.cfg.Redis.CacheTTL > 0 {
		return time.Duration(a.cfg.Redis.CacheTTL) * time.Second
	}
	return defaultCacheTTL
}

func CacheKey(digest string, params clips.Params) string {
	return fmt.Sprintf("analyze:%s:%d:%d", digest, params.FramesPerClip, params.Stride)
}
