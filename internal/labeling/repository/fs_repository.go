package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/amankumarsingh77/cube-phase-detector/internal/labeling"
	"github.com/amankumarsingh77/cube-phase-detector/internal/models"
	"github.com/amankumarsingh77/cube-phase-detector/pkg/httpErrors"
	"github.com/amankumarsingh77/cube-phase-detector/pkg/logger"
)

const (
	metaSuffix   = ".meta.json"
	labelsSuffix = ".labels.json"
)

type fsLabelRepo struct {
	dir    string
	logger logger.Logger
}

// NewFSLabelRepo keeps {id}.meta.json and {id}.labels.json files under dir.
func NewFSLabelRepo(dir string, log logger.Logger) (labeling.Repository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create label dir: %w", err)
	}
	return &fsLabelRepo{dir: dir, logger: log}, nil
}

func (r *fsLabelRepo) SaveSummary(ctx context.Context, summary *models.VideoSummary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}
	return writeFileAtomic(filepath.Join(r.dir, summary.VideoID+metaSuffix), data)
}

func (r *fsLabelRepo) GetSummary(ctx context.Context, videoID string) (*models.VideoSummary, error) {
	data, err := os.ReadFile(filepath.Join(r.dir, videoID+metaSuffix))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("summary %s: %w", videoID, httpErrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read summary: %w", err)
	}
	summary := &models.VideoSummary{}
	if err = json.Unmarshal(data, summary); err != nil {
		return nil, fmt.Errorf("failed to unmarshal summary %s: %w", videoID, err)
	}
	return summary, nil
}

func (r *fsLabelRepo) ListSummaries(ctx context.Context) ([]*models.VideoSummary, error) {
	paths, err := filepath.Glob(filepath.Join(r.dir, "*"+metaSuffix))
	if err != nil {
		return nil, fmt.Errorf("failed to list summaries: %w", err)
	}

	summaries := make([]*models.VideoSummary, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			r.logger.Warnf("ListSummaries - skipping %s: %v", filepath.Base(path), err)
			continue
		}
		summary := &models.VideoSummary{}
		if err = json.Unmarshal(data, summary); err != nil || summary.VideoID == "" {
			r.logger.Warnf("ListSummaries - skipping malformed %s: %v", filepath.Base(path), err)
			continue
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (r *fsLabelRepo) SaveAnnotations(ctx context.Context, videoID string, annotations []models.Annotation) error {
	if annotations == nil {
		annotations = []models.Annotation{}
	}
	data, err := json.Marshal(annotations)
	if err != nil {
		return fmt.Errorf("failed to marshal annotations: %w", err)
	}
	return writeFileAtomic(filepath.Join(r.dir, videoID+labelsSuffix), data)
}

func (r *fsLabelRepo) GetAnnotations(ctx context.Context, videoID string) ([]models.Annotation, error) {
	data, err := os.ReadFile(filepath.Join(r.dir, videoID+labelsSuffix))
	if err != nil {
		if os.IsNotExist(err) {
			return []models.Annotation{}, nil
		}
		return nil, fmt.Errorf("failed to read annotations: %w", err)
	}
	annotations := []models.Annotation{}
	if err = json.Unmarshal(data, &annotations); err != nil {
		return nil, fmt.Errorf("failed to unmarshal annotations %s: %w", videoID, err)
	}
	return annotations, nil
}

// writeFileAtomic writes to a temp file in the same directory and renames it over path,
// so readers never see a partially written record.
func writeFileAtomic(path string, data []byte) error {
	dir, name := filepath.Split(path)
	tmp, err := os.CreateTemp(dir, "."+strings.TrimSuffix(name, ".json")+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err = tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync %s: %w", name, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", name, err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to rename %s: %w", name, err)
	}
	return nil
}
