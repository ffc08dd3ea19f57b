package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/amankumarsingh77/cube-phase-detector/internal/labeling"
	"github.com/amankumarsingh77/cube-phase-detector/internal/models"
	"github.com/amankumarsingh77/cube-phase-detector/pkg/httpErrors"
	"github.com/amankumarsingh77/cube-phase-detector/pkg/logger"
	"github.com/jmoiron/sqlx"
)

type summaryRow struct {
	VideoID string `db:"video_id"`
	Payload []byte `db:"payload"`
}

type labelRepo struct {
	db     *sqlx.DB
	logger logger.Logger
}

func NewLabelRepo(db *sqlx.DB, log logger.Logger) labeling.Repository {
	return &labelRepo{db: db, logger: log}
}

func (r *labelRepo) SaveSummary(ctx context.Context, summary *models.VideoSummary) error {
	payload, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}
	if _, err = r.db.ExecContext(ctx, upsertSummaryQuery, summary.VideoID, payload, summary.CreatedAt); err != nil {
		return fmt.Errorf("failed to save summary: %w", err)
	}
	return nil
}

func (r *labelRepo) GetSummary(ctx context.Context, videoID string) (*models.VideoSummary, error) {
	var payload []byte
	if err := r.db.GetContext(ctx, &payload, getSummaryQuery, videoID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("summary %s: %w", videoID, httpErrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get summary: %w", err)
	}
	summary := &models.VideoSummary{}
	if err := json.Unmarshal(payload, summary); err != nil {
		return nil, fmt.Errorf("failed to unmarshal summary %s: %w", videoID, err)
	}
	return summary, nil
}

func (r *labelRepo) ListSummaries(ctx context.Context) ([]*models.VideoSummary, error) {
	var rows []summaryRow
	if err := r.db.SelectContext(ctx, &rows, listSummaryQuery); err != nil {
		return nil, fmt.Errorf("failed to list summaries: %w", err)
	}
	summaries := make([]*models.VideoSummary, 0, len(rows))
	for _, row := range rows {
		summary := &models.VideoSummary{}
		if err := json.Unmarshal(row.Payload, summary); err != nil {
			r.logger.Warnf("ListSummaries - skipping malformed summary %s: %v", row.VideoID, err)
			continue
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (r *labelRepo) SaveAnnotations(ctx context.Context, videoID string, annotations []models.Annotation) error {
	if annotations == nil {
		annotations = []models.Annotation{}
	}
	payload, err := json.Marshal(annotations)
	if err != nil {
		return fmt.Errorf("failed to marshal annotations: %w", err)
	}
	if _, err = r.db.ExecContext(ctx, upsertLabelsQuery, videoID, payload); err != nil {
		return fmt.Errorf("failed to save annotations: %w", err)
	}
	return nil
}

func (r *labelRepo) GetAnnotations(ctx context.Context, videoID string) ([]models.Annotation, error) {
	var payload []byte
	if err := r.db.GetContext(ctx, &payload, getLabelsQuery, videoID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []models.Annotation{}, nil
		}
		return nil, fmt.Errorf("failed to get annotations: %w", err)
	}
	annotations := []models.Annotation{}
	if err := json.Unmarshal(payload, &annotations); err != nil {
		return nil, fmt.Errorf("failed to unmarshal annotations %s: %w", videoID, err)
	}
	return annotations, nil
}
