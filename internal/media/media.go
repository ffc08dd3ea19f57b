// Package media reads video metadata and decoded frames through the ffmpeg tool suite.
package media

import (
	"context"

	"github.com/amankumarsingh77/cube-phase-detector/internal/models"
)

type Prober interface {
	Probe(ctx context.Context, path string) (*models.VideoInfo, error)
}

type Decoder interface {
	Prober
	// DecodeFrames returns every frame of the first video stream scaled to a square of the configured size.
	DecodeFrames(ctx context.Context, path string) ([]models.Frame, *models.VideoInfo, error)
}
