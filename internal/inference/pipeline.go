// Package inference runs the phase classifier over every window of a video.
package inference

import (
	"context"
	"fmt"
	"time"

	"github.com/amankumarsingh77/cube-phase-detector/internal/classifier"
	"github.com/amankumarsingh77/cube-phase-detector/internal/clips"
	"github.com/amankumarsingh77/cube-phase-detector/internal/media"
	"github.com/amankumarsingh77/cube-phase-detector/internal/metrics"
	"github.com/amankumarsingh77/cube-phase-detector/internal/models"
	"github.com/amankumarsingh77/cube-phase-detector/pkg/logger"
	"github.com/pkg/errors"
)

const channels = 3

type Pipeline struct {
	decoder    media.Decoder
	classifier classifier.Classifier
	logger     logger.Logger
}

func NewPipeline(decoder media.Decoder, clf classifier.Classifier, log logger.Logger) *Pipeline {
	return &Pipeline{decoder: decoder, classifier: clf, logger: log}
}

// Run decodes the video at path and classifies it.
func (p *Pipeline) Run(ctx context.Context, path string, framesPerClip, stride int) ([]models.Prediction, error) {
	start := time.Now()
	frames, info, err := p.decoder.DecodeFrames(ctx, path)
	if err != nil {
		return nil, errors.Wrap(err, "Pipeline.Run.DecodeFrames")
	}
	metrics.PipelineDuration.WithLabelValues("decode").Observe(time.Since(start).Seconds())

	return p.Classify(ctx, frames, info.FPS, framesPerClip, stride)
}

// Classify predicts one phase per window. The result has the same order as the windows.
func (p *Pipeline) Classify(ctx context.Context, frames []models.Frame, fps float64, framesPerClip, stride int) ([]models.Prediction, error) {
	start := time.Now()
	windows := clips.Windows(len(frames), fps, framesPerClip, stride)
	predictions := make([]models.Prediction, 0, len(windows))

	for _, w := range windows {
		tensor, err := BuildTensor(frames[w.StartFrame : w.StartFrame+framesPerClip])
		if err != nil {
			return nil, errors.Wrapf(err, "Pipeline.Classify.BuildTensor window %d", w.Index)
		}

		label, err := p.classifier.Classify(ctx, tensor)
		if err != nil {
			return nil, errors.Wrapf(err, "Pipeline.Classify window %d", w.Index)
		}
		phase, err := models.PhaseFromIndex(label)
		if err != nil {
			return nil, errors.Wrapf(err, "Pipeline.Classify window %d", w.Index)
		}

		metrics.WindowsClassifiedTotal.Inc()
		metrics.PhasePredictionsTotal.WithLabelValues(string(phase)).Inc()
		predictions = append(predictions, models.Prediction{Time: w.Start, Phase: phase})
	}

	metrics.PipelineDuration.WithLabelValues("classify").Observe(time.Since(start).Seconds())
	p.logger.Debugf("Pipeline.Classify - %d frames, %d windows in %s", len(frames), len(windows), time.Since(start))
	return predictions, nil
}

// BuildTensor lays out frames as [C][T][H][W] with every sample scaled to (p/255-0.5)/0.25.
func BuildTensor(frames []models.Frame) (*classifier.Tensor, error) {
	if len(frames) == 0 {
		return nil, fmt.Errorf("no frames")
	}
	h, w := frames[0].Height, frames[0].Width
	tensor := classifier.NewTensor(channels, len(frames), h, w)

	for t, f := range frames {
		if f.Width != w || f.Height != h || len(f.Pix) != w*h*channels {
			return nil, fmt.Errorf("frame %d is %dx%d with %d bytes, want %dx%d", t, f.Width, f.Height, len(f.Pix), w, h)
		}
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				px := (y*w + x) * channels
				for c := 0; c < channels; c++ {
					tensor.Data[tensor.Index(c, t, y, x)] = normalize(f.Pix[px+c])
				}
			}
		}
	}
	return tensor, nil
}

func normalize(p byte) float32 {
	return (float32(p)/255 - 0.5) / 0.25
}
