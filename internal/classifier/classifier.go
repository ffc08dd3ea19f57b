// Package classifier wraps the pretrained phase model. The model itself runs
// behind a model server; this package only knows how to ship one window of
// frames to it and read back a label index.
package classifier

import (
	"context"
	"fmt"
	"sync"
)

// Tensor is a channel-first [C][T][H][W] float32 block for a single window.
type Tensor struct {
	Channels int
	Frames   int
	Height   int
	Width    int
	Data     []float32
}

func NewTensor(channels, frames, height, width int) *Tensor {
	return &Tensor{
		Channels: channels,
		Frames:   frames,
		Height:   height,
		Width:    width,
		Data:     make([]float32, channels*frames*height*width),
	}
}

// Index returns the flat offset of element [c][t][y][x].
func (t *Tensor) Index(c, f, y, x int) int {
	return ((c*t.Frames+f)*t.Height+y)*t.Width + x
}

func (t *Tensor) Validate() error {
	if t == nil {
		return fmt.Errorf("nil tensor")
	}
	if want := t.Channels * t.Frames * t.Height * t.Width; want == 0 || len(t.Data) != want {
		return fmt.Errorf("tensor shape %dx%dx%dx%d does not match %d values", t.Channels, t.Frames, t.Height, t.Width, len(t.Data))
	}
	return nil
}

// Classifier maps one window tensor to a label index.
type Classifier interface {
	Classify(ctx context.Context, tensor *Tensor) (int, error)
}

// Serialized runs at most one Classify at a time on the wrapped classifier.
type Serialized struct {
	mu    sync.Mutex
	inner Classifier
}

func NewSerialized(inner Classifier) *Serialized {
	return &Serialized{inner: inner}
}

func (s *Serialized) Classify(ctx context.Context, tensor *Tensor) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return s.inner.Classify(ctx, tensor)
}
