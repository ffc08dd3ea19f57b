package clips

import (
	"testing"

	"github.com/amankumarsingh77/cube-phase-detector/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindows_HundredFramesAt25FPS(t *testing.T) {
	windows := Windows(100, 25, 16, 4)

	require.Len(t, windows, 22)
	assert.Equal(t, models.Window{Index: 0, StartFrame: 0, Start: 0, End: 0.64}, windows[0])

	last := windows[len(windows)-1]
	assert.Equal(t, 21, last.Index)
	assert.Equal(t, 84, last.StartFrame)
	assert.Equal(t, 3.36, last.Start)
	assert.Equal(t, 4.0, last.End)
}

func TestWindows_Boundaries(t *testing.T) {
	tests := []struct {
		name       string
		frameCount int
		fps        float64
		fpc        int
		stride     int
		want       int
	}{
		{"exactly one clip", 16, 30, 16, 4, 1},
		{"one short of a clip", 15, 30, 16, 4, 0},
		{"zero frames", 0, 30, 16, 4, 0},
		{"unknown fps", 100, 0, 16, 4, 0},
		{"negative fps", 100, -1, 16, 4, 0},
		{"zero stride", 100, 30, 16, 0, 0},
		{"zero clip length", 100, 30, 0, 4, 0},
		{"stride longer than clip", 100, 30, 16, 40, 3},
		{"trailing frames dropped", 19, 30, 16, 4, 1},
		{"second window fits exactly", 20, 30, 16, 4, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			windows := Windows(tt.frameCount, tt.fps, tt.fpc, tt.stride)
			assert.NotNil(t, windows)
			assert.Len(t, windows, tt.want)
			assert.Equal(t, tt.want, Count(tt.frameCount, tt.fps, tt.fpc, tt.stride))
		})
	}
}

func TestWindows_CountAndSpacing(t *testing.T) {
	for frameCount := 0; frameCount <= 200; frameCount += 7 {
		for _, fpc := range []int{1, 8, 16, 32} {
			for _, stride := range []int{1, 3, 4, 16} {
				windows := Windows(frameCount, 29.97, fpc, stride)

				want := 0
				if frameCount >= fpc {
					want = (frameCount-fpc)/stride + 1
				}
				require.Len(t, windows, want, "frames=%d fpc=%d stride=%d", frameCount, fpc, stride)

				for i, w := range windows {
					assert.Equal(t, i, w.Index)
					assert.Equal(t, i*stride, w.StartFrame)
					assert.LessOrEqual(t, w.StartFrame+fpc, frameCount)
					assert.GreaterOrEqual(t, w.End, w.Start)
				}
			}
		}
	}
}

func TestWindows_EndClampedToDuration(t *testing.T) {
	// 10 frames at 3 fps: duration rounds to 3.33 while 9/3 is exactly 3.0
	windows := Windows(10, 3, 9, 1)
	require.Len(t, windows, 2)
	assert.Equal(t, 3.0, windows[0].End)
	assert.Equal(t, 3.33, windows[1].End)
	assert.Equal(t, 0.33, windows[1].Start)
}

func TestRound2AndDuration(t *testing.T) {
	assert.Equal(t, 0.64, Round2(16.0/25))
	assert.Equal(t, 1.23, Round2(1.2345))
	assert.Equal(t, 1.24, Round2(1.235001))
	assert.Equal(t, 4.0, Duration(100, 25))
	assert.Equal(t, 3.34, Duration(100, 29.97))
	assert.Equal(t, 0.0, Duration(100, 0))
}

func TestRound2_TiesToEven(t *testing.T) {
	assert.Equal(t, 0.12, Round2(0.125))
	assert.Equal(t, 4.12, Round2(4.125))
	assert.Equal(t, 0.38, Round2(0.375))
	assert.Equal(t, 2.67, Round2(2.675))
	assert.Equal(t, 1.0, Round2(1.005))
	assert.Equal(t, -0.12, Round2(-0.125))
	assert.Equal(t, 4.12, Duration(99, 24))

	windows := Windows(27, 24, 16, 3)
	require.Len(t, windows, 4)
	assert.Equal(t, 0.12, windows[1].Start)
	assert.Equal(t, 0.38, windows[3].Start)
}

func TestSegment(t *testing.T) {
	seg := Segment(25, 100, 16, 4)

	assert.Equal(t, 25.0, seg.FPS)
	assert.Equal(t, 100, seg.FrameCount)
	assert.Equal(t, 4.0, seg.Duration)
	assert.Equal(t, 16, seg.FramesPerClip)
	assert.Equal(t, 4, seg.Stride)
	assert.Len(t, seg.Clips, 22)

	empty := Segment(0, 100, 16, 4)
	assert.Equal(t, 0.0, empty.Duration)
	assert.NotNil(t, empty.Clips)
	assert.Empty(t, empty.Clips)
}
