// Package clips turns a frame count and frame rate into fixed-length, strided
// windows. It is the only place window boundaries are computed; inference,
// upload summaries and re-segmentation all go through Windows.
package clips

import (
	"math"
	"strconv"

	"github.com/amankumarsingh77/cube-phase-detector/internal/models"
)

const (
	DefaultFramesPerClip = 16
	DefaultStride        = 4
)

// Round2 rounds the exact binary value of v to two decimals, ties to even.
// 0.125 becomes 0.12 and 2.675 (stored just below) becomes 2.67.
func Round2(v float64) float64 {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	return r
}

// Duration is frameCount/fps rounded to two decimals, or 0 when fps is unknown.
func Duration(frameCount int, fps float64) float64 {
	if fps <= 0 {
		return 0
	}
	return Round2(float64(frameCount) / fps)
}

// Count returns how many windows Windows would produce.
func Count(frameCount int, fps float64, framesPerClip, stride int) int {
	if fps <= 0 || framesPerClip <= 0 || stride <= 0 || frameCount < framesPerClip {
		return 0
	}
	return (frameCount-framesPerClip)/stride + 1
}

// Windows enumerates windows starting at 0, stride, 2*stride, ... while the
// whole window fits inside frameCount. The result is never nil.
func Windows(frameCount int, fps float64, framesPerClip, stride int) []models.Window {
	n := Count(frameCount, fps, framesPerClip, stride)
	windows := make([]models.Window, 0, n)
	if n == 0 {
		return windows
	}

	duration := Duration(frameCount, fps)
	for start := 0; start+framesPerClip <= frameCount; start += stride {
		end := math.Min(float64(start+framesPerClip)/fps, duration)
		windows = append(windows, models.Window{
			Index:      len(windows),
			StartFrame: start,
			Start:      Round2(float64(start) / fps),
			End:        Round2(end),
		})
	}
	return windows
}

// Segment builds the recomputable part of a video summary.
func Segment(fps float64, frameCount, framesPerClip, stride int) models.Segmentation {
	return models.Segmentation{
		FPS:           fps,
		FrameCount:    frameCount,
		Duration:      Duration(frameCount, fps),
		FramesPerClip: framesPerClip,
		Stride:        stride,
		Clips:         Windows(frameCount, fps, framesPerClip, stride),
	}
}
