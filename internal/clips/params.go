package clips

import (
	"math"

	"github.com/amankumarsingh77/cube-phase-detector/internal/models"
)

type Params struct {
	FramesPerClip int
	Stride        int
}

func DefaultParams() Params {
	return Params{FramesPerClip: DefaultFramesPerClip, Stride: DefaultStride}
}

// ResolveParams picks window length and stride for a re-segmentation request.
// Each value is resolved on its own, first positive wins:
// explicit frames, seconds*fps, the stored summary, then defaults.
// Non-positive defaults are replaced by DefaultFramesPerClip / DefaultStride.
func ResolveParams(req models.SegmentInput, fps float64, stored *models.Segmentation, defaults Params) Params {
	if defaults.FramesPerClip <= 0 {
		defaults.FramesPerClip = DefaultFramesPerClip
	}
	if defaults.Stride <= 0 {
		defaults.Stride = DefaultStride
	}

	var storedFrames, storedStride int
	if stored != nil {
		storedFrames, storedStride = stored.FramesPerClip, stored.Stride
	}

	return Params{
		FramesPerClip: firstPositive(req.FramesPerClip, secondsToFrames(req.ClipSeconds, fps), storedFrames, defaults.FramesPerClip),
		Stride:        firstPositive(req.Stride, secondsToFrames(req.StrideSeconds, fps), storedStride, defaults.Stride),
	}
}

func secondsToFrames(seconds, fps float64) int {
	if seconds <= 0 || fps <= 0 {
		return 0
	}
	return int(math.RoundToEven(seconds * fps))
}

func firstPositive(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}
