package models

// Window is one fixed-length run of frames used as a single inference unit.
type Window struct {
	Index      int     `json:"index"`
	StartFrame int     `json:"startFrame"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
}

// Segmentation is the recomputable part of a video summary: everything derived
// from (fps, frameCount, framesPerClip, stride).
type Segmentation struct {
	FPS           float64  `json:"fps"`
	FrameCount    int      `json:"frameCount"`
	Duration      float64  `json:"duration"`
	FramesPerClip int      `json:"framesPerClip"`
	Stride        int      `json:"stride"`
	Clips         []Window `json:"clips"`
}

// SegmentInput is the body of a re-segmentation request. Zero or negative values mean "not provided".
type SegmentInput struct {
	ClipSeconds   float64 `json:"clipSeconds,omitempty"`
	StrideSeconds float64 `json:"strideSeconds,omitempty"`
	FramesPerClip int     `json:"framesPerClip,omitempty"`
	Stride        int     `json:"stride,omitempty"`
}
