package models

import (
	"io"
	"time"
)

// VideoSummary is the persisted metadata record of a labeling video.
type VideoSummary struct {
	VideoID  string `json:"videoId"`
	Filename string `json:"filename"`
	VideoURL string `json:"videoUrl"`
	Segmentation
	CreatedAt time.Time `json:"createdAt"`
}

type VideoList struct {
	Videos     []*VideoSummary `json:"videos"`
	TotalCount int             `json:"total_count,omitempty"`
	Page       int             `json:"page,omitempty"`
	PageSize   int             `json:"page_size,omitempty"`
	HasMore    bool            `json:"has_more,omitempty"`
	Next       string          `json:"next,omitempty"`
}

type UploadInput struct {
	File       io.Reader `json:"-"`
	Name       string    `json:"name" validate:"required,lte=255"`
	MimeType   string    `json:"mime_type"`
	Size       int64     `json:"size" validate:"gte=0"`
	Key        string    `json:"key"`
	BucketName string    `json:"bucket_name"`
}

// Object is a stored video opened for reading. Callers must close Body.
type Object struct {
	Key         string
	Body        io.ReadCloser
	Size        int64
	ContentType string
	ModTime     time.Time
}

// VideoInfo is what the prober can tell about a video without decoding it.
type VideoInfo struct {
	Width      int
	Height     int
	FPS        float64
	FrameCount int
	Duration   float64
}

// Frame is one decoded RGB24 raster, row-major, 3 bytes per pixel.
type Frame struct {
	Width  int
	Height int
	Pix    []byte
}
