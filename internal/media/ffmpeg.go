package media

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os/exec"
	"strconv"
	"strings"

	"github.com/amankumarsingh77/cube-phase-detector/internal/config"
	"github.com/amankumarsingh77/cube-phase-detector/internal/models"
	"github.com/amankumarsingh77/cube-phase-detector/pkg/httpErrors"
	"github.com/amankumarsingh77/cube-phase-detector/pkg/logger"
	"github.com/pkg/errors"
)

const defaultFrameSize = 112

type ffprobeOutput struct {
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeStream struct {
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	AvgFrameRate string `json:"avg_frame_rate"`
	RFrameRate   string `json:"r_frame_rate"`
	NbFrames     string `json:"nb_frames"`
	Duration     string `json:"duration"`
}

type FFmpeg struct {
	ffmpegPath  string
	ffprobePath string
	frameSize   int
	logger      logger.Logger
}

func NewFFmpeg(cfg *config.Config, log logger.Logger) *FFmpeg {
	f := &FFmpeg{
		ffmpegPath:  cfg.Media.FFmpegPath,
		ffprobePath: cfg.Media.FFprobePath,
		frameSize:   cfg.Media.FrameSize,
		logger:      log,
	}
	if f.ffmpegPath == "" {
		f.ffmpegPath = "ffmpeg"
	}
	if f.ffprobePath == "" {
		f.ffprobePath = strings.Replace(f.ffmpegPath, "ffmpeg", "ffprobe", 1)
	}
	if f.frameSize <= 0 {
		f.frameSize = defaultFrameSize
	}
	return f
}

func (f *FFmpeg) FrameSize() int {
	return f.frameSize
}

// Probe reads fps and frame count of the first video stream.
// Failures are reported as httpErrors.ErrUnprocessableMedia.
func (f *FFmpeg) Probe(ctx context.Context, path string) (*models.VideoInfo, error) {
	args := []string{
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height,avg_frame_rate,r_frame_rate,nb_frames,duration",
		"-of", "json",
		path,
	}
	cmd := exec.CommandContext(ctx, f.ffprobePath, args...)
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		f.logger.Warnf("Probe - ffprobe failed for %s: %v: %s", path, err, strings.TrimSpace(stderr.String()))
		return nil, errors.Wrapf(httpErrors.ErrUnprocessableMedia, "ffprobe %s: %v", path, err)
	}

	info, err := parseProbeOutput(out.Bytes())
	if err != nil {
		return nil, errors.Wrapf(httpErrors.ErrUnprocessableMedia, "ffprobe %s: %v", path, err)
	}
	return info, nil
}

func parseProbeOutput(data []byte) (*models.VideoInfo, error) {
	var probe ffprobeOutput
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ffprobe output: %w", err)
	}
	if len(probe.Streams) == 0 {
		return nil, fmt.Errorf("no video stream found")
	}

	s := probe.Streams[0]
	fps := parseRate(s.AvgFrameRate)
	if fps <= 0 {
		fps = parseRate(s.RFrameRate)
	}
	duration, _ := strconv.ParseFloat(s.Duration, 64)

	frameCount, err := strconv.Atoi(s.NbFrames)
	if err != nil || frameCount <= 0 {
		frameCount = 0
		if duration > 0 && fps > 0 {
			frameCount = int(math.Round(duration * fps))
		}
	}

	return &models.VideoInfo{
		Width:      s.Width,
		Height:     s.Height,
		FPS:        fps,
		FrameCount: frameCount,
		Duration:   duration,
	}, nil
}

// parseRate parses ffprobe rates such as "30000/1001" or "25". Unknown rates give 0.
func parseRate(rate string) float64 {
	rate = strings.TrimSpace(rate)
	if rate == "" {
		return 0
	}
	num, den, found := strings.Cut(rate, "/")
	n, err := strconv.ParseFloat(num, 64)
	if err != nil || n <= 0 {
		return 0
	}
	if !found {
		return n
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d <= 0 {
		return 0
	}
	return n / d
}

// DecodeFrames pipes raw rgb24 frames out of ffmpeg. The probed frame count
// is replaced by the number of frames actually decoded.
func (f *FFmpeg) DecodeFrames(ctx context.Context, path string) ([]models.Frame, *models.VideoInfo, error) {
	info, err := f.Probe(ctx, path)
	if err != nil {
		return nil, nil, err
	}

	args := []string{
		"-v", "error",
		"-i", path,
		"-map", "0:v:0",
		"-vsync", "passthrough",
		"-vf", fmt.Sprintf("scale=%d:%d", f.frameSize, f.frameSize),
		"-f", "rawvideo",
		"-pix_fmt", "rgb24",
		"pipe:1",
	}
	cmd := exec.CommandContext(ctx, f.ffmpegPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open ffmpeg stdout: %w", err)
	}
	if err = cmd.Start(); err != nil {
		return nil, nil, fmt.Errorf("failed to start ffmpeg: %w", err)
	}

	frames, readErr := readFrames(bufio.NewReaderSize(stdout, 1<<20), f.frameSize, f.frameSize)
	waitErr := cmd.Wait()
	if readErr != nil {
		return nil, nil, errors.Wrapf(httpErrors.ErrUnprocessableMedia, "read frames from %s: %v", path, readErr)
	}
	if waitErr != nil {
		f.logger.Warnf("DecodeFrames - ffmpeg failed for %s: %v: %s", path, waitErr, strings.TrimSpace(stderr.String()))
		return nil, nil, errors.Wrapf(httpErrors.ErrUnprocessableMedia, "ffmpeg %s: %v", path, waitErr)
	}

	info.FrameCount = len(frames)
	f.logger.Debugf("DecodeFrames - decoded %d frames at %.3f fps from %s", len(frames), info.FPS, path)
	return frames, info, nil
}

// readFrames splits a raw rgb24 stream into frames. A trailing partial frame is an error.
func readFrames(r io.Reader, width, height int) ([]models.Frame, error) {
	size := width * height * 3
	var frames []models.Frame
	for {
		pix := make([]byte, size)
		_, err := io.ReadFull(r, pix)
		if err == io.EOF {
			return frames, nil
		}
		if err != nil {
			return nil, fmt.Errorf("truncated frame %d: %w", len(frames), err)
		}
		frames = append(frames, models.Frame{Width: width, Height: height, Pix: pix})
	}
}
