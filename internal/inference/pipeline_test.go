package inference

import (
	"context"
	"errors"
	"testing"

	"github.com/amankumarsingh77/cube-phase-detector/internal/classifier"
	"github.com/amankumarsingh77/cube-phase-detector/internal/models"
	"github.com/amankumarsingh77/cube-phase-detector/pkg/httpErrors"
	"github.com/amankumarsingh77/cube-phase-detector/pkg/logger"
	pkgErrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func makeFrames(n, size int) []models.Frame {
	frames := make([]models.Frame, n)
	for i := range frames {
		pix := make([]byte, size*size*3)
		for j := range pix {
			pix[j] = byte(i)
		}
		frames[i] = models.Frame{Width: size, Height: size, Pix: pix}
	}
	return frames
}

func TestBuildTensor_LayoutAndNormalization(t *testing.T) {
	frames := []models.Frame{
		{Width: 2, Height: 1, Pix: []byte{0, 255, 51, 255, 0, 0}},
		{Width: 2, Height: 1, Pix: []byte{102, 102, 102, 153, 153, 153}},
	}
	tensor, err := BuildTensor(frames)
	require.NoError(t, err)

	assert.Equal(t, 3, tensor.Channels)
	assert.Equal(t, 2, tensor.Frames)
	assert.Equal(t, 1, tensor.Height)
	assert.Equal(t, 2, tensor.Width)

	assert.InDelta(t, -2.0, tensor.Data[tensor.Index(0, 0, 0, 0)], 1e-6)
	assert.InDelta(t, 2.0, tensor.Data[tensor.Index(1, 0, 0, 0)], 1e-6)
	assert.InDelta(t, -1.2, tensor.Data[tensor.Index(2, 0, 0, 0)], 1e-6)
	assert.InDelta(t, 2.0, tensor.Data[tensor.Index(0, 0, 0, 1)], 1e-6)
	assert.InDelta(t, -0.4, tensor.Data[tensor.Index(1, 1, 0, 0)], 1e-6)
	assert.InDelta(t, 0.4, tensor.Data[tensor.Index(2, 1, 0, 1)], 1e-6)
}

func TestBuildTensor_Errors(t *testing.T) {
	_, err := BuildTensor(nil)
	assert.Error(t, err)

	_, err = BuildTensor([]models.Frame{
		{Width: 2, Height: 2, Pix: make([]byte, 12)},
		{Width: 1, Height: 1, Pix: make([]byte, 3)},
	})
	assert.Error(t, err)
}

func TestPipeline_Classify(t *testing.T) {
	clf := &MockClassifier{}
	labels := []int{0, 1, 1, 2, 3, 4}
	for _, l := range labels {
		clf.On("Classify", mock.Anything, mock.AnythingOfType("*classifier.Tensor")).Return(l, nil).Once()
	}

	p := NewPipeline(&MockDecoder{}, clf, logger.NewNopLogger())
	// 36 frames, 16 per clip, stride 4: 6 windows
	preds, err := p.Classify(context.Background(), makeFrames(36, 4), 10, 16, 4)

	require.NoError(t, err)
	require.Len(t, preds, 6)
	assert.Equal(t, models.Prediction{Time: 0, Phase: models.PhaseInspection}, preds[0])
	assert.Equal(t, models.Prediction{Time: 0.4, Phase: models.PhaseCross}, preds[1])
	assert.Equal(t, models.Prediction{Time: 2.0, Phase: models.PhasePLL}, preds[5])
	clf.AssertNumberOfCalls(t, "Classify", 6)
}

func TestPipeline_ClassifyWindowContents(t *testing.T) {
	var seen []float32
	clf := &MockClassifier{}
	clf.On("Classify", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		tensor := args.Get(1).(*classifier.Tensor)
		assert.Equal(t, 16, tensor.Frames)
		seen = append(seen, tensor.Data[tensor.Index(0, 0, 0, 0)])
	}).Return(0, nil)

	p := NewPipeline(&MockDecoder{}, clf, logger.NewNopLogger())
	_, err := p.Classify(context.Background(), makeFrames(24, 2), 30, 16, 4)
	require.NoError(t, err)

	// windows start at frames 0, 4 and 8; every frame is filled with its own index
	require.Len(t, seen, 3)
	assert.InDelta(t, normalize(0), seen[0], 1e-6)
	assert.InDelta(t, normalize(4), seen[1], 1e-6)
	assert.InDelta(t, normalize(8), seen[2], 1e-6)
}

func TestPipeline_ClassifyShortInput(t *testing.T) {
	clf := &MockClassifier{}
	p := NewPipeline(&MockDecoder{}, clf, logger.NewNopLogger())

	preds, err := p.Classify(context.Background(), nil, 30, 16, 4)
	require.NoError(t, err)
	assert.Empty(t, preds)

	preds, err = p.Classify(context.Background(), makeFrames(15, 2), 30, 16, 4)
	require.NoError(t, err)
	assert.NotNil(t, preds)
	assert.Empty(t, preds)

	clf.AssertNotCalled(t, "Classify", mock.Anything, mock.Anything)
}

func TestPipeline_LabelOutOfRange(t *testing.T) {
	clf := &MockClassifier{}
	clf.On("Classify", mock.Anything, mock.Anything).Return(5, nil)

	p := NewPipeline(&MockDecoder{}, clf, logger.NewNopLogger())
	_, err := p.Classify(context.Background(), makeFrames(16, 2), 30, 16, 4)
	assert.Error(t, err)
}

func TestPipeline_ClassifierError(t *testing.T) {
	boom := errors.New("model server down")
	clf := &MockClassifier{}
	clf.On("Classify", mock.Anything, mock.Anything).Return(0, boom)

	p := NewPipeline(&MockDecoder{}, clf, logger.NewNopLogger())
	_, err := p.Classify(context.Background(), makeFrames(16, 2), 30, 16, 4)
	assert.ErrorIs(t, err, boom)
}

func TestPipeline_Run(t *testing.T) {
	dec := &MockDecoder{}
	dec.On("DecodeFrames", mock.Anything, "solve.mp4").
		Return(makeFrames(20, 2), &models.VideoInfo{FPS: 25, FrameCount: 20}, nil)
	clf := &MockClassifier{}
	clf.On("Classify", mock.Anything, mock.Anything).Return(2, nil)

	preds, err := NewPipeline(dec, clf, logger.NewNopLogger()).Run(context.Background(), "solve.mp4", 16, 4)
	require.NoError(t, err)
	assert.Equal(t, []models.Prediction{
		{Time: 0, Phase: models.PhaseF2L},
		{Time: 0.16, Phase: models.PhaseF2L},
	}, preds)
}

func TestPipeline_RunDecodeFailure(t *testing.T) {
	dec := &MockDecoder{}
	dec.On("DecodeFrames", mock.Anything, "broken.mp4").
		Return(nil, nil, pkgErrors.Wrap(httpErrors.ErrUnprocessableMedia, "ffmpeg broken.mp4"))

	_, err := NewPipeline(dec, &MockClassifier{}, logger.NewNopLogger()).Run(context.Background(), "broken.mp4", 16, 4)
	assert.ErrorIs(t, err, httpErrors.ErrUnprocessableMedia)
}
