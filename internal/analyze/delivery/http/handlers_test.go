package http

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/amankumarsingh77/cube-phase-detector/internal/models"
	"github.com/amankumarsingh77/cube-phase-detector/pkg/httpErrors"
	"github.com/amankumarsingh77/cube-phase-detector/pkg/logger"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUseCase struct {
	mock.Mock
}

func (m *MockUseCase) Analyze(ctx context.Context, input *models.UploadInput) ([]models.Prediction, error) {
	args := m.Called(ctx, input)
	preds, _ := args.Get(0).([]models.Prediction)
	return preds, args.Error(1)
}

func multipartBody(t *testing.T, field, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func serve(h echo.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	e := echo.New()
	rec := httptest.NewRecorder()
	_ = h(e.NewContext(req, rec))
	return rec
}

func TestAnalyzeHandler(t *testing.T) {
	uc := &MockUseCase{}
	uc.On("Analyze", mock.Anything, mock.MatchedBy(func(in *models.UploadInput) bool {
		return in.Name == "solve.mp4"
	})).Return([]models.Prediction{{Time: 0, Phase: models.PhaseCross}}, nil)
	h := NewAnalyzeHandler(uc, logger.NewNopLogger())

	body, contentType := multipartBody(t, "video", "solve.mp4", "bytes")
	req := httptest.NewRequest(http.MethodPost, "/analyze", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := serve(h.Analyze(), req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"time":0,"phase":"Cross"}]`, rec.Body.String())
}

func TestAnalyzeHandler_MissingFile(t *testing.T) {
	uc := &MockUseCase{}
	h := NewAnalyzeHandler(uc, logger.NewNopLogger())

	body, contentType := multipartBody(t, "not_video", "solve.mp4", "bytes")
	req := httptest.NewRequest(http.MethodPost, "/analyze", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := serve(h.Analyze(), req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var res map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "no file uploaded", res["error"])
	uc.AssertNotCalled(t, "Analyze", mock.Anything, mock.Anything)
}

func TestAnalyzeHandler_NotMultipart(t *testing.T) {
	h := NewAnalyzeHandler(&MockUseCase{}, logger.NewNopLogger())
	req := httptest.NewRequest(http.MethodPost, "/analyze", nil)
	rec := serve(h.Analyze(), req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyzeHandler_UnprocessableMedia(t *testing.T) {
	uc := &MockUseCase{}
	uc.On("Analyze", mock.Anything, mock.Anything).Return(nil, httpErrors.ErrUnprocessableMedia)
	h := NewAnalyzeHandler(uc, logger.NewNopLogger())

	body, contentType := multipartBody(t, "video", "junk.mp4", "junk")
	req := httptest.NewRequest(http.MethodPost, "/analyze", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := serve(h.Analyze(), req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestAnalyzeHandler_InternalErrorBodyIsGeneric(t *testing.T) {
	uc := &MockUseCase{}
	uc.On("Analyze", mock.Anything, mock.Anything).
		Return(nil, errors.Wrap(errors.New("open /tmp/analyze-42.mp4: no space left on device"), "analyzeUC.Analyze.spool"))
	h := NewAnalyzeHandler(uc, logger.NewNopLogger())

	body, contentType := multipartBody(t, "video", "solve.mp4", "bytes")
	req := httptest.NewRequest(http.MethodPost, "/analyze", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := serve(h.Analyze(), req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"status":500,"error":"internal server error"}`, rec.Body.String())
}
