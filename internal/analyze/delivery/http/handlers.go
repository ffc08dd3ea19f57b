package http

import (
	"net/http"

	"github.com/amankumarsingh77/cube-phase-detector/internal/analyze"
	"github.com/amankumarsingh77/cube-phase-detector/pkg/httpErrors"
	"github.com/amankumarsingh77/cube-phase-detector/pkg/logger"
	"github.com/amankumarsingh77/cube-phase-detector/pkg/utils"
	"github.com/labstack/echo/v4"
)

type analyzeHandler struct {
	analyzeUC analyze.UseCase
	logger    logger.Logger
}

func NewAnalyzeHandler(analyzeUC analyze.UseCase, log logger.Logger) analyze.Handler {
	return &analyzeHandler{analyzeUC: analyzeUC, logger: log}
}

func (h *analyzeHandler) Analyze() echo.HandlerFunc {
	return func(c echo.Context) error {
		input, closeFn, err := utils.UploadFromForm(c, "video")
		if err != nil {
			utils.LogResponseError(c, h.logger, err)
			return c.JSON(httpErrors.ErrorResponse(err))
		}
		defer closeFn()

		predictions, err := h.analyzeUC.Analyze(c.Request().Context(), input)
		if err != nil {
			utils.LogResponseError(c, h.logger, err)
			return c.JSON(httpErrors.ErrorResponse(err))
		}
		return c.JSON(http.StatusOK, predictions)
	}
}
