package http

import (
	"io"
	"net/http"
	"strconv"

	"github.com/amankumarsingh77/cube-phase-detector/internal/labeling"
	"github.com/amankumarsingh77/cube-phase-detector/internal/models"
	"github.com/amankumarsingh77/cube-phase-detector/pkg/httpErrors"
	"github.com/amankumarsingh77/cube-phase-detector/pkg/logger"
	"github.com/amankumarsingh77/cube-phase-detector/pkg/utils"
	"github.com/labstack/echo/v4"
)

const formFileField = "video"

type labelingHandler struct {
	labelingUC labeling.UseCase
	logger     logger.Logger
}

func NewLabelingHandler(labelingUC labeling.UseCase, log logger.Logger) labeling.Handler {
	return &labelingHandler{
		labelingUC: labelingUC,
		logger:     log,
	}
}

func (h *labelingHandler) UploadVideo() echo.HandlerFunc {
	return func(c echo.Context) error {
		input, closeFn, err := utils.UploadFromForm(c, formFileField)
		if err != nil {
			utils.LogResponseError(c, h.logger, err)
			return c.JSON(httpErrors.ErrorResponse(err))
		}
		defer closeFn()

		summary, err := h.labelingUC.UploadVideo(c.Request().Context(), input)
		if err != nil {
			utils.LogResponseError(c, h.logger, err)
			return c.JSON(httpErrors.ErrorResponse(err))
		}
		return c.JSON(http.StatusOK, summary)
	}
}

func (h *labelingHandler) GetVideo() echo.HandlerFunc {
	return func(c echo.Context) error {
		obj, err := h.labelingUC.GetVideo(c.Request().Context(), c.Param("video_id"))
		if err != nil {
			utils.LogResponseError(c, h.logger, err)
			return c.JSON(httpErrors.ErrorResponse(err))
		}
		defer obj.Body.Close()

		res := c.Response()
		res.Header().Set(echo.HeaderContentType, obj.ContentType)
		if rs, ok := obj.Body.(io.ReadSeeker); ok {
			http.ServeContent(res, c.Request(), obj.Key, obj.ModTime, rs)
			return nil
		}
		if obj.Size > 0 {
			res.Header().Set(echo.HeaderContentLength, strconv.FormatInt(obj.Size, 10))
		}
		return c.Stream(http.StatusOK, obj.ContentType, obj.Body)
	}
}

func (h *labelingHandler) ListVideos() echo.HandlerFunc {
	return func(c echo.Context) error {
		pagination, err := utils.GetPaginationFromCtx(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, httpErrors.NewBadRequestError(err.Error()))
		}
		videos, err := h.labelingUC.ListVideos(c.Request().Context(), pagination)
		if err != nil {
			utils.LogResponseError(c, h.logger, err)
			return c.JSON(httpErrors.ErrorResponse(err))
		}
		return c.JSON(http.StatusOK, videos)
	}
}

func (h *labelingHandler) GetAnnotations() echo.HandlerFunc {
	return func(c echo.Context) error {
		list, err := h.labelingUC.GetAnnotations(c.Request().Context(), c.Param("video_id"))
		if err != nil {
			utils.LogResponseError(c, h.logger, err)
			return c.JSON(httpErrors.ErrorResponse(err))
		}
		return c.JSON(http.StatusOK, list)
	}
}

func (h *labelingHandler) SaveAnnotations() echo.HandlerFunc {
	return func(c echo.Context) error {
		list := &models.AnnotationList{}
		if err := c.Bind(list); err != nil {
			return c.JSON(http.StatusBadRequest, httpErrors.NewBadRequestError("Invalid request payload"))
		}
		saved, err := h.labelingUC.SaveAnnotations(c.Request().Context(), c.Param("video_id"), list)
		if err != nil {
			utils.LogResponseError(c, h.logger, err)
			return c.JSON(httpErrors.ErrorResponse(err))
		}
		return c.JSON(http.StatusOK, saved)
	}
}

func (h *labelingHandler) Resegment() echo.HandlerFunc {
	return func(c echo.Context) error {
		input := &models.SegmentInput{}
		if err := c.Bind(input); err != nil {
			return c.JSON(http.StatusBadRequest, httpErrors.NewBadRequestError("Invalid request payload"))
		}
		summary, err := h.labelingUC.Resegment(c.Request().Context(), c.Param("video_id"), input)
		if err != nil {
			utils.LogResponseError(c, h.logger, err)
			return c.JSON(httpErrors.ErrorResponse(err))
		}
		return c.JSON(http.StatusOK, summary)
	}
}
