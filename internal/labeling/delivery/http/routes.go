package http

import (
	"github.com/amankumarsingh77/cube-phase-detector/internal/labeling"
	"github.com/amankumarsingh77/cube-phase-detector/internal/middleware"
	"github.com/labstack/echo/v4"
)

func MapLabelingRoutes(labelGroup *echo.Group, h labeling.Handler, mw *middleware.MiddlewareManager) {
	labelGroup.POST("/upload", h.UploadVideo(), mw.UploadBodyLimit())
	labelGroup.GET("/video/:video_id", h.GetVideo())
	labelGroup.GET("/videos", h.ListVideos())
	labelGroup.GET("/annotations/:video_id", h.GetAnnotations())
	labelGroup.POST("/annotations/:video_id", h.SaveAnnotations())
	labelGroup.POST("/segments/:video_id", h.Resegment())
}
