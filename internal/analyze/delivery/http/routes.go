package http

import (
	"github.com/amankumarsingh77/cube-phase-detector/internal/analyze"
	"github.com/amankumarsingh77/cube-phase-detector/internal/middleware"
	"github.com/labstack/echo/v4"
)

func MapAnalyzeRoutes(e *echo.Echo, h analyze.Handler, mw *middleware.MiddlewareManager) {
	e.POST("/analyze", h.Analyze(), mw.UploadBodyLimit())
}
