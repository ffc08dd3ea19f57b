package middleware

import (
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const defaultMaxUploadMB = 512

// UploadBodyLimit caps multipart uploads at server.maxUploadMB.
func (mw *MiddlewareManager) UploadBodyLimit() echo.MiddlewareFunc {
	limit := mw.cfg.Server.MaxUploadMB
	if limit <= 0 {
		limit = defaultMaxUploadMB
	}
	return middleware.BodyLimit(fmt.Sprintf("%dM", limit))
}
