package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func (mw *MiddlewareManager) CORS() echo.MiddlewareFunc {
	origins := mw.origins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, "Range", echo.HeaderXRequestID},
		ExposeHeaders: []string{
			echo.HeaderContentLength, echo.HeaderXRequestID, "Content-Range", "Accept-Ranges",
		},
		MaxAge: 300,
	})
}
