package utils

import (
	"mime"
	"path/filepath"
	"strings"

	"github.com/amankumarsingh77/cube-phase-detector/pkg/logger"
	"github.com/labstack/echo/v4"
)

var videoContentTypes = map[string]string{
	".mp4":  "video/mp4",
	".m4v":  "video/mp4",
	".mov":  "video/quicktime",
	".webm": "video/webm",
	".mkv":  "video/x-matroska",
	".avi":  "video/x-msvideo",
}

func GetRequestID(c echo.Context) string {
	return c.Response().Header().Get(echo.HeaderXRequestID)
}

func GetIPAddress(c echo.Context) string {
	return c.Request().RemoteAddr
}

// LogResponseError logs the full error chain of a failed request.
func LogResponseError(c echo.Context, log logger.Logger, err error) {
	log.Errorf("ErrResponseWithLog, RequestID: %s, IPAddress: %s, Method: %s, URI: %s, Error: %v",
		GetRequestID(c), GetIPAddress(c), c.Request().Method, c.Request().RequestURI, err)
}

// ContentTypeByName guesses a video content type from its file extension.
func ContentTypeByName(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ct, ok := videoContentTypes[ext]; ok {
		return ct
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return echo.MIMEOctetStream
}
