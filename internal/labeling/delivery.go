package labeling

import "github.com/labstack/echo/v4"

type Handler interface {
	UploadVideo() echo.HandlerFunc
	GetVideo() echo.HandlerFunc
	ListVideos() echo.HandlerFunc
	GetAnnotations() echo.HandlerFunc
	SaveAnnotations() echo.HandlerFunc
	Resegment() echo.HandlerFunc
}
