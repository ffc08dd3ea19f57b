package analyze

import "github.com/labstack/echo/v4"

type Handler interface {
	Analyze() echo.HandlerFunc
}
