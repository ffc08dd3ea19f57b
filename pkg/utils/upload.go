package utils

import (
	"errors"
	"net/http"

	"github.com/amankumarsingh77/cube-phase-detector/internal/models"
	"github.com/amankumarsingh77/cube-phase-detector/pkg/httpErrors"
	"github.com/labstack/echo/v4"
)

// UploadFromForm opens the multipart file stored under field.
// The returned close function must be called once the input has been consumed.
func UploadFromForm(c echo.Context, field string) (*models.UploadInput, func(), error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil, httpErrors.ErrNoFile
		}
		return nil, nil, httpErrors.NewBadRequestError(err.Error())
	}
	if fileHeader.Filename == "" {
		return nil, nil, httpErrors.ErrEmptyFilename
	}
	file, err := fileHeader.Open()
	if err != nil {
		return nil, nil, httpErrors.NewBadRequestError(err.Error())
	}
	return &models.UploadInput{
		File:     file,
		Name:     fileHeader.Filename,
		MimeType: fileHeader.Header.Get(echo.HeaderContentType),
		Size:     fileHeader.Size,
	}, func() { file.Close() }, nil
}
