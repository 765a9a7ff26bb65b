package handlers

import (
	"mime/multipart"

	"shopstock/internal/services"

	"github.com/labstack/echo/v4"
)

// imageFromForm pulls an optional uploaded file out of a multipart form.
// A missing file field is not an error; the returned close function is
// non-nil only when a file was opened.
func imageFromForm(c echo.Context, field string) (*services.ImageUpload, func(), error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		// echo returns an error for an absent field; treat it as "no image".
		return nil, nil, nil
	}
	return openUpload(fileHeader)
}

func openUpload(fileHeader *multipart.FileHeader) (*services.ImageUpload, func(), error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, nil, err
	}
	upload := &services.ImageUpload{
		Filename: fileHeader.Filename,
		Reader:   file,
		Size:     fileHeader.Size,
	}
	return upload, func() { file.Close() }, nil
}
