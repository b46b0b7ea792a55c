package posture

import (
	"StaidreptGolang/pkg/response"
	"net/http"
)

var (
	ErrInvalidImage        = response.NewError(http.StatusBadRequest, "invalid image file")
	ErrNoFileUploaded      = response.NewError(http.StatusBadRequest, "no image file provided")
	ErrFileTooLarge        = response.NewError(http.StatusRequestEntityTooLarge, "image exceeds the 10MB size limit")
	ErrEncodingFailed      = response.NewError(http.StatusInternalServerError, "image encoding failed")
	ErrInternalServerError = response.NewError(http.StatusInternalServerError, "internal server error")
)
