package utils

import (
	"StaidreptGolang/pkg/response"
	"crypto/rand"
	"encoding/base64"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// MaxUploadSize is the hard cap on accepted image payloads; anything larger
// is rejected before any decode attempt.
const MaxUploadSize = 10 * 1024 * 1024

type IUtils interface {
	NewULIDFromTimestamp(t time.Time) (string, error)
	ValidateImageFile(file *multipart.FileHeader) error
	ReadFileBytes(file multipart.File) ([]byte, error)
	DecodeBase64Image(data string) ([]byte, error)
}

type utils struct {
	maxFileSize int64
}

func New() IUtils {
	return &utils{
		maxFileSize: MaxUploadSize,
	}
}

func (u *utils) NewULIDFromTimestamp(t time.Time) (string, error) {
	ms := ulid.Timestamp(t)
	entropy := ulid.Monotonic(rand.Reader, 0)

	id, err := ulid.New(ms, entropy)
	if err != nil {
		return "", err
	}

	return id.String(), nil
}

func (u *utils) ValidateImageFile(file *multipart.FileHeader) error {
	if file == nil {
		return response.NewError(http.StatusBadRequest, "no image file provided")
	}

	if file.Size > u.maxFileSize {
		return response.NewError(http.StatusRequestEntityTooLarge, "image exceeds the 10MB size limit")
	}

	contentType := file.Header.Get("Content-Type")
	if contentType != "" && !strings.HasPrefix(contentType, "image/") {
		return response.NewError(http.StatusBadRequest, "uploaded file is not an image")
	}

	return nil
}

func (u *utils) ReadFileBytes(file multipart.File) ([]byte, error) {
	return io.ReadAll(io.LimitReader(file, MaxUploadSize+1))
}

// DecodeBase64Image decodes a base64 image payload, tolerating an optional
// data-URI prefix, and enforces the upload size cap before any decoding of
// the raster itself.
func (u *utils) DecodeBase64Image(data string) ([]byte, error) {
	if idx := strings.Index(data, "base64,"); idx >= 0 {
		data = data[idx+len("base64,"):]
	}

	if int64(len(data))/4*3 > u.maxFileSize {
		return nil, response.NewError(http.StatusRequestEntityTooLarge, "image exceeds the 10MB size limit")
	}

	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, response.NewError(http.StatusBadRequest, "invalid base64 image payload")
	}

	return raw, nil
}
