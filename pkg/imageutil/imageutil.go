package imageutil

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"math"

	"github.com/disintegration/imaging"
)

const (
	// MaxWidth and MaxHeight bound the working resolution so adversarially
	// large uploads keep a predictable memory and CPU cost.
	MaxWidth  = 1080
	MaxHeight = 1080

	// JPEGQuality is used for every encoded output frame.
	JPEGQuality = 85
)

const dataURIPrefix = "data:image/jpeg;base64,"

// DecodeRGB decodes raster bytes into an owned NRGBA buffer that overlay
// drawing can mutate in place.
func DecodeRGB(data []byte) (*image.NRGBA, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return imaging.Clone(img), nil
}

// Normalize resizes an image down to fit within maxWidth x maxHeight,
// preserving aspect ratio with Lanczos resampling. Images already within
// bounds are returned unchanged.
func Normalize(img *image.NRGBA, maxWidth, maxHeight int) *image.NRGBA {
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()

	if w <= maxWidth && h <= maxHeight {
		return img
	}

	scale := math.Min(float64(maxWidth)/float64(w), float64(maxHeight)/float64(h))
	newW := int(math.Round(float64(w) * scale))
	newH := int(math.Round(float64(h) * scale))

	return imaging.Resize(img, newW, newH, imaging.Lanczos)
}

// EncodeJPEG serializes an image as JPEG at the given quality.
func EncodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeJPEGDataURI serializes an image as a data-URI JPEG string suitable
// for embedding directly in a JSON payload.
func EncodeJPEGDataURI(img image.Image, quality int) (string, error) {
	raw, err := EncodeJPEG(img, quality)
	if err != nil {
		return "", err
	}
	return dataURIPrefix + base64.StdEncoding.EncodeToString(raw), nil
}
