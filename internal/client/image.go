package client

import (
	"bytes"
	"errors"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/http"

	_ "golang.org/x/image/webp"
)

// Image limits enforced before any upload leaves the machine.
const (
	MaxImageBytes = 10 << 20
	MaxImageDim   = 3000
)

var (
	ErrImageTooLarge   = errors.New("image exceeds the 10MB size limit")
	ErrImageType       = errors.New("image must be a JPEG, PNG or WebP file")
	ErrImageTooWide    = errors.New("image dimensions exceed the 3000x3000 limit")
	ErrImageUnreadable = errors.New("image could not be decoded")
)

// ValidateImage checks size, detected content type and pixel dimensions,
// returning the sniffed content type on success.
func ValidateImage(data []byte) (string, error) {
	if len(data) > MaxImageBytes {
		return "", ErrImageTooLarge
	}

	contentType := http.DetectContentType(data)
	switch contentType {
	case "image/jpeg", "image/png", "image/webp":
	default:
		return "", ErrImageType
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", ErrImageUnreadable
	}
	if cfg.Width > MaxImageDim || cfg.Height > MaxImageDim {
		return "", ErrImageTooWide
	}

	return contentType, nil
}
