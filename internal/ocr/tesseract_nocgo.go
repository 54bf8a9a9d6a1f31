//go:build !cgo

package ocr

import (
	"context"
	"image"

	"github.com/ironsheep/image-redact/internal/detection"
)

// Tesseract is unavailable in binaries built without cgo.
type Tesseract struct{}

// NewTesseract always fails with ErrUnavailable: the engine binding needs
// cgo.
func NewTesseract(Config) (*Tesseract, error) {
	return nil, ErrUnavailable
}

func (t *Tesseract) DetectText(ctx context.Context, _ image.Image) ([]detection.Box, error) {
	return nil, ctx.Err()
}

func (t *Tesseract) Info() Info {
	return Info{Error: "built without cgo"}
}

func (t *Tesseract) Close() {}
