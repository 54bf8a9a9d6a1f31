package pipeline

import (
	"context"
	"image"
	"image/color"
	"sync/atomic"

	"github.com/ironsheep/image-redact/internal/detection"
)

// fakeObjects returns fixed boxes and counts its calls.
type fakeObjects struct {
	faces, plates []detection.Box
	calls         atomic.Int32
	started       chan struct{}
	release       chan struct{}
}

func (f *fakeObjects) Detect(ctx context.Context, _ image.Image) ([]detection.Box, []detection.Box, error) {
	f.calls.Add(1)
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}
	return f.faces, f.plates, ctx.Err()
}

// fakeText returns fixed boxes and counts its calls.
type fakeText struct {
	boxes   []detection.Box
	calls   atomic.Int32
	started chan struct{}
	release chan struct{}
}

func (f *fakeText) DetectText(ctx context.Context, _ image.Image) ([]detection.Box, error) {
	f.calls.Add(1)
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}
	return f.boxes, ctx.Err()
}

// createGradientImage creates an image whose every pixel differs from its
// neighbors, so any blur or overlay is visible.
func createGradientImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := uint8(0)
			if (x+y)%2 == 0 {
				v = 255
			}
			img.SetNRGBA(x, y, color.NRGBA{R: v, G: uint8(x), B: uint8(y), A: 255})
		}
	}
	return img
}

// regionEqual reports whether a and b hold identical pixels inside r.
func regionEqual(a, b *image.NRGBA, r image.Rectangle) bool {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if a.NRGBAAt(x, y) != b.NRGBAAt(x, y) {
				return false
			}
		}
	}
	return true
}
