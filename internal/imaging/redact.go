package imaging

import (
	"image"
	"image/draw"
	"log/slog"
	"math"

	"github.com/anthonynsimon/bild/convolution"
	"github.com/disintegration/imaging"
)

// BlurKernelSize is the width of the square Gaussian kernel used for
// redaction. It is large enough to make faces, plates and text unreadable at
// typical photo resolutions.
const BlurKernelSize = 85

// blurKernel is the normalized 1-D Gaussian applied along each axis. Sigma
// is derived from the kernel size the usual way when none is given:
// 0.3*((size-1)/2 - 1) + 0.8.
var blurKernel = gaussianKernel(BlurKernelSize)

func gaussianKernel(size int) convolution.Matrix {
	sigma := 0.3*(float64(size-1)*0.5-1) + 0.8
	k := convolution.NewKernel(size, 1)
	center := size / 2
	for i := 0; i < size; i++ {
		x := float64(i - center)
		k.Matrix[i] = math.Exp(-(x * x) / (2 * sigma * sigma))
	}
	return k.Normalized()
}

// Working returns a private, mutable copy of img with a zero origin. The
// pipeline redacts into this copy so the caller's source stays untouched.
func Working(img image.Image) *image.NRGBA {
	return imaging.Clone(img)
}

// BlurRegion irreversibly blurs the part of img covered by box, in place.
//
// The box is first clamped to the image bounds. If nothing is left (the box
// lies outside the image or has zero width or height) the image is not
// touched and BlurRegion returns false. Blurring the same region again only
// smooths it further. Alpha is left as it was.
func BlurRegion(img *image.NRGBA, box image.Rectangle) bool {
	r := box.Canon().Intersect(img.Bounds())
	if r.Empty() {
		slog.Debug("empty redaction region, skipping",
			"x", box.Min.X, "y", box.Min.Y, "w", box.Dx(), "h", box.Dy())
		return false
	}

	// Edge pixels of the region are extended outward, so the blur never
	// pulls in color from outside the box.
	opts := &convolution.Options{Wrap: false, KeepAlpha: true}
	region := imaging.Crop(img, r)
	blurred := convolution.Convolve(region, blurKernel, opts)
	blurred = convolution.Convolve(blurred, blurKernel.Transposed(), opts)

	draw.Draw(img, r, blurred, blurred.Bounds().Min, draw.Src)
	return true
}
