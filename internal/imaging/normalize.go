package imaging

import (
	"image"

	"github.com/disintegration/imaging"
)

// Canonical output frames.
var (
	Landscape = image.Pt(640, 480)
	Portrait  = image.Pt(480, 640)
)

// FrameFor returns the canonical frame for a w×h source: Landscape when
// w >= h, Portrait otherwise.
func FrameFor(w, h int) image.Point {
	if w >= h {
		return Landscape
	}
	return Portrait
}

// CanonicalSize computes the output size for a w×h source.
//
// The frame's long side is tried first (width 640 for landscape, height 640
// for portrait) and the other side scaled with floor division. If that side
// overflows the frame it is clamped and the long side recomputed from it.
// One side always equals the frame exactly; the other is at most the frame.
//
// A non-positive input size yields (0, 0). A side that rounds down to zero
// for extreme aspect ratios is raised to one pixel.
func CanonicalSize(w, h int) (int, int) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}

	frame := FrameFor(w, h)
	var newW, newH int
	if w >= h {
		newH = h * frame.X / w
		if newH > frame.Y {
			newH = frame.Y
			newW = w * frame.Y / h
		} else {
			newW = frame.X
		}
	} else {
		newW = w * frame.Y / h
		if newW > frame.X {
			newW = frame.X
			newH = h * frame.X / w
		} else {
			newH = frame.Y
		}
	}

	return max(newW, 1), max(newH, 1)
}

// Normalize resizes img to its canonical size with area averaging. The
// result is a new image; img is not modified.
func Normalize(img image.Image) *image.NRGBA {
	b := img.Bounds()
	w, h := CanonicalSize(b.Dx(), b.Dy())
	if w == 0 || h == 0 {
		return &image.NRGBA{}
	}
	return imaging.Resize(img, w, h, imaging.Box)
}
