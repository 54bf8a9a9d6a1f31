package imaging

import (
	"image"
	"image/color"
)

// createInMemoryImage creates a solid color image.
func createInMemoryImage(width, height int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// createCheckerImage creates a 1-pixel black and white checkerboard, the
// worst case for a smoothing filter: every pixel differs from its neighbors.
func createCheckerImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if (x+y)%2 == 0 {
				img.Set(x, y, color.Black)
			} else {
				img.Set(x, y, color.White)
			}
		}
	}
	return img
}

// maxChannelDiff returns the largest per-channel difference between a and b
// inside r.
func maxChannelDiff(a, b *image.NRGBA, r image.Rectangle) int {
	worst := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			pa, pb := a.NRGBAAt(x, y), b.NRGBAAt(x, y)
			for _, d := range []int{
				int(pa.R) - int(pb.R),
				int(pa.G) - int(pb.G),
				int(pa.B) - int(pb.B),
			} {
				if d < 0 {
					d = -d
				}
				if d > worst {
					worst = d
				}
			}
		}
	}
	return worst
}
