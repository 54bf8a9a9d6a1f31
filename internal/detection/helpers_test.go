package detection

import (
	"image"
	"image/color"
)

// createTestImage creates a solid color test image
func createTestImage(width, height int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// createTextPatternImage draws rows of short dark strokes on white, a rough
// stand-in for lines of print.
func createTextPatternImage(width, height int) *image.NRGBA {
	img := createTestImage(width, height, color.White)
	for y := 20; y < 80; y += 10 {
		for x := 20; x < width-20; x++ {
			if x%15 < 5 {
				img.Set(x, y, color.Black)
				img.Set(x, y+1, color.Black)
				img.Set(x, y+5, color.Black)
			}
		}
	}
	return img
}

// createCheckerImage alternates black and white pixels, so every interior
// pixel is an edge.
func createCheckerImage(width, height int) *image.NRGBA {
	img := createTestImage(width, height, color.White)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if (x+y)%2 == 0 {
				img.Set(x, y, color.Black)
			}
		}
	}
	return img
}

// newTestEdges builds an edge map of the given size with the listed pixels
// set.
func newTestEdges(width, height int, pts ...image.Point) *edges {
	e := &edges{
		width:  width,
		height: height,
		set:    make([]bool, width*height),
		sums:   make([]int, (width+1)*(height+1)),
	}
	for _, p := range pts {
		e.set[p.Y*width+p.X] = true
	}
	e.index()
	return e
}
