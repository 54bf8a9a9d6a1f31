package imaging

import (
	"image"
	"image/color"
	"image/draw"
	"strconv"
)

// Outline colors used when previewing detections.
var (
	FaceOutline  = color.NRGBA{R: 255, G: 0, B: 0, A: 255}
	PlateOutline = color.NRGBA{R: 255, G: 200, B: 0, A: 255}
	TextOutline  = color.NRGBA{R: 0, G: 200, B: 0, A: 255}
)

// OutlineThickness is the border width drawn by Outline, in pixels.
const OutlineThickness = 2

// Outline draws the border of each rectangle onto img in place and tags it
// with its index in rects. Borders lie inside the rectangle and are clipped
// to the image. Empty rectangles are skipped but keep their index.
func Outline(img *image.NRGBA, rects []image.Rectangle, c color.Color) {
	src := image.NewUniform(c)
	for i, r := range rects {
		r = r.Canon()
		if r.Intersect(img.Bounds()).Empty() {
			continue
		}

		t := min(OutlineThickness, r.Dx(), r.Dy())
		edges := []image.Rectangle{
			image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+t),
			image.Rect(r.Min.X, r.Max.Y-t, r.Max.X, r.Max.Y),
			image.Rect(r.Min.X, r.Min.Y, r.Min.X+t, r.Max.Y),
			image.Rect(r.Max.X-t, r.Min.Y, r.Max.X, r.Max.Y),
		}
		for _, e := range edges {
			draw.Draw(img, e.Intersect(img.Bounds()), src, image.Point{}, draw.Src)
		}

		drawLabel(img, r.Min.X+t+1, r.Min.Y+t+1, strconv.Itoa(i), color.White, c)
	}
}

// labelGlyphs is a 3x5 pixel font for digits.
var labelGlyphs = map[rune][]string{
	'0': {"111", "101", "101", "101", "111"},
	'1': {"010", "110", "010", "010", "111"},
	'2': {"111", "001", "111", "100", "111"},
	'3': {"111", "001", "111", "001", "111"},
	'4': {"101", "101", "111", "001", "001"},
	'5': {"111", "100", "111", "001", "111"},
	'6': {"111", "100", "111", "101", "111"},
	'7': {"111", "001", "001", "001", "001"},
	'8': {"111", "101", "111", "101", "111"},
	'9': {"111", "101", "111", "001", "111"},
}

const (
	labelCharWidth = 4
	labelHeight    = 7
)

// drawLabel draws text on a filled background with its top-left glyph pixel
// at (x, y). Unknown characters leave a gap. Pixels outside img are dropped.
func drawLabel(img *image.NRGBA, x, y int, text string, fg, bg color.Color) {
	bounds := img.Bounds()
	if text == "" {
		return
	}

	box := image.Rect(x-1, y-1, x+len(text)*labelCharWidth, y+labelHeight-1)
	draw.Draw(img, box.Intersect(bounds), image.NewUniform(bg), image.Point{}, draw.Src)

	cx := x
	for _, ch := range text {
		for row, line := range labelGlyphs[ch] {
			for col, pixel := range line {
				p := image.Pt(cx+col, y+row)
				if pixel == '1' && p.In(bounds) {
					img.Set(p.X, p.Y, fg)
				}
			}
		}
		cx += labelCharWidth
	}
}
