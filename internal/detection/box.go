package detection

import (
	"image"
	"math"
)

// Category names the kind of sensitive region a detector reports.
type Category string

const (
	CategoryFace  Category = "face"
	CategoryPlate Category = "plate"
	CategoryText  Category = "text"
)

// Box is an axis-aligned region in pixel coordinates with a top-left origin.
//
// A Box may have zero area when detector geometry collapses; consumers must
// tolerate that rather than reject it.
type Box struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// BoxFromRect converts an image.Rectangle into a Box.
func BoxFromRect(r image.Rectangle) Box {
	r = r.Canon()
	return Box{X: r.Min.X, Y: r.Min.Y, Width: r.Dx(), Height: r.Dy()}
}

// Rect returns the box as an image.Rectangle.
func (b Box) Rect() image.Rectangle {
	return image.Rect(b.X, b.Y, b.X+b.Width, b.Y+b.Height)
}

// Empty reports whether the box has zero area.
func (b Box) Empty() bool {
	return b.Width <= 0 || b.Height <= 0
}

// BoxFromPolygon reduces a polygon (typically a text quadrilateral) to its
// axis-aligned bounding box by taking min/max over all corners. Corner
// coordinates are truncated toward zero. Rotated regions therefore produce an
// oversized box. An empty polygon yields the zero Box.
func BoxFromPolygon(pts []PointF) Box {
	if len(pts) == 0 {
		return Box{}
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}

	x0, y0 := int(minX), int(minY)
	x1, y1 := int(maxX), int(maxY)
	return Box{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// PointF is a polygon corner in (possibly sub-pixel) image coordinates.
type PointF struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// RectCorners returns the four corners of r, clockwise from top-left.
func RectCorners(r image.Rectangle) []PointF {
	return []PointF{
		{X: float64(r.Min.X), Y: float64(r.Min.Y)},
		{X: float64(r.Max.X), Y: float64(r.Min.Y)},
		{X: float64(r.Max.X), Y: float64(r.Max.Y)},
		{X: float64(r.Min.X), Y: float64(r.Max.Y)},
	}
}

// Result is the set of regions found in one image, grouped by category.
//
// Categories are independent: boxes may overlap within and across them and
// are never merged.
type Result struct {
	Faces  []Box `json:"faces"`
	Plates []Box `json:"plates"`
	Text   []Box `json:"text"`
}

// All returns every box, faces first, then plates, then text.
func (r Result) All() []Box {
	all := make([]Box, 0, r.Count())
	all = append(all, r.Faces...)
	all = append(all, r.Plates...)
	all = append(all, r.Text...)
	return all
}

// Count returns the total number of boxes across categories.
func (r Result) Count() int {
	return len(r.Faces) + len(r.Plates) + len(r.Text)
}

func boxesFromRects(rects []image.Rectangle) []Box {
	boxes := make([]Box, 0, len(rects))
	for _, r := range rects {
		boxes = append(boxes, BoxFromRect(r))
	}
	return boxes
}
