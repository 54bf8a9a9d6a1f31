package detection

import (
	"cmp"
	"context"
	"image"
	"math"
	"slices"

	"github.com/disintegration/imaging"
)

// DefaultEdgeTextConfidence is the score an edge-density window needs to
// count as text.
const DefaultEdgeTextConfidence = 0.3

// edgeThreshold is the grayscale step between neighbors that marks an edge.
const edgeThreshold = 30

// textWindows are the window sizes scanned for text-like edge density,
// from small print to large signage.
var textWindows = []image.Point{
	{100, 30},
	{150, 40},
	{200, 50},
	{80, 25},
}

// EdgeTextDetector is a TextDetector that needs no language models. It
// slides fixed-size windows over an edge map and reports windows whose edge
// density and horizontal structure look like lines of text. Overlapping hits
// are merged.
//
// It is coarser than OCR and is used when no OCR engine is available.
type EdgeTextDetector struct {
	MinConfidence float64
}

// NewEdgeTextDetector returns an EdgeTextDetector with the default threshold.
func NewEdgeTextDetector() *EdgeTextDetector {
	return &EdgeTextDetector{MinConfidence: DefaultEdgeTextConfidence}
}

type textCandidate struct {
	rect       image.Rectangle
	confidence float64
}

// DetectText implements TextDetector. Boxes are relative to the top-left
// corner of img.
func (d *EdgeTextDetector) DetectText(ctx context.Context, img image.Image) ([]Box, error) {
	edges := edgeMap(img)
	width, height := edges.width, edges.height

	var candidates []textCandidate
	for _, ws := range textWindows {
		stepX, stepY := ws.X/2, ws.Y/2
		for y := 0; y <= height-ws.Y; y += stepY {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			for x := 0; x <= width-ws.X; x += stepX {
				win := image.Rect(x, y, x+ws.X, y+ws.Y)
				density := float64(edges.count(win)) / float64(ws.X*ws.Y)

				// Text sits between flat areas and texture.
				if density < 0.05 || density > 0.4 {
					continue
				}
				confidence := edges.horizontalScore(win) * (1.0 - math.Abs(density-0.2)/0.2)
				if confidence >= d.MinConfidence {
					candidates = append(candidates, textCandidate{rect: win, confidence: confidence})
				}
			}
		}
	}

	merged := mergeCandidates(candidates)
	slices.SortStableFunc(merged, func(a, b textCandidate) int {
		return cmp.Compare(b.confidence, a.confidence)
	})

	boxes := make([]Box, 0, len(merged))
	for _, c := range merged {
		boxes = append(boxes, BoxFromRect(c.rect))
	}
	return boxes, ctx.Err()
}

// edges is a binary edge map with a summed-area table for O(1) window counts.
type edges struct {
	width, height int
	set           []bool
	sums          []int // (width+1)*(height+1), sums[y][x] counts set pixels above and left
}

// edgeMap marks pixels whose grayscale value differs from the right or lower
// neighbor by more than edgeThreshold. Border pixels are never edges.
func edgeMap(img image.Image) *edges {
	gray := imaging.Grayscale(img)
	w, h := gray.Bounds().Dx(), gray.Bounds().Dy()
	e := &edges{width: w, height: h, set: make([]bool, w*h), sums: make([]int, (w+1)*(h+1))}

	lum := func(x, y int) int { return int(gray.Pix[y*gray.Stride+x*4]) }
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			c := lum(x, y)
			if absInt(c-lum(x+1, y)) > edgeThreshold || absInt(c-lum(x, y+1)) > edgeThreshold {
				e.set[y*w+x] = true
			}
		}
	}
	e.index()
	return e
}

// index fills the summed-area table from set.
func (e *edges) index() {
	w := e.width
	for y := 0; y < e.height; y++ {
		row := 0
		for x := 0; x < w; x++ {
			if e.set[y*w+x] {
				row++
			}
			e.sums[(y+1)*(w+1)+x+1] = e.sums[y*(w+1)+x+1] + row
		}
	}
}

func (e *edges) at(x, y int) bool { return e.set[y*e.width+x] }

func (e *edges) count(r image.Rectangle) int {
	s := func(x, y int) int { return e.sums[y*(e.width+1)+x] }
	return s(r.Max.X, r.Max.Y) - s(r.Min.X, r.Max.Y) - s(r.Max.X, r.Min.Y) + s(r.Min.X, r.Min.Y)
}

// horizontalScore is the share of horizontal edge runs among all runs in r.
func (e *edges) horizontalScore(r image.Rectangle) float64 {
	var horizontal, vertical int
	for y := r.Min.Y; y < r.Max.Y; y++ {
		inRun := false
		for x := r.Min.X; x < r.Max.X; x++ {
			if e.at(x, y) {
				if !inRun {
					horizontal++
				}
				inRun = true
			} else {
				inRun = false
			}
		}
	}
	for x := r.Min.X; x < r.Max.X; x++ {
		inRun := false
		for y := r.Min.Y; y < r.Max.Y; y++ {
			if e.at(x, y) {
				if !inRun {
					vertical++
				}
				inRun = true
			} else {
				inRun = false
			}
		}
	}

	if horizontal+vertical == 0 {
		return 0
	}
	return float64(horizontal) / float64(horizontal+vertical)
}

// mergeCandidates folds each candidate into the first merged region it
// overlaps, keeping the higher confidence.
func mergeCandidates(candidates []textCandidate) []textCandidate {
	var merged []textCandidate
	for _, c := range candidates {
		found := false
		for i := range merged {
			if c.rect.Overlaps(merged[i].rect) {
				merged[i].rect = merged[i].rect.Union(c.rect)
				merged[i].confidence = math.Max(merged[i].confidence, c.confidence)
				found = true
				break
			}
		}
		if !found {
			merged = append(merged, c)
		}
	}
	return merged
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
