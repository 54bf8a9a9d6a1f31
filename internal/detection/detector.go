package detection

import (
	"context"
	"image"
)

// ObjectDetector finds faces and license plates.
//
// Implementations must not modify img. The returned error is non-nil only
// when ctx is done; model failures degrade to empty results.
type ObjectDetector interface {
	Detect(ctx context.Context, img image.Image) (faces, plates []Box, err error)
}

// TextDetector finds regions containing text.
//
// Implementations must not modify img. The returned error is non-nil only
// when ctx is done.
type TextDetector interface {
	DetectText(ctx context.Context, img image.Image) ([]Box, error)
}

// CascadeParams configures one multi-scale sliding-window classifier.
type CascadeParams struct {
	// Path is the classifier definition file.
	Path string

	// ScaleFactor is the ratio between consecutive scan scales.
	ScaleFactor float64

	// MinNeighbors is how many overlapping hits confirm a candidate.
	MinNeighbors int

	// MinSize is the smallest width and height reported, in pixels.
	MinSize int
}

// FaceParams returns the face classifier settings.
func FaceParams(path string) CascadeParams {
	return CascadeParams{Path: path, ScaleFactor: 1.1, MinNeighbors: 5, MinSize: 30}
}

// PlateParams returns the plate classifier settings. Plates are smaller and
// rarer than faces, so fewer neighbors are required.
func PlateParams(path string) CascadeParams {
	return CascadeParams{Path: path, ScaleFactor: 1.1, MinNeighbors: 4, MinSize: 30}
}

// CascadeConfig configures a CascadeDetector.
type CascadeConfig struct {
	Face  CascadeParams
	Plate CascadeParams

	// PoolSize is the number of independently loaded classifier pairs.
	// Each concurrent Detect call holds one pair. Values below 1 mean 1.
	PoolSize int
}

// NoText is a TextDetector that never finds anything.
type NoText struct{}

func (NoText) DetectText(ctx context.Context, _ image.Image) ([]Box, error) {
	return nil, ctx.Err()
}

// NoObjects is an ObjectDetector that never finds anything.
type NoObjects struct{}

func (NoObjects) Detect(ctx context.Context, _ image.Image) ([]Box, []Box, error) {
	return nil, nil, ctx.Err()
}
