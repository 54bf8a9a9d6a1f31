//go:build !gocv

package detection

import (
	"context"
	"image"
	"log/slog"
)

// CascadeDetector is the stand-in used when the binary is built without the
// gocv tag. It reports no faces or plates.
type CascadeDetector struct {
	cfg CascadeConfig
}

// NewCascadeDetector logs that object detection is unavailable and returns
// a detector that always yields empty results.
func NewCascadeDetector(cfg CascadeConfig) *CascadeDetector {
	slog.Warn("built without OpenCV support (-tags gocv), face and plate detection disabled",
		"face", cfg.Face.Path, "plate", cfg.Plate.Path)
	return &CascadeDetector{cfg: cfg}
}

func (d *CascadeDetector) Detect(ctx context.Context, _ image.Image) ([]Box, []Box, error) {
	return nil, nil, ctx.Err()
}

func (d *CascadeDetector) Close() {}
