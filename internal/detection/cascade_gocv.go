//go:build gocv

package detection

import (
	"context"
	"image"
	"log/slog"

	"gocv.io/x/gocv"
)

// cascadePair is one worker's set of classifiers. A pair is never used by
// two goroutines at once.
type cascadePair struct {
	face    gocv.CascadeClassifier
	plate   gocv.CascadeClassifier
	faceOK  bool
	plateOK bool
}

// CascadeDetector detects faces and plates with OpenCV cascade classifiers.
//
// Classifiers are loaded once by NewCascadeDetector into a fixed pool and
// checked out per call. A classifier that fails to load is reported once and
// its category always yields zero boxes.
type CascadeDetector struct {
	cfg   CascadeConfig
	slots chan *cascadePair
	pairs []*cascadePair
}

// NewCascadeDetector loads cfg.PoolSize classifier pairs.
func NewCascadeDetector(cfg CascadeConfig) *CascadeDetector {
	size := max(cfg.PoolSize, 1)
	d := &CascadeDetector{
		cfg:   cfg,
		slots: make(chan *cascadePair, size),
	}

	for i := 0; i < size; i++ {
		p := &cascadePair{
			face:  gocv.NewCascadeClassifier(),
			plate: gocv.NewCascadeClassifier(),
		}
		p.faceOK = cfg.Face.Path != "" && p.face.Load(cfg.Face.Path)
		p.plateOK = cfg.Plate.Path != "" && p.plate.Load(cfg.Plate.Path)

		if i == 0 {
			if !p.faceOK {
				slog.Error("could not load cascade classifier", "category", CategoryFace, "path", cfg.Face.Path)
			}
			if !p.plateOK {
				slog.Error("could not load cascade classifier", "category", CategoryPlate, "path", cfg.Plate.Path)
			}
		}

		d.pairs = append(d.pairs, p)
		d.slots <- p
	}

	slog.Debug("cascade classifiers ready", "pool", size)
	return d
}

// Detect runs both classifiers over a grayscale copy of img.
func (d *CascadeDetector) Detect(ctx context.Context, img image.Image) ([]Box, []Box, error) {
	var p *cascadePair
	select {
	case p = <-d.slots:
	case <-ctx.Done():
		return nil, nil, ctx.Err()
	}
	defer func() { d.slots <- p }()

	if !p.faceOK && !p.plateOK {
		slog.Debug("no cascade classifiers loaded, skipping object detection")
		return nil, nil, nil
	}

	src, err := gocv.ImageToMatRGB(img)
	if err != nil {
		slog.Warn("could not convert image for cascade detection", "error", err)
		return nil, nil, nil
	}
	defer src.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(src, &gray, gocv.ColorBGRToGray)

	var faces, plates []Box
	if p.faceOK {
		faces = detectWith(p.face, gray, d.cfg.Face)
	}
	if p.plateOK {
		plates = detectWith(p.plate, gray, d.cfg.Plate)
	}
	return faces, plates, nil
}

// Close releases every pooled classifier. It must not be called while
// Detect calls are in flight.
func (d *CascadeDetector) Close() {
	for _, p := range d.pairs {
		p.face.Close()
		p.plate.Close()
	}
	d.pairs = nil
}

func detectWith(c gocv.CascadeClassifier, gray gocv.Mat, params CascadeParams) []Box {
	minSize := image.Pt(params.MinSize, params.MinSize)
	rects := c.DetectMultiScaleWithParams(gray, params.ScaleFactor, params.MinNeighbors, 0, minSize, image.Point{})
	return boxesFromRects(rects)
}
