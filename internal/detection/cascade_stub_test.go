//go:build !gocv

package detection

import (
	"context"
	"image"
	"testing"
)

func TestCascadeDetector_StubReportsNothing(t *testing.T) {
	d := NewCascadeDetector(CascadeConfig{
		Face:  FaceParams("models/face.xml"),
		Plate: PlateParams("models/plate.xml"),
	})
	defer d.Close()

	img := image.NewNRGBA(image.Rect(0, 0, 64, 48))
	faces, plates, err := d.Detect(context.Background(), img)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if len(faces) != 0 || len(plates) != 0 {
		t.Errorf("stub detector found faces=%d plates=%d", len(faces), len(plates))
	}
}

func TestCascadeDetector_StubHonorsContext(t *testing.T) {
	d := NewCascadeDetector(CascadeConfig{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, _, err := d.Detect(ctx, image.NewNRGBA(image.Rect(0, 0, 1, 1))); err == nil {
		t.Error("expected context error")
	}
}
