package imaging

import (
	"image"
	"image/color"
	"testing"
)

func TestCanonicalSize(t *testing.T) {
	tests := []struct {
		name       string
		w, h       int
		wantW      int
		wantH      int
	}{
		{"hd landscape", 1280, 720, 640, 360},
		{"tall portrait", 300, 1000, 192, 640},
		{"exact landscape frame", 640, 480, 640, 480},
		{"exact portrait frame", 480, 640, 480, 640},
		{"square ties to landscape then clamps", 1000, 1000, 480, 480},
		{"nearly square landscape clamps height", 1000, 900, 533, 480},
		{"nearly square portrait clamps width", 900, 1000, 480, 533},
		{"4:3 camera", 4032, 3024, 640, 480},
		{"3:4 camera", 3024, 4032, 480, 640},
		{"small source upscales", 320, 240, 640, 480},
		{"panorama", 6000, 1000, 640, 106},
		{"extreme strip keeps one pixel", 100000, 10, 640, 1},
		{"zero width", 0, 100, 0, 0},
		{"zero height", 100, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotW, gotH := CanonicalSize(tt.w, tt.h)
			if gotW != tt.wantW || gotH != tt.wantH {
				t.Errorf("CanonicalSize(%d, %d) = %dx%d, want %dx%d",
					tt.w, tt.h, gotW, gotH, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestCanonicalSize_OneSideFixed(t *testing.T) {
	for w := 1; w <= 2000; w += 37 {
		for h := 1; h <= 2000; h += 41 {
			gotW, gotH := CanonicalSize(w, h)
			frame := FrameFor(w, h)

			if gotW > frame.X || gotH > frame.Y {
				t.Fatalf("CanonicalSize(%d, %d) = %dx%d exceeds frame %v", w, h, gotW, gotH, frame)
			}
			if gotW != frame.X && gotH != frame.Y {
				t.Fatalf("CanonicalSize(%d, %d) = %dx%d fixes neither side of %v", w, h, gotW, gotH, frame)
			}
		}
	}
}

func TestFrameFor(t *testing.T) {
	if FrameFor(100, 100) != Landscape {
		t.Error("ties should resolve to landscape")
	}
	if FrameFor(200, 100) != Landscape {
		t.Error("wide image should be landscape")
	}
	if FrameFor(100, 200) != Portrait {
		t.Error("tall image should be portrait")
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		w, h         int
		wantW, wantH int
	}{
		{1280, 720, 640, 360},
		{300, 1000, 192, 640},
		{800, 800, 480, 480},
	}

	for _, tt := range tests {
		src := createInMemoryImage(tt.w, tt.h, color.RGBA{200, 100, 50, 255})
		out := Normalize(src)
		b := out.Bounds()
		if b.Dx() != tt.wantW || b.Dy() != tt.wantH {
			t.Errorf("Normalize(%dx%d) = %dx%d, want %dx%d", tt.w, tt.h, b.Dx(), b.Dy(), tt.wantW, tt.wantH)
		}
		if src.Bounds().Dx() != tt.w {
			t.Error("Normalize must not modify the source")
		}
	}
}

func TestNormalize_AreaAveragingKeepsFlatColor(t *testing.T) {
	c := color.NRGBA{R: 10, G: 200, B: 90, A: 255}
	src := image.NewNRGBA(image.Rect(0, 0, 1280, 960))
	for i := 0; i < len(src.Pix); i += 4 {
		src.Pix[i], src.Pix[i+1], src.Pix[i+2], src.Pix[i+3] = c.R, c.G, c.B, c.A
	}

	out := Normalize(src)
	if got := out.NRGBAAt(320, 240); got != c {
		t.Errorf("center pixel: got %v, want %v", got, c)
	}
}

func TestNormalize_EmptyImage(t *testing.T) {
	out := Normalize(image.NewNRGBA(image.Rect(0, 0, 0, 0)))
	if !out.Bounds().Empty() {
		t.Errorf("empty source should give empty output, got %v", out.Bounds())
	}
}
