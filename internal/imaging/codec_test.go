package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestHasImageExtension(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"photo.jpg", true},
		{"photo.JPG", true},
		{"photo.jpeg", true},
		{"scan.png", true},
		{"old.bmp", true},
		{"anim.gif", false},
		{"doc.tiff", false},
		{"notes.txt", false},
		{"jpg", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := HasImageExtension(tt.name); got != tt.want {
			t.Errorf("HasImageExtension(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestEncodeSniffRoundTrip(t *testing.T) {
	img := createInMemoryImage(32, 24, color.RGBA{40, 80, 120, 255})

	for _, f := range []Format{JPEG, PNG, GIF, TIFF, BMP} {
		t.Run(f.String(), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, img, f); err != nil {
				t.Fatalf("Encode failed: %v", err)
			}

			got, err := SniffFormat(buf.Bytes())
			if err != nil {
				t.Fatalf("SniffFormat failed: %v", err)
			}
			if got != f {
				t.Errorf("SniffFormat: got %v, want %v", got, f)
			}

			decoded, df, err := Decode(buf.Bytes())
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if df != f {
				t.Errorf("Decode format: got %v, want %v", df, f)
			}
			if decoded.Bounds().Dx() != 32 || decoded.Bounds().Dy() != 24 {
				t.Errorf("decoded size %v, want 32x24", decoded.Bounds())
			}
		})
	}
}

func TestSniffFormat_NotImage(t *testing.T) {
	inputs := map[string][]byte{
		"text":  []byte("hello, world"),
		"empty": {},
		"pdf":   []byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n"),
	}

	for name, data := range inputs {
		t.Run(name, func(t *testing.T) {
			_, err := SniffFormat(data)
			if !errors.Is(err, ErrNotImage) {
				t.Errorf("SniffFormat(%s): got %v, want ErrNotImage", name, err)
			}
		})
	}
}

func TestDecode_TruncatedImage(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, createInMemoryImage(64, 64, color.White), PNG); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	// The signature still sniffs as PNG but the body is cut short.
	if _, _, err := Decode(buf.Bytes()[:40]); err == nil {
		t.Error("Decode should fail for a truncated image")
	}
}

func TestSaveAndOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jpg")
	img := createInMemoryImage(50, 40, color.RGBA{200, 10, 10, 255})

	if err := Save(path, img, JPEG); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, f, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if f != JPEG {
		t.Errorf("format: got %v, want JPEG", f)
	}
	if got.Bounds() != image.Rect(0, 0, 50, 40) {
		t.Errorf("bounds: got %v, want 50x40", got.Bounds())
	}
}

func TestSave_KeepsSniffedFormatOverExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "actually-png.jpg")
	if err := Save(path, createInMemoryImage(8, 8, color.Black), PNG); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if f, _ := SniffFormat(data); f != PNG {
		t.Errorf("saved format: got %v, want PNG", f)
	}
}

func TestOpen_Missing(t *testing.T) {
	if _, _, err := Open(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("Open should fail for a missing file")
	}
}

func TestMIMEType(t *testing.T) {
	tests := map[Format]string{
		JPEG: "image/jpeg",
		PNG:  "image/png",
		BMP:  "image/bmp",
	}
	for f, want := range tests {
		if got := MIMEType(f); got != want {
			t.Errorf("MIMEType(%v) = %q, want %q", f, got, want)
		}
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path   string
		want   Format
		wantOK bool
	}{
		{"/out/a.jpg", JPEG, true},
		{"/out/a.JPEG", JPEG, true},
		{"b.png", PNG, true},
		{"c.bmp", BMP, true},
		{"d.tif", TIFF, true},
		{"e.txt", 0, false},
		{"noext", 0, false},
	}
	for _, tt := range tests {
		got, ok := FormatFromPath(tt.path)
		if ok != tt.wantOK || (ok && got != tt.want) {
			t.Errorf("FormatFromPath(%q) = %v, %v; want %v, %v", tt.path, got, ok, tt.want, tt.wantOK)
		}
	}
}
