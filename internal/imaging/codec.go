package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
)

// ErrNotImage is returned when input bytes are not a supported image format.
var ErrNotImage = errors.New("not a supported image")

// Format identifies an encoded image format.
type Format = imaging.Format

// Supported formats, re-exported so callers need not import the codec library.
const (
	JPEG = imaging.JPEG
	PNG  = imaging.PNG
	GIF  = imaging.GIF
	TIFF = imaging.TIFF
	BMP  = imaging.BMP
)

// formatsByMIME maps sniffed content types to decodable formats.
var formatsByMIME = map[string]Format{
	"image/jpeg": JPEG,
	"image/png":  PNG,
	"image/gif":  GIF,
	"image/tiff": TIFF,
	"image/bmp":  BMP,
}

// batchExtensions are the file extensions the batch runner picks up.
var batchExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
}

// HasImageExtension reports whether name carries one of the recognized photo
// extensions (.jpg, .jpeg, .png, .bmp), case-insensitively.
func HasImageExtension(name string) bool {
	return batchExtensions[strings.ToLower(filepath.Ext(name))]
}

// SniffFormat identifies the image format of data from its content, ignoring
// any file name. It returns ErrNotImage for anything else.
func SniffFormat(data []byte) (Format, error) {
	mt := mimetype.Detect(data)
	for m := mt; m != nil; m = m.Parent() {
		if f, ok := formatsByMIME[m.String()]; ok {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: detected %s", ErrNotImage, mt.String())
}

// Decode sniffs and decodes an encoded image, applying the EXIF orientation
// tag so the pixels are upright as a viewer would show them.
func Decode(data []byte) (image.Image, Format, error) {
	f, err := SniffFormat(data)
	if err != nil {
		return nil, 0, err
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to decode image: %w", err)
	}
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return nil, 0, fmt.Errorf("%w: image has no pixels", ErrNotImage)
	}
	return img, f, nil
}

// Open reads and decodes the image at path.
func Open(path string) (image.Image, Format, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open image: %w", err)
	}
	return Decode(data)
}

// Encode writes img to w in format f. JPEG output uses quality 95.
func Encode(w io.Writer, img image.Image, f Format) error {
	if err := imaging.Encode(w, img, f, imaging.JPEGQuality(95)); err != nil {
		return fmt.Errorf("failed to encode %s image: %w", f, err)
	}
	return nil
}

// Save encodes img in format f and writes it to path, creating or truncating
// the file.
func Save(path string, img image.Image, f Format) error {
	var buf bytes.Buffer
	if err := Encode(&buf, img, f); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}
	return nil
}

// FormatFromPath returns the format implied by the extension of path. The
// boolean is false when the extension is not a known image type.
func FormatFromPath(path string) (Format, bool) {
	f, err := imaging.FormatFromFilename(path)
	if err != nil {
		return 0, false
	}
	return f, true
}

// MIMEType returns the content type for f.
func MIMEType(f Format) string {
	for m, format := range formatsByMIME {
		if format == f {
			return m
		}
	}
	return "application/octet-stream"
}
