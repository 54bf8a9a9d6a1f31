package ocr

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	"github.com/ironsheep/image-redact/internal/detection"
	"github.com/ironsheep/image-redact/internal/imaging"
)

// ErrUnavailable is returned when the OCR engine or its language data cannot
// be initialized.
var ErrUnavailable = errors.New("text detection unavailable")

// DefaultLanguages are the Tesseract language codes used when none are
// configured: Portuguese and English.
var DefaultLanguages = []string{"por", "eng"}

// Config configures a Tesseract detector.
type Config struct {
	// TessdataPrefix is the directory holding *.traineddata files. Empty
	// uses the engine default (TESSDATA_PREFIX or the system install).
	TessdataPrefix string

	// Languages lists the language codes to load together.
	Languages []string

	// PoolSize is the number of engine instances. Each concurrent
	// DetectText call holds one. Values below 1 mean 1.
	PoolSize int
}

func (c Config) languages() []string {
	if len(c.Languages) == 0 {
		return DefaultLanguages
	}
	return c.Languages
}

func (c Config) poolSize() int {
	return max(c.PoolSize, 1)
}

// Info describes the state of the OCR subsystem.
type Info struct {
	Available bool     `json:"available"`
	Version   string   `json:"version,omitempty"`
	Languages []string `json:"languages,omitempty"`
	Error     string   `json:"error,omitempty"`
}

// word is one recognized word and its corner-aligned bounding box.
type word struct {
	text string
	box  image.Rectangle
}

// boxesFromWords turns recognized words into redaction boxes. Words with no
// text are dropped. The text itself is discarded.
func boxesFromWords(words []word) []detection.Box {
	boxes := make([]detection.Box, 0, len(words))
	for _, w := range words {
		if w.text == "" {
			continue
		}
		b := detection.BoxFromPolygon(detection.RectCorners(w.box))
		if b.Empty() {
			continue
		}
		boxes = append(boxes, b)
	}
	return boxes
}

// encodeForOCR converts img to 8-bit RGB and encodes it as PNG, the form the
// engine reads from memory.
func encodeForOCR(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, imaging.Working(img), imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to prepare image for OCR: %w", err)
	}
	return buf.Bytes(), nil
}
