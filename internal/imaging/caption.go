package imaging

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// CaptionStyle controls how a caption is burned into an image.
type CaptionStyle struct {
	// Origin is the left end of the text baseline, in pixels.
	Origin image.Point

	// Size is the font size in pixels.
	Size float64

	// Color is the text color.
	Color color.Color
}

// DefaultCaptionStyle is bold blue text with its baseline starting at (10, 30).
func DefaultCaptionStyle() CaptionStyle {
	return CaptionStyle{
		Origin: image.Pt(10, 30),
		Size:   24,
		Color:  color.NRGBA{R: 0, G: 0, B: 255, A: 255},
	}
}

// ParseColor parses a hex color such as "#0000FF" or "#00f".
func ParseColor(hex string) (color.Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return nil, fmt.Errorf("invalid caption color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

var (
	captionFontOnce sync.Once
	captionFont     *sfnt.Font
	captionFontErr  error
)

func boldFont() (*sfnt.Font, error) {
	captionFontOnce.Do(func() {
		captionFont, captionFontErr = opentype.Parse(gobold.TTF)
	})
	return captionFont, captionFontErr
}

// DrawCaption renders text onto img in place. Text running past the right
// edge is clipped. An empty caption leaves the image unchanged.
func DrawCaption(img *image.NRGBA, text string, style CaptionStyle) error {
	if text == "" {
		return nil
	}

	f, err := boldFont()
	if err != nil {
		return fmt.Errorf("failed to parse caption font: %w", err)
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    style.Size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return fmt.Errorf("failed to create caption face: %w", err)
	}
	defer face.Close()

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(style.Color),
		Face: face,
		Dot:  fixed.P(style.Origin.X, style.Origin.Y),
	}
	d.DrawString(text)
	return nil
}
