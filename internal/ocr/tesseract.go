//go:build cgo

package ocr

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"strings"

	"github.com/ironsheep/image-redact/internal/detection"
	"github.com/otiai10/gosseract/v2"
)

// Tesseract detects words in images with a pool of Tesseract engines.
//
// Engines are created once and checked out per call, so a single engine is
// never used by two goroutines at once.
type Tesseract struct {
	cfg     Config
	clients chan *gosseract.Client
	all     []*gosseract.Client
	version string
}

// NewTesseract creates cfg.PoolSize engines and verifies that the configured
// languages load. On failure every engine is released and the error wraps
// ErrUnavailable.
func NewTesseract(cfg Config) (*Tesseract, error) {
	n := cfg.poolSize()
	t := &Tesseract{
		cfg:     cfg,
		clients: make(chan *gosseract.Client, n),
	}

	for i := 0; i < n; i++ {
		client, err := newClient(cfg)
		if err != nil {
			t.Close()
			return nil, err
		}
		t.all = append(t.all, client)
		t.clients <- client
	}

	probe := <-t.clients
	t.version = probe.Version()
	err := warmUp(probe)
	t.clients <- probe
	if err != nil {
		t.Close()
		return nil, fmt.Errorf("%w: languages %s: %v", ErrUnavailable, strings.Join(cfg.languages(), "+"), err)
	}

	slog.Info("text detector ready",
		"version", t.version, "languages", cfg.languages(), "pool", n)
	return t, nil
}

func newClient(cfg Config) (*gosseract.Client, error) {
	client := gosseract.NewClient()
	if cfg.TessdataPrefix != "" {
		if err := client.SetTessdataPrefix(cfg.TessdataPrefix); err != nil {
			client.Close()
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
	}
	if err := client.SetLanguage(cfg.languages()...); err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	// Photos carry scattered text rather than a page layout.
	if err := client.SetPageSegMode(gosseract.PSM_SPARSE_TEXT); err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return client, nil
}

// warmUp forces engine initialization on a blank image so missing language
// data is reported at startup rather than on the first photo.
func warmUp(client *gosseract.Client) error {
	data, err := encodeForOCR(image.NewGray(image.Rect(0, 0, 8, 8)))
	if err != nil {
		return err
	}
	if err := client.SetImageFromBytes(data); err != nil {
		return err
	}
	_, err = client.Text()
	return err
}

// DetectText returns one box per recognized word in img.
//
// Engine failures are logged and yield no boxes. The only error returned is
// ctx's, when it ends before an engine becomes free. Once recognition has
// started it runs to completion; the engine then returns to the pool.
func (t *Tesseract) DetectText(ctx context.Context, img image.Image) ([]detection.Box, error) {
	var client *gosseract.Client
	select {
	case client = <-t.clients:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	defer func() { t.clients <- client }()

	data, err := encodeForOCR(img)
	if err != nil {
		slog.Warn("text detection skipped", "error", err)
		return nil, nil
	}
	if err := client.SetImageFromBytes(data); err != nil {
		slog.Warn("text detection skipped", "error", err)
		return nil, nil
	}

	found, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		slog.Warn("text detection failed", "error", err)
		return nil, nil
	}

	words := make([]word, len(found))
	for i, bb := range found {
		words[i] = word{text: strings.TrimSpace(bb.Word), box: bb.Box}
	}
	boxes := boxesFromWords(words)
	slog.Debug("text detection", "words", len(found), "boxes", len(boxes))
	return boxes, nil
}

// Info reports the engine version and loaded languages.
func (t *Tesseract) Info() Info {
	return Info{
		Available: true,
		Version:   t.version,
		Languages: t.cfg.languages(),
	}
}

// Close releases every engine. It must not be called while DetectText is
// in flight.
func (t *Tesseract) Close() {
	for _, c := range t.all {
		c.Close()
	}
	t.all = nil
}
