package pipeline

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/ironsheep/image-redact/internal/detection"
	"github.com/ironsheep/image-redact/internal/imaging"
	"golang.org/x/sync/errgroup"
)

// DefaultTimeout bounds the processing of a single image.
const DefaultTimeout = 2 * time.Minute

// Options tunes a Pipeline.
type Options struct {
	// Timeout is the per-image deadline covering detection, redaction and
	// resize. Zero or negative disables it.
	Timeout time.Duration

	// ParallelDetect runs the object and text detectors concurrently.
	ParallelDetect bool

	// CaptionStyle controls caption rendering. A zero Size selects
	// imaging.DefaultCaptionStyle.
	CaptionStyle imaging.CaptionStyle
}

// DefaultOptions returns sequential detection with DefaultTimeout and the
// default caption style.
func DefaultOptions() Options {
	return Options{
		Timeout:      DefaultTimeout,
		CaptionStyle: imaging.DefaultCaptionStyle(),
	}
}

// Pipeline detects sensitive regions in an image, blurs them and resizes
// the result to its canonical frame.
//
// A Pipeline holds no per-image state and is safe for concurrent use as long
// as its detectors are.
type Pipeline struct {
	objects detection.ObjectDetector
	text    detection.TextDetector
	opts    Options
}

// New builds a Pipeline. A nil detector is replaced by one that never finds
// anything.
func New(objects detection.ObjectDetector, text detection.TextDetector, opts Options) *Pipeline {
	if objects == nil {
		objects = detection.NoObjects{}
	}
	if text == nil {
		text = detection.NoText{}
	}
	if opts.CaptionStyle.Size == 0 {
		opts.CaptionStyle = imaging.DefaultCaptionStyle()
	}
	return &Pipeline{objects: objects, text: text, opts: opts}
}

// Options returns the options the pipeline was built with.
func (p *Pipeline) Options() Options {
	return p.opts
}

func (p *Pipeline) withDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.opts.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, p.opts.Timeout)
}

// Detect runs every detector over img and returns their boxes, in
// coordinates relative to the top-left corner of img.
//
// img is only read. Detectors that are still running when ctx ends are
// abandoned and keep reading img until they finish, so the caller must not
// modify img after a context error.
func (p *Pipeline) Detect(ctx context.Context, img image.Image) (detection.Result, error) {
	ctx, cancel := p.withDeadline(ctx)
	defer cancel()
	return p.detect(ctx, img)
}

func (p *Pipeline) detect(ctx context.Context, img image.Image) (detection.Result, error) {
	var res detection.Result

	detectObjects := func(ctx context.Context) error {
		found, err := abandonable(ctx, func(ctx context.Context) (objectBoxes, error) {
			faces, plates, err := p.objects.Detect(ctx, img)
			return objectBoxes{faces: faces, plates: plates}, err
		})
		if err != nil {
			return err
		}
		res.Faces, res.Plates = found.faces, found.plates
		return nil
	}
	detectText := func(ctx context.Context) error {
		text, err := abandonable(ctx, func(ctx context.Context) ([]detection.Box, error) {
			return p.text.DetectText(ctx, img)
		})
		if err != nil {
			return err
		}
		res.Text = text
		return nil
	}

	if p.opts.ParallelDetect {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error { return detectObjects(gctx) })
		g.Go(func() error { return detectText(gctx) })
		if err := g.Wait(); err != nil {
			return detection.Result{}, err
		}
	} else {
		if err := detectObjects(ctx); err != nil {
			return detection.Result{}, err
		}
		if err := detectText(ctx); err != nil {
			return detection.Result{}, err
		}
	}

	slog.Debug("detection complete",
		"faces", len(res.Faces), "plates", len(res.Plates), "text", len(res.Text))
	return res, nil
}

// Process redacts every detected face, plate and text region of img and
// returns the result resized to its canonical frame.
//
// img is not modified. The only error returned is ctx's (or the per-image
// deadline's); no partial image is produced in that case.
func (p *Pipeline) Process(ctx context.Context, img image.Image) (*image.NRGBA, error) {
	ctx, cancel := p.withDeadline(ctx)
	defer cancel()

	res, err := p.detect(ctx, img)
	if err != nil {
		return nil, err
	}

	return Redact(img, res.All()), nil
}

// ProcessCaptioned burns caption into the top-left corner of a copy of img
// and then runs Process on it. An empty caption makes it equivalent to
// Process.
func (p *Pipeline) ProcessCaptioned(ctx context.Context, img image.Image, caption string) (*image.NRGBA, error) {
	if caption == "" {
		return p.Process(ctx, img)
	}

	captioned, err := p.Caption(img, caption)
	if err != nil {
		return nil, err
	}
	return p.Process(ctx, captioned)
}

// Caption returns a copy of img with caption drawn in the top-left corner.
// No detection or resizing takes place.
func (p *Pipeline) Caption(img image.Image, caption string) (*image.NRGBA, error) {
	work := imaging.Working(img)
	if err := imaging.DrawCaption(work, caption, p.opts.CaptionStyle); err != nil {
		return nil, fmt.Errorf("failed to draw caption: %w", err)
	}
	return work, nil
}

// Redact blurs every box over a copy of img, in order, and resizes the
// result to its canonical frame. Boxes are relative to the top-left corner
// of img; boxes that clamp to nothing are skipped.
func Redact(img image.Image, boxes []detection.Box) *image.NRGBA {
	work := imaging.Working(img)

	blurred := 0
	for _, b := range boxes {
		if imaging.BlurRegion(work, b.Rect()) {
			blurred++
		}
	}

	out := imaging.Normalize(work)
	slog.Debug("image redacted",
		"regions", len(boxes), "blurred", blurred,
		"width", out.Bounds().Dx(), "height", out.Bounds().Dy())
	return out
}

type objectBoxes struct {
	faces, plates []detection.Box
}

// abandonable runs fn in its own goroutine and returns as soon as either fn
// finishes or ctx ends. An abandoned fn keeps running to completion and its
// result is dropped.
func abandonable[T any](ctx context.Context, fn func(context.Context) (T, error)) (T, error) {
	type result struct {
		v   T
		err error
	}

	done := make(chan result, 1)
	go func() {
		v, err := fn(ctx)
		done <- result{v: v, err: err}
	}()

	select {
	case r := <-done:
		return r.v, r.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
