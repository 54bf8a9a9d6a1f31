package batch

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ironsheep/image-redact/internal/imaging"
	"github.com/ironsheep/image-redact/internal/pipeline"
	"golang.org/x/sync/errgroup"
)

// Options configures a batch run.
type Options struct {
	// InputDir is scanned (not recursively) for .jpg, .jpeg, .png and .bmp
	// files.
	InputDir string

	// OutputDir receives one output per processed input, under the same
	// name. It is created if missing.
	OutputDir string

	// Caption, when non-empty, is burned into every image before
	// redaction.
	Caption string

	// CaptionOnly burns Caption and skips detection, redaction and
	// resizing.
	CaptionOnly bool

	// Workers bounds how many images are processed at once. Values below 1
	// mean runtime.NumCPU().
	Workers int
}

// Skipped records an input that produced no output.
type Skipped struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// Summary reports the outcome of a batch run.
type Summary struct {
	RunID     string        `json:"run_id"`
	Processed []string      `json:"processed"`
	Skipped   []Skipped     `json:"skipped"`
	Elapsed   time.Duration `json:"elapsed"`
}

// Run processes every image in opts.InputDir with p and writes the results
// to opts.OutputDir.
//
// Unreadable inputs, failed writes and images that exceed the pipeline
// deadline are logged and listed in the summary; the run carries on. Run
// fails only when the directories are unusable or ctx ends, in which case
// the summary covers the images finished so far.
func Run(ctx context.Context, p *pipeline.Pipeline, opts Options) (*Summary, error) {
	start := time.Now()
	sum := &Summary{RunID: uuid.NewString()}
	log := slog.With("run_id", sum.RunID)

	names, err := listImages(opts.InputDir)
	if err != nil {
		return sum, err
	}
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return sum, fmt.Errorf("failed to create output directory: %w", err)
	}

	workers := opts.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	log.Info("batch started",
		"input", opts.InputDir, "output", opts.OutputDir,
		"images", len(names), "workers", workers, "caption_only", opts.CaptionOnly)

	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(workers)
	for _, name := range names {
		if ctx.Err() != nil {
			break
		}
		name := name
		g.Go(func() error {
			err := processFile(ctx, p, opts, name)
			switch {
			case err == nil:
				mu.Lock()
				sum.Processed = append(sum.Processed, name)
				mu.Unlock()
				log.Debug("image processed", "name", name)
				return nil
			case ctx.Err() != nil:
				// The run itself was canceled, not just this image.
				return ctx.Err()
			default:
				mu.Lock()
				sum.Skipped = append(sum.Skipped, Skipped{Name: name, Reason: err.Error()})
				mu.Unlock()
				log.Warn("image skipped", "name", name, "error", err)
				return nil
			}
		})
	}

	err = g.Wait()
	if err == nil {
		err = ctx.Err()
	}

	slices.Sort(sum.Processed)
	slices.SortFunc(sum.Skipped, func(a, b Skipped) int {
		return strings.Compare(a.Name, b.Name)
	})
	sum.Elapsed = time.Since(start)

	log.Info("batch finished",
		"processed", len(sum.Processed), "skipped", len(sum.Skipped), "elapsed", sum.Elapsed)
	return sum, err
}

// listImages returns the names of regular files in dir carrying a
// recognized image extension, sorted.
func listImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.Type().IsRegular() || !imaging.HasImageExtension(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// processFile runs one image through the pipeline. The output keeps the
// input's name and encoding format.
func processFile(ctx context.Context, p *pipeline.Pipeline, opts Options, name string) error {
	src, format, err := imaging.Open(filepath.Join(opts.InputDir, name))
	if err != nil {
		return err
	}

	var out image.Image
	if opts.CaptionOnly {
		out, err = p.Caption(src, opts.Caption)
	} else {
		out, err = p.ProcessCaptioned(ctx, src, opts.Caption)
	}
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("processing timed out: %w", err)
		}
		return err
	}

	return imaging.Save(filepath.Join(opts.OutputDir, name), out, format)
}
