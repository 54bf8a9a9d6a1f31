package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/ironsheep/image-redact/internal/batch"
	"github.com/ironsheep/image-redact/internal/config"
	"github.com/ironsheep/image-redact/internal/detection"
	"github.com/ironsheep/image-redact/internal/imaging"
	"github.com/ironsheep/image-redact/internal/ocr"
	"github.com/ironsheep/image-redact/internal/pipeline"
	"github.com/ironsheep/image-redact/internal/server"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewCLI builds the command tree. Configuration is read from the
// environment once, here; flags override the batch-related values.
func NewCLI() *cobra.Command {
	cfg := config.Load()
	cobra.EnableCommandSorting = false

	rootCmd := &cobra.Command{
		Use:           "image-redact",
		Short:         "Blur faces, license plates and text in photographs",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(cfg.LogLevel)
		},
	}

	rootCmd.AddCommand(
		newServeCmd(cfg),
		newBatchCmd(cfg),
		newVersionCmd(cfg),
	)
	return rootCmd
}

// setupLogging installs a text logger on stderr. stdout is reserved for
// protocol output and summaries.
func setupLogging(level slog.Level) {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

func newServeCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server over stdin/stdout",
		Long: `Run the MCP server over stdin/stdout.

The server speaks JSON-RPC 2.0, one request per line. Configure it in your
MCP client as a stdio server. Logs are written to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			slog.Debug("starting server", "version", Version, "built", BuildTime, "commit", GitCommit)

			p, closeModels := buildPipeline(cfg)
			defer closeModels()

			return server.New(p, Version).Run(cmd.Context())
		},
	}
}

func newBatchCmd(cfg *config.Config) *cobra.Command {
	var opts batch.Options

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Redact every image in a directory",
		Long: `Redact every image in a directory.

Each .jpg, .jpeg, .png and .bmp file in --input-dir is processed and written
to --output-dir under the same name. Unreadable files are skipped.`,
		Example: `  image-redact batch --input-dir photos --output-dir redacted
  image-redact batch --input-dir photos --output-dir out --caption "Rua Augusta"
  image-redact batch --input-dir photos --output-dir out --caption "Draft" --caption-only`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.CaptionOnly && opts.Caption == "" {
				return errors.New("--caption-only requires --caption")
			}
			cfg.Workers = max(cfg.Workers, 1)
			opts.Workers = cfg.Workers

			p, closeModels := buildPipeline(cfg)
			defer closeModels()

			sum, err := batch.Run(cmd.Context(), p, opts)
			if sum != nil {
				printSummary(cmd, sum)
			}
			return err
		},
	}

	cmd.Flags().StringVar(&opts.InputDir, "input-dir", "", "directory to read images from")
	cmd.Flags().StringVar(&opts.OutputDir, "output-dir", "", "directory to write processed images to")
	cmd.Flags().StringVar(&opts.Caption, "caption", "", "caption to burn into the top-left corner")
	cmd.Flags().BoolVar(&opts.CaptionOnly, "caption-only", false, "only add the caption, without redaction or resizing")
	cmd.Flags().IntVar(&cfg.Workers, "workers", cfg.Workers, "images processed concurrently")
	cmd.Flags().DurationVar(&cfg.ImageTimeout, "timeout", cfg.ImageTimeout, "per-image deadline (0 disables)")
	cmd.Flags().BoolVar(&cfg.ParallelDetect, "parallel-detect", cfg.ParallelDetect, "run object and text detection concurrently")
	cmd.MarkFlagRequired("input-dir")
	cmd.MarkFlagRequired("output-dir")

	return cmd
}

func printSummary(cmd *cobra.Command, sum *batch.Summary) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run %s: %d processed, %d skipped in %s\n",
		sum.RunID, len(sum.Processed), len(sum.Skipped), sum.Elapsed.Round(time.Millisecond))
	if len(sum.Skipped) == 0 {
		return
	}

	data := make([][]string, 0, len(sum.Skipped))
	for _, s := range sum.Skipped {
		data = append(data, []string{s.Name, s.Reason})
	}

	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"SKIPPED", "REASON"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(data)
	table.Render()
}

func newVersionCmd(cfg *config.Config) *cobra.Command {
	var checkModels bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "image-redact %s\n", Version)
			fmt.Fprintf(out, "  Build time: %s\n", BuildTime)
			fmt.Fprintf(out, "  Git commit: %s\n", GitCommit)
			if !checkModels {
				return nil
			}

			cfg.Workers = 1
			info := map[string]interface{}{
				"face_cascade":  cfg.FaceCascade,
				"plate_cascade": cfg.PlateCascade,
			}
			text, err := newTextDetector(cfg)
			if err != nil {
				info["ocr"] = ocr.Info{Error: err.Error()}
			} else {
				info["ocr"] = text.Info()
				text.Close()
			}
			b, _ := json.MarshalIndent(info, "", "  ")
			fmt.Fprintln(out, string(b))
			return nil
		},
	}
	cmd.Flags().BoolVar(&checkModels, "check-models", false, "load the detection models and report their status")
	return cmd
}

func newTextDetector(cfg *config.Config) (*ocr.Tesseract, error) {
	return ocr.NewTesseract(ocr.Config{
		TessdataPrefix: cfg.TessdataPrefix,
		Languages:      cfg.Languages,
		PoolSize:       cfg.Workers,
	})
}

// buildPipeline loads every model once and wires the pipeline. Cascades that
// fail to load are logged and report nothing; a missing OCR engine is
// replaced by the edge-density text detector. The returned function releases
// the models.
func buildPipeline(cfg *config.Config) (*pipeline.Pipeline, func()) {
	objects := detection.NewCascadeDetector(detection.CascadeConfig{
		Face:     detection.FaceParams(cfg.FaceCascade),
		Plate:    detection.PlateParams(cfg.PlateCascade),
		PoolSize: cfg.Workers,
	})
	closers := []func(){objects.Close}

	var text detection.TextDetector
	if t, err := newTextDetector(cfg); err != nil {
		slog.Warn("OCR unavailable, falling back to edge-density text detection", "error", err)
		text = detection.NewEdgeTextDetector()
	} else {
		text = t
		closers = append(closers, t.Close)
	}

	opts := pipeline.DefaultOptions()
	opts.Timeout = cfg.ImageTimeout
	opts.ParallelDetect = cfg.ParallelDetect
	if c, err := imaging.ParseColor(cfg.CaptionColor); err != nil {
		slog.Warn("using default caption color", "error", err)
	} else {
		opts.CaptionStyle.Color = c
	}

	closeAll := func() {
		for _, c := range closers {
			c()
		}
	}
	return pipeline.New(objects, text, opts), closeAll
}
