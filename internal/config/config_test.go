package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"IMAGE_REDACT_FACE_CASCADE", "IMAGE_REDACT_PLATE_CASCADE", "IMAGE_REDACT_TESSDATA",
		"IMAGE_REDACT_LANGUAGES", "IMAGE_REDACT_WORKERS", "IMAGE_REDACT_TIMEOUT",
		"IMAGE_REDACT_PARALLEL_DETECT", "IMAGE_REDACT_CAPTION_COLOR", "IMAGE_REDACT_LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if !filepath.IsAbs(cfg.FaceCascade) {
		t.Errorf("FaceCascade should be resolved to an absolute path, got %q", cfg.FaceCascade)
	}
	if filepath.Base(cfg.PlateCascade) != "haarcascade_russian_plate_number.xml" {
		t.Errorf("PlateCascade: got %q", cfg.PlateCascade)
	}
	if diff := cmp.Diff([]string{"por", "eng"}, cfg.Languages); diff != "" {
		t.Errorf("Languages mismatch (-want +got):\n%s", diff)
	}
	if cfg.Workers != runtime.NumCPU() {
		t.Errorf("Workers: got %d, want %d", cfg.Workers, runtime.NumCPU())
	}
	if cfg.ImageTimeout != 2*time.Minute {
		t.Errorf("ImageTimeout: got %v, want 2m", cfg.ImageTimeout)
	}
	if cfg.ParallelDetect {
		t.Error("ParallelDetect should default to false")
	}
	if cfg.CaptionColor != "#0000FF" {
		t.Errorf("CaptionColor: got %s, want #0000FF", cfg.CaptionColor)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel: got %v, want info", cfg.LogLevel)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("IMAGE_REDACT_FACE_CASCADE", "/opt/models/face.xml")
	t.Setenv("IMAGE_REDACT_LANGUAGES", " deu , fra ,")
	t.Setenv("IMAGE_REDACT_WORKERS", "3")
	t.Setenv("IMAGE_REDACT_TIMEOUT", "45")
	t.Setenv("IMAGE_REDACT_PARALLEL_DETECT", "true")
	t.Setenv("IMAGE_REDACT_LOG_LEVEL", "DEBUG")

	cfg := Load()

	if cfg.FaceCascade != "/opt/models/face.xml" {
		t.Errorf("absolute FaceCascade should pass through, got %q", cfg.FaceCascade)
	}
	if diff := cmp.Diff([]string{"deu", "fra"}, cfg.Languages); diff != "" {
		t.Errorf("Languages mismatch (-want +got):\n%s", diff)
	}
	if cfg.Workers != 3 {
		t.Errorf("Workers: got %d, want 3", cfg.Workers)
	}
	if cfg.ImageTimeout != 45*time.Second {
		t.Errorf("bare seconds should parse, got %v", cfg.ImageTimeout)
	}
	if !cfg.ParallelDetect {
		t.Error("ParallelDetect should be true")
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel: got %v, want debug", cfg.LogLevel)
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("IMAGE_REDACT_WORKERS", "-2")
	t.Setenv("IMAGE_REDACT_TIMEOUT", "soon")
	t.Setenv("IMAGE_REDACT_PARALLEL_DETECT", "maybe")

	cfg := Load()

	if cfg.Workers != runtime.NumCPU() {
		t.Errorf("Workers: got %d, want default", cfg.Workers)
	}
	if cfg.ImageTimeout != 2*time.Minute {
		t.Errorf("ImageTimeout: got %v, want default", cfg.ImageTimeout)
	}
	if cfg.ParallelDetect {
		t.Error("ParallelDetect should fall back to false")
	}
}

func TestResolveResource(t *testing.T) {
	if got := ResolveResource(""); got != "" {
		t.Errorf("empty path: got %q", got)
	}

	abs := filepath.Join(t.TempDir(), "face.xml")
	if got := ResolveResource(abs); got != abs {
		t.Errorf("absolute path: got %q, want %q", got, abs)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	got := ResolveResource("does-not-exist/model.xml")
	if want := filepath.Join(wd, "does-not-exist/model.xml"); got != want {
		t.Errorf("fallback: got %q, want %q", got, want)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
