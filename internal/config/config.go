// Package config resolves the process-wide settings for image-redact.
//
// Settings are read once at startup from IMAGE_REDACT_* environment variables
// and passed explicitly to the packages that need them. Nothing in this
// package is consulted again per request.
package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"
)

// Default model locations, relative to the resource root.
const (
	DefaultFaceCascade  = "models/haarcascade_frontalface_default.xml"
	DefaultPlateCascade = "models/haarcascade_russian_plate_number.xml"
)

// Config holds every setting needed to build the pipeline and its surfaces.
type Config struct {
	// FaceCascade and PlateCascade are resolved paths to the cascade
	// classifier definitions.
	FaceCascade  string
	PlateCascade string

	// TessdataPrefix is the directory holding Tesseract traineddata files.
	// Empty means the library default.
	TessdataPrefix string

	// Languages are the Tesseract language codes used for text detection.
	Languages []string

	// Workers bounds both the batch worker pool and the model handle pools.
	Workers int

	// ImageTimeout is the per-image processing deadline. Zero disables it.
	ImageTimeout time.Duration

	// ParallelDetect runs the object and text detectors concurrently.
	ParallelDetect bool

	// CaptionColor is a hex colour ("#RRGGBB") for caption overlays.
	CaptionColor string

	// LogLevel is the minimum level of the default slog logger.
	LogLevel slog.Level
}

// Load reads the configuration from the environment, applying defaults for
// anything unset or unparseable.
func Load() *Config {
	return &Config{
		FaceCascade:    ResolveResource(getEnv("IMAGE_REDACT_FACE_CASCADE", DefaultFaceCascade)),
		PlateCascade:   ResolveResource(getEnv("IMAGE_REDACT_PLATE_CASCADE", DefaultPlateCascade)),
		TessdataPrefix: getEnv("IMAGE_REDACT_TESSDATA", ""),
		Languages:      splitList(getEnv("IMAGE_REDACT_LANGUAGES", "por,eng")),
		Workers:        getInt("IMAGE_REDACT_WORKERS", runtime.NumCPU()),
		ImageTimeout:   getDuration("IMAGE_REDACT_TIMEOUT", 2*time.Minute),
		ParallelDetect: getBool("IMAGE_REDACT_PARALLEL_DETECT", false),
		CaptionColor:   getEnv("IMAGE_REDACT_CAPTION_COLOR", "#0000FF"),
		LogLevel:       parseLevel(getEnv("IMAGE_REDACT_LOG_LEVEL", "info")),
	}
}

// ResolveResource maps a relative resource path to an absolute one.
//
// Bundled deployments ship resources next to the binary, so the executable's
// directory (after resolving symlinks) is tried first. Development checkouts
// run from the repository root, so the working directory is the fallback.
// Absolute paths are returned unchanged.
func ResolveResource(rel string) string {
	if rel == "" || filepath.IsAbs(rel) {
		return rel
	}

	if exePath, err := os.Executable(); err == nil {
		if real, err := filepath.EvalSymlinks(exePath); err == nil {
			exePath = real
		}
		candidate := filepath.Join(filepath.Dir(exePath), rel)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	if wd, err := os.Getwd(); err == nil {
		return filepath.Join(wd, rel)
	}
	return rel
}

func getEnv(key, defaultVal string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return defaultVal
}

func getInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		slog.Warn("invalid integer setting, using default", "key", key, "value", s, "default", defaultVal)
		return defaultVal
	}
	return n
}

func getBool(key string, defaultVal bool) bool {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		slog.Warn("invalid boolean setting, using default", "key", key, "value", s, "default", defaultVal)
		return defaultVal
	}
	return b
}

// getDuration accepts Go durations ("90s") or a bare number of seconds.
func getDuration(key string, defaultVal time.Duration) time.Duration {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Duration(n) * time.Second
	}
	slog.Warn("invalid duration setting, using default", "key", key, "value", s, "default", defaultVal)
	return defaultVal
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
