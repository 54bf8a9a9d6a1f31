// Package ocr locates words in photographs using Tesseract.
//
// The detector wraps the Tesseract engine (via gosseract/v2) and reports
// where words are, not what they say: recognized text and confidences are
// discarded and each word becomes an axis-aligned redaction box.
//
// # Prerequisites
//
// Tesseract and language data for every configured language must be
// installed:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-por tesseract-ocr-eng
//   - macOS: brew install tesseract tesseract-lang
//
// The binding requires cgo. Binaries built with CGO_ENABLED=0 get a stub
// whose constructor returns ErrUnavailable.
//
// # Languages
//
// The default languages are Portuguese ("por") and English ("eng"), loaded
// together. Any Tesseract language codes can be configured instead.
//
// # Concurrency
//
// A Tesseract engine is not safe for concurrent use. NewTesseract creates a
// fixed pool of engines at startup; DetectText checks one out for the
// duration of a call and waits, honoring its context, when all are busy.
//
// # Error Handling
//
// NewTesseract fails with an error wrapping ErrUnavailable when the engine
// or its language data cannot be loaded. DetectText never fails because of
// the engine: a failure on one image is logged and produces no boxes.
package ocr
