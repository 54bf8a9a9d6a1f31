// Package detection locates privacy-sensitive regions in photographs.
//
// It defines the region model shared by every detector (Box, Result) and the
// detector contracts consumed by the redaction pipeline (ObjectDetector,
// TextDetector). Faces and license plates are found by CascadeDetector;
// text is found by the ocr package, or by EdgeTextDetector when no OCR
// engine is available.
//
// # Edge Text Detection
//
// EdgeTextDetector marks pixels whose grayscale step to the right or lower
// neighbor exceeds 30 and slides four window sizes over the result at half
// stride. A window is text-like when its edge density lies in [0.05, 0.4];
// its score weights the share of horizontal edge runs by how close the
// density is to 0.2. Overlapping hits are merged into one box.
//
// # Coordinate System
//
// All coordinates use the standard image convention:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
//   - A Box is (X, Y, Width, Height); it may have zero area
//
// # Cascade Classifiers
//
// CascadeDetector wraps two OpenCV Haar cascades (frontal face and plate).
// Each scan uses a 1.1 scale step and a 30x30 minimum size; faces need 5
// confirming neighbors, plates 4. Confidences are not kept: a box is either
// reported or not.
//
// OpenCV support is compiled in only with the gocv build tag:
//
//	go build -tags gocv ./...
//
// Without it, CascadeDetector logs a warning at construction and reports no
// faces or plates.
//
// # Thread Safety
//
// CascadeDetector keeps a fixed pool of classifier pairs loaded at
// construction. Detect checks one pair out for the duration of the call, so
// the detector is safe for concurrent use and never shares a classifier
// between goroutines.
//
// # Failure Modes
//
// A classifier file that cannot be loaded is logged once and its category
// yields empty results from then on. Detect returns an error only when the
// context is done before a classifier pair becomes available.
package detection
