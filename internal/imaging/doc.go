// Package imaging provides the pixel operations of the redaction pipeline.
//
// This package implements region redaction (BlurRegion), canonical-frame
// resizing (CanonicalSize, Normalize), caption overlay (DrawCaption) and the
// image I/O around them (Decode, Encode, ImageCache). Outline draws
// detection boxes for previews. All operations work
// with standard Go image types and use a coordinate system where (0,0) is at
// the top-left corner, X increases rightward, and Y increases downward.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, Min is inclusive (top-left), Max is exclusive (bottom-right)
//
// # Canonical Frames
//
// Output images fit one of two frames, chosen by the source orientation:
//   - Landscape 640x480 when width >= height
//   - Portrait 480x640 otherwise
//
// Exactly one side matches the frame; the other keeps the source aspect ratio
// (floor division) and never exceeds the frame. Resizing uses area averaging.
//
// # Redaction
//
// BlurRegion applies an 85-tap Gaussian kernel over a region clamped to the
// image bounds. Regions that clamp to nothing are skipped with a debug log.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Images returned from the
// cache are shared and must be treated as read-only; use Working to get a
// private copy before mutating. Individual operations are stateless and can
// run concurrently on different images.
//
// # Error Handling
//
// Decoding returns an error wrapping ErrNotImage when the content is not a
// supported image. Redaction and resizing never fail; degenerate inputs are
// handled locally.
package imaging
