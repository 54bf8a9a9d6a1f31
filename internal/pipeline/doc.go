// Package pipeline composes detection, redaction and resizing into the
// per-image anonymization pipeline.
//
// # Stages
//
// Process runs three stages on one image:
//  1. Detection over the untouched source: faces and plates from the object
//     detector, words from the text detector.
//  2. Redaction of every detected box, in face, plate, text order, over a
//     private working copy. Overlapping boxes are blurred more than once.
//  3. Resizing of the redacted copy to its canonical frame.
//
// Resizing always happens after every box has been blurred, and detection
// always sees the source at its original resolution.
//
// # Captions
//
// Caption burns a caption into a copy of an image and does nothing else.
// ProcessCaptioned burns the caption first and then runs Process on the
// captioned copy, so caption text is itself subject to text redaction.
//
// # Deadlines
//
// Each call gets its own deadline (Options.Timeout) on top of the caller's
// context. A detector still running when it expires is abandoned: the call
// returns the context error at once and the detector finishes in the
// background, returning its model handle to the pool when it does.
package pipeline
