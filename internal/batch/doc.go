// Package batch runs the redaction pipeline over a directory of images.
//
// Every regular file in the input directory with a .jpg, .jpeg, .png or
// .bmp extension (any case) is decoded, processed and written to the output
// directory under the same name, in the format sniffed from its contents.
// Subdirectories are not visited. Files that cannot be decoded are skipped
// with a warning; a bad file never stops the run.
//
// Images are processed concurrently by a bounded pool of workers. Each run
// gets a random ID that is attached to all of its log records.
package batch
