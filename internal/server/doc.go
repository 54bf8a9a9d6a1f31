// Package server implements the MCP (Model Context Protocol) server that
// exposes the redaction pipeline as tools.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Logs go to stderr so they never interleave with protocol output.
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Basic Image Information:
//   - image_load: Load image and get metadata (format sniffed from content)
//   - image_dimensions: Get width and height
//
// Redaction:
//   - image_detect_regions: Face, plate and text boxes without modifying the image
//   - image_preview_regions: Detected boxes outlined on a copy at source size
//   - image_redact: Blur detected regions and resize to the canonical frame
//   - image_caption: Burn a caption into the top-left corner only
//   - image_canonical_size: Output size for given source dimensions
//
// image_preview_regions, image_redact and image_caption write to output_path
// when given, otherwise they return the encoded image as base64.
//
// # Image Caching
//
// Decoded source images are cached by path and reused across tool calls.
// Redaction always works on a copy, so cached images are never modified.
// Writing to a path evicts that path from the cache.
//
// # Error Handling
//
// Tool failures are returned as JSON-RPC error responses with:
//   - code: -32602 for missing or malformed arguments, -32000 for any other
//     tool failure (unreadable image, deadline exceeded, write error)
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Usage
//
//	srv := server.New(p, version)
//	if err := srv.Run(ctx); err != nil {
//	    return err
//	}
package server
