package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/ironsheep/image-redact/internal/detection"
	"github.com/ironsheep/image-redact/internal/imaging"
	"github.com/ironsheep/image-redact/internal/pipeline"
)

// errInvalidArgs marks tool failures caused by the caller's arguments.
var errInvalidArgs = errors.New("invalid arguments")

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_redact").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Bad arguments return a JSON-RPC error with code -32602; any other tool
// failure uses -32000.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		if errors.Is(err, errInvalidArgs) {
			return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
		}
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Redaction
	case "image_detect_regions":
		return s.handleImageDetectRegions(ctx, args)
	case "image_preview_regions":
		return s.handleImagePreviewRegions(ctx, args)
	case "image_redact":
		return s.handleImageRedact(ctx, args)
	case "image_caption":
		return s.handleImageCaption(args)
	case "image_canonical_size":
		return s.handleImageCanonicalSize(args)

	default:
		return nil, fmt.Errorf("%w: unknown tool: %s", errInvalidArgs, name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// decodeArgs unmarshals tool arguments, reporting malformed JSON as an
// argument error.
func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		args = []byte("{}")
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("%w: %v", errInvalidArgs, err)
	}
	return nil
}

// === Basic Image Information Handlers ===

type imagePathArgs struct {
	Path string `json:"path"`
}

func (a imagePathArgs) validate() error {
	if a.Path == "" {
		return fmt.Errorf("%w: path is required", errInvalidArgs)
	}
	return nil
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imagePathArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imagePathArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Redaction Handlers ===

// RegionsResult lists detected regions by category.
type RegionsResult struct {
	Faces  []detection.Box `json:"faces"`
	Plates []detection.Box `json:"plates"`
	Text   []detection.Box `json:"text"`
	Count  int             `json:"count"`
}

func newRegionsResult(r detection.Result) *RegionsResult {
	nonNil := func(b []detection.Box) []detection.Box {
		if b == nil {
			return []detection.Box{}
		}
		return b
	}
	return &RegionsResult{
		Faces:  nonNil(r.Faces),
		Plates: nonNil(r.Plates),
		Text:   nonNil(r.Text),
		Count:  r.Count(),
	}
}

func (s *Server) handleImageDetectRegions(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imagePathArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := a.validate(); err != nil {
		return nil, err
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	res, err := s.pipeline.Detect(ctx, img)
	if err != nil {
		return nil, fmt.Errorf("detection aborted: %w", err)
	}
	return newRegionsResult(res), nil
}

// ImageResult describes a produced image, either written to OutputPath or
// returned inline as ImageBase64.
type ImageResult struct {
	Width       int            `json:"width"`
	Height      int            `json:"height"`
	Format      string         `json:"format"`
	Regions     *RegionsResult `json:"regions,omitempty"`
	OutputPath  string         `json:"output_path,omitempty"`
	ImageBase64 string         `json:"image_base64,omitempty"`
	MimeType    string         `json:"mime_type,omitempty"`
}

type imagePreviewArgs struct {
	Path       string `json:"path"`
	OutputPath string `json:"output_path"`
}

// handleImagePreviewRegions outlines what image_redact would blur, at the
// source size.
func (s *Server) handleImagePreviewRegions(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imagePreviewArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := (imagePathArgs{Path: a.Path}).validate(); err != nil {
		return nil, err
	}

	src, format, err := s.cache.LoadWithFormat(a.Path)
	if err != nil {
		return nil, err
	}
	res, err := s.pipeline.Detect(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("detection aborted: %w", err)
	}

	out := imaging.Working(src)
	imaging.Outline(out, rects(res.Faces), imaging.FaceOutline)
	imaging.Outline(out, rects(res.Plates), imaging.PlateOutline)
	imaging.Outline(out, rects(res.Text), imaging.TextOutline)

	result, err := s.emit(out, format, a.OutputPath)
	if err != nil {
		return nil, err
	}
	result.Regions = newRegionsResult(res)
	return result, nil
}

func rects(boxes []detection.Box) []image.Rectangle {
	out := make([]image.Rectangle, len(boxes))
	for i, b := range boxes {
		out[i] = b.Rect()
	}
	return out
}

type imageRedactArgs struct {
	Path       string `json:"path"`
	OutputPath string `json:"output_path"`
	Caption    string `json:"caption"`
}

func (s *Server) handleImageRedact(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imageRedactArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := (imagePathArgs{Path: a.Path}).validate(); err != nil {
		return nil, err
	}

	src, format, err := s.cache.LoadWithFormat(a.Path)
	if err != nil {
		return nil, err
	}

	if a.Caption != "" {
		if src, err = s.pipeline.Caption(src, a.Caption); err != nil {
			return nil, err
		}
	}

	res, err := s.pipeline.Detect(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("detection aborted: %w", err)
	}
	out := pipeline.Redact(src, res.All())

	result, err := s.emit(out, format, a.OutputPath)
	if err != nil {
		return nil, err
	}
	result.Regions = newRegionsResult(res)
	return result, nil
}

type imageCaptionArgs struct {
	Path       string `json:"path"`
	OutputPath string `json:"output_path"`
	Caption    string `json:"caption"`
}

func (s *Server) handleImageCaption(args json.RawMessage) (interface{}, error) {
	var a imageCaptionArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := (imagePathArgs{Path: a.Path}).validate(); err != nil {
		return nil, err
	}
	if a.Caption == "" {
		return nil, fmt.Errorf("%w: caption is required", errInvalidArgs)
	}

	src, format, err := s.cache.LoadWithFormat(a.Path)
	if err != nil {
		return nil, err
	}
	out, err := s.pipeline.Caption(src, a.Caption)
	if err != nil {
		return nil, err
	}
	return s.emit(out, format, a.OutputPath)
}

// emit writes img to outputPath, or encodes it inline when outputPath is
// empty. The output format follows the extension of outputPath when it
// names an image type, else the source format.
func (s *Server) emit(img image.Image, source imaging.Format, outputPath string) (*ImageResult, error) {
	format := source
	if f, ok := imaging.FormatFromPath(outputPath); ok {
		format = f
	}

	b := img.Bounds()
	result := &ImageResult{
		Width:  b.Dx(),
		Height: b.Dy(),
		Format: strings.ToLower(format.String()),
	}

	if outputPath != "" {
		if err := imaging.Save(outputPath, img, format); err != nil {
			return nil, err
		}
		// A later load of this path must not see a stale decode.
		s.cache.Evict(outputPath)
		result.OutputPath = outputPath
		return result, nil
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format); err != nil {
		return nil, err
	}
	result.ImageBase64 = base64.StdEncoding.EncodeToString(buf.Bytes())
	result.MimeType = imaging.MIMEType(format)
	return result, nil
}

// CanonicalSizeResult is the output size for a given source size.
type CanonicalSizeResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Orientation string `json:"orientation"`
	FrameWidth  int    `json:"frame_width"`
	FrameHeight int    `json:"frame_height"`
}

type imageCanonicalSizeArgs struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (s *Server) handleImageCanonicalSize(args json.RawMessage) (interface{}, error) {
	var a imageCanonicalSizeArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Width <= 0 || a.Height <= 0 {
		return nil, fmt.Errorf("%w: width and height must be positive", errInvalidArgs)
	}

	w, h := imaging.CanonicalSize(a.Width, a.Height)
	frame := imaging.FrameFor(a.Width, a.Height)
	orientation := "landscape"
	if frame == imaging.Portrait {
		orientation = "portrait"
	}
	return &CanonicalSizeResult{
		Width:       w,
		Height:      h,
		Orientation: orientation,
		FrameWidth:  frame.X,
		FrameHeight: frame.Y,
	}, nil
}
