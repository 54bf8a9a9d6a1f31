package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

func outputPathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Optional absolute path to write the result to. The format follows the extension, or the input format if the extension is not an image type. When omitted the result is returned as base64.",
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, sniffed format and orientation.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Redaction
		{
			Name:        "image_detect_regions",
			Description: "Find faces, license plates and text in an image without modifying it. Returns axis-aligned boxes per category in source pixel coordinates.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_preview_regions",
			Description: "Draw the boxes image_redact would blur onto a copy of the image, at its original size. Faces are outlined red, plates yellow and text green; each box is numbered in the order listed in the returned regions.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":        pathProperty(),
					"output_path": outputPathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_redact",
			Description: "Blur every detected face, license plate and text region, then resize to 640x480 (landscape) or 480x640 (portrait) keeping the aspect ratio. An optional caption is burned into the top-left corner first.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":        pathProperty(),
					"output_path": outputPathProperty(),
					"caption": map[string]interface{}{
						"type":        "string",
						"description": "Optional caption drawn before redaction",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_caption",
			Description: "Burn a caption into the top-left corner of an image. No detection, blurring or resizing takes place.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":        pathProperty(),
					"output_path": outputPathProperty(),
					"caption": map[string]interface{}{
						"type":        "string",
						"description": "Caption text",
					},
				},
				"required": []string{"path", "caption"},
			},
		},
		{
			Name:        "image_canonical_size",
			Description: "Compute the output size image_redact produces for a source of the given dimensions.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Source width in pixels",
					},
					"height": map[string]interface{}{
						"type":        "integer",
						"description": "Source height in pixels",
					},
				},
				"required": []string{"width", "height"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
