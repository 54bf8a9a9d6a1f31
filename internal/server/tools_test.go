package server

import (
	"slices"
	"testing"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	expectedTools := []string{
		"image_load",
		"image_dimensions",
		"image_detect_regions",
		"image_preview_regions",
		"image_redact",
		"image_caption",
		"image_canonical_size",
	}

	var names []string
	for _, tool := range tools {
		names = append(names, tool.Name)
	}

	if len(names) != len(expectedTools) {
		t.Errorf("tool count: got %d, want %d", len(names), len(expectedTools))
	}
	for _, name := range expectedTools {
		if !slices.Contains(names, name) {
			t.Errorf("Expected tool %s not found", name)
		}
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}
			if tool.InputSchema == nil {
				t.Fatal("Tool InputSchema is nil")
			}
			if tool.InputSchema["type"] != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", tool.InputSchema["type"])
			}

			props, ok := tool.InputSchema["properties"].(map[string]interface{})
			if !ok || len(props) == 0 {
				t.Fatal("InputSchema missing properties")
			}

			// Every required parameter must be described.
			required, ok := tool.InputSchema["required"].([]string)
			if !ok {
				t.Fatal("'required' should be a string slice")
			}
			for _, r := range required {
				if _, ok := props[r]; !ok {
					t.Errorf("required parameter %q has no property", r)
				}
			}
		})
	}
}

func TestToolDefinitions_RequiredParams(t *testing.T) {
	want := map[string][]string{
		"image_load":            {"path"},
		"image_dimensions":      {"path"},
		"image_detect_regions":  {"path"},
		"image_preview_regions": {"path"},
		"image_redact":          {"path"},
		"image_caption":         {"path", "caption"},
		"image_canonical_size":  {"width", "height"},
	}

	for _, tool := range GetToolDefinitions() {
		got, _ := tool.InputSchema["required"].([]string)
		if !slices.Equal(got, want[tool.Name]) {
			t.Errorf("%s required: got %v, want %v", tool.Name, got, want[tool.Name])
		}
	}
}

func TestHandleToolsList(t *testing.T) {
	s := New(nil, "test")
	resp := s.handleToolsList(&MCPRequest{JSONRPC: "2.0", ID: 1})

	if resp == nil {
		t.Fatal("handleToolsList returned nil")
	}
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}
	toolsList, ok := result["tools"].([]Tool)
	if !ok {
		t.Fatal("tools should be a slice of Tool")
	}
	if len(toolsList) != len(GetToolDefinitions()) {
		t.Errorf("Tool count: got %d, want %d", len(toolsList), len(GetToolDefinitions()))
	}
}
