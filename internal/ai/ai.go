// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ai abstracts the generative backend: free-text completion,
// schema-shaped structured completion, and image generation. The pipeline
// depends on the Backend interface so tests supply a mock.
// Implements: prd001-orchestration R6.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Backend is the generation backend contract. All three calls are fallible,
// latency-bearing black boxes; the caller decides which failures are
// terminal and which degrade.
type Backend interface {
	// Text returns a free-text completion for the prompt.
	Text(ctx context.Context, prompt string) (string, error)

	// JSON requests a completion shaped like out and unmarshals into it.
	// A response that does not parse is a schema error.
	JSON(ctx context.Context, prompt string, out any) error

	// Image generates one raster image for the prompt and returns its
	// encoded bytes (PNG or JPEG).
	Image(ctx context.Context, prompt string) ([]byte, error)
}

// DecodeJSON strips the Markdown code fences models keep wrapping around
// JSON payloads and unmarshals the remainder into out.
func DecodeJSON(raw string, out any) error {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
		s = strings.TrimSpace(s)
	}
	// Some models prepend prose; recover by slicing at the first brace.
	if !strings.HasPrefix(s, "{") && !strings.HasPrefix(s, "[") {
		if i := strings.IndexAny(s, "{["); i >= 0 {
			s = s[i:]
		}
	}
	if err := json.Unmarshal([]byte(s), out); err != nil {
		return fmt.Errorf("parsing model response: %w", err)
	}
	return nil
}
