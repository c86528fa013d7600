// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/ebook-engine/pkg/types"
)

// ReconstructOutline rebuilds an outline from a saved chapter list, for
// sessions reloaded from history. The section plans are empty placeholders:
// a reconstructed outline is a distinct variant from a freshly generated
// one, and downstream code must not assume it carries section titles.
// Per prd004-history R3.2.
func ReconstructOutline(title string, chapters []types.Chapter) *types.Outline {
	outline := &types.Outline{Title: title, Reconstructed: true}
	for _, ch := range chapters {
		outline.Chapters = append(outline.Chapters, types.ChapterPlan{Title: ch.Title})
	}
	return outline
}

// SaveOutline writes an outline to a YAML file.
func SaveOutline(path string, outline *types.Outline) error {
	data, err := yaml.Marshal(outline)
	if err != nil {
		return fmt.Errorf("marshaling outline: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing outline: %w", err)
	}
	return nil
}

// LoadOutline reads an outline from a YAML file.
func LoadOutline(path string) (*types.Outline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading outline: %w", err)
	}
	var outline types.Outline
	if err := yaml.Unmarshal(data, &outline); err != nil {
		return nil, fmt.Errorf("parsing outline: %w", err)
	}
	return &outline, nil
}
