// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/ebook-engine/pkg/types"
)

func TestReconstructOutline(t *testing.T) {
	chapters := []types.Chapter{
		{Title: "Commencer", Content: "..."},
		{Title: "Approfondir", Content: "..."},
	}
	outline := ReconstructOutline("Mon Guide", chapters)

	assert.Equal(t, "Mon Guide", outline.Title)
	assert.True(t, outline.Reconstructed)
	require.Len(t, outline.Chapters, 2)
	for i, plan := range outline.Chapters {
		assert.Equal(t, chapters[i].Title, plan.Title)
		assert.Empty(t, plan.Sections, "reconstructed plans carry no sections")
	}
}

func TestReconstructOutlineEmpty(t *testing.T) {
	outline := ReconstructOutline("Vide", nil)
	assert.True(t, outline.Reconstructed)
	assert.Empty(t, outline.Chapters)
}

func TestOutlineSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "outline.yaml")
	original := &types.Outline{
		Title: "Mon Guide",
		Chapters: []types.ChapterPlan{
			{Title: "Commencer", Sections: []string{"Pourquoi", "Comment"}},
			{Title: "Approfondir", Sections: []string{"Méthode", "Pratique"}},
		},
	}

	require.NoError(t, SaveOutline(path, original))
	loaded, err := LoadOutline(path)
	require.NoError(t, err)
	assert.Equal(t, original, loaded)
}

func TestLoadOutlineMissingFile(t *testing.T) {
	_, err := LoadOutline(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
