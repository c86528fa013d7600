// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package layout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/ebook-engine/pkg/types"
)

func chapterWithContent(n int) types.Chapter {
	return types.Chapter{
		Title:   "Essai",
		Content: strings.Repeat("mot ", n/4),
	}
}

func TestEstimateEmptyChapterList(t *testing.T) {
	// Title page plus table of contents, regardless of options.
	for _, opts := range []types.LayoutOptions{
		{},
		{PrimaryColor: "FF0000", Font: types.FontSerif, Watermark: "BROUILLON"},
		{Quality: types.QualityUltra, NoCompression: true},
	} {
		assert.Equal(t, 2, EstimatePageCount(nil, opts))
	}
}

func TestEstimateMonotonicInContentLength(t *testing.T) {
	opts := types.LayoutOptions{}
	prev := 0
	for _, size := range []int{0, 200, 2000, 8000, 15000, 40000} {
		got := EstimatePageCount([]types.Chapter{chapterWithContent(size)}, opts)
		assert.GreaterOrEqual(t, got, prev, "size %d", size)
		prev = got
	}
}

func TestEstimateMonotonicAcrossChapters(t *testing.T) {
	opts := types.LayoutOptions{}
	fixed := chapterWithContent(3000)
	smaller := EstimatePageCount([]types.Chapter{fixed, chapterWithContent(1000)}, opts)
	bigger := EstimatePageCount([]types.Chapter{fixed, chapterWithContent(9000)}, opts)
	assert.GreaterOrEqual(t, bigger, smaller)
}

func TestEstimateImageAddsSpace(t *testing.T) {
	opts := types.LayoutOptions{}
	bare := chapterWithContent(5000)
	illustrated := bare
	illustrated.Image = []byte{0xff, 0xd8, 0x01}

	assert.GreaterOrEqual(t,
		EstimatePageCount([]types.Chapter{illustrated}, opts),
		EstimatePageCount([]types.Chapter{bare}, opts))
}

func TestEstimateChartAddsExactlyOnePage(t *testing.T) {
	opts := types.LayoutOptions{}
	bare := chapterWithContent(6000)
	charted := bare
	charted.Chart = &types.Chart{
		Type:  types.ChartBar,
		Title: "Répartition",
		Points: []types.ChartPoint{
			{Label: "A", Value: 10},
			{Label: "B", Value: 32},
		},
	}

	assert.Equal(t,
		EstimatePageCount([]types.Chapter{bare}, opts)+1,
		EstimatePageCount([]types.Chapter{charted}, opts))
}

func TestEstimateDeterministic(t *testing.T) {
	opts := types.LayoutOptions{}
	chapters := []types.Chapter{chapterWithContent(4321), chapterWithContent(987)}
	first := EstimatePageCount(chapters, opts)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, EstimatePageCount(chapters, opts))
	}
}

func TestSplitParagraphs(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{"empty", "", nil},
		{"single", "un paragraphe", []string{"un paragraphe"}},
		{"two", "premier\n\nsecond", []string{"premier", "second"}},
		{"blank entries skipped", "premier\n\n   \n\nsecond", []string{"premier", "second"}},
		{"inner newlines collapsed", "ligne un\nligne deux\n\nsuite", []string{"ligne un ligne deux", "suite"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitParagraphs(tt.content))
		})
	}
}
