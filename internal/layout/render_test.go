// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package layout

import (
	"bytes"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/ebook-engine/internal/pdf"
	"github.com/pdiddy/ebook-engine/pkg/types"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 16, 9))))
	return buf.Bytes()
}

func sampleChapters() []types.Chapter {
	para := strings.Repeat("Le texte continue avec des phrases complètes. ", 30)
	return []types.Chapter{
		{Title: "Commencer", Content: para + "\n\n" + para},
		{Title: "Approfondir", Content: para + "\n\n" + para + "\n\n" + para},
	}
}

func TestRenderStructure(t *testing.T) {
	opts := types.LayoutOptions{
		PrimaryColor:  "4F46E5",
		HeaderText:    "Mon ebook",
		FooterText:    "Tous droits réservés",
		NoCompression: true,
	}
	out, err := Render("La Productivité", sampleChapters(), opts)
	require.NoError(t, err)

	s := string(out)
	assert.True(t, strings.HasPrefix(s, "%PDF-"))
	assert.Contains(t, s, "Chapitre 1: Commencer")
	assert.Contains(t, s, "Chapitre 2: Approfondir")
	assert.Contains(t, s, "1. Commencer")
	assert.Contains(t, s, "Page 1 sur ")
	assert.Contains(t, s, "%%EOF")
}

func TestRenderPageCountCoversEstimate(t *testing.T) {
	chapters := sampleChapters()
	opts := types.LayoutOptions{}

	estimated := EstimatePageCount(chapters, opts)
	doc := build("La Productivité", chapters, opts)

	// The estimator must not overshoot reality by more than one page.
	assert.GreaterOrEqual(t, doc.PageCount(), estimated-1)
	// Title and TOC plus at least one page per chapter.
	assert.GreaterOrEqual(t, doc.PageCount(), 2+len(chapters))
}

func TestRenderChapterImagesAndChart(t *testing.T) {
	chapters := sampleChapters()
	chapters[0].Image = pngBytes(t)
	chapters[1].Chart = &types.Chart{
		Type:  types.ChartPie,
		Title: "Répartition du temps",
		Points: []types.ChartPoint{
			{Label: "Travail", Value: 60},
			{Label: "Repos", Value: 40},
		},
	}

	out, err := Render("Essai", chapters, types.LayoutOptions{NoCompression: true})
	require.NoError(t, err)

	s := string(out)
	assert.Contains(t, s, "/Subtype /Image")
	assert.Contains(t, s, "Travail: 60")
	assert.Contains(t, s, "Repos: 40")
}

func TestRenderCorruptImageSwallowed(t *testing.T) {
	chapters := sampleChapters()
	chapters[0].Image = []byte("definitely not an image")

	out, err := Render("Essai", chapters, types.LayoutOptions{NoCompression: true})
	require.NoError(t, err)
	assert.NotContains(t, string(out), "/Subtype /Image")
}

func TestRenderWatermark(t *testing.T) {
	out, err := Render("Essai", sampleChapters(), types.LayoutOptions{
		Watermark:     "BROUILLON",
		NoCompression: true,
	})
	require.NoError(t, err)

	s := string(out)
	assert.Contains(t, s, "BROUILLON")
	assert.Contains(t, s, "/ca 0.050")
}

func TestRenderCompressionShrinksOutput(t *testing.T) {
	chapters := sampleChapters()
	plain, err := Render("Essai", chapters, types.LayoutOptions{NoCompression: true})
	require.NoError(t, err)
	packed, err := Render("Essai", chapters, types.LayoutOptions{})
	require.NoError(t, err)
	assert.Less(t, len(packed), len(plain))
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want pdf.Color
	}{
		{"plain hex", "4F46E5", pdf.Color{R: 0x4f, G: 0x46, B: 0xe5}},
		{"hash prefix", "#ff8800", pdf.Color{R: 0xff, G: 0x88, B: 0x00}},
		{"too short", "fff", pdf.Black},
		{"garbage", "zzzzzz", pdf.Black},
		{"empty", "", pdf.Black},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseColor(tt.in))
		})
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText(pdf.Helvetica, 12, strings.Repeat("mot ", 100), usableWidth)
	assert.Greater(t, len(lines), 1)
	for _, line := range lines {
		assert.LessOrEqual(t, pdf.MeasureString(pdf.Helvetica, 12, line), usableWidth)
	}

	assert.Nil(t, wrapText(pdf.Helvetica, 12, "   ", usableWidth))

	// A word wider than the line stays on its own line instead of being cut.
	wide := strings.Repeat("x", 300)
	lines = wrapText(pdf.Helvetica, 12, "court "+wide, usableWidth)
	assert.Equal(t, []string{"court", wide}, lines)
}

func TestFontPreset(t *testing.T) {
	body, bold := fontPreset(types.FontSerif)
	assert.Equal(t, pdf.TimesRoman, body)
	assert.Equal(t, pdf.TimesBold, bold)

	body, bold = fontPreset(types.FontMono)
	assert.Equal(t, pdf.Courier, body)
	assert.Equal(t, pdf.CourierBold, bold)

	body, bold = fontPreset(types.FontSans)
	assert.Equal(t, pdf.Helvetica, body)
	assert.Equal(t, pdf.HelveticaBold, bold)

	// Unknown presets fall back to sans.
	body, _ = fontPreset(types.FontFamily("fantaisie"))
	assert.Equal(t, pdf.Helvetica, body)
}
