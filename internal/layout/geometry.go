// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package layout estimates and renders the paginated ebook artifact. The
// estimator and the renderer share one geometric model so the orchestrator's
// page-count promises track the rendered output.
// Implements: prd002-layout (R1-R6).
package layout

import (
	"strings"

	"github.com/pdiddy/ebook-engine/internal/pdf"
	"github.com/pdiddy/ebook-engine/pkg/types"
)

// Page geometry in millimeters (A4). These constants are the single source
// of truth for both the estimator and the renderer.
const (
	pageWidth  = 210.0
	pageHeight = 297.0
	margin     = 20.0
	lineHeight = 7.0

	// headerFooterBand is reserved vertical space split between the header
	// and footer areas of each content page.
	headerFooterBand = 20.0

	usableWidth  = pageWidth - 2*margin
	usableHeight = pageHeight - 2*margin - headerFooterBand

	contentTop    = margin + headerFooterBand/2
	contentBottom = pageHeight - margin - headerFooterBand/2

	// headingAllowance is the vertical budget for a chapter heading.
	headingAllowance = 20.0

	// imageHeight is the 16:9 block for a full-content-width illustration.
	imageHeight = usableWidth * 9.0 / 16.0

	// paragraphGap and imageGap separate blocks vertically.
	paragraphGap = 5.0
	imageGap     = 10.0
)

// splitParagraphs splits plain-text content on blank-line boundaries,
// normalizes internal whitespace, and drops blank entries.
func splitParagraphs(content string) []string {
	var paras []string
	for _, block := range strings.Split(content, "\n\n") {
		p := strings.Join(strings.Fields(block), " ")
		if p != "" {
			paras = append(paras, p)
		}
	}
	return paras
}

// fontPreset maps a FontFamily to its body and bold faces.
func fontPreset(f types.FontFamily) (body, bold pdf.Font) {
	switch f {
	case types.FontSerif:
		return pdf.TimesRoman, pdf.TimesBold
	case types.FontMono:
		return pdf.Courier, pdf.CourierBold
	default:
		return pdf.Helvetica, pdf.HelveticaBold
	}
}

// parseColor parses a 6-hex-digit RGB string. Anything that does not parse
// falls back to black; a bad color must never fail a render.
func parseColor(s string) pdf.Color {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return pdf.Black
	}
	var channels [3]uint8
	for i := 0; i < 3; i++ {
		hi, ok1 := hexNibble(s[2*i])
		lo, ok2 := hexNibble(s[2*i+1])
		if !ok1 || !ok2 {
			return pdf.Black
		}
		channels[i] = hi<<4 | lo
	}
	return pdf.Color{R: channels[0], G: channels[1], B: channels[2]}
}

func hexNibble(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// wrapText greedily wraps s into lines no wider than width millimeters at
// the given font and size. Words wider than the line go on a line of their
// own rather than being split.
func wrapText(f pdf.Font, size float64, s string, width float64) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]
	for _, w := range words[1:] {
		candidate := current + " " + w
		if pdf.MeasureString(f, size, candidate) > width {
			lines = append(lines, current)
			current = w
			continue
		}
		current = candidate
	}
	return append(lines, current)
}
