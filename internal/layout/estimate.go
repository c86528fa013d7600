// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package layout

import (
	"math"
	"unicode/utf8"

	"github.com/pdiddy/ebook-engine/pkg/types"
)

// charsPerUnitWidth is the empirical chars-per-millimeter heuristic that
// stands in for real text shaping in the estimator: a paragraph of length L
// occupies about ceil(L * 0.25 / usableWidth) wrapped lines.
const charsPerUnitWidth = 0.25

// EstimatePageCount predicts, without rendering, how many pages the given
// chapters occupy. The prediction is deterministic and monotonically
// non-decreasing in content length, so the orchestrator's enrichment loop
// converges; it approximates the renderer rather than matching it exactly.
//
// The model: two base pages (title and table of contents), then per chapter
// a heading allowance, a 16:9 image block when an image is present, a
// wrapped-line estimate per paragraph, and one extra page when chart data is
// attached. Per prd002-layout R1.
func EstimatePageCount(chapters []types.Chapter, opts types.LayoutOptions) int {
	_ = opts // the estimate depends on geometry only, kept for the caller contract

	pages := 2
	for _, ch := range chapters {
		offset := headingAllowance
		if len(ch.Image) > 0 {
			offset += imageHeight + imageGap
		}
		for _, para := range splitParagraphs(ch.Content) {
			length := float64(utf8.RuneCountInString(para))
			lines := math.Ceil(length * charsPerUnitWidth / usableWidth)
			offset += lines*lineHeight + paragraphGap
		}
		pages += int(math.Ceil(offset / usableHeight))
		if ch.Chart != nil {
			pages++
		}
	}
	return pages
}
