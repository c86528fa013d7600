// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package layout

import (
	"fmt"
	"strconv"

	"github.com/pdiddy/ebook-engine/internal/pdf"
	"github.com/pdiddy/ebook-engine/pkg/types"
)

const (
	titleSize       = 28.0
	tocHeadingSize  = 20.0
	headingSize     = 18.0
	bodySize        = 12.0
	chartTitleSize  = 14.0
	headerSize      = 9.0
	footerSize      = 9.0
	pageNumberSize  = 9.0
	watermarkSize   = 60.0
	watermarkAlpha  = 0.05
	attributionLine = "Créé avec ebook-engine"
	tocHeading      = "Table des matières"
)

// renderer carries the mutable layout state for one render call. Rendering
// is a pure, local operation: no external call can fail mid-render, and
// per-image embedding failures are swallowed.
type renderer struct {
	doc   *pdf.Document
	page  *pdf.Page
	y     float64
	opts  types.LayoutOptions
	color pdf.Color
	body  pdf.Font
	bold  pdf.Font
}

// Render lays the title page, table of contents, and chapters out into a
// fixed-size paginated document and serializes it. Per prd002-layout R2-R6
// and prd003-artifact R1.
func Render(title string, chapters []types.Chapter, opts types.LayoutOptions) ([]byte, error) {
	doc := build(title, chapters, opts)
	return doc.Bytes()
}

// build runs the two layout passes and returns the finished document; split
// from Render so tests can inspect the page count before serialization.
func build(title string, chapters []types.Chapter, opts types.LayoutOptions) *pdf.Document {
	body, bold := fontPreset(opts.Font)
	r := &renderer{
		doc: pdf.New(pageWidth, pageHeight, pdf.Options{
			Compress:  !opts.NoCompression,
			Precision: precisionFor(opts.Quality),
		}),
		opts:  opts,
		color: parseColor(opts.PrimaryColor),
		body:  body,
		bold:  bold,
	}

	r.titlePage(title)
	r.tableOfContents(chapters)
	for i, ch := range chapters {
		r.chapter(i, ch)
	}
	r.stampPageNumbers()
	return r.doc
}

// precisionFor maps the quality tier to content-stream numeric precision.
func precisionFor(q types.QualityTier) int {
	switch q {
	case types.QualityUltra:
		return 4
	case types.QualityHigh:
		return 3
	default:
		return 2
	}
}

// titlePage renders the logo, the wrapped and vertically centered title in
// the primary color, and the attribution line. The title page carries no
// header, footer, or watermark.
func (r *renderer) titlePage(title string) {
	page := r.doc.AddPage()

	if len(r.opts.Logo) > 0 {
		if img, err := pdf.DecodeImage(r.opts.Logo); err == nil {
			const logoWidth = 40.0
			h := logoWidth * float64(img.Height) / float64(img.Width)
			page.DrawImage(img, (pageWidth-logoWidth)/2, 30, logoWidth, h)
		}
	}

	lines := wrapText(r.bold, titleSize, title, usableWidth)
	const titleLeading = 12.0
	y := (pageHeight-float64(len(lines))*titleLeading)/2 + titleLeading
	for _, line := range lines {
		r.centeredText(page, y, r.bold, titleSize, r.color, line)
		y += titleLeading
	}

	r.centeredText(page, pageHeight-25, r.body, 10, pdf.Color{R: 120, G: 120, B: 120}, attributionLine)
}

// tableOfContents renders one line per chapter in order, spilling onto a
// further page when the chapter list outgrows one.
func (r *renderer) tableOfContents(chapters []types.Chapter) {
	r.newContentPage()
	r.page.DrawText(margin, r.y+8, r.bold, tocHeadingSize, r.color, tocHeading)
	r.y += headingAllowance

	for i, ch := range chapters {
		if r.y+lineHeight > contentBottom {
			r.newContentPage()
		}
		r.page.DrawText(margin, r.y+5, r.body, bodySize, pdf.Black,
			fmt.Sprintf("%d. %s", i+1, ch.Title))
		r.y += lineHeight + 1
	}
}

// chapter renders one chapter starting on a fresh page: heading, optional
// image, paragraphs with page-break-and-continue, optional chart block.
func (r *renderer) chapter(index int, ch types.Chapter) {
	r.newContentPage()

	heading := fmt.Sprintf("Chapitre %d: %s", index+1, ch.Title)
	for _, line := range wrapText(r.bold, headingSize, heading, usableWidth) {
		r.page.DrawText(margin, r.y+7, r.bold, headingSize, r.color, line)
		r.y += 9
	}
	r.y += headingAllowance - 9 // pad the last heading line to the full allowance

	if len(ch.Image) > 0 {
		r.chapterImage(ch.Image)
	}

	for _, para := range splitParagraphs(ch.Content) {
		r.paragraph(para)
	}

	if ch.Chart != nil {
		r.chart(ch.Chart)
	}
}

// chapterImage embeds the illustration at full content width and 16:9
// aspect, breaking to a new page first when it would overflow the current
// one. Malformed image data is skipped, never fatal.
func (r *renderer) chapterImage(data []byte) {
	img, err := pdf.DecodeImage(data)
	if err != nil {
		return
	}
	if r.y+imageHeight > contentBottom {
		r.newContentPage()
	}
	r.page.DrawImage(img, margin, r.y, usableWidth, imageHeight)
	r.y += imageHeight + imageGap
}

// paragraph word-wraps one paragraph, breaking to a new page whenever the
// next line would cross the bottom margin; the paragraph flow continues on
// the new page after the header and footer are re-applied.
func (r *renderer) paragraph(text string) {
	for _, line := range wrapText(r.body, bodySize, text, usableWidth) {
		if r.y+lineHeight > contentBottom {
			r.newContentPage()
		}
		r.page.DrawText(margin, r.y+5, r.body, bodySize, pdf.Black, line)
		r.y += lineHeight
	}
	r.y += paragraphGap
}

// chart renders the text-only chart block: title plus one "label: value"
// line per data point, breaking first when the block does not fit.
func (r *renderer) chart(c *types.Chart) {
	needed := headingAllowance/2 + float64(len(c.Points))*lineHeight
	if r.y+needed > contentBottom {
		r.newContentPage()
	}

	r.page.DrawText(margin, r.y+6, r.bold, chartTitleSize, r.color, c.Title)
	r.y += headingAllowance / 2

	for _, pt := range c.Points {
		if r.y+lineHeight > contentBottom {
			r.newContentPage()
		}
		line := pt.Label + ": " + strconv.FormatFloat(pt.Value, 'f', -1, 64)
		r.page.DrawText(margin+5, r.y+5, r.body, bodySize, pdf.Black, line)
		r.y += lineHeight
	}
	r.y += paragraphGap
}

// newContentPage starts a fresh page, applies the header, footer, and
// watermark, and resets the vertical cursor to the top of the content area.
func (r *renderer) newContentPage() {
	r.page = r.doc.AddPage()
	r.y = contentTop

	if r.opts.HeaderText != "" {
		r.centeredText(r.page, 13, r.body, headerSize, pdf.Black, r.opts.HeaderText)
	}
	if r.opts.FooterText != "" {
		r.centeredText(r.page, pageHeight-13, r.body, footerSize, pdf.Black, r.opts.FooterText)
	}
	if r.opts.Watermark != "" {
		r.watermark()
	}
}

// watermark stamps the configured text diagonally across the page center at
// very low opacity, in a saved graphics state so the alpha and size never
// leak into normal text.
func (r *renderer) watermark() {
	const cos45 = 0.7071067811865476
	w := pdf.MeasureString(r.bold, watermarkSize, r.opts.Watermark)
	x := pageWidth/2 - w/2*cos45
	y := pageHeight/2 + w/2*cos45
	r.page.DrawTextRotated(x, y, 45, watermarkAlpha, r.bold, watermarkSize, pdf.Black, r.opts.Watermark)
}

// stampPageNumbers revisits every page once the total is known and stamps
// the "Page n sur N" line; totals cannot be computed during the forward
// pass. Per prd002-layout R6.
func (r *renderer) stampPageNumbers() {
	total := r.doc.PageCount()
	for i := 0; i < total; i++ {
		page := r.doc.Page(i)
		label := fmt.Sprintf("Page %d sur %d", i+1, total)
		r.centeredText(page, pageHeight-7, r.body, pageNumberSize, pdf.Black, label)
	}
}

// centeredText draws s horizontally centered at baseline y.
func (r *renderer) centeredText(page *pdf.Page, y float64, f pdf.Font, size float64, c pdf.Color, s string) {
	w := pdf.MeasureString(f, size, s)
	page.DrawText((pageWidth-w)/2, y, f, size, c, s)
}
