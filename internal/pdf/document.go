// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdf writes paginated PDF documents from scratch: a flat page tree,
// per-page content streams, standard-14 fonts, image XObjects, and the
// cross-reference table. The API works in millimeters with the origin at the
// top-left corner of the page; conversion to PDF user space (points, origin
// bottom-left) happens internally.
package pdf

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"math"
	"strings"
)

// ptPerMM converts millimeters to PDF points (1 pt = 1/72 inch).
const ptPerMM = 72.0 / 25.4

// Color is an opaque RGB color.
type Color struct {
	R, G, B uint8
}

// Black is the default text color.
var Black = Color{0, 0, 0}

// Options configures document serialization.
type Options struct {
	// Compress enables FlateDecode compression of content streams.
	Compress bool

	// Precision is the number of decimals written for content-stream
	// operands (default 2).
	Precision int
}

// Document is a PDF document under construction. Pages stay mutable until
// Bytes is called, so a finishing pass may stamp page numbers onto every
// page after the total count is known.
//
// A Document is not safe for concurrent use.
type Document struct {
	pageW, pageH float64 // millimeters
	compress     bool
	precision    int

	pages  []*Page
	fonts  []Font
	images []*Image
	alphas []float64
}

// Page is one page of the document. Drawing methods take millimeter
// coordinates with the origin at the top-left corner.
type Page struct {
	doc *Document
	cw  contentWriter
}

// New creates an empty document with the given page size in millimeters.
func New(widthMM, heightMM float64, opts Options) *Document {
	precision := opts.Precision
	if precision <= 0 {
		precision = 2
	}
	return &Document{
		pageW:     widthMM,
		pageH:     heightMM,
		compress:  opts.Compress,
		precision: precision,
	}
}

// AddPage appends a new blank page and returns it.
func (d *Document) AddPage() *Page {
	p := &Page{doc: d}
	p.cw.precision = d.precision
	d.pages = append(d.pages, p)
	return p
}

// PageCount returns the number of pages added so far.
func (d *Document) PageCount() int {
	return len(d.pages)
}

// Page returns page i (zero-based), or nil when out of range.
func (d *Document) Page(i int) *Page {
	if i < 0 || i >= len(d.pages) {
		return nil
	}
	return d.pages[i]
}

// Width returns the page width in millimeters.
func (d *Document) Width() float64 { return d.pageW }

// Height returns the page height in millimeters.
func (d *Document) Height() float64 { return d.pageH }

// fontRes registers f on first use and returns its resource name.
func (d *Document) fontRes(f Font) string {
	for i, have := range d.fonts {
		if have == f {
			return fmt.Sprintf("F%d", i+1)
		}
	}
	d.fonts = append(d.fonts, f)
	return fmt.Sprintf("F%d", len(d.fonts))
}

// imageRes registers img on first use and returns its resource name.
func (d *Document) imageRes(img *Image) string {
	for i, have := range d.images {
		if have == img {
			return fmt.Sprintf("Im%d", i+1)
		}
	}
	d.images = append(d.images, img)
	return fmt.Sprintf("Im%d", len(d.images))
}

// alphaRes registers a constant-alpha graphics state and returns its name.
func (d *Document) alphaRes(alpha float64) string {
	for i, have := range d.alphas {
		if have == alpha {
			return fmt.Sprintf("GS%d", i+1)
		}
	}
	d.alphas = append(d.alphas, alpha)
	return fmt.Sprintf("GS%d", len(d.alphas))
}

// DrawText paints s with its baseline at (x, y) millimeters from the
// top-left corner.
func (p *Page) DrawText(x, y float64, f Font, size float64, c Color, s string) {
	if s == "" {
		return
	}
	cw := &p.cw
	cw.beginText()
	cw.setFillRGB(channel(c.R), channel(c.G), channel(c.B))
	cw.setFont(p.doc.fontRes(f), size)
	cw.moveText(x*ptPerMM, (p.doc.pageH-y)*ptPerMM)
	cw.showText(s)
	cw.endText()
}

// DrawTextRotated paints s rotated counterclockwise by degrees around the
// baseline start (x, y), blended at the given alpha (0..1). The graphics
// state is saved and restored so the alpha never leaks into regular text.
func (p *Page) DrawTextRotated(x, y, degrees, alpha float64, f Font, size float64, c Color, s string) {
	if s == "" {
		return
	}
	rad := degrees * math.Pi / 180
	sin, cos := math.Sin(rad), math.Cos(rad)

	cw := &p.cw
	cw.save()
	if alpha < 1 {
		cw.setExtGState(p.doc.alphaRes(alpha))
	}
	cw.beginText()
	cw.setFillRGB(channel(c.R), channel(c.G), channel(c.B))
	cw.setFont(p.doc.fontRes(f), size)
	cw.setTextMatrix(cos, sin, -sin, cos, x*ptPerMM, (p.doc.pageH-y)*ptPerMM)
	cw.showText(s)
	cw.endText()
	cw.restore()
}

// DrawImage paints img scaled into a w×h millimeter box whose top-left
// corner is at (x, y).
func (p *Page) DrawImage(img *Image, x, y, w, h float64) {
	cw := &p.cw
	cw.save()
	cw.drawXObject(p.doc.imageRes(img), x*ptPerMM, (p.doc.pageH-y-h)*ptPerMM, w*ptPerMM, h*ptPerMM)
	cw.restore()
}

// TextWidth returns the width of s in millimeters at the given font and
// size, for layout decisions.
func (p *Page) TextWidth(f Font, size float64, s string) float64 {
	return MeasureString(f, size, s)
}

func channel(v uint8) float64 {
	return float64(v) / 255.0
}

// Bytes serializes the document: header, objects, cross-reference table,
// and trailer. Object layout: 1 catalog, 2 pages root, then alternating
// page and content-stream objects, then fonts, images, graphics states,
// and the info dictionary.
func (d *Document) Bytes() ([]byte, error) {
	if len(d.pages) == 0 {
		return nil, fmt.Errorf("document has no pages")
	}

	n := len(d.pages)
	pageRef := func(i int) int { return 3 + 2*i }
	contentRef := func(i int) int { return 4 + 2*i }
	fontBase := 3 + 2*n
	imageBase := fontBase + len(d.fonts)
	gsBase := imageBase + len(d.images)
	infoRef := gsBase + len(d.alphas)

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n")

	offsets := make([]int, infoRef+1)
	writeObj := func(num int, body string) {
		offsets[num] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", num, body)
	}

	// Catalog and pages root.
	writeObj(1, "<< /Type /Catalog /Pages 2 0 R >>")
	kids := make([]string, n)
	for i := range d.pages {
		kids[i] = fmt.Sprintf("%d 0 R", pageRef(i))
	}
	writeObj(2, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), n))

	resources := d.resourceDict(fontBase, imageBase, gsBase)
	mediaBox := fmt.Sprintf("[0 0 %.2f %.2f]", d.pageW*ptPerMM, d.pageH*ptPerMM)

	for i, page := range d.pages {
		writeObj(pageRef(i), fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox %s /Resources %s /Contents %d 0 R >>",
			mediaBox, resources, contentRef(i)))

		content := page.cw.buf.Bytes()
		filter := ""
		if d.compress {
			var zbuf bytes.Buffer
			zw := zlib.NewWriter(&zbuf)
			if _, err := zw.Write(content); err != nil {
				return nil, fmt.Errorf("compressing page %d: %w", i+1, err)
			}
			if err := zw.Close(); err != nil {
				return nil, fmt.Errorf("compressing page %d: %w", i+1, err)
			}
			content = zbuf.Bytes()
			filter = " /Filter /FlateDecode"
		}

		offsets[contentRef(i)] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n<< /Length %d%s >>\nstream\n", contentRef(i), len(content), filter)
		buf.Write(content)
		buf.WriteString("\nendstream\nendobj\n")
	}

	for i, f := range d.fonts {
		writeObj(fontBase+i, fmt.Sprintf(
			"<< /Type /Font /Subtype /Type1 /BaseFont /%s /Encoding /WinAnsiEncoding >>", f))
	}

	for i, img := range d.images {
		offsets[imageBase+i] = buf.Len()
		fmt.Fprintf(&buf,
			"%d 0 obj\n<< /Type /XObject /Subtype /Image /Width %d /Height %d /ColorSpace /%s /BitsPerComponent %d /Filter /%s /Length %d >>\nstream\n",
			imageBase+i, img.Width, img.Height, img.colorSpace, img.bits, img.filter, len(img.stream))
		buf.Write(img.stream)
		buf.WriteString("\nendstream\nendobj\n")
	}

	for i, alpha := range d.alphas {
		writeObj(gsBase+i, fmt.Sprintf(
			"<< /Type /ExtGState /ca %.3f /CA %.3f >>", alpha, alpha))
	}

	writeObj(infoRef, "<< /Producer (ebook-engine) >>")

	// Cross-reference table and trailer.
	xrefStart := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", infoRef+1)
	buf.WriteString("0000000000 65535 f \n")
	for num := 1; num <= infoRef; num++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[num])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R /Info %d 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		infoRef+1, infoRef, xrefStart)

	return buf.Bytes(), nil
}

func (d *Document) resourceDict(fontBase, imageBase, gsBase int) string {
	var b strings.Builder
	b.WriteString("<< /ProcSet [/PDF /Text /ImageB /ImageC]")
	if len(d.fonts) > 0 {
		b.WriteString(" /Font <<")
		for i := range d.fonts {
			fmt.Fprintf(&b, " /F%d %d 0 R", i+1, fontBase+i)
		}
		b.WriteString(" >>")
	}
	if len(d.images) > 0 {
		b.WriteString(" /XObject <<")
		for i := range d.images {
			fmt.Fprintf(&b, " /Im%d %d 0 R", i+1, imageBase+i)
		}
		b.WriteString(" >>")
	}
	if len(d.alphas) > 0 {
		b.WriteString(" /ExtGState <<")
		for i := range d.alphas {
			fmt.Fprintf(&b, " /GS%d %d 0 R", i+1, gsBase+i)
		}
		b.WriteString(" >>")
	}
	b.WriteString(" >>")
	return b.String()
}
