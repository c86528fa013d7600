// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdf

import (
	"bytes"
	"strconv"
	"strings"
)

// contentWriter accumulates PDF content-stream operators for one page.
// Operands are written in PDF user space (points, origin bottom-left);
// coordinate conversion happens in the Page methods.
//
// Reference: PDF 1.7 specification, section 8.2 (content streams).
type contentWriter struct {
	buf       bytes.Buffer
	precision int
}

func (cw *contentWriter) num(v float64) string {
	s := strconv.FormatFloat(v, 'f', cw.precision, 64)
	// Trim trailing zeros to keep streams small.
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	return s
}

func (cw *contentWriter) op(operator string, operands ...float64) {
	for _, v := range operands {
		cw.buf.WriteString(cw.num(v))
		cw.buf.WriteByte(' ')
	}
	cw.buf.WriteString(operator)
	cw.buf.WriteByte('\n')
}

func (cw *contentWriter) raw(s string) {
	cw.buf.WriteString(s)
	cw.buf.WriteByte('\n')
}

// beginText / endText bracket a text object (BT/ET).
func (cw *contentWriter) beginText() { cw.op("BT") }
func (cw *contentWriter) endText()   { cw.op("ET") }

// setFont selects a font resource at the given size (Tf).
func (cw *contentWriter) setFont(resource string, size float64) {
	cw.raw("/" + resource + " " + cw.num(size) + " Tf")
}

// setTextMatrix sets the full text matrix (Tm), used for rotated text.
func (cw *contentWriter) setTextMatrix(a, b, c, d, e, f float64) {
	cw.op("Tm", a, b, c, d, e, f)
}

// moveText positions the text cursor (Td).
func (cw *contentWriter) moveText(x, y float64) { cw.op("Td", x, y) }

// showText paints a string (Tj) with WinAnsi escaping.
func (cw *contentWriter) showText(s string) {
	cw.raw("(" + escapeString(s) + ") Tj")
}

// setFillRGB sets the nonstroking color (rg), channels in 0..1.
func (cw *contentWriter) setFillRGB(r, g, b float64) { cw.op("rg", r, g, b) }

// save/restore bracket graphics state changes (q/Q).
func (cw *contentWriter) save()    { cw.op("q") }
func (cw *contentWriter) restore() { cw.op("Q") }

// setExtGState applies a named graphics state (gs), used for alpha.
func (cw *contentWriter) setExtGState(resource string) {
	cw.raw("/" + resource + " gs")
}

// drawXObject paints an image XObject scaled into a w×h box at (x, y)
// via the current transformation matrix (cm + Do).
func (cw *contentWriter) drawXObject(resource string, x, y, w, h float64) {
	cw.op("cm", w, 0, 0, h, x, y)
	cw.raw("/" + resource + " Do")
}

// escapeString escapes a string for a PDF literal and encodes runes to
// WinAnsi single bytes. Latin-1 runes map directly; a few common Unicode
// punctuation marks use their WinAnsi slots; everything else degrades to
// a question mark.
func escapeString(s string) string {
	var b strings.Builder
	for _, r := range s {
		var c byte
		switch {
		case r == '\\' || r == '(' || r == ')':
			b.WriteByte('\\')
			c = byte(r)
		case r < 32:
			c = ' '
		case r <= 255:
			c = byte(r)
		default:
			c = winAnsiSlot(r)
		}
		b.WriteByte(c)
	}
	return b.String()
}

// winAnsiSlot maps the Unicode punctuation that models emit most often to
// WinAnsi code points.
func winAnsiSlot(r rune) byte {
	switch r {
	case '€': // euro sign
		return 0x80
	case '‘':
		return 0x91
	case '’':
		return 0x92
	case '“':
		return 0x93
	case '”':
		return 0x94
	case '–':
		return 0x96
	case '—':
		return 0x97
	case '…':
		return 0x85
	}
	return '?'
}
