// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdf

// Font names one of the standard 14 Type1 fonts used by the writer. These
// fonts need no embedding; every conforming reader ships them, and their
// glyph widths are fixed by the Adobe AFM metrics reproduced below.
type Font string

const (
	Helvetica     Font = "Helvetica"
	HelveticaBold Font = "Helvetica-Bold"
	TimesRoman    Font = "Times-Roman"
	TimesBold     Font = "Times-Bold"
	Courier       Font = "Courier"
	CourierBold   Font = "Courier-Bold"
)

// Glyph widths in 1/1000 of the font size for characters 32..126, from the
// Adobe core font metrics.
var helveticaWidths = [95]int{
	278, 278, 355, 556, 556, 889, 667, 191, 333, 333, 389, 584, 278, 333, 278, 278,
	556, 556, 556, 556, 556, 556, 556, 556, 556, 556, 278, 278, 584, 584, 584, 556,
	1015, 667, 667, 722, 722, 667, 611, 778, 722, 278, 500, 667, 556, 833, 722, 778,
	667, 778, 722, 667, 611, 722, 667, 944, 667, 667, 611, 278, 278, 278, 469, 556,
	333, 556, 556, 500, 556, 556, 278, 556, 556, 222, 222, 500, 222, 833, 556, 556,
	556, 556, 333, 500, 278, 556, 500, 722, 500, 500, 500, 334, 260, 334, 584,
}

var helveticaBoldWidths = [95]int{
	278, 333, 474, 556, 556, 889, 722, 238, 333, 333, 389, 584, 278, 333, 278, 278,
	556, 556, 556, 556, 556, 556, 556, 556, 556, 556, 333, 333, 584, 584, 584, 611,
	975, 722, 722, 722, 722, 667, 611, 778, 722, 278, 556, 722, 611, 833, 722, 778,
	667, 778, 722, 667, 611, 722, 667, 944, 667, 667, 611, 333, 278, 333, 584, 556,
	333, 556, 611, 556, 611, 556, 333, 611, 611, 278, 278, 556, 278, 889, 611, 611,
	611, 611, 389, 556, 333, 611, 556, 778, 556, 556, 500, 389, 280, 389, 584,
}

var timesWidths = [95]int{
	250, 333, 408, 500, 500, 833, 778, 180, 333, 333, 500, 564, 250, 333, 250, 278,
	500, 500, 500, 500, 500, 500, 500, 500, 500, 500, 278, 278, 564, 564, 564, 444,
	921, 722, 667, 667, 722, 611, 556, 722, 722, 333, 389, 722, 611, 889, 722, 722,
	556, 722, 667, 556, 611, 722, 722, 944, 722, 722, 611, 333, 278, 333, 469, 500,
	333, 444, 500, 444, 500, 444, 333, 500, 500, 278, 278, 500, 278, 778, 500, 500,
	500, 500, 333, 389, 278, 500, 500, 722, 500, 500, 444, 480, 200, 480, 541,
}

var timesBoldWidths = [95]int{
	250, 333, 555, 500, 500, 1000, 833, 278, 333, 333, 500, 570, 250, 333, 250, 278,
	500, 500, 500, 500, 500, 500, 500, 500, 500, 500, 333, 333, 570, 570, 570, 500,
	930, 722, 667, 722, 722, 667, 611, 778, 778, 389, 500, 778, 667, 944, 722, 778,
	611, 778, 722, 556, 667, 722, 722, 1000, 722, 722, 667, 333, 278, 333, 581, 500,
	333, 500, 556, 444, 556, 444, 333, 500, 556, 278, 333, 556, 278, 833, 556, 500,
	556, 556, 444, 389, 333, 556, 500, 722, 500, 500, 444, 394, 220, 394, 520,
}

// widths returns the glyph width table and the fallback width used for
// characters outside the 32..126 range (accented Latin-1 letters and so on).
func (f Font) widths() (*[95]int, int) {
	switch f {
	case Helvetica:
		return &helveticaWidths, 556
	case HelveticaBold:
		return &helveticaBoldWidths, 611
	case TimesRoman:
		return &timesWidths, 500
	case TimesBold:
		return &timesBoldWidths, 556
	case Courier, CourierBold:
		return nil, 600
	}
	return &helveticaWidths, 556
}

// MeasureString returns the rendered width of s in millimeters for the given
// font and size in points.
func MeasureString(f Font, size float64, s string) float64 {
	table, fallback := f.widths()
	units := 0
	for _, r := range s {
		switch {
		case table == nil:
			units += fallback // fixed pitch
		case r >= 32 && r <= 126:
			units += table[r-32]
		default:
			units += fallback
		}
	}
	pts := float64(units) / 1000.0 * size
	return pts / ptPerMM
}
