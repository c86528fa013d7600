// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdf

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeasureString(t *testing.T) {
	short := MeasureString(Helvetica, 12, "hi")
	long := MeasureString(Helvetica, 12, "hi there, a much longer line")
	assert.Greater(t, long, short, "longer strings must measure wider")

	// Fixed-pitch fonts measure by character count alone.
	a := MeasureString(Courier, 10, "iiii")
	b := MeasureString(Courier, 10, "MMMM")
	assert.InDelta(t, a, b, 1e-9)

	assert.Zero(t, MeasureString(TimesRoman, 12, ""))
}

func TestMeasureStringGrowsWithSize(t *testing.T) {
	small := MeasureString(TimesBold, 10, "Chapitre")
	big := MeasureString(TimesBold, 20, "Chapitre")
	assert.InDelta(t, small*2, big, 1e-9)
}

func TestEscapeString(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello", "hello"},
		{"parens", "a(b)c", `a\(b\)c`},
		{"backslash", `a\b`, `a\\b`},
		{"latin1 passthrough", "résumé", "r\xe9sum\xe9"},
		{"euro", "9€", "9\x80"},
		{"unmappable", "世", "?"},
		{"control", "a\nb", "a b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, escapeString(tt.in))
		})
	}
}

func TestDocumentBytes(t *testing.T) {
	doc := New(210, 297, Options{})
	p1 := doc.AddPage()
	p1.DrawText(20, 40, HelveticaBold, 22, Color{31, 41, 55}, "Titre")
	p2 := doc.AddPage()
	p2.DrawText(20, 40, Helvetica, 12, Black, "Page 2 sur 2")

	out, err := doc.Bytes()
	require.NoError(t, err)

	s := string(out)
	assert.True(t, strings.HasPrefix(s, "%PDF-1.4"))
	assert.Contains(t, s, "/Type /Catalog")
	assert.Contains(t, s, "/Count 2")
	assert.Equal(t, 2, strings.Count(s, "/Type /Page "))
	assert.Contains(t, s, "/BaseFont /Helvetica-Bold")
	assert.Contains(t, s, "startxref")
	assert.True(t, strings.HasSuffix(s, "%%EOF\n"))
}

func TestDocumentBytesEmpty(t *testing.T) {
	doc := New(210, 297, Options{})
	_, err := doc.Bytes()
	assert.Error(t, err)
}

func TestDocumentCompression(t *testing.T) {
	build := func(compress bool) []byte {
		doc := New(210, 297, Options{Compress: compress})
		pg := doc.AddPage()
		pg.DrawText(20, 40, Helvetica, 12, Black, "corps du texte")
		out, err := doc.Bytes()
		require.NoError(t, err)
		return out
	}

	raw := build(false)
	assert.Contains(t, string(raw), "BT", "uncompressed stream keeps operators readable")
	assert.NotContains(t, string(raw), "/Filter /FlateDecode")

	packed := build(true)
	assert.Contains(t, string(packed), "/Filter /FlateDecode")
}

func TestDocumentWatermarkState(t *testing.T) {
	doc := New(210, 297, Options{})
	pg := doc.AddPage()
	pg.DrawTextRotated(60, 200, 45, 0.05, Helvetica, 50, Black, "CONFIDENTIEL")
	out, err := doc.Bytes()
	require.NoError(t, err)

	s := string(out)
	assert.Contains(t, s, "/ExtGState")
	assert.Contains(t, s, "/ca 0.050")
	assert.Contains(t, s, "/GS1 gs")
}

func TestDecodeImagePNG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	decoded, err := DecodeImage(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 4, decoded.Width)
	assert.Equal(t, 3, decoded.Height)
	assert.Equal(t, "FlateDecode", decoded.filter)
	assert.Equal(t, "DeviceRGB", decoded.colorSpace)
}

func TestDecodeImageJPEG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))

	decoded, err := DecodeImage(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 8, decoded.Width)
	assert.Equal(t, "DCTDecode", decoded.filter)
}

func TestDecodeImageCorrupt(t *testing.T) {
	_, err := DecodeImage([]byte("not an image"))
	assert.Error(t, err)

	_, err = DecodeImage([]byte{0x89, 'P', 'N', 'G', 0x00})
	assert.Error(t, err)
}

func TestDocumentImageEmbedding(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	decoded, err := DecodeImage(buf.Bytes())
	require.NoError(t, err)

	doc := New(210, 297, Options{})
	pg := doc.AddPage()
	pg.DrawImage(decoded, 20, 30, 170, 95.6)
	out, err := doc.Bytes()
	require.NoError(t, err)

	s := string(out)
	assert.Contains(t, s, "/Subtype /Image")
	assert.Contains(t, s, "/Im1 Do")
}
