// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdf

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"image/color"
	"image/jpeg"
	"image/png"
)

// Image is a decoded raster image ready for embedding as an XObject.
// JPEG data passes through untouched under DCTDecode; PNG data is decoded,
// flattened over white, and re-encoded as zlib-compressed raw RGB.
type Image struct {
	// Width and Height are the pixel dimensions.
	Width, Height int

	stream     []byte
	filter     string
	colorSpace string
	bits       int
}

var (
	jpegMagic = []byte{0xff, 0xd8}
	pngMagic  = []byte{0x89, 'P', 'N', 'G'}
)

// DecodeImage prepares encoded PNG or JPEG bytes for embedding. Corrupt or
// unsupported data returns an error; callers treat image embedding as
// best-effort and skip the image on failure.
func DecodeImage(data []byte) (*Image, error) {
	switch {
	case bytes.HasPrefix(data, jpegMagic):
		return decodeJPEG(data)
	case bytes.HasPrefix(data, pngMagic):
		return decodePNG(data)
	}
	return nil, fmt.Errorf("unsupported image format")
}

func decodeJPEG(data []byte) (*Image, error) {
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("reading jpeg header: %w", err)
	}

	cs := "DeviceRGB"
	if cfg.ColorModel == color.GrayModel {
		cs = "DeviceGray"
	}

	return &Image{
		Width:      cfg.Width,
		Height:     cfg.Height,
		stream:     data,
		filter:     "DCTDecode",
		colorSpace: cs,
		bits:       8,
	}, nil
}

func decodePNG(data []byte) (*Image, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding png: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	// Flatten to RGB over a white background; PDF image XObjects carry no
	// alpha channel in this writer.
	raw := make([]byte, 0, w*h*3)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			raw = append(raw, flatten(r, a), flatten(g, a), flatten(b, a))
		}
	}

	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(raw); err != nil {
		return nil, fmt.Errorf("compressing image data: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("compressing image data: %w", err)
	}

	return &Image{
		Width:      w,
		Height:     h,
		stream:     buf.Bytes(),
		filter:     "FlateDecode",
		colorSpace: "DeviceRGB",
		bits:       8,
	}, nil
}

// flatten composites one 16-bit premultiplied channel over white and
// reduces it to 8 bits.
func flatten(c, a uint32) byte {
	white := 0xffff - a
	return byte((c + white) >> 8)
}
