// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// FontFamily selects a typeface preset for the rendered artifact.
// Per prd002-layout R5.2.
type FontFamily string

const (
	FontSerif FontFamily = "serif"
	FontSans  FontFamily = "sans"
	FontMono  FontFamily = "mono"
)

// QualityTier maps to rendering precision and compression intent.
// Per prd002-layout R5.4.
type QualityTier string

const (
	QualityStandard QualityTier = "standard"
	QualityHigh     QualityTier = "high"
	QualityUltra    QualityTier = "ultra"
)

// LayoutOptions is the pure configuration consumed by the estimator and the
// renderer. Per prd002-layout R5.1-R5.5.
type LayoutOptions struct {
	// PrimaryColor is a 6-hex-digit RGB string (e.g. "4F46E5") used for the
	// title and chapter headings. A value that does not parse falls back to
	// black; it never fails a render.
	PrimaryColor string `json:"primary_color" yaml:"primary_color"`

	// Font selects the typeface preset: serif, sans, or mono.
	Font FontFamily `json:"font" yaml:"font"`

	// HeaderText is centered at the top of every content page (optional).
	HeaderText string `json:"header_text,omitempty" yaml:"header_text,omitempty"`

	// FooterText is centered at the bottom of every content page (optional).
	FooterText string `json:"footer_text,omitempty" yaml:"footer_text,omitempty"`

	// Logo is an optional encoded raster image placed on the title page.
	Logo []byte `json:"logo,omitempty" yaml:"logo,omitempty"`

	// Watermark, when non-empty, is stamped diagonally at very low opacity
	// across every content page.
	Watermark string `json:"watermark,omitempty" yaml:"watermark,omitempty"`

	// Quality selects the rendering precision tier: standard, high, ultra.
	Quality QualityTier `json:"quality" yaml:"quality"`

	// NoCompression disables stream compression in the artifact, producing
	// larger lossless output.
	NoCompression bool `json:"no_compression,omitempty" yaml:"no_compression,omitempty"`
}
