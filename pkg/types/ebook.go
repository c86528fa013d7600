// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the plain data structures shared across the ebook
// pipeline: outline, chapters, layout options, and configuration.
package types

// ChapterPlan describes one planned chapter in an outline.
// Per prd001-orchestration R1.2.
type ChapterPlan struct {
	// Title is the chapter heading.
	Title string `json:"title" yaml:"title"`

	// Sections lists the planned section titles in order. The generation
	// prompt asks for at least five; the data model does not enforce a
	// minimum. Reconstructed outlines carry empty section lists.
	Sections []string `json:"sections" yaml:"sections"`
}

// Outline is the hierarchical plan produced before any chapter prose exists.
// Per prd001-orchestration R1.1-R1.3.
type Outline struct {
	// Title is the ebook's working title.
	Title string `json:"title" yaml:"title"`

	// Chapters lists the planned chapters in order. A valid outline has at
	// least one chapter.
	Chapters []ChapterPlan `json:"chapters" yaml:"chapters"`

	// Reconstructed marks an outline synthesized from a saved chapter list
	// rather than freshly generated. Reconstructed outlines have no
	// section-level detail; downstream code must not assume section titles
	// are present. Per prd004-history R3.2.
	Reconstructed bool `json:"reconstructed,omitempty" yaml:"reconstructed,omitempty"`
}

// ChartType classifies a chapter's chart data.
type ChartType string

const (
	ChartBar  ChartType = "bar"
	ChartLine ChartType = "line"
	ChartPie  ChartType = "pie"
)

// ChartPoint is a single labeled value in a chart.
type ChartPoint struct {
	// Label names the data point.
	Label string `json:"label" yaml:"label"`

	// Value is the data point's magnitude.
	Value float64 `json:"value" yaml:"value"`
}

// Chart holds optional chart data attached to a chapter. The renderer emits
// a text-only representation (title plus one "label: value" line per point).
// Per prd002-layout R4.4.
type Chart struct {
	// Type is the chart kind: bar, line, or pie.
	Type ChartType `json:"type" yaml:"type"`

	// Title is the chart heading.
	Title string `json:"title" yaml:"title"`

	// Points lists the chart's data points in order.
	Points []ChartPoint `json:"points" yaml:"points"`
}

// Chapter is one content unit of the ebook. Chapters are created
// incrementally by the orchestrator and are individually mutable afterwards:
// refinement replaces Content wholesale, FAQ insertion appends to it, and
// Image is set once at creation. Per prd001-orchestration R2.
type Chapter struct {
	// Title is the chapter heading.
	Title string `json:"title" yaml:"title"`

	// Content is the plain-text body. Paragraphs are separated by a blank
	// line.
	Content string `json:"content" yaml:"content"`

	// Image is an optional encoded raster image (PNG or JPEG bytes),
	// nil when the chapter has no illustration.
	Image []byte `json:"image,omitempty" yaml:"image,omitempty"`

	// Chart is optional chart data, nil when absent.
	Chart *Chart `json:"chart,omitempty" yaml:"chart,omitempty"`
}

// EbookType selects the editorial angle requested from the generation
// backend.
type EbookType string

const (
	TypeGuide  EbookType = "guide"
	TypeCourse EbookType = "course"
	TypeStory  EbookType = "story"
	TypeReport EbookType = "report"
)

// RefineAction identifies a per-chapter content transformation.
// Per prd001-orchestration R5.1.
type RefineAction string

const (
	ActionRewrite      RefineAction = "rewrite"
	ActionSimplify     RefineAction = "simplify"
	ActionEnrich       RefineAction = "enrich"
	ActionFormal       RefineAction = "formal"
	ActionStorytelling RefineAction = "storytelling"
)

// ValidRefineAction reports whether a is one of the supported actions.
func ValidRefineAction(a RefineAction) bool {
	switch a {
	case ActionRewrite, ActionSimplify, ActionEnrich, ActionFormal, ActionStorytelling:
		return true
	}
	return false
}

// MarketingBundle is the side payload produced after chapter generation.
// It never participates in layout; the caller displays or stores it.
// Per prd005-marketing R1.
type MarketingBundle struct {
	// Description is a short back-cover style description.
	Description string `json:"description" yaml:"description"`

	// Keywords lists discovery keywords.
	Keywords []string `json:"keywords" yaml:"keywords"`

	// SalesCopy is long-form promotional copy.
	SalesCopy string `json:"sales_copy" yaml:"sales_copy"`

	// LaunchEmail is a ready-to-send launch announcement.
	LaunchEmail string `json:"launch_email" yaml:"launch_email"`

	// SuggestedPrice is a price suggestion with currency (e.g. "19,90 €").
	SuggestedPrice string `json:"suggested_price" yaml:"suggested_price"`
}

// Progress is emitted after each completed chapter and once at pipeline end.
// Per prd001-orchestration R4.2.
type Progress struct {
	// Chapters is the cumulative chapter list so far. Callers must treat it
	// as read-only while the pipeline runs.
	Chapters []Chapter

	// EstimatedPages is the running page-count estimate for Chapters.
	EstimatedPages int

	// Done is true on the final event, after the last chapter.
	Done bool
}
