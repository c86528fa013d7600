// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package generate drives the content pipeline: outline, sequential chapter
// prose with an estimate-driven enrichment loop, periodic illustrations,
// progress reporting, and the post-hoc per-chapter operations.
// Implements: prd001-orchestration (R1-R6).
package generate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/ebook-engine/internal/ai"
	"github.com/pdiddy/ebook-engine/internal/layout"
	"github.com/pdiddy/ebook-engine/pkg/types"
)

// Target page bounds accepted by the pipeline.
const (
	MinTargetPages = 10
	MaxTargetPages = 200
)

// Validation errors, raised before any backend call is made.
var (
	ErrEmptyTopic       = errors.New("topic is required")
	ErrInvalidPageCount = fmt.Errorf("target page count must be between %d and %d", MinTargetPages, MaxTargetPages)
)

// Request describes one ebook generation run.
type Request struct {
	// Topic is the subject the ebook covers.
	Topic string

	// Type selects the editorial angle (guide, course, story, report).
	Type types.EbookType

	// TargetPages is the page-count goal in [MinTargetPages, MaxTargetPages].
	TargetPages int

	// Prototype selects the fast low-fidelity profile: 2 chapters, short
	// word budgets, no enrichment, an image on every chapter.
	Prototype bool
}

// Pipeline orchestrates generation against a backend. It is stateless
// between calls: chapters are returned to the caller, never retained.
type Pipeline struct {
	backend ai.Backend
	cfg     types.GenerationConfig
}

// New builds a pipeline, applying configuration defaults.
func New(backend ai.Backend, cfg types.GenerationConfig) (*Pipeline, error) {
	if backend == nil {
		return nil, errors.New("generation backend is required")
	}
	if cfg.WordsPerPage <= 0 {
		cfg.WordsPerPage = 450
	}
	if cfg.PrototypeChapters <= 0 {
		cfg.PrototypeChapters = 2
	}
	if cfg.PrototypeWords <= 0 {
		cfg.PrototypeWords = 300
	}
	if cfg.EnrichmentCeiling <= 0 {
		cfg.EnrichmentCeiling = 15000
	}
	if cfg.MaxEnrichmentRounds <= 0 {
		cfg.MaxEnrichmentRounds = 6
	}
	return &Pipeline{backend: backend, cfg: cfg}, nil
}

// outlineSchema is the JSON shape requested from the backend.
type outlineSchema struct {
	Title    string `json:"title"`
	Chapters []struct {
		Title    string   `json:"title"`
		Sections []string `json:"sections"`
	} `json:"chapters"`
}

// Generate runs the full pipeline and returns the finished chapters and the
// outline they follow. Chapters are generated strictly in order: each
// enrichment decision depends on the cumulative estimate over all prior
// chapters, and progress must reach the caller deterministically.
//
// On a terminal error the chapters produced so far are still returned so
// the caller can inspect or recover them.
func (p *Pipeline) Generate(ctx context.Context, req Request, onProgress func(types.Progress)) ([]types.Chapter, *types.Outline, error) {
	if strings.TrimSpace(req.Topic) == "" {
		return nil, nil, ErrEmptyTopic
	}
	if req.TargetPages < MinTargetPages || req.TargetPages > MaxTargetPages {
		return nil, nil, ErrInvalidPageCount
	}

	outline, err := p.outline(ctx, req)
	if err != nil {
		// Outline failures are terminal and not retried.
		return nil, nil, err
	}

	pagesPerChapter := ceilDiv(req.TargetPages, len(outline.Chapters))

	var chapters []types.Chapter
	for i, plan := range outline.Chapters {
		if err := ctx.Err(); err != nil {
			return chapters, outline, err
		}

		ch, err := p.chapter(ctx, req, outline, plan, i, pagesPerChapter, chapters)
		if err != nil {
			return chapters, outline, err
		}

		// Illustration cadence: every chapter in prototype mode, every
		// third otherwise. Failures are swallowed; the chapter proceeds
		// without an image.
		if i%p.imageInterval(req) == 0 {
			if img, imgErr := p.backend.Image(ctx, imagePrompt(req.Topic, plan.Title)); imgErr == nil {
				ch.Image = img
			}
		}

		chapters = append(chapters, ch)
		if onProgress != nil {
			onProgress(types.Progress{
				Chapters:       chapters,
				EstimatedPages: layout.EstimatePageCount(chapters, types.LayoutOptions{}),
			})
		}
	}

	if onProgress != nil {
		onProgress(types.Progress{
			Chapters:       chapters,
			EstimatedPages: layout.EstimatePageCount(chapters, types.LayoutOptions{}),
			Done:           true,
		})
	}
	return chapters, outline, nil
}

// outline requests and validates the ebook outline.
func (p *Pipeline) outline(ctx context.Context, req Request) (*types.Outline, error) {
	count := p.chapterCount(req)
	prompt, err := outlinePrompt(req.Topic, req.Type, count)
	if err != nil {
		return nil, err
	}

	var schema outlineSchema
	if err := p.backend.JSON(ctx, prompt, &schema); err != nil {
		return nil, fmt.Errorf("generating outline: %w", err)
	}
	if len(schema.Chapters) == 0 {
		return nil, errors.New("generating outline: model returned no chapters")
	}

	outline := &types.Outline{Title: schema.Title}
	if outline.Title == "" {
		outline.Title = req.Topic
	}
	for _, ch := range schema.Chapters {
		outline.Chapters = append(outline.Chapters, types.ChapterPlan{
			Title:    ch.Title,
			Sections: ch.Sections,
		})
	}
	return outline, nil
}

// chapter produces one chapter's prose, running the enrichment loop in
// normal mode until the cumulative estimate reaches the proportional target
// or a bound trips.
func (p *Pipeline) chapter(ctx context.Context, req Request, outline *types.Outline, plan types.ChapterPlan, index, pagesPerChapter int, done []types.Chapter) (types.Chapter, error) {
	words := pagesPerChapter * p.cfg.WordsPerPage
	if req.Prototype {
		words = p.cfg.PrototypeWords
	}

	prompt, err := chapterPrompt(req.Topic, outline.Title, plan, words)
	if err != nil {
		return types.Chapter{}, err
	}
	raw, err := p.backend.Text(ctx, prompt)
	if err != nil {
		return types.Chapter{}, fmt.Errorf("generating chapter %d: %w", index+1, err)
	}

	ch := types.Chapter{Title: plan.Title, Content: PlainText(raw)}
	if req.Prototype {
		return ch, nil
	}

	target := (index + 1) * pagesPerChapter
	for round := 0; round < p.cfg.MaxEnrichmentRounds; round++ {
		if err := ctx.Err(); err != nil {
			return ch, err
		}
		if len(ch.Content) >= p.cfg.EnrichmentCeiling {
			break
		}
		if p.contributedPages(done, ch) >= target {
			break
		}

		prompt, err := enrichPrompt(outline.Title, ch.Content)
		if err != nil {
			return ch, err
		}
		raw, err := p.backend.Text(ctx, prompt)
		if err != nil {
			return ch, fmt.Errorf("enriching chapter %d: %w", index+1, err)
		}

		enriched := PlainText(raw)
		if len(enriched) <= len(ch.Content) {
			// The model stopped adding length; further rounds cannot close
			// the gap.
			break
		}
		ch.Content = enriched
	}
	return ch, nil
}

// contributedPages estimates the pages contributed by the finished chapters
// plus the chapter in progress, excluding the two base pages the estimator
// always counts for the title and table of contents.
func (p *Pipeline) contributedPages(done []types.Chapter, current types.Chapter) int {
	all := append(done[:len(done):len(done)], current)
	return layout.EstimatePageCount(all, types.LayoutOptions{}) - 2
}

// chapterCount applies the sizing heuristic: a small fixed count in
// prototype mode, max(10, ceil(target/5)) otherwise.
func (p *Pipeline) chapterCount(req Request) int {
	if req.Prototype {
		return p.cfg.PrototypeChapters
	}
	n := ceilDiv(req.TargetPages, 5)
	if n < 10 {
		n = 10
	}
	return n
}

func (p *Pipeline) imageInterval(req Request) int {
	if req.Prototype {
		return 1
	}
	return 3
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
