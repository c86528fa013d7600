// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"context"

	"github.com/pdiddy/ebook-engine/internal/layout"
	"github.com/pdiddy/ebook-engine/pkg/types"
)

// Result is the outcome of a full Run: the chapters, the outline they
// follow, the rendered artifact, and the final estimate.
type Result struct {
	Chapters       []types.Chapter
	Outline        *types.Outline
	Artifact       []byte
	EstimatedPages int
}

// Run executes the whole pipeline and renders the artifact. Marketing-asset
// generation is kicked off in the background once the chapters exist and is
// delivered through onMarketing; it never blocks rendering or delivery.
//
// On a terminal generation error the partial chapters are returned inside
// Result so the caller can inspect them.
func (p *Pipeline) Run(ctx context.Context, req Request, opts types.LayoutOptions, onProgress func(types.Progress), onMarketing func(types.MarketingBundle)) (Result, error) {
	chapters, outline, err := p.Generate(ctx, req, onProgress)
	res := Result{Chapters: chapters, Outline: outline}
	if err != nil {
		return res, err
	}

	if onMarketing != nil {
		go func() {
			if bundle, mErr := p.Marketing(ctx, outline.Title, req.Topic); mErr == nil {
				onMarketing(bundle)
			}
		}()
	}

	res.EstimatedPages = layout.EstimatePageCount(chapters, opts)
	artifact, err := layout.Render(outline.Title, chapters, opts)
	if err != nil {
		return res, err
	}
	res.Artifact = artifact
	return res, nil
}
