// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"context"
	"strings"

	"github.com/pdiddy/ebook-engine/pkg/types"
)

// FAQHeading is the fixed marker under which AddFAQ appends its block.
const FAQHeading = "Questions fréquentes"

// Refine replaces the chapter's content wholesale with a transformed
// version. The operation is best-effort: on any failure the original
// chapter is returned unchanged with ok=false, so control flow at the call
// site is an explicit branch rather than suppressed error handling.
func (p *Pipeline) Refine(ctx context.Context, ch types.Chapter, action types.RefineAction) (types.Chapter, bool) {
	prompt, err := refinePrompt(action, ch.Content)
	if err != nil {
		return ch, false
	}
	raw, err := p.backend.Text(ctx, prompt)
	if err != nil {
		return ch, false
	}
	content := PlainText(raw)
	if strings.TrimSpace(content) == "" {
		return ch, false
	}
	ch.Content = content
	return ch, true
}

// AddFAQ appends a generated question-and-answer block to the chapter under
// the fixed heading. On failure the chapter is returned unchanged with
// ok=false.
func (p *Pipeline) AddFAQ(ctx context.Context, ch types.Chapter) (types.Chapter, bool) {
	prompt, err := faqPrompt(ch.Content)
	if err != nil {
		return ch, false
	}
	raw, err := p.backend.Text(ctx, prompt)
	if err != nil {
		return ch, false
	}
	faq := PlainText(raw)
	if strings.TrimSpace(faq) == "" {
		return ch, false
	}
	ch.Content = ch.Content + "\n\n" + FAQHeading + "\n\n" + faq
	return ch, true
}

// AddChart attaches generated chart data to the chapter. A response that
// does not parse into the chart shape degrades to "no chart" rather than
// failing: the chapter is returned unchanged with ok=false.
func (p *Pipeline) AddChart(ctx context.Context, ch types.Chapter) (types.Chapter, bool) {
	prompt, err := chartPrompt(ch.Content)
	if err != nil {
		return ch, false
	}

	var chart types.Chart
	if err := p.backend.JSON(ctx, prompt, &chart); err != nil {
		return ch, false
	}
	if chart.Title == "" || len(chart.Points) == 0 {
		return ch, false
	}
	switch chart.Type {
	case types.ChartBar, types.ChartLine, types.ChartPie:
	default:
		chart.Type = types.ChartBar
	}
	ch.Chart = &chart
	return ch, true
}

// Marketing produces the launch asset bundle for a finished ebook. A schema
// error degrades to "feature unavailable" for the caller; it never aborts
// the pipeline.
func (p *Pipeline) Marketing(ctx context.Context, title, topic string) (types.MarketingBundle, error) {
	prompt, err := marketingPrompt(title, topic)
	if err != nil {
		return types.MarketingBundle{}, err
	}
	var bundle types.MarketingBundle
	if err := p.backend.JSON(ctx, prompt, &bundle); err != nil {
		return types.MarketingBundle{}, err
	}
	return bundle, nil
}
