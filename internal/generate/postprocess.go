// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var markdown = goldmark.New()

// PlainText flattens a model response to the plain-paragraph form the layout
// engine expects: blocks separated by one blank line, inline Markdown
// unwrapped, headings kept as short standalone paragraphs. Models are asked
// for plain text but emit Markdown often enough that every prose response
// goes through here.
func PlainText(raw string) string {
	source := []byte(raw)
	root := markdown.Parser().Parse(text.NewReader(source))

	var paras []string
	for node := root.FirstChild(); node != nil; node = node.NextSibling() {
		if p := blockText(node, source); p != "" {
			paras = append(paras, p)
		}
	}

	out := strings.Join(paras, "\n\n")
	if strings.TrimSpace(out) == "" {
		return strings.TrimSpace(raw)
	}
	return out
}

// blockText collects the visible text of one top-level block by walking its
// inline Text nodes, which naturally drops emphasis and link markers.
func blockText(block ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(block, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if t, ok := n.(*ast.Text); ok {
				b.Write(t.Segment.Value(source))
				if t.SoftLineBreak() || t.HardLineBreak() {
					b.WriteByte(' ')
				}
			}
			return ast.WalkContinue, nil
		}
		// Separate nested blocks (list items, quoted paragraphs) that would
		// otherwise run together.
		if n.Type() == ast.TypeBlock && b.Len() > 0 {
			b.WriteByte(' ')
		}
		return ast.WalkContinue, nil
	})
	return strings.Join(strings.Fields(b.String()), " ")
}
