// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/pdiddy/ebook-engine/pkg/types"
)

// Prompt templates sent to the generation backend. Structured calls ask for
// bare JSON; prose calls ask for plain paragraphs, and postprocessing strips
// whatever Markdown the model emits anyway.

var outlineTmpl = template.Must(template.New("outline").Parse(`You are an ebook planning system. Design the outline of a {{.Type}} ebook about the following topic.

Topic: {{.Topic}}

Produce exactly {{.ChapterCount}} chapters. For each chapter give a short, compelling title and at least 5 section titles that develop the chapter's idea in a logical order. Also give the ebook a marketable title.

Write titles in the same language as the topic.

Respond with a JSON object only, no text outside it:
{"title": "...", "chapters": [{"title": "...", "sections": ["...", "..."]}]}
`))

var chapterTmpl = template.Must(template.New("chapter").Parse(`You are writing one chapter of the ebook "{{.BookTitle}}" about: {{.Topic}}.

Chapter title: {{.ChapterTitle}}
{{if .Sections}}Cover these sections in order:
{{range .Sections}}- {{.}}
{{end}}{{end}}
Write approximately {{.Words}} words of finished prose in the same language as the topic. Use plain text only: paragraphs separated by one blank line, no Markdown syntax, no headings, no lists, no code fences. Do not repeat the chapter title.
`))

var enrichTmpl = template.Must(template.New("enrich").Parse(`You are expanding a chapter of the ebook "{{.BookTitle}}". Rewrite the chapter below so it is substantially longer: add concrete examples, practical detail, and smooth transitions. Keep every idea already present, keep the tone, and keep the same language.

Return the complete rewritten chapter as plain text paragraphs separated by blank lines, without Markdown and without commentary.

Chapter:
{{.Content}}
`))

// refineInstructions maps each refine action to its rewrite directive.
var refineInstructions = map[types.RefineAction]string{
	types.ActionRewrite:      "Rewrite the chapter from scratch with better flow while preserving all its ideas.",
	types.ActionSimplify:     "Rewrite the chapter in simpler, more accessible language a beginner can follow.",
	types.ActionEnrich:       "Expand the chapter with concrete examples, data points, and practical detail.",
	types.ActionFormal:       "Rewrite the chapter in a formal, professional register.",
	types.ActionStorytelling: "Rewrite the chapter as narrative storytelling with scenes and characters where appropriate.",
}

var refineTmpl = template.Must(template.New("refine").Parse(`{{.Instruction}}

Keep the same language as the original. Return the complete result as plain text paragraphs separated by blank lines, without Markdown and without commentary.

Chapter:
{{.Content}}
`))

var faqTmpl = template.Must(template.New("faq").Parse(`Write a FAQ for the following ebook chapter: 4 to 6 question-and-answer pairs a reader would actually ask. Same language as the chapter.

Format as plain text: each question on its own paragraph starting with "Q:", each answer on the following paragraph starting with "R:". No Markdown.

Chapter:
{{.Content}}
`))

var marketingTmpl = template.Must(template.New("marketing").Parse(`You are a book marketing assistant. For the ebook "{{.Title}}" about "{{.Topic}}", produce launch assets in the same language as the topic.

Respond with a JSON object only:
{"description": "back-cover description, 2-3 sentences", "keywords": ["5-8 discovery keywords"], "sales_copy": "one persuasive paragraph", "launch_email": "short launch announcement email", "suggested_price": "price with currency"}
`))

var chartTmpl = template.Must(template.New("chart").Parse(`Extract or invent one simple, plausible data series that illustrates the chapter below. 3 to 6 data points.

Respond with a JSON object only:
{"type": "bar|line|pie", "title": "...", "points": [{"label": "...", "value": 0}]}

Chapter:
{{.Content}}
`))

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering %s prompt: %w", t.Name(), err)
	}
	return buf.String(), nil
}

func outlinePrompt(topic string, ebookType types.EbookType, chapterCount int) (string, error) {
	return render(outlineTmpl, struct {
		Topic        string
		Type         types.EbookType
		ChapterCount int
	}{topic, ebookType, chapterCount})
}

func chapterPrompt(topic, bookTitle string, plan types.ChapterPlan, words int) (string, error) {
	return render(chapterTmpl, struct {
		Topic        string
		BookTitle    string
		ChapterTitle string
		Sections     []string
		Words        int
	}{topic, bookTitle, plan.Title, plan.Sections, words})
}

func enrichPrompt(bookTitle, content string) (string, error) {
	return render(enrichTmpl, struct {
		BookTitle string
		Content   string
	}{bookTitle, content})
}

func refinePrompt(action types.RefineAction, content string) (string, error) {
	instruction, ok := refineInstructions[action]
	if !ok {
		return "", fmt.Errorf("unknown refine action %q", action)
	}
	return render(refineTmpl, struct {
		Instruction string
		Content     string
	}{instruction, content})
}

func faqPrompt(content string) (string, error) {
	return render(faqTmpl, struct{ Content string }{content})
}

func marketingPrompt(title, topic string) (string, error) {
	return render(marketingTmpl, struct {
		Title string
		Topic string
	}{title, topic})
}

func chartPrompt(content string) (string, error) {
	return render(chartTmpl, struct{ Content string }{content})
}

// imagePrompt describes the chapter illustration for the image backend.
func imagePrompt(topic, chapterTitle string) string {
	return fmt.Sprintf(
		"A clean, modern editorial illustration for an ebook chapter titled %q, from a book about %q. Flat design, soft colors, no text in the image.",
		chapterTitle, topic)
}
