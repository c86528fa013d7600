// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlainText(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "plain paragraphs pass through",
			raw:  "Premier paragraphe.\n\nSecond paragraphe.",
			want: "Premier paragraphe.\n\nSecond paragraphe.",
		},
		{
			name: "inline emphasis stripped",
			raw:  "Un texte **très** _important_ avec `du code`.",
			want: "Un texte très important avec du code.",
		},
		{
			name: "heading becomes a paragraph",
			raw:  "# Introduction\n\nLe contenu suit.",
			want: "Introduction\n\nLe contenu suit.",
		},
		{
			name: "list items flattened",
			raw:  "- premier point\n- second point",
			want: "premier point second point",
		},
		{
			name: "soft line breaks joined with spaces",
			raw:  "une ligne\nune autre ligne",
			want: "une ligne une autre ligne",
		},
		{
			name: "surrounding whitespace trimmed",
			raw:  "\n\n  Un paragraphe.  \n\n",
			want: "Un paragraphe.",
		},
		{
			name: "empty input stays empty",
			raw:  "",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PlainText(tt.raw))
		})
	}
}

func TestPlainTextIdempotent(t *testing.T) {
	raw := "## Chapitre\n\nDu **texte** en *relief*.\n\n1. un\n2. deux"
	once := PlainText(raw)
	assert.Equal(t, once, PlainText(once))
}
