// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Title string `json:"title"`
	}

	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"bare object", `{"title": "Essai"}`, "Essai", false},
		{"fenced", "```json\n{\"title\": \"Essai\"}\n```", "Essai", false},
		{"fence without language", "```\n{\"title\": \"Essai\"}\n```", "Essai", false},
		{"leading prose", "Voici le résultat :\n{\"title\": \"Essai\"}", "Essai", false},
		{"not json", "désolé, je ne peux pas", "", true},
		{"empty", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p payload
			err := DecodeJSON(tt.raw, &p)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Title)
		})
	}
}
