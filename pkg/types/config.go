// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for backends that make network
// requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "ebook-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// AIConfig holds shared settings for the generation backend.
// Per prd001-orchestration R6.1-R6.3.
type AIConfig struct {
	// Model is the text-generation model identifier (e.g. "gpt-4o-mini").
	Model string `json:"model" yaml:"model"`

	// ImageModel is the image-generation model identifier
	// (e.g. "gpt-image-1").
	ImageModel string `json:"image_model" yaml:"image_model"`

	// APIKey is the authentication key for the backend API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// BaseURL overrides the backend endpoint for OpenAI-compatible
	// gateways (optional).
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// MaxRetries is the number of retry attempts when downloading generated
	// image assets (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// HTTP configures the client used to download generated image assets.
	HTTP HTTPConfig `json:"http" yaml:"http"`
}

// GenerationConfig holds settings for the content orchestrator.
// Per prd001-orchestration R3.1-R3.5.
type GenerationConfig struct {
	AIConfig `yaml:",inline"`

	// WordsPerPage is the prose word budget per target page (default 450).
	WordsPerPage int `json:"words_per_page" yaml:"words_per_page"`

	// PrototypeChapters is the fixed chapter count in prototype mode
	// (default 2).
	PrototypeChapters int `json:"prototype_chapters" yaml:"prototype_chapters"`

	// PrototypeWords is the per-chapter word budget in prototype mode
	// (default 300).
	PrototypeWords int `json:"prototype_words" yaml:"prototype_words"`

	// EnrichmentCeiling is the hard per-chapter content size limit in
	// characters above which enrichment stops (default 15000).
	EnrichmentCeiling int `json:"enrichment_ceiling" yaml:"enrichment_ceiling"`

	// MaxEnrichmentRounds caps enrichment iterations per chapter regardless
	// of the estimate, guarding against a backend that never adds length
	// (default 6).
	MaxEnrichmentRounds int `json:"max_enrichment_rounds" yaml:"max_enrichment_rounds"`
}

// HistoryConfig holds settings for the generation history store.
// Per prd004-history R1.1.
type HistoryConfig struct {
	// Dir is the directory containing the history database (default
	// "history").
	Dir string `json:"dir" yaml:"dir"`
}
