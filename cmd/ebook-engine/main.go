// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the ebook-engine CLI.
// Implements: prd001-orchestration, prd002-layout, prd004-history,
//             prd005-marketing (CLI surface).
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/ebook-engine/internal/ai"
	"github.com/pdiddy/ebook-engine/internal/generate"
	"github.com/pdiddy/ebook-engine/internal/history"
	"github.com/pdiddy/ebook-engine/internal/secrets"
	"github.com/pdiddy/ebook-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns the secret value for key if it exists, or fallback otherwise.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the ebook-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "ebook-engine",
	Short: "AI-driven ebook generation and PDF layout",
	Long: `ebook-engine turns a topic into a finished ebook: it plans an outline,
writes the chapters with an AI backend, grows each chapter until the page
estimate meets the target, illustrates chapters periodically, and renders
everything to a paginated PDF.

Each operation is a subcommand: generate runs the full pipeline, render and
estimate work on saved sessions, refine, faq, and chart rework individual
chapters, and history manages stored sessions.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./ebook-engine.yaml or ~/.config/ebook-engine/config.yaml)")
	rootCmd.PersistentFlags().String("history-dir", "", "directory for the session database (default: ./history)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("ebook-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "ebook-engine"))
		}
	}

	viper.SetEnvPrefix("EBOOK_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// generationConfig assembles the orchestrator configuration from flags,
// the config file, and loaded secrets, in that order of precedence.
func generationConfig(cmd *cobra.Command) types.GenerationConfig {
	model, _ := cmd.Flags().GetString("model")
	if model == "" {
		model = viper.GetString("ai.model")
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	imageModel, _ := cmd.Flags().GetString("image-model")
	if imageModel == "" {
		imageModel = viper.GetString("ai.image_model")
	}

	cfg := types.GenerationConfig{
		AIConfig: types.AIConfig{
			Model:      model,
			ImageModel: imageModel,
			APIKey:     secretDefault("openai-api-key", viper.GetString("ai.api_key")),
			BaseURL:    secretDefault("openai-base-url", viper.GetString("ai.base_url")),
			MaxRetries: viper.GetInt("ai.max_retries"),
		},
		WordsPerPage:        viper.GetInt("generation.words_per_page"),
		PrototypeChapters:   viper.GetInt("generation.prototype_chapters"),
		PrototypeWords:      viper.GetInt("generation.prototype_words"),
		EnrichmentCeiling:   viper.GetInt("generation.enrichment_ceiling"),
		MaxEnrichmentRounds: viper.GetInt("generation.max_enrichment_rounds"),
	}
	return cfg
}

// newPipeline builds the generation pipeline with an OpenAI backend.
func newPipeline(cmd *cobra.Command) (*generate.Pipeline, error) {
	cfg := generationConfig(cmd)
	backend, err := ai.NewOpenAI(cfg.AIConfig)
	if err != nil {
		return nil, err
	}
	return generate.New(backend, cfg)
}

// openHistory opens the session store used by generate, render, estimate,
// refine, faq, chart, and history.
func openHistory(cmd *cobra.Command) (*history.Store, error) {
	dir, _ := cmd.Flags().GetString("history-dir")
	if dir == "" {
		dir = viper.GetString("history.dir")
	}
	if dir == "" {
		dir = "history"
	}
	return history.NewStore(types.HistoryConfig{Dir: dir})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
