// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/ebook-engine/internal/generate"
	"github.com/pdiddy/ebook-engine/internal/history"
	"github.com/pdiddy/ebook-engine/pkg/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate [topic]",
	Short: "Generate a complete ebook from a topic",
	Long: `Generate runs the full pipeline: it plans an outline for the topic,
writes every chapter in order, enriches chapters until the page estimate
reaches the target, adds illustrations, renders the PDF, and saves the
session to history.

Prototype mode (--prototype) produces a short two-chapter draft for fast
iteration on tone and layout before committing to a full run.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	pages, _ := cmd.Flags().GetInt("pages")
	ebookType, _ := cmd.Flags().GetString("type")
	prototype, _ := cmd.Flags().GetBool("prototype")
	noSave, _ := cmd.Flags().GetBool("no-save")
	marketingOut, _ := cmd.Flags().GetString("marketing")

	opts, err := layoutOptionsFromFlags(cmd)
	if err != nil {
		return err
	}

	pipeline, err := newPipeline(cmd)
	if err != nil {
		return err
	}

	req := generate.Request{
		Topic:       args[0],
		Type:        types.EbookType(ebookType),
		TargetPages: pages,
		Prototype:   prototype,
	}

	onProgress := func(ev types.Progress) {
		if ev.Done {
			fmt.Fprintf(os.Stderr, "generation complete: %d chapters, ~%d pages\n",
				len(ev.Chapters), ev.EstimatedPages)
			return
		}
		fmt.Fprintf(os.Stderr, "chapter %d written (~%d pages so far)\n",
			len(ev.Chapters), ev.EstimatedPages)
	}

	var onMarketing func(types.MarketingBundle)
	marketingCh := make(chan types.MarketingBundle, 1)
	if marketingOut != "" {
		onMarketing = func(b types.MarketingBundle) { marketingCh <- b }
	}

	res, err := pipeline.Run(cmd.Context(), req, opts, onProgress, onMarketing)

	// Save whatever was produced, even on a terminal error, so a partial
	// run is not lost.
	if !noSave && len(res.Chapters) > 0 {
		store, storeErr := openHistory(cmd)
		if storeErr != nil {
			return storeErr
		}
		defer store.Close()

		title := args[0]
		if res.Outline != nil {
			title = res.Outline.Title
		}
		id, saveErr := store.Save(cmd.Context(), history.Session{
			Topic:       args[0],
			Title:       title,
			Type:        req.Type,
			TargetPages: pages,
			Chapters:    res.Chapters,
		})
		if saveErr != nil {
			fmt.Fprintf(os.Stderr, "warning: session not saved: %v\n", saveErr)
		} else {
			fmt.Fprintf(os.Stderr, "session saved: %s\n", id)
		}
	}
	if err != nil {
		return err
	}

	if outlineOut, _ := cmd.Flags().GetString("outline-out"); outlineOut != "" {
		if err := generate.SaveOutline(outlineOut, res.Outline); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "outline written to %s\n", outlineOut)
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = "ebook.pdf"
	}
	if err := os.WriteFile(output, res.Artifact, 0o644); err != nil {
		return fmt.Errorf("writing PDF: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Generated %s (%d chapters, ~%d pages) to %s\n",
		res.Outline.Title, len(res.Chapters), res.EstimatedPages, output)

	if marketingOut != "" {
		select {
		case bundle := <-marketingCh:
			data, mErr := json.MarshalIndent(bundle, "", "  ")
			if mErr != nil {
				return fmt.Errorf("encoding marketing bundle: %w", mErr)
			}
			if mErr := os.WriteFile(marketingOut, data, 0o644); mErr != nil {
				return fmt.Errorf("writing marketing bundle: %w", mErr)
			}
			fmt.Fprintf(os.Stdout, "Marketing assets written to %s\n", marketingOut)
		case <-time.After(2 * time.Minute):
			fmt.Fprintln(os.Stderr, "warning: marketing assets not ready, skipping")
		case <-cmd.Context().Done():
			return cmd.Context().Err()
		}
	}
	return nil
}

func init() {
	generateCmd.Flags().Int("pages", 30, "target page count (10-200)")
	generateCmd.Flags().String("type", "guide", "ebook type: guide, course, story, or report")
	generateCmd.Flags().Bool("prototype", false, "fast two-chapter draft mode")
	generateCmd.Flags().String("output", "ebook.pdf", "output PDF path")
	generateCmd.Flags().String("outline-out", "", "also write the generated outline as YAML to this path")
	generateCmd.Flags().Bool("no-save", false, "do not record the session in history")
	generateCmd.Flags().String("marketing", "", "write launch assets as JSON to this path")
	generateCmd.Flags().String("model", "", "text-generation model identifier")
	generateCmd.Flags().String("image-model", "", "image-generation model identifier")
	addLayoutFlags(generateCmd)

	rootCmd.AddCommand(generateCmd)
}
