// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/ebook-engine/internal/layout"
	"github.com/pdiddy/ebook-engine/pkg/types"
)

var estimateCmd = &cobra.Command{
	Use:   "estimate [session-id]",
	Short: "Estimate the page count of a saved session or chapter file",
	Long: `Estimate computes the page count of a saved session (or a chapter
JSON file via --chapters) without rendering the PDF. It uses the same
geometric model as the renderer, so the result tracks the real document
closely and is cheap enough to run repeatedly.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEstimate,
}

func runEstimate(cmd *cobra.Command, args []string) error {
	title, chapters, err := resolveChapters(cmd, args)
	if err != nil {
		return err
	}

	pages := layout.EstimatePageCount(chapters, types.LayoutOptions{})
	fmt.Fprintf(os.Stdout, "%s: %d chapters, ~%d pages\n", title, len(chapters), pages)
	return nil
}

func init() {
	estimateCmd.Flags().String("chapters", "", "estimate from a chapter JSON file instead of a session")
	estimateCmd.Flags().String("title", "", "ebook title when estimating from --chapters")

	rootCmd.AddCommand(estimateCmd)
}
