// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/ebook-engine/internal/layout"
	"github.com/pdiddy/ebook-engine/pkg/types"
)

var renderCmd = &cobra.Command{
	Use:   "render [session-id]",
	Short: "Render a saved session or a chapter file to PDF",
	Long: `Render loads a saved generation session from history (or a chapter
JSON file via --chapters) and renders it to a PDF with the requested
layout options. The content is not regenerated: the same session can be
rendered any number of times with different colors, fonts, headers, or
quality tiers.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func runRender(cmd *cobra.Command, args []string) error {
	title, chapters, err := resolveChapters(cmd, args)
	if err != nil {
		return err
	}

	opts, err := layoutOptionsFromFlags(cmd)
	if err != nil {
		return err
	}

	artifact, err := layout.Render(title, chapters, opts)
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = "ebook.pdf"
	}
	if err := os.WriteFile(output, artifact, 0o644); err != nil {
		return fmt.Errorf("writing PDF: %w", err)
	}

	pages := layout.EstimatePageCount(chapters, opts)
	fmt.Fprintf(os.Stdout, "Rendered %s (%d chapters, ~%d pages) to %s\n",
		title, len(chapters), pages, output)
	return nil
}

// resolveChapters returns the ebook title and chapters either from the
// session named on the command line or from a --chapters JSON file.
func resolveChapters(cmd *cobra.Command, args []string) (string, []types.Chapter, error) {
	chaptersPath, _ := cmd.Flags().GetString("chapters")

	if chaptersPath != "" {
		data, err := os.ReadFile(chaptersPath)
		if err != nil {
			return "", nil, fmt.Errorf("reading chapters file: %w", err)
		}
		var chapters []types.Chapter
		if err := json.Unmarshal(data, &chapters); err != nil {
			return "", nil, fmt.Errorf("parsing chapters file: %w", err)
		}
		title, _ := cmd.Flags().GetString("title")
		if title == "" {
			title = strings.TrimSuffix(filepath.Base(chaptersPath), filepath.Ext(chaptersPath))
		}
		return title, chapters, nil
	}

	if len(args) == 0 {
		return "", nil, fmt.Errorf("a session ID or --chapters file is required")
	}

	store, err := openHistory(cmd)
	if err != nil {
		return "", nil, err
	}
	defer store.Close()

	sess, err := store.Load(cmd.Context(), args[0])
	if err != nil {
		return "", nil, err
	}
	return sess.Title, sess.Chapters, nil
}

// addLayoutFlags registers the layout option flags shared by generate and
// render.
func addLayoutFlags(cmd *cobra.Command) {
	cmd.Flags().String("color", "", "primary color as a hex code (e.g. 2E86AB)")
	cmd.Flags().String("font", "sans", "font family: serif, sans, or mono")
	cmd.Flags().String("header", "", "header text repeated on every content page")
	cmd.Flags().String("footer", "", "footer text repeated on every content page")
	cmd.Flags().String("logo", "", "path to a PNG or JPEG logo for the title page")
	cmd.Flags().String("watermark", "", "diagonal watermark text on every content page")
	cmd.Flags().String("quality", "standard", "quality tier: standard, high, or ultra")
	cmd.Flags().Bool("no-compress", false, "disable content stream compression")
}

// layoutOptionsFromFlags assembles LayoutOptions from the shared flags.
func layoutOptionsFromFlags(cmd *cobra.Command) (types.LayoutOptions, error) {
	color, _ := cmd.Flags().GetString("color")
	font, _ := cmd.Flags().GetString("font")
	header, _ := cmd.Flags().GetString("header")
	footer, _ := cmd.Flags().GetString("footer")
	logoPath, _ := cmd.Flags().GetString("logo")
	watermark, _ := cmd.Flags().GetString("watermark")
	quality, _ := cmd.Flags().GetString("quality")
	noCompress, _ := cmd.Flags().GetBool("no-compress")

	opts := types.LayoutOptions{
		PrimaryColor:  color,
		Font:          types.FontFamily(font),
		HeaderText:    header,
		FooterText:    footer,
		Watermark:     watermark,
		Quality:       types.QualityTier(quality),
		NoCompression: noCompress,
	}

	if logoPath != "" {
		logo, err := os.ReadFile(logoPath)
		if err != nil {
			return opts, fmt.Errorf("reading logo: %w", err)
		}
		opts.Logo = logo
	}
	return opts, nil
}

func init() {
	addLayoutFlags(renderCmd)
	renderCmd.Flags().String("output", "ebook.pdf", "output PDF path")
	renderCmd.Flags().String("chapters", "", "render from a chapter JSON file instead of a session")
	renderCmd.Flags().String("title", "", "ebook title when rendering from --chapters")

	rootCmd.AddCommand(renderCmd)
}
