// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pdiddy/ebook-engine/pkg/types"
)

var refineCmd = &cobra.Command{
	Use:   "refine [session-id] [chapter]",
	Short: "Rework one chapter of a saved session",
	Long: `Refine rewrites one chapter of a saved session with the requested
action and saves the result back to history. The chapter is replaced
wholesale: render the session again to see the change in the PDF.

Actions: rewrite, simplify, enrich, formal, storytelling.`,
	Args: cobra.ExactArgs(2),
	RunE: runRefine,
}

func runRefine(cmd *cobra.Command, args []string) error {
	action, _ := cmd.Flags().GetString("action")
	if !types.ValidRefineAction(types.RefineAction(action)) {
		return fmt.Errorf("unknown action %q: use rewrite, simplify, enrich, formal, or storytelling", action)
	}

	return withSessionChapter(cmd, args, func(ctx context.Context, ch types.Chapter) (types.Chapter, error) {
		pipeline, err := newPipeline(cmd)
		if err != nil {
			return ch, err
		}
		refined, ok := pipeline.Refine(ctx, ch, types.RefineAction(action))
		if !ok {
			return ch, fmt.Errorf("refining chapter %q failed", ch.Title)
		}
		return refined, nil
	})
}

var faqCmd = &cobra.Command{
	Use:   "faq [session-id] [chapter]",
	Short: "Append a generated FAQ block to one chapter",
	Long: `FAQ generates question-and-answer pairs for one chapter of a saved
session and appends them under a fixed heading. The existing prose is
kept unchanged.`,
	Args: cobra.ExactArgs(2),
	RunE: runFAQ,
}

func runFAQ(cmd *cobra.Command, args []string) error {
	return withSessionChapter(cmd, args, func(ctx context.Context, ch types.Chapter) (types.Chapter, error) {
		pipeline, err := newPipeline(cmd)
		if err != nil {
			return ch, err
		}
		withFAQ, ok := pipeline.AddFAQ(ctx, ch)
		if !ok {
			return ch, fmt.Errorf("generating FAQ for chapter %q failed", ch.Title)
		}
		return withFAQ, nil
	})
}

var chartCmd = &cobra.Command{
	Use:   "chart [session-id] [chapter]",
	Short: "Attach generated chart data to one chapter",
	Long: `Chart asks the backend for a small data series that illustrates one
chapter and attaches it to the session. The chart is drawn when the
session is rendered.`,
	Args: cobra.ExactArgs(2),
	RunE: runChart,
}

func runChart(cmd *cobra.Command, args []string) error {
	return withSessionChapter(cmd, args, func(ctx context.Context, ch types.Chapter) (types.Chapter, error) {
		pipeline, err := newPipeline(cmd)
		if err != nil {
			return ch, err
		}
		withChart, ok := pipeline.AddChart(ctx, ch)
		if !ok {
			return ch, fmt.Errorf("generating chart for chapter %q failed", ch.Title)
		}
		return withChart, nil
	})
}

// withSessionChapter loads the session, applies op to the 1-based chapter
// named on the command line, and saves the session back.
func withSessionChapter(cmd *cobra.Command, args []string, op func(context.Context, types.Chapter) (types.Chapter, error)) error {
	index, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("chapter must be a number, got %q", args[1])
	}

	store, err := openHistory(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	sess, err := store.Load(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if index < 1 || index > len(sess.Chapters) {
		return fmt.Errorf("chapter %d out of range: session has %d chapters", index, len(sess.Chapters))
	}

	updated, err := op(cmd.Context(), sess.Chapters[index-1])
	if err != nil {
		return err
	}
	sess.Chapters[index-1] = updated

	if _, err := store.Save(cmd.Context(), sess); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Chapter %d (%s) updated in session %s\n", index, updated.Title, sess.ID)
	return nil
}

func init() {
	refineCmd.Flags().String("action", "rewrite", "refine action: rewrite, simplify, enrich, formal, storytelling")
	refineCmd.Flags().String("model", "", "text-generation model identifier")
	faqCmd.Flags().String("model", "", "text-generation model identifier")
	chartCmd.Flags().String("model", "", "text-generation model identifier")

	rootCmd.AddCommand(refineCmd)
	rootCmd.AddCommand(faqCmd)
	rootCmd.AddCommand(chartCmd)
}
