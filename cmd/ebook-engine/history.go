// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/ebook-engine/internal/generate"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage saved generation sessions (list, show, delete)",
	Long: `History manages the local session database. Every generate run is
recorded there; use subcommands to list sessions, inspect one, or
remove it.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved sessions, newest first",
	RunE:  runHistoryList,
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := openHistory(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	summaries, err := store.List(cmd.Context())
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summaries)
	}

	if len(summaries) == 0 {
		fmt.Println("No sessions recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-36s  %-30s  %-8s  %-8s  %s\n",
		"ID", "Title", "Type", "Chapters", "Created")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))
	for _, s := range summaries {
		title := s.Title
		if len(title) > 30 {
			title = title[:27] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-36s  %-30s  %-8s  %-8d  %s\n",
			s.ID, title, s.Type, s.ChapterCount, s.CreatedAt.Format("2006-01-02 15:04"))
	}
	fmt.Fprintf(os.Stdout, "\n%d sessions\n", len(summaries))
	return nil
}

var historyShowCmd = &cobra.Command{
	Use:   "show [session-id]",
	Short: "Show one session's outline and chapter sizes",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	store, err := openHistory(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	sess, err := store.Load(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if outlinePath, _ := cmd.Flags().GetString("outline"); outlinePath != "" {
		outline := generate.ReconstructOutline(sess.Title, sess.Chapters)
		if err := generate.SaveOutline(outlinePath, outline); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Outline written to %s\n", outlinePath)
	}

	fmt.Fprintf(os.Stdout, "%s\n", sess.Title)
	fmt.Fprintf(os.Stdout, "topic: %s  type: %s  target: %d pages  created: %s\n\n",
		sess.Topic, sess.Type, sess.TargetPages, sess.CreatedAt.Format("2006-01-02 15:04"))
	for i, ch := range sess.Chapters {
		extras := ""
		if len(ch.Image) > 0 {
			extras += " [image]"
		}
		if ch.Chart != nil {
			extras += " [chart]"
		}
		fmt.Fprintf(os.Stdout, "%3d. %s (%d chars)%s\n", i+1, ch.Title, len(ch.Content), extras)
	}
	return nil
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete [session-id]",
	Short: "Delete one session",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryDelete,
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	store, err := openHistory(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Delete(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Deleted session %s\n", args[0])
	return nil
}

func init() {
	historyListCmd.Flags().Bool("json", false, "output the list as JSON")
	historyShowCmd.Flags().String("outline", "", "also write the session outline as YAML to this path")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyDeleteCmd)

	rootCmd.AddCommand(historyCmd)
}
