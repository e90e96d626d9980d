// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/meshintel/salary-engine/internal/engine"
	"github.com/meshintel/salary-engine/internal/store"
	"github.com/meshintel/salary-engine/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse saved recommendations",
	Long: `History lists and shows recommendations saved with 'recommend --save'.
Each saved record is the full auditable result: distribution, confidence
breakdown, scenarios, and per-source contributions.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved recommendations, newest first",
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one saved recommendation",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func init() {
	historyListCmd.Flags().Int("limit", 20, "maximum rows to list (0 for all)")
	historyShowCmd.Flags().Bool("yaml", false, "export the full record as YAML")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	s, err := store.Open(storeConfig())
	if err != nil {
		return err
	}
	defer s.Close()

	summaries, err := s.List(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if len(summaries) == 0 {
		fmt.Fprintln(os.Stdout, "No saved recommendations.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-36s  %-30s  %-12s  %-6s  %s\n",
		"ID", "Title", "Target", "Band", "Evaluated")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))
	for _, sm := range summaries {
		title := sm.Title
		if len(title) > 30 {
			title = title[:27] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-36s  %-30s  %-12s  %-6s  %s\n",
			sm.ID, title, sm.Target+" "+sm.Currency, sm.Band,
			sm.EvaluatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	asYAML, _ := cmd.Flags().GetBool("yaml")

	s, err := store.Open(storeConfig())
	if err != nil {
		return err
	}
	defer s.Close()

	if asYAML {
		return s.ExportYAML(cmd.Context(), args[0], os.Stdout)
	}

	result, err := s.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	engine.FormatText(result, types.RunDiagnostics{}, os.Stdout)
	return nil
}
