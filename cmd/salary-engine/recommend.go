// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/meshintel/salary-engine/internal/engine"
	"github.com/meshintel/salary-engine/internal/source"
	"github.com/meshintel/salary-engine/internal/store"
	"github.com/meshintel/salary-engine/pkg/types"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend a salary for a job from configured market sources",
	Long: `Recommend queries every configured observation source for the given job,
blends the results into a weighted percentile distribution, and prints the
target salary, range, confidence rating, and pricing scenarios.

Sources that fail or time out are skipped with a warning; the run only fails
when no source yields a usable observation.`,
	RunE: runRecommend,
}

func init() {
	recommendCmd.Flags().String("title", "", "job title (required)")
	recommendCmd.Flags().String("description", "", "job description")
	recommendCmd.Flags().String("location", "", "job location")
	recommendCmd.Flags().String("grade", "", "internal job grade")
	recommendCmd.Flags().Bool("json", false, "output the result as JSON")
	recommendCmd.Flags().Bool("save", false, "save the result to the history store")

	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, args []string) error {
	title, _ := cmd.Flags().GetString("title")
	description, _ := cmd.Flags().GetString("description")
	location, _ := cmd.Flags().GetString("location")
	grade, _ := cmd.Flags().GetString("grade")
	asJSON, _ := cmd.Flags().GetBool("json")
	save, _ := cmd.Flags().GetBool("save")

	if title == "" {
		return fmt.Errorf("--title is required")
	}

	query := types.JobQuery{
		Title:       title,
		Description: description,
		Location:    location,
		Grade:       grade,
	}

	adapters := source.Build(sourceConfig(), loadedSecrets, nil)
	if len(adapters) == 0 {
		return fmt.Errorf("no observation sources configured; add endpoints or an observations_dir to salary-engine.yaml")
	}

	result, diag, err := engine.Recommend(cmd.Context(), query, adapters, engineConfig(), os.Stderr)
	if err != nil {
		return err
	}

	if asJSON {
		if err := engine.FormatJSON(result, diag, os.Stdout); err != nil {
			return err
		}
	} else {
		engine.FormatText(result, diag, os.Stdout)
	}

	if save {
		if err := saveResult(cmd.Context(), result); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved recommendation %s\n", result.ID)
	}
	return nil
}

func saveResult(ctx context.Context, result types.RecommendationResult) error {
	s, err := store.Open(storeConfig())
	if err != nil {
		return err
	}
	defer s.Close()
	return s.Save(ctx, result)
}
