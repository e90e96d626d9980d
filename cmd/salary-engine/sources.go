// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/meshintel/salary-engine/internal/source"
	"github.com/meshintel/salary-engine/pkg/types"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List configured observation sources and probe availability",
	Long: `Sources lists the observation adapters built from the current
configuration. With --check it issues a probe query against each source and
reports whether it responded.`,
	RunE: runSources,
}

func init() {
	sourcesCmd.Flags().Bool("check", false, "probe each source with a test query")
	sourcesCmd.Flags().String("title", "software engineer", "job title used for the probe query")

	rootCmd.AddCommand(sourcesCmd)
}

func runSources(cmd *cobra.Command, args []string) error {
	check, _ := cmd.Flags().GetBool("check")
	title, _ := cmd.Flags().GetString("title")

	adapters := source.Build(sourceConfig(), loadedSecrets, nil)
	if len(adapters) == 0 {
		fmt.Fprintln(os.Stdout, "No observation sources configured.")
		return nil
	}

	for _, a := range adapters {
		if !check {
			fmt.Fprintln(os.Stdout, a.Name())
			continue
		}

		observations, err := a.Fetch(cmd.Context(), types.JobQuery{Title: title})
		if err != nil {
			fmt.Fprintf(os.Stdout, "%-20s unavailable: %v\n", a.Name(), err)
			continue
		}
		fmt.Fprintf(os.Stdout, "%-20s ok (%d observation(s) for %q)\n", a.Name(), len(observations), title)
	}
	return nil
}
