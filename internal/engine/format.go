// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/meshintel/salary-engine/pkg/types"
)

// FormatText writes a human-readable recommendation report to w.
func FormatText(result types.RecommendationResult, diag types.RunDiagnostics, w io.Writer) {
	fmt.Fprintf(w, "Recommendation %s\n", result.ID)
	fmt.Fprintf(w, "Job: %s", result.Query.Title)
	if result.Query.Location != "" {
		fmt.Fprintf(w, " (%s)", result.Query.Location)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("-", 60))

	fmt.Fprintf(w, "Target salary:  %s %s\n", result.Target.StringFixed(2), result.Currency)
	fmt.Fprintf(w, "Range:          %s - %s %s\n",
		result.Range.Low.StringFixed(2), result.Range.High.StringFixed(2), result.Currency)
	fmt.Fprintf(w, "Confidence:     %.1f/100 (%s)\n", result.Confidence.Total, result.Confidence.Band)
	fmt.Fprintf(w, "  coverage %.1f  sample %.1f  recency %.1f  match %.1f\n",
		result.Confidence.Coverage, result.Confidence.SampleSize,
		result.Confidence.Recency, result.Confidence.MatchQuality)

	fmt.Fprintf(w, "\nPercentiles: P10 %s  P25 %s  P50 %s  P75 %s  P90 %s\n",
		result.Distribution.P10.StringFixed(0), result.Distribution.P25.StringFixed(0),
		result.Distribution.P50.StringFixed(0), result.Distribution.P75.StringFixed(0),
		result.Distribution.P90.StringFixed(0))

	fmt.Fprintln(w, "\nScenarios:")
	for _, sc := range result.Scenarios {
		fmt.Fprintf(w, "  %-14s %s - %s\n", sc.Name, sc.Low.StringFixed(0), sc.High.StringFixed(0))
	}

	fmt.Fprintf(w, "\nSources (%d, %d observations):\n", result.SourceCount, result.ObservationCount)
	for _, c := range result.Contributions {
		fmt.Fprintf(w, "  %-20s n=%-4d weight=%.2f  mean age %.0fd  match %.2f\n",
			c.Source, c.SampleSize, c.Weight, c.MeanAgeDays, c.MeanMatch)
	}

	if diag.InvalidDropped > 0 || diag.CurrencyDropped > 0 || len(diag.FailedSources) > 0 {
		fmt.Fprintln(w, "\nDiagnostics:")
		if diag.InvalidDropped > 0 {
			fmt.Fprintf(w, "  %d invalid observation(s) dropped\n", diag.InvalidDropped)
		}
		if diag.CurrencyDropped > 0 {
			fmt.Fprintf(w, "  %d observation(s) dropped for currency mismatch\n", diag.CurrencyDropped)
		}
		if len(diag.FailedSources) > 0 {
			fmt.Fprintf(w, "  unavailable sources: %s\n", strings.Join(diag.FailedSources, ", "))
		}
	}
}

// FormatJSON writes the recommendation and its diagnostics as indented JSON.
func FormatJSON(result types.RecommendationResult, diag types.RunDiagnostics, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Result      types.RecommendationResult `json:"result"`
		Diagnostics types.RunDiagnostics       `json:"diagnostics"`
	}{result, diag})
}
