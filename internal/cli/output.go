package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/pfrederiksen/ncaa-stats/internal/report"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// OutputResult contains data to be output
type OutputResult struct {
	CollectedAt time.Time       `json:"collected_at"`
	MasterPath  string          `json:"master_path,omitempty"`
	SummaryPath string          `json:"summary_path,omitempty"`
	Summary     *report.Summary `json:"summary"`
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs results as human-readable text
func writeText(w io.Writer, result *OutputResult, verbose bool) error {
	sum := result.Summary
	if sum == nil || len(sum.Categories) == 0 {
		fmt.Fprintln(w, "No categories collected.")
		return nil
	}

	for _, cat := range sum.Categories {
		fmt.Fprintf(w, "%s: %s (%d pages, %d rows)\n",
			cat.ID, cat.Status, cat.Pages.Collected, cat.Rows)
		if verbose {
			fmt.Fprintf(w, "     URL: %s\n", cat.URL)
			if cat.Pages.Skipped > 0 {
				fmt.Fprintf(w, "     Skipped: %d pages\n", cat.Pages.Skipped)
			}
			if cat.Pages.Drifted > 0 {
				fmt.Fprintf(w, "     Dropped for schema drift: %d pages\n", cat.Pages.Drifted)
			}
		}
	}

	if failed := sum.Failed(); len(failed) > 0 {
		fmt.Fprintf(w, "\nFailed categories: %d\n", len(failed))
	}

	if result.MasterPath != "" {
		fmt.Fprintf(w, "\nMaster table: %d teams x %d columns -> %s\n",
			sum.Teams, sum.Columns, result.MasterPath)
	}
	if result.SummaryPath != "" {
		fmt.Fprintf(w, "Run summary: %s\n", result.SummaryPath)
	}

	return nil
}
