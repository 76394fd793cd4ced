package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/ncaa-stats/internal/export"
	"github.com/pfrederiksen/ncaa-stats/internal/fetch"
	"github.com/pfrederiksen/ncaa-stats/internal/logger"
	"github.com/pfrederiksen/ncaa-stats/internal/pipeline"
)

const (
	ExitSuccess          = 0
	ExitError            = 1
	ExitFailedCategories = 2
)

// DefaultStatIDs is the full set of team statistic categories collected when
// --stats is not given. Order matters: it decides which category wins a
// column-name collision during the merge.
var DefaultStatIDs = []string{
	"474", "216", "1284", "214", "1288", "1285", "148", "149", "286",
	"638", "150", "633", "151", "859", "857", "932", "146", "147",
	"145", "215", "625", "152", "518", "153", "519", "931", "217", "168",
}

var (
	flagStats   string
	flagOut     string
	flagFormat  string
	flagBaseURL string
	flagDelay   time.Duration
	flagTimeout time.Duration
	flagVerbose bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ncaa-stats",
		Short: "Collect NCAA team statistics into one master table",
		Long: `A CLI tool that scrapes NCAA men's basketball team statistics.
Each statistic category is collected across all of its pages, then every
category is merged into one master table keyed by team and written as CSV,
alongside a per-category run summary.`,
		RunE: runCollect,
	}

	cmd.PersistentFlags().StringVar(&flagOut, "out", "~/.local/share/ncaa-stats", "Output directory")
	cmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", envOr("NCAA_BASE_URL", pipeline.DefaultBaseURL), "Site base URL (or env: NCAA_BASE_URL)")
	cmd.PersistentFlags().DurationVar(&flagDelay, "delay", fetch.DefaultDelay, "Minimum delay between fetches")
	cmd.PersistentFlags().DurationVar(&flagTimeout, "timeout", fetch.DefaultTimeout, "Per-request timeout")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	cmd.Flags().StringVar(&flagStats, "stats", "", "Comma-separated category IDs (default: full stat set)")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Summary output format: text or json")

	cmd.AddCommand(newBracketCmd())

	return cmd
}

// runCollect is the main command logic
func runCollect(cmd *cobra.Command, args []string) error {
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	if flagVerbose {
		logger.SetDefault(logger.New(logger.LevelDebug, os.Stderr))
	}

	ids := DefaultStatIDs
	if strings.TrimSpace(flagStats) != "" {
		ids = splitIDs(flagStats)
	}
	if len(ids) == 0 {
		return fmt.Errorf("--stats must list at least one category ID")
	}

	store, err := export.New(flagOut)
	if err != nil {
		return fmt.Errorf("initializing output: %w", err)
	}

	fetcher := fetch.New(fetch.Options{
		Timeout: flagTimeout,
		Delay:   flagDelay,
	})

	pipe := pipeline.New(fetcher, pipeline.Config{
		BaseURL:     flagBaseURL,
		CategoryIDs: ids,
	})

	// Ctrl-C stops the run at the next category boundary
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	master, summary, err := pipe.Run(ctx)
	if err != nil {
		if errors.Is(err, pipeline.ErrAllCategoriesFailed) {
			// Surface the per-category statuses before failing
			result := &OutputResult{CollectedAt: time.Now().UTC(), Summary: summary}
			WriteOutput(os.Stdout, result, format, flagVerbose)
		}
		return fmt.Errorf("running collection: %w", err)
	}

	masterPath, err := store.WriteTable(master, "master.csv")
	if err != nil {
		return fmt.Errorf("writing master table: %w", err)
	}

	summaryPath, err := store.WriteSummary(summary, "summary.json")
	if err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}

	result := &OutputResult{
		CollectedAt: time.Now().UTC(),
		MasterPath:  masterPath,
		SummaryPath: summaryPath,
		Summary:     summary,
	}
	if err := WriteOutput(os.Stdout, result, format, flagVerbose); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if flagVerbose {
		dumpMetrics(os.Stderr)
	}

	if len(summary.Failed()) > 0 {
		os.Exit(ExitFailedCategories)
	}
	os.Exit(ExitSuccess)

	return nil
}

// splitIDs parses a comma-separated ID list, dropping empty entries
func splitIDs(s string) []string {
	var ids []string
	for _, part := range strings.Split(s, ",") {
		if id := strings.TrimSpace(part); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// envOr returns the environment value when set, otherwise fallback
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// dumpMetrics writes the metrics snapshot for verbose runs
func dumpMetrics(w *os.File) {
	snapshot := logger.GetMetricsSnapshot()
	fmt.Fprintf(w, "Metrics: %v\n", snapshot)
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
