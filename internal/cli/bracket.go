package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/ncaa-stats/internal/bracket"
	"github.com/pfrederiksen/ncaa-stats/internal/export"
	"github.com/pfrederiksen/ncaa-stats/internal/fetch"
	"github.com/pfrederiksen/ncaa-stats/internal/logger"
)

var (
	flagYear  int
	flagYears string
)

// newBracketCmd creates the bracket subcommand
func newBracketCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bracket",
		Short: "Scrape tournament bracket data for one or more years",
		Long: `Scrapes the full tournament bracket page for each requested year.
Extraction degrades through tiers: full game data when the page's game blocks
can be parsed, seeds and team names otherwise. Each year's table is written as
bracket_YEAR.csv in the output directory.`,
		RunE: runBracket,
	}

	cmd.Flags().IntVar(&flagYear, "year", 0, "Tournament year (e.g. 2024)")
	cmd.Flags().StringVar(&flagYears, "years", "", "Inclusive year range (e.g. 2015-2024)")

	return cmd
}

// runBracket is the bracket subcommand logic
func runBracket(cmd *cobra.Command, args []string) error {
	years, err := bracketYears()
	if err != nil {
		return err
	}

	if flagVerbose {
		logger.SetDefault(logger.New(logger.LevelDebug, os.Stderr))
	}

	store, err := export.New(flagOut)
	if err != nil {
		return fmt.Errorf("initializing output: %w", err)
	}

	fetcher := fetch.New(fetch.Options{
		Timeout: flagTimeout,
		Delay:   flagDelay,
	})
	scraper := bracket.New(fetcher, flagBaseURL)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	failed := 0
	for _, year := range years {
		if err := ctx.Err(); err != nil {
			return err
		}

		tbl, tier, err := scraper.Collect(ctx, year)
		if err != nil {
			logger.Error("Bracket collection failed", logger.Fields{"year": year}, err)
			failed++
			continue
		}
		if tier == bracket.TierEmpty {
			logger.Warn("Bracket page yielded no data", logger.Fields{"year": year})
			failed++
			continue
		}

		name := fmt.Sprintf("bracket_%d.csv", year)
		path, err := store.WriteTable(tbl, name)
		if err != nil {
			return fmt.Errorf("writing bracket table: %w", err)
		}

		fmt.Printf("%d: %d rows (%s) -> %s\n", year, tbl.Len(), tier, path)
	}

	if failed == len(years) {
		return fmt.Errorf("no bracket data collected for any year")
	}

	return nil
}

// bracketYears resolves the --year / --years flags into a year list
func bracketYears() ([]int, error) {
	if flagYear != 0 && flagYears != "" {
		return nil, fmt.Errorf("--year and --years are mutually exclusive")
	}

	if flagYear != 0 {
		return []int{flagYear}, nil
	}

	if flagYears == "" {
		return nil, fmt.Errorf("one of --year or --years is required")
	}

	parts := strings.SplitN(flagYears, "-", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid --years range: %s (expected e.g. 2015-2024)", flagYears)
	}

	from, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return nil, fmt.Errorf("invalid --years start: %s", parts[0])
	}
	to, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, fmt.Errorf("invalid --years end: %s", parts[1])
	}
	if to < from {
		return nil, fmt.Errorf("invalid --years range: %d-%d", from, to)
	}

	years := make([]int, 0, to-from+1)
	for y := from; y <= to; y++ {
		years = append(years, y)
	}
	return years, nil
}
