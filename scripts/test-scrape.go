package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pfrederiksen/ncaa-stats/internal/category"
	"github.com/pfrederiksen/ncaa-stats/internal/fetch"
	"github.com/pfrederiksen/ncaa-stats/internal/pipeline"
)

// Manual smoke test: collects a single stat category from the live site and
// prints the first rows. Run with: go run scripts/test-scrape.go [statID]
func main() {
	id := "474"
	if len(os.Args) > 1 {
		id = os.Args[1]
	}

	fetcher := fetch.New(fetch.Options{})
	startURL := pipeline.DefaultBaseURL + fmt.Sprintf("/stats/basketball-men/d1/current/team/%s", id)
	collector := category.New(fetcher, pipeline.DefaultBaseURL,
		fmt.Sprintf("/stats/basketball-men/d1/current/team/%s", id))

	tbl, stats, err := collector.Collect(context.Background(), startURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error collecting category %s: %v\n", id, err)
		os.Exit(1)
	}

	fmt.Printf("Category %s: %d pages collected, %d skipped, %d rows\n",
		id, stats.Collected, stats.Skipped, tbl.Len())
	fmt.Printf("Columns: %v\n", tbl.Columns)

	for i, row := range tbl.Rows {
		if i >= 5 {
			break
		}
		fmt.Printf("  %v\n", row)
	}
}
