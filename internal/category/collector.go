package category

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/pfrederiksen/ncaa-stats/internal/links"
	"github.com/pfrederiksen/ncaa-stats/internal/logger"
	"github.com/pfrederiksen/ncaa-stats/internal/table"
)

// ErrEmptyCategory is returned when no page of a category yields a table.
// Recoverable at category granularity: the run continues without it.
var ErrEmptyCategory = errors.New("category yielded no rows")

// Fetcher retrieves raw markup for a URL. Implemented by fetch.Fetcher;
// any failure is treated as a missing page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// PageStats records per-page outcomes for one category collection
type PageStats struct {
	Discovered int `json:"discovered"`
	Collected  int `json:"collected"`
	Skipped    int `json:"skipped"`
	Drifted    int `json:"drifted"`
}

// Collector collects one statistic category across all of its pages
type Collector struct {
	fetcher Fetcher
	baseURL string
	pattern string
}

// New creates a Collector. Pagination links are recognized by pattern
// (a path substring, e.g. "stats") and resolved against baseURL.
func New(fetcher Fetcher, baseURL, pattern string) *Collector {
	return &Collector{
		fetcher: fetcher,
		baseURL: baseURL,
		pattern: pattern,
	}
}

// Collect fetches startURL, discovers the category's full page set, extracts
// and concatenates each page's table in discovery order, and returns the
// combined table. PageStats is always populated, even on failure. Returns
// ErrEmptyCategory when zero pages yielded a table.
func (c *Collector) Collect(ctx context.Context, startURL string) (*table.Table, PageStats, error) {
	var stats PageStats

	pages, err := c.discover(ctx, startURL)
	if err != nil {
		logger.Warn("Failed to fetch category start page", logger.Fields{
			"url":   startURL,
			"error": err.Error(),
		})
		stats.Skipped++
		return nil, stats, fmt.Errorf("%w: %s", ErrEmptyCategory, startURL)
	}
	stats.Discovered = len(pages)

	var combined *table.Table
	for _, pageURL := range pages {
		tbl, err := c.collectPage(ctx, pageURL)
		if err != nil {
			logger.Warn("Skipping page", logger.Fields{
				"url":   pageURL,
				"error": err.Error(),
			})
			logger.IncrCounter("pages.skipped")
			stats.Skipped++
			continue
		}

		if combined == nil {
			// First successful page establishes the category's schema
			combined = table.New(tbl.Columns)
		} else if !tbl.SameColumns(combined.Columns) {
			logger.Warn("Dropping page with drifted schema", logger.Fields{
				"url":      pageURL,
				"expected": combined.Columns,
				"got":      tbl.Columns,
			})
			logger.IncrCounter("pages.drifted")
			stats.Drifted++
			continue
		}

		for _, row := range tbl.Rows {
			combined.Append(row)
		}
		logger.IncrCounter("pages.collected")
		stats.Collected++
	}

	if combined == nil || combined.Len() == 0 {
		return nil, stats, fmt.Errorf("%w: %s", ErrEmptyCategory, startURL)
	}

	return combined, stats, nil
}

// discover fetches the start page and returns the category's full ordered
// page set. The start URL is always included exactly once, at the front when
// the site's own pagination widget omits a self-link.
func (c *Collector) discover(ctx context.Context, startURL string) ([]string, error) {
	body, err := c.fetcher.Fetch(ctx, startURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	discovered, err := links.Discover(doc, c.pattern, c.baseURL)
	if err != nil {
		return nil, err
	}

	pages := make([]string, 0, len(discovered)+1)
	if !contains(discovered, startURL) {
		pages = append(pages, startURL)
	}
	pages = append(pages, discovered...)

	return pages, nil
}

// collectPage fetches one page and extracts its table
func (c *Collector) collectPage(ctx context.Context, pageURL string) (*table.Table, error) {
	start := time.Now()
	body, err := c.fetcher.Fetch(ctx, pageURL)
	logger.RecordTiming("fetch.page", time.Since(start))
	if err != nil {
		return nil, err
	}

	return table.ExtractFromReader(bytes.NewReader(body))
}

func contains(urls []string, target string) bool {
	for _, u := range urls {
		if u == target {
			return true
		}
	}
	return false
}
