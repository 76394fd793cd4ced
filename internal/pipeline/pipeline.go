package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pfrederiksen/ncaa-stats/internal/category"
	"github.com/pfrederiksen/ncaa-stats/internal/logger"
	"github.com/pfrederiksen/ncaa-stats/internal/merge"
	"github.com/pfrederiksen/ncaa-stats/internal/report"
	"github.com/pfrederiksen/ncaa-stats/internal/table"
)

const (
	// DefaultBaseURL is the public site root
	DefaultBaseURL = "https://www.ncaa.com"

	// statPath is the team-statistics path for one category ID
	statPath = "/stats/basketball-men/d1/current/team/%s"

	// DefaultJoinKey is the column shared by every stat table
	DefaultJoinKey = "Team"

	// DefaultFillDefault pads numeric columns for teams absent from a category
	DefaultFillDefault = "0"
)

// ErrAllCategoriesFailed is returned when no category yields any rows.
// Distinct from a run that succeeded with some empty categories.
var ErrAllCategoriesFailed = errors.New("all categories failed")

// Config is the run configuration for a collection pipeline
type Config struct {
	// BaseURL is the site root; category and pagination URLs resolve
	// against it
	BaseURL string
	// CategoryIDs are the stat categories to collect, processed strictly
	// in this order
	CategoryIDs []string
	// JoinKey is the merge column, "Team" when empty
	JoinKey string
	// FillDefault pads absent numeric cells after the outer join,
	// "0" when empty
	FillDefault string
}

// Pipeline runs a sequential collection across categories
type Pipeline struct {
	fetcher category.Fetcher
	cfg     Config
}

// New creates a Pipeline. Zero-value config fields fall back to the defaults.
func New(fetcher category.Fetcher, cfg Config) *Pipeline {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.JoinKey == "" {
		cfg.JoinKey = DefaultJoinKey
	}
	if cfg.FillDefault == "" {
		cfg.FillDefault = DefaultFillDefault
	}
	return &Pipeline{
		fetcher: fetcher,
		cfg:     cfg,
	}
}

// CategoryURL returns the start URL for a stat category
func (p *Pipeline) CategoryURL(id string) string {
	return p.cfg.BaseURL + fmt.Sprintf(statPath, id)
}

// Run collects every configured category in order and merges the results into
// the master table. Cancellation is checked at category boundaries; a run
// aborted mid-category finishes that category first. The summary is always
// returned, even alongside an error.
func (p *Pipeline) Run(ctx context.Context) (*table.Table, *report.Summary, error) {
	summary := &report.Summary{StartedAt: time.Now().UTC()}

	var collected []merge.Category
	for _, id := range p.cfg.CategoryIDs {
		if err := ctx.Err(); err != nil {
			summary.FinishedAt = time.Now().UTC()
			return nil, summary, err
		}

		startURL := p.CategoryURL(id)
		logger.Info("Collecting category", logger.Fields{
			"category": id,
			"url":      startURL,
		})

		// Pagination links for one category share its URL path; matching
		// on the path keeps links to other stat categories out
		collector := category.New(p.fetcher, p.cfg.BaseURL, fmt.Sprintf(statPath, id))

		tbl, stats, err := collector.Collect(ctx, startURL)
		if err != nil {
			if !errors.Is(err, category.ErrEmptyCategory) {
				summary.FinishedAt = time.Now().UTC()
				return nil, summary, err
			}
			logger.Warn("Category yielded no rows", logger.Fields{
				"category": id,
			})
			summary.Add(id, startURL, stats, 0)
			continue
		}
		if !tbl.HasColumn(p.cfg.JoinKey) {
			logger.Warn("Category table missing join column", logger.Fields{
				"category": id,
				"join_key": p.cfg.JoinKey,
			})
			summary.Add(id, startURL, stats, 0)
			continue
		}

		summary.Add(id, startURL, stats, tbl.Len())
		collected = append(collected, merge.Category{ID: id, Table: tbl})
	}

	summary.FinishedAt = time.Now().UTC()

	if len(collected) == 0 {
		return nil, summary, ErrAllCategoriesFailed
	}

	master, err := merge.Merge(collected, merge.Options{
		JoinKey:     p.cfg.JoinKey,
		FillDefault: p.cfg.FillDefault,
	})
	if err != nil {
		return nil, summary, fmt.Errorf("merging categories: %w", err)
	}

	summary.Teams = master.Len()
	summary.Columns = len(master.Columns)
	logger.SetGauge("run.teams", float64(master.Len()))
	logger.SetGauge("run.columns", float64(len(master.Columns)))

	return master, summary, nil
}
