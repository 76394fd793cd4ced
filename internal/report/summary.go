package report

import (
	"time"

	"github.com/pfrederiksen/ncaa-stats/internal/category"
)

// Status is a category's terminal state after collection
type Status string

const (
	// StatusOK means every discovered page contributed rows
	StatusOK Status = "ok"
	// StatusPartial means the category yielded rows but some pages were
	// skipped or dropped
	StatusPartial Status = "partial"
	// StatusEmpty means no page yielded rows; the category contributes
	// nothing to the merge
	StatusEmpty Status = "empty"
)

// CategoryReport is the per-category entry in the run summary
type CategoryReport struct {
	ID     string             `json:"id"`
	URL    string             `json:"url"`
	Status Status             `json:"status"`
	Pages  category.PageStats `json:"pages"`
	Rows   int                `json:"rows"`
}

// Summary is the structured report for one collection run
type Summary struct {
	StartedAt  time.Time        `json:"started_at"`
	FinishedAt time.Time        `json:"finished_at"`
	Categories []CategoryReport `json:"categories"`
	Teams      int              `json:"teams"`
	Columns    int              `json:"columns"`
}

// Add appends a category report, deriving its status from the counts
func (s *Summary) Add(id, url string, stats category.PageStats, rows int) {
	status := StatusOK
	switch {
	case rows == 0:
		status = StatusEmpty
	case stats.Skipped > 0 || stats.Drifted > 0:
		status = StatusPartial
	}

	s.Categories = append(s.Categories, CategoryReport{
		ID:     id,
		URL:    url,
		Status: status,
		Pages:  stats,
		Rows:   rows,
	})
}

// Failed returns the IDs of categories that yielded no rows
func (s *Summary) Failed() []string {
	var ids []string
	for _, c := range s.Categories {
		if c.Status == StatusEmpty {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

// AllFailed reports whether every category yielded no rows
func (s *Summary) AllFailed() bool {
	return len(s.Categories) > 0 && len(s.Failed()) == len(s.Categories)
}
