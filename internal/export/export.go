package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pfrederiksen/ncaa-stats/internal/report"
	"github.com/pfrederiksen/ncaa-stats/internal/table"
)

// Store writes run output files under a single directory
type Store struct {
	dir string
}

// New creates a Store rooted at dir, creating it when missing
func New(dir string) (*Store, error) {
	// Expand ~ to home directory
	if strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dir = filepath.Join(home, dir[2:])
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Store{
		dir: dir,
	}, nil
}

// Dir returns the resolved output directory
func (s *Store) Dir() string {
	return s.dir
}

// WriteTable writes a table as CSV under name and returns the full path
func (s *Store) WriteTable(t *table.Table, name string) (string, error) {
	path := filepath.Join(s.dir, name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", name, err)
	}
	defer f.Close()

	if err := table.WriteCSV(f, t); err != nil {
		return "", fmt.Errorf("writing %s: %w", name, err)
	}

	return path, nil
}

// WriteSummary writes the run summary as indented JSON under name and returns
// the full path
func (s *Store) WriteSummary(sum *report.Summary, name string) (string, error) {
	path := filepath.Join(s.dir, name)

	data, err := json.MarshalIndent(sum, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding summary: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing summary: %w", err)
	}

	return path, nil
}
