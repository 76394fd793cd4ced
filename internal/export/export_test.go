package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pfrederiksen/ncaa-stats/internal/category"
	"github.com/pfrederiksen/ncaa-stats/internal/report"
	"github.com/pfrederiksen/ncaa-stats/internal/table"
)

func TestWriteTable(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	tbl := table.New([]string{"Team", "Pts"})
	tbl.Append(table.Row{"Team": "Duke", "Pts": "80"})

	path, err := store.WriteTable(tbl, "master.csv")
	if err != nil {
		t.Fatalf("WriteTable failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading written file: %v", err)
	}
	if string(data) != "Team,Pts\nDuke,80\n" {
		t.Errorf("file contents = %q", string(data))
	}
}

func TestWriteSummary(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	var sum report.Summary
	sum.Add("474", "u", category.PageStats{Collected: 2}, 100)

	path, err := store.WriteSummary(&sum, "summary.json")
	if err != nil {
		t.Fatalf("WriteSummary failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading written file: %v", err)
	}

	var decoded report.Summary
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("summary is not valid JSON: %v", err)
	}
	if len(decoded.Categories) != 1 || decoded.Categories[0].ID != "474" {
		t.Errorf("decoded summary = %+v", decoded)
	}
}

func TestNewCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	store, err := New(dir)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	info, err := os.Stat(store.Dir())
	if err != nil || !info.IsDir() {
		t.Errorf("output directory was not created: %v", err)
	}
}

func TestNewExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory available")
	}

	store, err := New("~/.cache/ncaa-stats-test")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer os.RemoveAll(store.Dir())

	if !strings.HasPrefix(store.Dir(), home) {
		t.Errorf("Dir() = %q, want under %q", store.Dir(), home)
	}
}
