package merge

import (
	"testing"

	"github.com/pfrederiksen/ncaa-stats/internal/table"
)

func buildTable(columns []string, rows ...[]string) *table.Table {
	t := table.New(columns)
	for _, r := range rows {
		row := make(table.Row, len(columns))
		for i, col := range columns {
			row[col] = r[i]
		}
		t.Append(row)
	}
	return t
}

func TestMergeEndToEnd(t *testing.T) {
	catA := Category{ID: "A", Table: buildTable(
		[]string{"Team", "Pts"},
		[]string{"Duke", "80"},
		[]string{"UNC", "75"},
	)}
	catB := Category{ID: "B", Table: buildTable(
		[]string{"Team", "Reb"},
		[]string{"Duke", "30"},
		[]string{"Kansas", "28"},
	)}

	master, err := Merge([]Category{catA, catB}, Options{JoinKey: "Team", FillDefault: "0"})
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}

	wantColumns := []string{"Team", "Pts", "Reb"}
	for i, col := range wantColumns {
		if master.Columns[i] != col {
			t.Errorf("column %d = %q, want %q", i, master.Columns[i], col)
		}
	}

	want := []table.Row{
		{"Team": "Duke", "Pts": "80", "Reb": "30"},
		{"Team": "UNC", "Pts": "75", "Reb": "0"},
		{"Team": "Kansas", "Pts": "0", "Reb": "28"},
	}
	if master.Len() != len(want) {
		t.Fatalf("got %d rows, want %d", master.Len(), len(want))
	}
	for i, w := range want {
		for col, v := range w {
			if master.Rows[i][col] != v {
				t.Errorf("row %d %s = %q, want %q", i, col, master.Rows[i][col], v)
			}
		}
	}
}

func TestMergeCollisionDeterminism(t *testing.T) {
	catA := Category{ID: "A", Table: buildTable(
		[]string{"Team", "Pts"},
		[]string{"Duke", "80"},
	)}
	catB := Category{ID: "B", Table: buildTable(
		[]string{"Team", "Pts"},
		[]string{"Duke", "99"},
	)}

	ab, err := Merge([]Category{catA, catB}, Options{JoinKey: "Team"})
	if err != nil {
		t.Fatalf("Merge A,B failed: %v", err)
	}
	if ab.Rows[0]["Pts"] != "80" {
		t.Errorf("A-first Pts = %q, want A's 80 (first-seen-wins)", ab.Rows[0]["Pts"])
	}

	ba, err := Merge([]Category{catB, catA}, Options{JoinKey: "Team"})
	if err != nil {
		t.Fatalf("Merge B,A failed: %v", err)
	}
	if ba.Rows[0]["Pts"] != "99" {
		t.Errorf("B-first Pts = %q, want B's 99 (order changes the winner)", ba.Rows[0]["Pts"])
	}

	// The colliding column must not be suffixed or duplicated
	count := 0
	for _, col := range ab.Columns {
		if col == "Pts" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("Pts appears %d times, want exactly 1", count)
	}
}

func TestMergeIdempotence(t *testing.T) {
	makeA := func() Category {
		return Category{ID: "A", Table: buildTable(
			[]string{"Team", "Rank", "Pts"},
			[]string{"Duke", "1", "80"},
			[]string{"UNC", "2", "75"},
		)}
	}
	catB := Category{ID: "B", Table: buildTable(
		[]string{"Team", "Reb"},
		[]string{"Duke", "30"},
		[]string{"UNC", "25"},
	)}

	alone, err := Merge([]Category{makeA()}, Options{JoinKey: "Team"})
	if err != nil {
		t.Fatalf("Merge A failed: %v", err)
	}
	both, err := Merge([]Category{makeA(), catB}, Options{JoinKey: "Team"})
	if err != nil {
		t.Fatalf("Merge A,B failed: %v", err)
	}

	for i, row := range alone.Rows {
		for _, col := range []string{"Team", "Rank", "Pts"} {
			if both.Rows[i][col] != row[col] {
				t.Errorf("row %d %s changed: alone=%q both=%q",
					i, col, row[col], both.Rows[i][col])
			}
		}
	}
}

func TestMergeOuterJoinCompleteness(t *testing.T) {
	catA := Category{ID: "A", Table: buildTable(
		[]string{"Team", "Pts"},
		[]string{"X", "10"},
	)}
	catB := Category{ID: "B", Table: buildTable(
		[]string{"Team", "Reb"},
		[]string{"Y", "20"},
	)}

	master, err := Merge([]Category{catA, catB}, Options{JoinKey: "Team", FillDefault: "0"})
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}

	if master.Len() != 2 {
		t.Fatalf("got %d rows, want 2 (both one-sided teams present)", master.Len())
	}
	if master.Rows[0]["Team"] != "X" || master.Rows[0]["Reb"] != "0" {
		t.Errorf("X row = %v, want Reb filled to 0", master.Rows[0])
	}
	if master.Rows[1]["Team"] != "Y" || master.Rows[1]["Pts"] != "0" {
		t.Errorf("Y row = %v, want Pts filled to 0", master.Rows[1])
	}
}

func TestMergeFirstCategoryKeepsMetadata(t *testing.T) {
	catA := Category{ID: "A", Table: buildTable(
		[]string{"Rank", "Team", "Pts"},
		[]string{"1", "Duke", "80"},
	)}
	catB := Category{ID: "B", Table: buildTable(
		[]string{"Rank", "Team", "Reb"},
		[]string{"7", "Duke", "30"},
	)}

	master, err := Merge([]Category{catA, catB}, Options{JoinKey: "Team"})
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}

	if master.Rows[0]["Rank"] != "1" {
		t.Errorf("Rank = %q, want first category's 1", master.Rows[0]["Rank"])
	}
}

func TestMergeNormalizesJoinKey(t *testing.T) {
	catA := Category{ID: "A", Table: buildTable(
		[]string{"Team", "Pts"},
		[]string{"  Duke  ", "80"},
	)}
	catB := Category{ID: "B", Table: buildTable(
		[]string{"Team", "Reb"},
		[]string{"Duke", "30"},
	)}

	master, err := Merge([]Category{catA, catB}, Options{JoinKey: "Team"})
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}

	if master.Len() != 1 {
		t.Fatalf("got %d rows, want 1 (whitespace must not split a team)", master.Len())
	}
	if master.Rows[0]["Team"] != "Duke" || master.Rows[0]["Reb"] != "30" {
		t.Errorf("joined row = %v", master.Rows[0])
	}
}

func TestMergeTextColumnFillsEmpty(t *testing.T) {
	catA := Category{ID: "A", Table: buildTable(
		[]string{"Team", "Conference"},
		[]string{"Duke", "ACC"},
	)}
	catB := Category{ID: "B", Table: buildTable(
		[]string{"Team", "Reb"},
		[]string{"Kansas", "28"},
	)}

	master, err := Merge([]Category{catA, catB}, Options{JoinKey: "Team", FillDefault: "0"})
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}

	if master.Rows[1]["Conference"] != "" {
		t.Errorf("Conference for Kansas = %q, want empty (text column, not numeric)",
			master.Rows[1]["Conference"])
	}
	if master.Rows[0]["Reb"] != "0" {
		t.Errorf("Reb for Duke = %q, want 0 (numeric column)", master.Rows[0]["Reb"])
	}
}

func TestMergeCommaGroupedNumbersCountAsNumeric(t *testing.T) {
	catA := Category{ID: "A", Table: buildTable(
		[]string{"Team", "PTS"},
		[]string{"Duke", "2,640"},
	)}
	catB := Category{ID: "B", Table: buildTable(
		[]string{"Team", "Reb"},
		[]string{"Kansas", "28"},
	)}

	master, err := Merge([]Category{catA, catB}, Options{JoinKey: "Team", FillDefault: "0"})
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}

	if master.Rows[1]["PTS"] != "0" {
		t.Errorf("PTS for Kansas = %q, want 0", master.Rows[1]["PTS"])
	}
}

func TestMergeMissingJoinKey(t *testing.T) {
	catA := Category{ID: "A", Table: buildTable(
		[]string{"School", "Pts"},
		[]string{"Duke", "80"},
	)}

	if _, err := Merge([]Category{catA}, Options{JoinKey: "Team"}); err == nil {
		t.Error("expected error for category missing the join column")
	}
}

func TestMergeSkipsNilTables(t *testing.T) {
	catA := Category{ID: "A", Table: buildTable(
		[]string{"Team", "Pts"},
		[]string{"Duke", "80"},
	)}
	empty := Category{ID: "B", Table: nil}

	master, err := Merge([]Category{catA, empty}, Options{JoinKey: "Team"})
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	if master.Len() != 1 {
		t.Errorf("got %d rows, want 1", master.Len())
	}
}
