package merge

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pfrederiksen/ncaa-stats/internal/table"
)

// Category pairs a statistic category's ID with its collected table
type Category struct {
	ID    string
	Table *table.Table
}

// Options configures a merge
type Options struct {
	// JoinKey is the column used to align rows across categories,
	// by convention "Team"
	JoinKey string
	// FillDefault is the value filled into absent cells of numeric-looking
	// columns, by convention "0". Absent cells of text columns stay empty.
	FillDefault string
}

// Merge performs a full outer join of the category tables on the join key,
// in the exact order supplied. The first category seeds the master table in
// full, including metadata columns it owns exclusively (e.g. Rank); a later
// category contributing an already-present column name has that column
// dropped. Join key values are normalized (trimmed) identically for every
// category before comparison.
func Merge(categories []Category, opts Options) (*table.Table, error) {
	if opts.JoinKey == "" {
		opts.JoinKey = "Team"
	}

	master := table.New([]string{opts.JoinKey})
	index := make(map[string]table.Row)
	var order []string

	for _, cat := range categories {
		if cat.Table == nil {
			continue
		}
		if !cat.Table.HasColumn(opts.JoinKey) {
			return nil, fmt.Errorf("category %s: missing join column %q", cat.ID, opts.JoinKey)
		}

		// Columns this category contributes: everything not already present.
		// Colliding names are dropped, first-seen-wins.
		var fresh []string
		for _, col := range cat.Table.Columns {
			if col == opts.JoinKey || master.HasColumn(col) {
				continue
			}
			fresh = append(fresh, col)
			master.Columns = append(master.Columns, col)
		}

		for _, row := range cat.Table.Rows {
			key := normalizeKey(row[opts.JoinKey])
			if key == "" {
				continue
			}

			existing, ok := index[key]
			if !ok {
				existing = table.Row{opts.JoinKey: key}
				index[key] = existing
				order = append(order, key)
			}
			for _, col := range fresh {
				if _, present := existing[col]; !present {
					existing[col] = row[col]
				}
			}
		}
	}

	fillDefaults(master, index, order, opts)

	for _, key := range order {
		master.Rows = append(master.Rows, index[key])
	}

	return master, nil
}

// fillDefaults completes the outer join: teams absent from a category get the
// fill default in that category's numeric-looking columns and the empty
// string elsewhere.
func fillDefaults(master *table.Table, index map[string]table.Row, order []string, opts Options) {
	for _, col := range master.Columns {
		if col == opts.JoinKey {
			continue
		}

		numeric := columnLooksNumeric(index, order, col)
		for _, key := range order {
			row := index[key]
			if _, present := row[col]; !present {
				if numeric {
					row[col] = opts.FillDefault
				} else {
					row[col] = ""
				}
			}
		}
	}
}

// columnLooksNumeric reports whether every present, non-empty value in the
// column parses as a number
func columnLooksNumeric(index map[string]table.Row, order []string, col string) bool {
	found := false
	for _, key := range order {
		v, present := index[key][col]
		if !present || v == "" {
			continue
		}
		if !looksNumeric(v) {
			return false
		}
		found = true
	}
	return found
}

// looksNumeric accepts plain numbers plus the comma-grouped form the site
// uses for large totals (e.g. "1,024")
func looksNumeric(s string) bool {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// normalizeKey produces the canonical join key form. Applied identically to
// every category so rows don't silently fail to join.
func normalizeKey(v string) string {
	return strings.TrimSpace(v)
}
