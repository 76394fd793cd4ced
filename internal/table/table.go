package table

// Row maps column names to cell values. The column order lives on the owning
// Table; every row in a Table carries exactly the table's column set.
type Row map[string]string

// Table is an ordered sequence of rows plus an ordered sequence of column names
type Table struct {
	Columns []string
	Rows    []Row
}

// New creates an empty table with the given column order
func New(columns []string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{
		Columns: cols,
		Rows:    make([]Row, 0),
	}
}

// HasColumn reports whether the table contains the named column
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Append adds a row to the table. Missing columns are filled with the empty
// string so the table invariant (row keys == table columns) holds.
func (t *Table) Append(row Row) {
	r := make(Row, len(t.Columns))
	for _, c := range t.Columns {
		r[c] = row[c]
	}
	t.Rows = append(t.Rows, r)
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.Rows)
}

// SameColumns reports whether the table's column set equals the given set,
// ignoring order. Used to detect cross-page schema drift within a category.
func (t *Table) SameColumns(columns []string) bool {
	if len(t.Columns) != len(columns) {
		return false
	}
	seen := make(map[string]bool, len(t.Columns))
	for _, c := range t.Columns {
		seen[c] = true
	}
	for _, c := range columns {
		if !seen[c] {
			return false
		}
	}
	return true
}
