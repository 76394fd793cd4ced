package table

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrNoTable is returned when the markup contains no table element.
// Callers treat this as a skippable page, not a fatal failure.
var ErrNoTable = errors.New("no table found in document")

// MalformedTableError indicates a body row whose cell count disagrees with the
// header row. The whole page is skipped rather than guessing at alignment.
type MalformedTableError struct {
	RowIndex  int
	WantCells int
	GotCells  int
}

func (e *MalformedTableError) Error() string {
	return fmt.Sprintf("malformed table: row %d has %d cells, header has %d",
		e.RowIndex, e.GotCells, e.WantCells)
}

// ExtractFromReader parses markup from r and extracts the first table
func ExtractFromReader(r io.Reader) (*Table, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return Extract(doc)
}

// Extract locates the first table in the document and converts it into a
// Table. Only the first table is considered; stat pages on ncaa.com carry a
// single data table and anything after it is navigation chrome.
func Extract(doc *goquery.Document) (*Table, error) {
	tbl := doc.Find("table").First()
	if tbl.Length() == 0 {
		return nil, ErrNoTable
	}

	columns, headerInBody := extractHeader(tbl)
	if len(columns) == 0 {
		return nil, ErrNoTable
	}

	out := New(columns)

	bodyRows := tbl.Find("tbody tr")
	if bodyRows.Length() == 0 {
		bodyRows = tbl.Find("tr").Not("thead tr")
	}

	var malformed *MalformedTableError
	rowIndex := 0
	bodyRows.EachWithBreak(func(i int, tr *goquery.Selection) bool {
		// When the header lives in the body's first tr, skip it
		if headerInBody && i == 0 {
			return true
		}

		cells := tr.Find("td, th")
		if cells.Length() == 0 {
			return true
		}
		if cells.Length() != len(columns) {
			malformed = &MalformedTableError{
				RowIndex:  rowIndex,
				WantCells: len(columns),
				GotCells:  cells.Length(),
			}
			return false
		}

		row := make(Row, len(columns))
		cells.Each(func(j int, cell *goquery.Selection) {
			row[columns[j]] = strings.TrimSpace(cell.Text())
		})
		out.Append(row)
		rowIndex++
		return true
	})

	if malformed != nil {
		return nil, malformed
	}

	return out, nil
}

// extractHeader returns the column names and whether the header row was taken
// from the table body (no thead present). Duplicate header text is
// disambiguated with a positional suffix so column names stay unique.
func extractHeader(tbl *goquery.Selection) ([]string, bool) {
	headerInBody := false
	headerRow := tbl.Find("thead tr").First()
	if headerRow.Length() == 0 {
		headerRow = tbl.Find("tr").First()
		headerInBody = true
	}

	var columns []string
	seen := make(map[string]int)
	headerRow.Find("th, td").Each(func(i int, cell *goquery.Selection) {
		name := strings.TrimSpace(cell.Text())
		if name == "" {
			name = fmt.Sprintf("Column%d", i+1)
		}
		seen[name]++
		if n := seen[name]; n > 1 {
			name = fmt.Sprintf("%s_%d", name, n)
		}
		columns = append(columns, name)
	})

	return columns, headerInBody
}
