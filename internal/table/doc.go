// Package table provides the tabular data model shared by the collection pipeline.
//
// The table package defines the Row and Table types used to carry scraped NCAA
// statistics between pipeline stages, extracts the first HTML table from a page
// into a Table, and exports Tables as CSV with a header row matching the
// table's column order. Cell values stay as strings at this layer; numeric
// interpretation happens downstream at merge time.
package table
