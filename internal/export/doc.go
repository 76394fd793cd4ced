// Package export persists collection results to the local filesystem.
//
// The export package writes the master statistics table (and bracket tables)
// as CSV files and the run summary as indented JSON, all under a single
// output directory. The default location is ~/.local/share/ncaa-stats/.
package export
