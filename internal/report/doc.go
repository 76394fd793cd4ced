// Package report assembles the end-of-run summary for a collection run.
//
// The summary lists every category with its terminal status (ok, partial, or
// empty) plus page counts and row totals, so silently dropped data is always
// observable. A category that yielded no rows is recorded as empty but does
// not stop the run; the run as a whole fails only when every category is
// empty.
package report
