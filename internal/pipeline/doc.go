// Package pipeline orchestrates a full team-statistics collection run.
//
// The pipeline processes categories strictly in input order, collecting each
// category's pages sequentially and merging the per-category tables into one
// master table keyed by team. Sequential processing is load-bearing twice
// over: it bounds the request rate against ncaa.com and it keeps column
// collision resolution deterministic, since category order determines which
// category wins a naming collision. Per-category failures become summary
// entries; the run itself fails only when every category comes back empty.
package pipeline
