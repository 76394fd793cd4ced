// Package category collects all pages of one statistic category into a table.
//
// A category is one statistic type on ncaa.com (e.g. scoring offense),
// identified by a numeric stat ID and potentially spanning several paginated
// pages. The collector discovers the category's page set from the start page,
// fetches each page in discovery order, extracts its table, and concatenates
// the rows. Pages that fail to fetch or parse are skipped with a warning;
// pages whose table columns differ from the category's established schema are
// dropped as a data anomaly. A category is only reported as failed when no
// page at all yields rows.
package category
