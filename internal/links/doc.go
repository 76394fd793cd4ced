// Package links discovers pagination links within a scraped page.
//
// NCAA stat categories span multiple pages (page 1 -> 2 -> 3) and the site's
// pagination widget renders the same page link more than once in some layouts.
// The discoverer extracts every anchor matching a path pattern, resolves
// relative hrefs against a base URL, and deduplicates by canonical absolute
// URL while preserving first-seen order.
package links
