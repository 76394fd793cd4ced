// Package cli implements the command-line interface for ncaa-stats.
//
// The cli package provides the Cobra-based CLI for running a full statistics
// collection (the root command) and for scraping tournament brackets (the
// bracket subcommand). It coordinates the fetch, pipeline, bracket, and
// export packages to collect, merge, persist, and report on NCAA team data,
// with text or JSON summary output.
package cli
