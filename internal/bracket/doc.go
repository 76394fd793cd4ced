// Package bracket scrapes tournament bracket data for a given year.
//
// Bracket pages carry no stable markup contract, so extraction works off
// class-name heuristics and degrades through explicit tiers: full game data
// (teams, scores, round, region, winner) when game blocks can be parsed,
// seeds and team names only when they cannot, and an empty table when neither
// heuristic matches. Results flow through the same Table abstraction as the
// statistics pipeline so they share the CSV sink.
package bracket
