// Package merge combines per-category tables into one master table.
//
// Categories are merged with a full outer join on the team column: a team
// appearing in only some categories still gets a master row, with absent
// values filled by a default. Column name collisions resolve first-seen-wins
// in category input order. That rule is an intentional contract, not a bug:
// the earliest-appearing definition of a statistic is kept and later
// duplicates are discarded, which keeps runs reproducible. Reordering the
// input categories deliberately changes which category wins a collision.
package merge
