// Package record parses the comma-separated catalog and episode feeds into
// typed series and episode values.
//
// Parsing is tolerant: a line that does not look like a record is skipped,
// missing trailing fields become empty strings, and an unparseable air date
// leaves the episode without a date instead of failing the whole line. Every
// parsed value keeps its raw source line so caches can be rewritten byte for
// byte.
//
// Two episode layouts exist. Feeds fetched by Maze identifier carry the air
// date in field 3 ("02 Oct 06") and the title in field 4; feeds fetched by
// Rage identifier carry the date in field 4 ("02/Oct/06") and the title in
// field 5. Two-digit years are resolved against the owning series' start year.
package record
