// Package catalog keeps the in-memory series catalog, the favourites list and
// the resident episode list.
//
// Series are deduplicated on their Maze/Rage key; the first instance wins.
// Favourites are stored as values so they outlive catalog replacement.
package catalog
