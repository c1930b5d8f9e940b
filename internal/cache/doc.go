// Package cache persists the catalog, favourites, per-series episode lists and
// user settings as plain-text files in a single data directory.
//
// # Files
//
//	seriesList.txt                         one raw series line per line
//	seriesListFavourites.txt               one raw series line per line
//	epscache_<maze>_<rage>_<directory>.txt one raw episode line per line
//	seriesSettings.txt                     "key value" pairs
//
// Files are rewritten atomically through a temp file and rename. A missing,
// unreadable or empty file is reported as ErrCacheMiss so callers can fall
// back to the network. File age in whole days is advisory only and never
// triggers a refresh by itself.
package cache
