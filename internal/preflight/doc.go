// Package preflight provides readiness checks for the data directory and the
// feed host that seriesapp depends on.
//
// The CLI "seriesapp check" command runs RunAll and prints one line per
// check. Failed checks carry a detail string meant for the user.
package preflight
