// Package main hosts the seriesapp CLI entrypoint and command graph.
//
// Each command opens the data directory, starts an orchestrator session, and
// renders the events it emits: tables on stdout, status and error messages on
// stderr. The browse command keeps one session alive and drives it from
// stdin, applying fetch completions as they arrive.
package main
