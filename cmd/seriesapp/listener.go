package main

import (
	"fmt"
	"io"

	"seriesapp/internal/catalog"
	"seriesapp/internal/record"
)

// cliListener prints orchestrator messages and keeps the latest rows and
// episodes for commands that render them afterwards.
type cliListener struct {
	out io.Writer

	rows     []catalog.Row
	series   record.Series
	episodes []record.Episode
	failures []string

	onRows     func([]catalog.Row)
	onEpisodes func(record.Series, []record.Episode)
}

func newCLIListener(out io.Writer) *cliListener {
	return &cliListener{out: out}
}

func (l *cliListener) CatalogUpdated(rows []catalog.Row) {
	l.rows = rows
	if l.onRows != nil {
		l.onRows(rows)
	}
}

func (l *cliListener) EpisodesUpdated(series record.Series, episodes []record.Episode) {
	l.series = series
	l.episodes = episodes
	if l.onEpisodes != nil {
		l.onEpisodes(series, episodes)
	}
}

func (l *cliListener) Status(msg string) {
	fmt.Fprintln(l.out, msg)
}

func (l *cliListener) Error(msg string) {
	l.failures = append(l.failures, msg)
	fmt.Fprintf(l.out, "error: %s\n", msg)
}
