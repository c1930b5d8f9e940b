package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"seriesapp/internal/cache"
	"seriesapp/internal/catalog"
	"seriesapp/internal/record"
)

const airDateLayout = "2006-01-02"

// writeJSON prints v as indented JSON. Series names such as "Law & Order"
// are written as-is rather than HTML-escaped.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type rowView struct {
	Row       int           `json:"row"`
	Favourite bool          `json:"favourite"`
	Series    record.Series `json:"series"`
}

type episodeView struct {
	record.Episode
	Upcoming bool   `json:"upcoming"`
	Label    string `json:"label"`
}

type episodesView struct {
	Series    record.Series `json:"series"`
	Favourite bool          `json:"favourite"`
	Age       cache.Age     `json:"age"`
	Episodes  []episodeView `json:"episodes"`
}

func rowViews(rows []catalog.Row) []rowView {
	out := make([]rowView, 0, len(rows))
	for i, r := range rows {
		out = append(out, rowView{Row: i + 1, Favourite: r.Favourite, Series: r.Series})
	}
	return out
}

func episodeViews(s record.Series, eps []record.Episode, now time.Time) []episodeView {
	out := make([]episodeView, 0, len(eps))
	for _, ep := range eps {
		out = append(out, episodeView{Episode: ep, Upcoming: ep.Upcoming(now), Label: ep.Label(s.Name)})
	}
	return out
}

func printRows(w io.Writer, rows []catalog.Row) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No series match")
		return
	}
	table := make([][]string, 0, len(rows))
	for i, r := range rows {
		fav := ""
		if r.Favourite {
			fav = "★"
		}
		year := ""
		if r.Series.StartYear > 0 {
			year = strconv.Itoa(r.Series.StartYear)
		}
		table = append(table, []string{
			strconv.Itoa(i + 1),
			fav,
			r.Series.Name,
			r.Series.IDs.Maze,
			r.Series.IDs.Rage,
			year,
		})
	}
	fmt.Fprintln(w, renderTable(w,
		[]string{"#", "Fav", "Series", "Maze", "Rage", "Started"},
		table,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignRight, alignRight},
	))
}

func printEpisodes(w io.Writer, s record.Series, eps []record.Episode, now time.Time) {
	if len(eps) == 0 {
		fmt.Fprintf(w, "No episodes listed for %s\n", s.Name)
		return
	}
	table := make([][]string, 0, len(eps))
	for _, ep := range eps {
		aired := "-"
		if ep.HasDate {
			aired = ep.Date.Format(airDateLayout)
		}
		status := "aired"
		switch {
		case !ep.HasDate:
			status = ""
		case ep.Upcoming(now):
			status = "upcoming"
		}
		table = append(table, []string{ep.Number, ep.Name, aired, status})
	}
	fmt.Fprintf(w, "%s\n", s.Name)
	fmt.Fprintln(w, renderTable(w,
		[]string{"Episode", "Title", "Aired", "Status"},
		table,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
	))
}

func printLabels(w io.Writer, s record.Series, eps []record.Episode) {
	for _, ep := range eps {
		fmt.Fprintln(w, ep.Label(s.Name))
	}
}

func printCacheStatus(w io.Writer, dir string, files []cache.FileStatus) {
	fmt.Fprintf(w, "Data directory: %s\n", dir)
	table := make([][]string, 0, len(files))
	episodes := 0
	for _, f := range files {
		if f.Present && isEpisodeCache(f.Name) {
			episodes++
		}
		age := f.Age.String()
		if !f.Present {
			age = "missing"
		}
		table = append(table, []string{f.Name, yesNo(f.Present), strconv.Itoa(f.Lines), age})
	}
	fmt.Fprintln(w, renderTable(w,
		[]string{"File", "Present", "Lines", "Age"},
		table,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
	))
	fmt.Fprintf(w, "Episode caches: %d\n", episodes)
}

func isEpisodeCache(name string) bool {
	return name != cache.SeriesListFile && name != cache.FavouritesFile && name != cache.SettingsFile
}
