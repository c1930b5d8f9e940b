package record

import (
	"strconv"
	"strings"
)

// Source names the external numbering scheme used to fetch an episode feed.
type Source int

const (
	SourceNone Source = iota
	SourceMaze
	SourceRage
)

func (s Source) String() string {
	switch s {
	case SourceMaze:
		return "maze"
	case SourceRage:
		return "rage"
	default:
		return "none"
	}
}

// Key identifies a series by its identifier pair. Two records with the same
// key are the same series regardless of name or directory.
type Key string

// IDs holds the optional Maze and Rage identifiers of a series.
type IDs struct {
	Maze string `json:"maze,omitempty"`
	Rage string `json:"rage,omitempty"`
}

// Key returns the deduplication key "<maze>_<rage>".
func (ids IDs) Key() Key {
	return Key(ids.Maze + "_" + ids.Rage)
}

// Empty reports whether neither identifier is present.
func (ids IDs) Empty() bool {
	return ids.Maze == "" && ids.Rage == ""
}

// Preferred returns the identifier used for episode fetches. Maze wins over
// Rage when both are present.
func (ids IDs) Preferred() (Source, string) {
	switch {
	case ids.Maze != "":
		return SourceMaze, ids.Maze
	case ids.Rage != "":
		return SourceRage, ids.Rage
	default:
		return SourceNone, ""
	}
}

// Series is one line of the catalog feed.
//
// Feed columns: 0 title, 1 directory, 2 rage number, 3 maze number,
// 4 start date ("Sep 2006").
type Series struct {
	Raw       string `json:"-"`
	Name      string `json:"name"`
	Directory string `json:"directory,omitempty"`
	IDs       IDs    `json:"ids"`
	StartDate string `json:"start_date,omitempty"`
	StartYear int    `json:"start_year,omitempty"`
}

// Key returns the series deduplication key.
func (s Series) Key() Key {
	return s.IDs.Key()
}

// ParseSeries parses one catalog line. Lines that do not begin with a double
// quote (headers, blank lines, notes) are rejected.
func ParseSeries(line string) (Series, bool) {
	line = TrimLineEnd(line)
	if line == "" || line[0] != '"' {
		return Series{}, false
	}
	fields := SplitFields(line)
	startDate := strings.TrimSpace(field(fields, 4))
	return Series{
		Raw:       line,
		Name:      field(fields, 0),
		Directory: field(fields, 1),
		IDs: IDs{
			Maze: strings.TrimSpace(field(fields, 3)),
			Rage: strings.TrimSpace(field(fields, 2)),
		},
		StartDate: startDate,
		StartYear: parseStartYear(startDate),
	}, true
}

// parseStartYear reads the year token of a "Mon YYYY" start date. Zero means
// the start year is unknown.
func parseStartYear(value string) int {
	tokens := strings.Fields(value)
	if len(tokens) < 2 {
		return 0
	}
	year, err := strconv.Atoi(tokens[len(tokens)-1])
	if err != nil || year < 1000 || year > 9999 {
		return 0
	}
	return year
}
