package record

import (
	"strconv"
	"strings"
	"time"
)

// Layout selects the column positions of an episode feed.
type Layout struct {
	DateField  int
	TitleField int
	DateSep    string
}

var (
	// MazeLayout is used for feeds fetched by Maze identifier:
	// number, season, episode, airdate, title, link.
	MazeLayout = Layout{DateField: 3, TitleField: 4, DateSep: " "}
	// RageLayout is used for feeds fetched by Rage identifier:
	// number, season, episode, production code, airdate, title, special, rage.
	RageLayout = Layout{DateField: 4, TitleField: 5, DateSep: "/"}
)

// LayoutFor returns the layout of the feed that would be fetched for s.
func LayoutFor(s Series) Layout {
	if src, _ := s.IDs.Preferred(); src == SourceRage {
		return RageLayout
	}
	return MazeLayout
}

// Episode is one line of an episode feed. Series refers to the owning series
// by key; it never holds the series itself.
type Episode struct {
	Raw     string    `json:"-"`
	Number  string    `json:"number"`
	Name    string    `json:"name"`
	Date    time.Time `json:"date,omitzero"`
	HasDate bool      `json:"has_date"`
	Series  Key       `json:"series"`
}

// ParseEpisode parses one episode line belonging to owner. A candidate line
// starts with a digit or with "S" for specials.
func ParseEpisode(line string, owner Series) (Episode, bool) {
	line = TrimLineEnd(line)
	if line == "" {
		return Episode{}, false
	}
	if c := line[0]; !(c >= '0' && c <= '9') && c != 'S' {
		return Episode{}, false
	}

	fields := SplitFields(line)
	layout := LayoutFor(owner)
	ep := Episode{
		Raw:    line,
		Number: FormatNumber(field(fields, 0), field(fields, 1), field(fields, 2)),
		Name:   field(fields, layout.TitleField),
		Series: owner.Key(),
	}
	if date, ok := ParseAirDate(field(fields, layout.DateField), layout.DateSep, owner.StartYear); ok {
		ep.Date = date
		ep.HasDate = true
	}
	return ep, true
}

// FormatNumber builds the display number: season followed by the episode
// number zero-padded to two digits, prefixed with "S" when the lead field
// marks a special.
func FormatNumber(lead, season, episode string) string {
	season = strings.TrimSpace(season)
	episode = strings.TrimSpace(episode)
	if len(episode) == 1 {
		episode = "0" + episode
	}
	number := season + episode
	if strings.HasPrefix(lead, "S") {
		number = "S" + number
	}
	return number
}

// Label returns the clipboard form "<series> <number> - <title>".
func (e Episode) Label(seriesName string) string {
	return seriesName + " " + e.Number + " - " + e.Name
}

// Upcoming reports whether the episode airs after the calendar day of now.
// Episodes without a date are never upcoming.
func (e Episode) Upcoming(now time.Time) bool {
	if !e.HasDate {
		return false
	}
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return e.Date.After(today)
}

var months = map[string]time.Month{
	"Jan": time.January,
	"Feb": time.February,
	"Mar": time.March,
	"Apr": time.April,
	"May": time.May,
	"Jun": time.June,
	"Jul": time.July,
	"Aug": time.August,
	"Sep": time.September,
	"Oct": time.October,
	"Nov": time.November,
	"Dec": time.December,
}

// ParseAirDate parses "DD Mon YY" (or "DD/Mon/YY" with sep "/") into a UTC
// calendar date, resolving the century against startYear (0 when unknown,
// which yields 19YY). It fails when the month abbreviation is not recognised
// or the day does not exist in that month.
func ParseAirDate(value, sep string, startYear int) (time.Time, bool) {
	parts := strings.Split(strings.TrimSpace(value), sep)
	if len(parts) != 3 {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, false
	}
	month, ok := months[strings.TrimSpace(parts[1])]
	if !ok {
		return time.Time{}, false
	}
	yy, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil || yy < 0 || yy > 99 {
		return time.Time{}, false
	}

	year := ResolveYear(yy, startYear)
	date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if date.Day() != day || date.Month() != month {
		return time.Time{}, false
	}
	return date, true
}

// ResolveYear expands a two-digit year: 1900+yy, plus a century when that
// lands before the series started.
func ResolveYear(yy, startYear int) int {
	year := 1900 + yy
	if year < startYear {
		year += 100
	}
	return year
}
