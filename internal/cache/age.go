package cache

import (
	"fmt"
	"time"
)

// Age is the number of whole calendar days since a cache file was written.
type Age struct {
	Days  int  `json:"days"`
	Known bool `json:"known"`
}

// Fresh is the age of data fetched in the current session.
var Fresh = Age{Days: 0, Known: true}

// AgeOf computes the whole-day difference between the local calendar dates
// of modified and now.
func AgeOf(modified, now time.Time) Age {
	if modified.IsZero() {
		return Age{}
	}
	y1, m1, d1 := modified.In(time.Local).Date()
	y2, m2, d2 := now.In(time.Local).Date()
	from := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	to := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	return Age{Days: int(to.Sub(from).Hours() / 24), Known: true}
}

// String renders "(1 day old)" or "(N days old)". Unknown or negative ages
// render as an empty string.
func (a Age) String() string {
	if !a.Known || a.Days < 0 {
		return ""
	}
	if a.Days == 1 {
		return "(1 day old)"
	}
	return fmt.Sprintf("(%d days old)", a.Days)
}

// Annotate appends the age to msg when it is known.
func (a Age) Annotate(msg string) string {
	if s := a.String(); s != "" {
		return msg + " " + s
	}
	return msg
}
