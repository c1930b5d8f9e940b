package orchestrator

import (
	"seriesapp/internal/cache"
	"seriesapp/internal/record"
)

// Mode is the fetch state of the orchestrator.
type Mode int

const (
	ModeIdle Mode = iota
	ModeFetchingSeriesList
	ModeFetchingEpisodeList
)

func (m Mode) String() string {
	switch m {
	case ModeFetchingSeriesList:
		return "fetching_series_list"
	case ModeFetchingEpisodeList:
		return "fetching_episode_list"
	default:
		return "idle"
	}
}

// View is what the consumer is currently showing.
type View int

const (
	ViewNone View = iota
	ViewSeries
	ViewEpisodes
)

func (v View) String() string {
	switch v {
	case ViewSeries:
		return "series"
	case ViewEpisodes:
		return "episodes"
	default:
		return "none"
	}
}

// Session is the mutable state of one interactive session.
type Session struct {
	Mode  Mode
	View  View
	Query string

	Current    record.Series
	HasCurrent bool
	// CurrentIsFavourite is set when the current series was opened from a
	// favourite row or favourited while shown.
	CurrentIsFavourite bool

	// ListAge is the age of the list most recently shown.
	ListAge  cache.Age
	Settings cache.Settings
}
