package fetch

import (
	"errors"
	"net/url"
	"strings"

	"seriesapp/internal/record"
)

// DefaultBaseURL is the feed host.
const DefaultBaseURL = "https://epguides.com"

const (
	catalogPath     = "/common/allshows.txt"
	mazeEpisodePath = "/common/exportToCSVmaze.asp"
	rageEpisodePath = "/common/exportToCSV.asp"
)

// ErrNoIdentifier reports a series that carries neither a Maze nor a Rage
// number, so no episode feed can be requested.
var ErrNoIdentifier = errors.New("series has no maze or rage number")

// Endpoints builds the feed URLs for one host.
type Endpoints struct {
	BaseURL string
}

func (e Endpoints) base() string {
	base := strings.TrimRight(strings.TrimSpace(e.BaseURL), "/")
	if base == "" {
		return DefaultBaseURL
	}
	return base
}

// Catalog returns the URL of the full series list.
func (e Endpoints) Catalog() string {
	return e.base() + catalogPath
}

// Episodes returns the episode feed URL for ids, preferring the Maze number.
func (e Endpoints) Episodes(ids record.IDs) (string, error) {
	src, id := ids.Preferred()
	switch src {
	case record.SourceMaze:
		return e.base() + mazeEpisodePath + "?maze=" + url.QueryEscape(id), nil
	case record.SourceRage:
		return e.base() + rageEpisodePath + "?rage=" + url.QueryEscape(id), nil
	default:
		return "", ErrNoIdentifier
	}
}
