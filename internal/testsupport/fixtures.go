package testsupport

// Series list lines in the feed's CSV layout: title, directory, rage number,
// maze number, start date, and trailing columns the parser ignores.
const (
	SeriesDexter    = `"Dexter",Dexter,7926,161,Oct 2006,Sep 2013,96 eps,"60 min","Showtime",US`
	SeriesFirefly   = `"Firefly",Firefly,3548,180,Sep 2002,Dec 2002,14 eps,"60 min","Fox",US`
	SeriesRageOnly  = `"Red Dwarf",RedDwarf,5009,,Feb 1988,Nov 2020,74 eps,"30 min","BBC",UK`
	SeriesNoIDs     = `"Unlisted Show",UnlistedShow,,,Jan 2020,,1 eps,"30 min","Web",US`
	SeriesDuplicate = `"Dexter (again)",Dexter2,7926,161,Oct 2006,Sep 2013,96 eps,"60 min","Showtime",US`
	CatalogHeader   = "title,directory,tvrage,TVmaze,start date,end date,number of episodes,run time,network,country"
)

// Episode lines for SeriesDexter in the Maze layout: number, season,
// episode, airdate, title, link.
const (
	EpisodeDexter101 = `1,1,1,01 Oct 06,"Dexter",https://www.tvmaze.com/episodes/12345`
	EpisodeDexter102 = `2,1,2,08 Oct 06,"Crocodile",https://www.tvmaze.com/episodes/12346`
	EpisodeDexterS01 = `S,1,0,15 Sep 08,"Early Cuts",https://www.tvmaze.com/episodes/12399`
	EpisodeHeader    = "number,season,episode,airdate,title,tvmaze link"
)

// Episode lines for SeriesRageOnly in the Rage layout: number, season,
// episode, production code, airdate, title, special, link.
const (
	EpisodeRedDwarf101 = `1,1,1,"",15/Feb/88,"The End",n,"https://www.tvrage.com/x"`
	EpisodeRedDwarf102 = `2,1,2,"",22/Feb/88,"Future Echoes",n,"https://www.tvrage.com/y"`
)

// Catalog returns a feed body holding the header and lines.
func Catalog(lines ...string) string {
	return Body(append([]string{CatalogHeader}, lines...)...)
}

// Body joins lines into a CRLF terminated feed body.
func Body(lines ...string) string {
	out := ""
	for _, line := range lines {
		out += line + "\r\n"
	}
	return out
}
