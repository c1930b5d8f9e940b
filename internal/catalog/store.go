package catalog

import (
	"strings"

	"golang.org/x/text/cases"

	"seriesapp/internal/record"
)

// FavouriteRow marks a displayed row that refers to the favourites
// collection instead of the full series list.
const FavouriteRow = -1

// Row is one visible entry of the series list.
type Row struct {
	Series    record.Series
	Index     int
	Favourite bool
}

// Store holds the full series catalog, the favourites, and the episodes of
// the series currently on screen. It is not safe for concurrent use; the
// orchestrator confines it to a single goroutine.
type Store struct {
	series     []record.Series
	index      map[record.Key]int
	favourites []record.Series

	// rows parallels the last ListForDisplay result: a series index, or
	// FavouriteRow for a favourite looked up by row position.
	rows []int

	episodes     []record.Episode
	episodeOwner record.Key
	hasEpisodes  bool
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{index: make(map[record.Key]int)}
}

// AddSeries parses raw and inserts it unless it is malformed or its key is
// already present.
func (s *Store) AddSeries(raw string) bool {
	series, ok := record.ParseSeries(raw)
	if !ok {
		return false
	}
	return s.Insert(series)
}

// Insert adds series unless its key is already present. The first instance
// of a key wins.
func (s *Store) Insert(series record.Series) bool {
	key := series.Key()
	if _, exists := s.index[key]; exists {
		return false
	}
	s.index[key] = len(s.series)
	s.series = append(s.series, series)
	return true
}

// ReplaceSeries swaps the full catalog for list, deduplicating as it goes,
// and returns the number of entries retained. Displayed rows are reset.
func (s *Store) ReplaceSeries(list []record.Series) int {
	s.series = make([]record.Series, 0, len(list))
	s.index = make(map[record.Key]int, len(list))
	s.rows = nil
	for _, series := range list {
		s.Insert(series)
	}
	return len(s.series)
}

// Len returns the number of series in the catalog.
func (s *Store) Len() int {
	return len(s.series)
}

// Series returns a copy of the catalog in insertion order.
func (s *Store) Series() []record.Series {
	out := make([]record.Series, len(s.series))
	copy(out, s.series)
	return out
}

// Lookup resolves a key against the catalog, then the favourites.
func (s *Store) Lookup(key record.Key) (record.Series, bool) {
	if i, ok := s.index[key]; ok {
		return s.series[i], true
	}
	for _, fav := range s.favourites {
		if fav.Key() == key {
			return fav, true
		}
	}
	return record.Series{}, false
}

// Search returns the series whose name contains query, compared with
// Unicode case folding. An empty query matches every series. Insertion order
// is preserved.
func (s *Store) Search(query string) []record.Series {
	idx := s.match(query)
	out := make([]record.Series, 0, len(idx))
	for _, i := range idx {
		out = append(out, s.series[i])
	}
	return out
}

func (s *Store) match(query string) []int {
	out := make([]int, 0, len(s.series))
	if strings.TrimSpace(query) == "" {
		for i := range s.series {
			out = append(out, i)
		}
		return out
	}
	fold := cases.Fold()
	needle := fold.String(query)
	for i, series := range s.series {
		if strings.Contains(fold.String(series.Name), needle) {
			out = append(out, i)
		}
	}
	return out
}

// ListForDisplay builds the visible rows for query and remembers them for
// RowAt. With an empty query the favourites come first, most recently added
// on top, followed by the whole catalog.
func (s *Store) ListForDisplay(query string) []Row {
	matches := s.match(query)
	rows := make([]Row, 0, len(matches)+len(s.favourites))
	s.rows = make([]int, 0, cap(rows))

	if strings.TrimSpace(query) == "" {
		for i := len(s.favourites) - 1; i >= 0; i-- {
			rows = append(rows, Row{Series: s.favourites[i], Index: FavouriteRow, Favourite: true})
			s.rows = append(s.rows, FavouriteRow)
		}
	}
	for _, i := range matches {
		rows = append(rows, Row{Series: s.series[i], Index: i})
		s.rows = append(s.rows, i)
	}
	return rows
}

// RowCount returns the number of rows produced by the last ListForDisplay.
func (s *Store) RowCount() int {
	return len(s.rows)
}

// RowAt resolves a displayed row. Favourite rows are looked up by their
// position among the leading favourite rows.
func (s *Store) RowAt(row int) (Row, bool) {
	if row < 0 || row >= len(s.rows) {
		return Row{}, false
	}
	i := s.rows[row]
	if i == FavouriteRow {
		pos := len(s.favourites) - 1 - row
		if pos < 0 || pos >= len(s.favourites) {
			return Row{}, false
		}
		return Row{Series: s.favourites[pos], Index: FavouriteRow, Favourite: true}, true
	}
	if i < 0 || i >= len(s.series) {
		return Row{}, false
	}
	return Row{Series: s.series[i], Index: i}, true
}
