package catalog

import "seriesapp/internal/record"

// Favourites returns the favourites in insertion order.
func (s *Store) Favourites() []record.Series {
	out := make([]record.Series, len(s.favourites))
	copy(out, s.favourites)
	return out
}

// SetFavourites replaces the favourites, dropping repeated keys.
func (s *Store) SetFavourites(list []record.Series) {
	s.favourites = nil
	for _, series := range list {
		s.AddFavourite(series)
	}
	s.rows = nil
}

// IsFavourite reports whether a series with key is a favourite.
func (s *Store) IsFavourite(key record.Key) bool {
	return s.favouritePos(key) >= 0
}

// AddFavourite appends series unless its key is already a favourite.
func (s *Store) AddFavourite(series record.Series) bool {
	if s.IsFavourite(series.Key()) {
		return false
	}
	s.favourites = append(s.favourites, series)
	return true
}

// RemoveFavourite drops the favourite with key.
func (s *Store) RemoveFavourite(key record.Key) bool {
	pos := s.favouritePos(key)
	if pos < 0 {
		return false
	}
	s.favourites = append(s.favourites[:pos], s.favourites[pos+1:]...)
	return true
}

// ToggleFavourite adds series if absent and removes it if present. It returns
// true when the series is a favourite afterwards.
func (s *Store) ToggleFavourite(series record.Series) bool {
	if s.RemoveFavourite(series.Key()) {
		return false
	}
	s.favourites = append(s.favourites, series)
	return true
}

func (s *Store) favouritePos(key record.Key) int {
	for i, fav := range s.favourites {
		if fav.Key() == key {
			return i
		}
	}
	return -1
}
