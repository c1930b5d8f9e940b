package catalog

import "seriesapp/internal/record"

// ReplaceEpisodes installs the episodes of owner, given in feed order. They
// are kept newest first, the order the list is shown in.
func (s *Store) ReplaceEpisodes(owner record.Key, feed []record.Episode) {
	eps := make([]record.Episode, len(feed))
	for i, ep := range feed {
		eps[len(feed)-1-i] = ep
	}
	s.episodes = eps
	s.episodeOwner = owner
	s.hasEpisodes = true
}

// ClearEpisodes drops the resident episode list.
func (s *Store) ClearEpisodes() {
	s.episodes = nil
	s.episodeOwner = ""
	s.hasEpisodes = false
}

// Episodes returns the resident episodes in display order.
func (s *Store) Episodes() []record.Episode {
	out := make([]record.Episode, len(s.episodes))
	copy(out, s.episodes)
	return out
}

// FeedOrder returns the resident episodes in the order the feed listed them.
func (s *Store) FeedOrder() []record.Episode {
	out := make([]record.Episode, len(s.episodes))
	for i, ep := range s.episodes {
		out[len(s.episodes)-1-i] = ep
	}
	return out
}

// EpisodeOwner returns the key of the series whose episodes are resident.
func (s *Store) EpisodeOwner() (record.Key, bool) {
	return s.episodeOwner, s.hasEpisodes
}
