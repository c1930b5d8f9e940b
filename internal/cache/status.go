package cache

import (
	"os"
	"sort"
	"strings"
)

// FileStatus describes one cache file on disk.
type FileStatus struct {
	Name    string `json:"name"`
	Present bool   `json:"present"`
	Lines   int    `json:"lines"`
	Age     Age    `json:"age"`
}

// Status summarises the data directory: the three fixed files followed by
// every episode cache, sorted by name.
func (r *Repository) Status() ([]FileStatus, error) {
	out := []FileStatus{
		r.fileStatus(SeriesListFile),
		r.fileStatus(FavouritesFile),
		r.fileStatus(SettingsFile),
	}

	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return out, err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, episodeFilePrefix) || !strings.HasSuffix(name, episodeFileSuffix) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		out = append(out, r.fileStatus(name))
	}
	return out, nil
}

func (r *Repository) fileStatus(name string) FileStatus {
	lines, age, err := r.readLines(name)
	if err != nil {
		return FileStatus{Name: name}
	}
	return FileStatus{Name: name, Present: true, Lines: len(lines), Age: age}
}
