package cache

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"seriesapp/internal/fileutil"
	"seriesapp/internal/logging"
	"seriesapp/internal/record"
	"seriesapp/internal/textutil"
)

// File names inside the data directory.
const (
	SeriesListFile = "seriesList.txt"
	FavouritesFile = "seriesListFavourites.txt"
	SettingsFile   = "seriesSettings.txt"

	episodeFilePrefix = "epscache_"
	episodeFileSuffix = ".txt"
	lockFileName      = ".seriesapp.lock"
)

var (
	// ErrCacheMiss reports a cache file that is absent, unreadable, or holds no
	// usable records.
	ErrCacheMiss = errors.New("cache miss")
	// ErrLocked reports that another process holds the data directory.
	ErrLocked = errors.New("data directory is in use by another process")
)

// Repository maps catalog data to plain-text files in one directory.
type Repository struct {
	dir    string
	logger *slog.Logger
	lock   *flock.Flock
	now    func() time.Time
}

// Option customises a Repository.
type Option func(*Repository)

// WithClock overrides the clock used for file ages.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		if now != nil {
			r.now = now
		}
	}
}

// Open prepares dir for use, creating it when absent.
func Open(dir string, logger *slog.Logger, opts ...Option) (*Repository, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("cache directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory %q: %w", dir, err)
	}
	r := &Repository{
		dir:    dir,
		logger: logging.NewComponentLogger(logger, "cache"),
		lock:   flock.New(filepath.Join(dir, lockFileName)),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Dir returns the data directory.
func (r *Repository) Dir() string {
	return r.dir
}

// Path returns the absolute path of a file in the data directory.
func (r *Repository) Path(name string) string {
	return filepath.Join(r.dir, name)
}

// Lock takes an exclusive advisory lock on the data directory so two
// processes do not rewrite the same cache files.
func (r *Repository) Lock() error {
	ok, err := r.lock.TryLock()
	if err != nil {
		return fmt.Errorf("lock cache directory: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrLocked, r.dir)
	}
	return nil
}

// Unlock releases the lock taken by Lock.
func (r *Repository) Unlock() error {
	return r.lock.Unlock()
}

// LoadSeriesList reads the cached catalog in file order. It returns
// ErrCacheMiss when the file is missing, unreadable, or holds no series.
func (r *Repository) LoadSeriesList() ([]record.Series, Age, error) {
	lines, age, err := r.readLines(SeriesListFile)
	if err != nil {
		return nil, Age{}, err
	}
	list := parseSeriesLines(lines)
	if len(list) == 0 {
		return nil, age, fmt.Errorf("%w: %s holds no series", ErrCacheMiss, SeriesListFile)
	}
	r.logger.Debug("loaded series list",
		logging.Int("series_count", len(list)),
		logging.Int("age_days", age.Days))
	return list, age, nil
}

// SaveSeriesList rewrites the cached catalog.
func (r *Repository) SaveSeriesList(list []record.Series) error {
	return r.writeSeries(SeriesListFile, list)
}

// LoadFavourites reads the favourites file. Lines that no longer parse are
// dropped.
func (r *Repository) LoadFavourites() ([]record.Series, error) {
	lines, _, err := r.readLines(FavouritesFile)
	if err != nil {
		return nil, err
	}
	return parseSeriesLines(lines), nil
}

// SaveFavourites rewrites the favourites file in full.
func (r *Repository) SaveFavourites(list []record.Series) error {
	return r.writeSeries(FavouritesFile, list)
}

// EpisodeFileName returns the per-series cache file name,
// "epscache_<maze>_<rage>_<directory>.txt".
func EpisodeFileName(s record.Series) string {
	return episodeFilePrefix +
		textutil.SanitizeSegment(s.IDs.Maze) + "_" +
		textutil.SanitizeSegment(s.IDs.Rage) + "_" +
		textutil.SanitizeSegment(s.Directory) + episodeFileSuffix
}

// LoadEpisodes reads the episode cache of s in feed order. It returns
// ErrCacheMiss when the file is missing, unreadable, or holds no episodes.
func (r *Repository) LoadEpisodes(s record.Series) ([]record.Episode, Age, error) {
	name := EpisodeFileName(s)
	lines, age, err := r.readLines(name)
	if err != nil {
		return nil, Age{}, err
	}
	eps := make([]record.Episode, 0, len(lines))
	for _, line := range lines {
		if ep, ok := record.ParseEpisode(line, s); ok {
			eps = append(eps, ep)
		}
	}
	if len(eps) == 0 {
		return nil, age, fmt.Errorf("%w: %s holds no episodes", ErrCacheMiss, name)
	}
	return eps, age, nil
}

// SaveEpisodes writes the episode cache of s. eps must be in feed order.
func (r *Repository) SaveEpisodes(s record.Series, eps []record.Episode) error {
	lines := make([]string, 0, len(eps))
	for _, ep := range eps {
		lines = append(lines, ep.Raw)
	}
	return r.write(EpisodeFileName(s), lines)
}

func (r *Repository) writeSeries(name string, list []record.Series) error {
	lines := make([]string, 0, len(list))
	for _, s := range list {
		lines = append(lines, s.Raw)
	}
	return r.write(name, lines)
}

func (r *Repository) write(name string, lines []string) error {
	if err := fileutil.WriteLines(r.Path(name), lines); err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	r.logger.Debug("cache file written",
		logging.String("file", name),
		logging.Int("line_count", len(lines)))
	return nil
}

func (r *Repository) readLines(name string) ([]string, Age, error) {
	path := r.Path(name)
	info, err := os.Stat(path)
	if err != nil {
		return nil, Age{}, fmt.Errorf("%w: %s: %v", ErrCacheMiss, name, err)
	}
	lines, err := fileutil.ReadLines(path)
	if err != nil {
		return nil, Age{}, fmt.Errorf("%w: %s: %v", ErrCacheMiss, name, err)
	}
	return lines, AgeOf(info.ModTime(), r.now()), nil
}

func parseSeriesLines(lines []string) []record.Series {
	list := make([]record.Series, 0, len(lines))
	for _, line := range lines {
		if s, ok := record.ParseSeries(line); ok {
			list = append(list, s)
		}
	}
	return list
}
