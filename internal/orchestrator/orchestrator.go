package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"seriesapp/internal/cache"
	"seriesapp/internal/catalog"
	"seriesapp/internal/fetch"
	"seriesapp/internal/logging"
	"seriesapp/internal/record"
)

// Fetcher retrieves a URL body. *fetch.Client satisfies it.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
	SetProxy(p fetch.Proxy) error
}

// Listener receives the events a display layer renders.
type Listener interface {
	CatalogUpdated(rows []catalog.Row)
	EpisodesUpdated(series record.Series, episodes []record.Episode)
	Status(msg string)
	Error(msg string)
}

// NopListener ignores every event.
type NopListener struct{}

func (NopListener) CatalogUpdated([]catalog.Row)                    {}
func (NopListener) EpisodesUpdated(record.Series, []record.Episode) {}
func (NopListener) Status(string)                                   {}
func (NopListener) Error(string)                                    {}

// Completion is the outcome of one dispatched fetch.
type Completion struct {
	ID      string
	Mode    Mode
	URL     string
	Target  record.Series
	Body    []byte
	Err     error
	Elapsed time.Duration
}

// Orchestrator owns the session state and coordinates the store, the cache
// repository and the fetcher.
type Orchestrator struct {
	store     *catalog.Store
	repo      *cache.Repository
	fetcher   Fetcher
	listener  Listener
	endpoints fetch.Endpoints
	logger    *slog.Logger

	autoSelect bool

	session Session
	pending string
	done    chan Completion
}

// Option customises an Orchestrator.
type Option func(*Orchestrator)

// WithEndpoints sets the feed host.
func WithEndpoints(e fetch.Endpoints) Option {
	return func(o *Orchestrator) {
		o.endpoints = e
	}
}

// WithLogger sets the base logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithAutoSelect controls whether a search that leaves exactly one row opens
// that series straight away. It is on by default.
func WithAutoSelect(enabled bool) Option {
	return func(o *Orchestrator) {
		o.autoSelect = enabled
	}
}

// New wires an orchestrator. A nil listener is replaced by NopListener.
func New(store *catalog.Store, repo *cache.Repository, fetcher Fetcher, listener Listener, opts ...Option) *Orchestrator {
	if listener == nil {
		listener = NopListener{}
	}
	o := &Orchestrator{
		store:      store,
		repo:       repo,
		fetcher:    fetcher,
		listener:   listener,
		logger:     logging.NewNop(),
		autoSelect: true,
		done:       make(chan Completion, 1),
		session:    Session{Settings: cache.DefaultSettings()},
	}
	for _, opt := range opts {
		opt(o)
	}
	o.logger = logging.NewComponentLogger(o.logger, "orchestrator")
	return o
}

// Session returns a copy of the session state.
func (o *Orchestrator) Session() Session {
	return o.session
}

// Busy reports whether a fetch is in flight.
func (o *Orchestrator) Busy() bool {
	return o.session.Mode != ModeIdle
}

// Start loads settings, favourites and the cached series list. When the
// series list cache is missing a catalog download is dispatched instead.
func (o *Orchestrator) Start(ctx context.Context) error {
	settings, err := o.repo.LoadSettings()
	if err == nil {
		o.listener.Status("Loaded settings file.")
	} else {
		o.logger.Debug("settings file not loaded, using defaults", logging.Error(err))
	}
	o.session.Settings = settings
	if err := o.applyProxy(settings); err != nil {
		logging.WarnWithContext(o.logger, "stored proxy settings rejected", "proxy_invalid",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "run 'seriesapp proxy set' to fix the proxy"),
			logging.String(logging.FieldImpact, "requests go direct"))
	}

	favourites, err := o.repo.LoadFavourites()
	if err != nil {
		o.logger.Debug("favourites file not loaded", logging.Error(err))
	}
	o.store.SetFavourites(favourites)

	o.listener.Status("Loading list of all series...")
	list, age, err := o.repo.LoadSeriesList()
	if err != nil {
		o.logger.Info("series list cache unavailable, downloading", logging.Error(err))
		return o.RedownloadCatalog(ctx)
	}
	o.store.ReplaceSeries(list)
	o.session.ListAge = age
	o.logger.Info("series list loaded from cache",
		logging.Int("series_count", o.store.Len()),
		logging.Int("favourite_count", len(favourites)),
		logging.String("age", age.String()))

	_, searchErr := o.Search(ctx, "")
	o.listener.Status(age.Annotate("List loaded from " + cache.SeriesListFile))
	return searchErr
}

// Search lists the series whose name contains query and shows them. When
// exactly one row results that series is opened, unless a fetch is in flight.
func (o *Orchestrator) Search(ctx context.Context, query string) ([]catalog.Row, error) {
	rows := o.showRows(query)
	if o.autoSelect && len(rows) == 1 && !o.Busy() {
		return rows, o.SelectRow(ctx, 0)
	}
	return rows, nil
}

// Back clears the search and returns to the full list.
func (o *Orchestrator) Back(ctx context.Context) ([]catalog.Row, error) {
	return o.Search(ctx, "")
}

func (o *Orchestrator) showRows(query string) []catalog.Row {
	rows := o.store.ListForDisplay(query)
	o.session.Query = query
	o.session.View = ViewSeries
	o.listener.CatalogUpdated(rows)
	return rows
}

// SelectRow opens the series on a displayed row, from its episode cache when
// one exists and from the network otherwise. Resident episodes are only
// replaced once the new list is in hand; check the owner before showing
// them.
func (o *Orchestrator) SelectRow(ctx context.Context, row int) error {
	if o.Busy() {
		return o.reject()
	}
	r, ok := o.store.RowAt(row)
	if !ok {
		return fmt.Errorf("%w: %d", ErrRowOutOfRange, row)
	}
	o.session.CurrentIsFavourite = r.Favourite
	return o.loadEpisodes(ctx, r.Series, false)
}

// RedownloadEpisodes fetches the episodes of the current series, ignoring the
// cache.
func (o *Orchestrator) RedownloadEpisodes(ctx context.Context) error {
	if o.Busy() {
		return o.reject()
	}
	if !o.session.HasCurrent {
		return ErrNoSelection
	}
	return o.loadEpisodes(ctx, o.session.Current, true)
}

func (o *Orchestrator) loadEpisodes(ctx context.Context, s record.Series, redownload bool) error {
	// Only a re-download of the resident series keeps its episodes.
	if owner, ok := o.store.EpisodeOwner(); ok && owner != s.Key() {
		o.store.ClearEpisodes()
	}
	o.session.Current = s
	o.session.HasCurrent = true
	o.session.View = ViewEpisodes
	logger := o.logger.With(logging.String(logging.FieldSeries, s.Name))

	if !redownload {
		eps, age, err := o.repo.LoadEpisodes(s)
		if err == nil {
			o.store.ReplaceEpisodes(s.Key(), eps)
			o.session.ListAge = age
			logger.Debug("episodes loaded from cache", logging.Int("episode_count", len(eps)))
			o.listener.EpisodesUpdated(s, o.store.Episodes())
			o.listener.Status(age.Annotate("Episode list loaded from cache file"))
			return nil
		}
		logger.Debug("episode cache unavailable", logging.Error(err))
	}

	url, err := o.endpoints.Episodes(s.IDs)
	if err != nil {
		logger.Warn("series has neither maze nor rage number",
			logging.String(logging.FieldEventType, "series_without_identifier"),
			logging.String("raw", s.Raw))
		o.listener.Error("Series has no maze or rage number.")
		return fmt.Errorf("%s: %w", s.Name, err)
	}
	o.listener.Status("Downloading episode list...")
	o.dispatch(ctx, ModeFetchingEpisodeList, url, s)
	return nil
}

// RedownloadCatalog fetches the full series list.
func (o *Orchestrator) RedownloadCatalog(ctx context.Context) error {
	if o.Busy() {
		return o.reject()
	}
	o.listener.Status("Downloading list of all series...")
	o.dispatch(ctx, ModeFetchingSeriesList, o.endpoints.Catalog(), record.Series{})
	return nil
}

// Refresh re-downloads whatever the current view shows.
func (o *Orchestrator) Refresh(ctx context.Context) error {
	if o.session.View == ViewEpisodes {
		return o.RedownloadEpisodes(ctx)
	}
	return o.RedownloadCatalog(ctx)
}

func (o *Orchestrator) reject() error {
	o.listener.Error("A download is already in progress.")
	return fmt.Errorf("%w (%s)", ErrFetchInProgress, o.session.Mode)
}

func (o *Orchestrator) dispatch(ctx context.Context, mode Mode, url string, target record.Series) {
	id := uuid.NewString()
	o.session.Mode = mode
	o.pending = id

	fetchCtx := logging.WithCorrelationID(context.WithoutCancel(ctx), id)
	logging.WithContext(fetchCtx, o.logger).Info("fetch dispatched",
		logging.String("mode", mode.String()),
		logging.String("url", url))

	go func() {
		started := time.Now()
		body, err := o.fetcher.Fetch(fetchCtx, url)
		o.done <- Completion{
			ID:      id,
			Mode:    mode,
			URL:     url,
			Target:  target,
			Body:    body,
			Err:     err,
			Elapsed: time.Since(started),
		}
	}()
}

// Completions delivers the result of the fetch in flight. Callers running
// their own event loop receive from it and pass the value to Apply.
func (o *Orchestrator) Completions() <-chan Completion {
	return o.done
}

// Wait blocks until the fetch in flight completes and applies it. It returns
// immediately when idle.
func (o *Orchestrator) Wait(ctx context.Context) error {
	if !o.Busy() {
		return nil
	}
	select {
	case c := <-o.done:
		return o.Apply(ctx, c)
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Apply merges a completed fetch. A failed fetch leaves the store and the
// cache untouched.
func (o *Orchestrator) Apply(ctx context.Context, c Completion) error {
	if c.ID == "" || c.ID != o.pending {
		return ErrStaleCompletion
	}
	o.pending = ""
	o.session.Mode = ModeIdle

	fetchCtx := logging.WithCorrelationID(ctx, c.ID)
	logger := logging.WithContext(fetchCtx, o.logger)
	if c.Err != nil {
		logging.ErrorWithContext(logger, "download failed", "fetch_failed",
			logging.String("url", c.URL),
			logging.Error(c.Err),
			logging.String(logging.FieldErrorHint, "check network access and proxy settings"))
		o.listener.Error("Download failed")
		return fmt.Errorf("fetch %s: %w", c.URL, c.Err)
	}
	logger.Info("fetch completed",
		logging.String("mode", c.Mode.String()),
		logging.Int("bytes", len(c.Body)),
		logging.Duration("elapsed", c.Elapsed))

	switch c.Mode {
	case ModeFetchingSeriesList:
		return o.applyCatalog(ctx, logger, c.Body)
	case ModeFetchingEpisodeList:
		return o.applyEpisodes(logger, c.Target, c.Body)
	default:
		return fmt.Errorf("unexpected completion mode %s", c.Mode)
	}
}

func (o *Orchestrator) applyCatalog(ctx context.Context, logger *slog.Logger, body []byte) error {
	o.listener.Status("Download finished, building series list...")
	lines := record.SplitLines(body)
	list := make([]record.Series, 0, len(lines))
	for _, line := range lines {
		if s, ok := record.ParseSeries(line); ok {
			list = append(list, s)
		}
	}
	if len(list) == 0 {
		logging.ErrorWithContext(logger, "series list download held no series", "catalog_empty",
			logging.Int("line_count", len(lines)),
			logging.String(logging.FieldErrorHint, "the feed host may be returning an error page"))
		o.listener.Error("Download failed")
		return ErrEmptyCatalog
	}

	retained := o.store.ReplaceSeries(list)
	o.session.ListAge = cache.Fresh
	logger.Info("series list replaced",
		logging.Int("series_count", retained),
		logging.Int("duplicates_dropped", len(list)-retained))

	_, searchErr := o.Search(ctx, "")
	o.listener.Status("Series list downloaded from epguides.com")

	if err := o.repo.SaveSeriesList(o.store.Series()); err != nil {
		logging.WarnWithContext(logger, "series list not saved", "cache_write_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check permissions on the data directory"),
			logging.String(logging.FieldImpact, "the list will be downloaded again next run"))
		o.listener.Error("Could not save list to disk")
		return errors.Join(fmt.Errorf("%w: %w", ErrNotPersisted, err), searchErr)
	}
	o.listener.Status("Saved list to disk")
	return searchErr
}

func (o *Orchestrator) applyEpisodes(logger *slog.Logger, s record.Series, body []byte) error {
	o.listener.Status("Download finished, building episodes list...")
	lines := record.SplitLines(body)
	eps := make([]record.Episode, 0, len(lines))
	for _, line := range lines {
		if ep, ok := record.ParseEpisode(line, s); ok {
			eps = append(eps, ep)
		}
	}

	o.store.ReplaceEpisodes(s.Key(), eps)
	o.session.ListAge = cache.Fresh
	logger = logger.With(logging.String(logging.FieldSeries, s.Name))
	logger.Info("episode list replaced", logging.Int("episode_count", len(eps)))
	o.listener.EpisodesUpdated(s, o.store.Episodes())
	o.listener.Status(s.Name)

	if err := o.repo.SaveEpisodes(s, eps); err != nil {
		logging.WarnWithContext(logger, "episode cache not saved", "cache_write_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check permissions on the data directory"),
			logging.String(logging.FieldImpact, "the episodes will be downloaded again next time"))
		o.listener.Error("Could not save episode list cache file")
		return fmt.Errorf("%w: %w", ErrNotPersisted, err)
	}
	logger.Debug("episode cache saved", logging.String("file", cache.EpisodeFileName(s)))
	return nil
}

// ToggleFavourite flips the favourite state of the series on a displayed row
// and redraws the list. It returns true when the series is a favourite
// afterwards.
func (o *Orchestrator) ToggleFavourite(ctx context.Context, row int) (bool, error) {
	r, ok := o.store.RowAt(row)
	if !ok {
		return false, fmt.Errorf("%w: %d", ErrRowOutOfRange, row)
	}
	var now bool
	if r.Favourite {
		o.store.RemoveFavourite(r.Series.Key())
	} else {
		now = o.store.ToggleFavourite(r.Series)
	}
	if o.session.HasCurrent && o.session.Current.Key() == r.Series.Key() {
		o.session.CurrentIsFavourite = now
	}
	o.showRows(o.session.Query)
	return now, o.saveFavourites()
}

// ToggleCurrentFavourite flips the favourite state of the series whose
// episodes are shown.
func (o *Orchestrator) ToggleCurrentFavourite(ctx context.Context) (bool, error) {
	if !o.session.HasCurrent {
		return false, ErrNoSelection
	}
	now := o.store.ToggleFavourite(o.session.Current)
	o.session.CurrentIsFavourite = now
	// Favourite rows resolve by position, so the remembered rows must follow.
	o.store.ListForDisplay(o.session.Query)
	return now, o.saveFavourites()
}

func (o *Orchestrator) saveFavourites() error {
	if err := o.repo.SaveFavourites(o.store.Favourites()); err != nil {
		logging.WarnWithContext(o.logger, "favourites not saved", "favourites_write_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check permissions on the data directory"),
			logging.String(logging.FieldImpact, "favourites will be lost on exit"))
		o.listener.Error("Error writing to favourites file")
		return fmt.Errorf("%w: %w", ErrNotPersisted, err)
	}
	return nil
}

// SetProxyConfig validates and applies new proxy settings, then persists
// them. Invalid settings leave the previous ones in force.
func (o *Orchestrator) SetProxyConfig(useSystem bool, address string, port int) error {
	settings := cache.Settings{ProxyUseSystem: useSystem, ProxyAddress: address, ProxyPort: port}
	if err := o.applyProxy(settings); err != nil {
		o.listener.Error("Invalid proxy settings")
		return err
	}
	o.session.Settings = settings
	if err := o.repo.SaveSettings(settings); err != nil {
		logging.WarnWithContext(o.logger, "settings not saved", "settings_write_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check permissions on the data directory"),
			logging.String(logging.FieldImpact, "proxy settings apply to this run only"))
		o.listener.Error("Error writing settings file")
		return fmt.Errorf("%w: %w", ErrNotPersisted, err)
	}
	o.listener.Status("Saved settings file.")
	return nil
}

// ProxyOf converts persisted settings into the fetcher's proxy selection.
func ProxyOf(s cache.Settings) fetch.Proxy {
	return fetch.Proxy{UseSystem: s.ProxyUseSystem, Address: s.ProxyAddress, Port: s.ProxyPort}
}

func (o *Orchestrator) applyProxy(s cache.Settings) error {
	p := ProxyOf(s)
	if err := o.fetcher.SetProxy(p); err != nil {
		return fmt.Errorf("apply proxy: %w", err)
	}
	switch p.Mode() {
	case "system":
		o.logger.Info("using system proxy settings")
	case "manual":
		o.logger.Info("using proxy settings", logging.String("proxy", p.String()))
	default:
		o.logger.Info("using no proxy")
	}
	return nil
}
