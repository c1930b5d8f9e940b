package orchestrator

import "errors"

var (
	// ErrFetchInProgress rejects a request made while a fetch is in flight.
	ErrFetchInProgress = errors.New("a download is already in progress")
	// ErrNoSelection reports an episode operation with no current series.
	ErrNoSelection = errors.New("no series selected")
	// ErrRowOutOfRange reports a row index outside the displayed list.
	ErrRowOutOfRange = errors.New("row out of range")
	// ErrEmptyCatalog reports a catalog download that held no valid series.
	ErrEmptyCatalog = errors.New("downloaded series list holds no series")
	// ErrStaleCompletion reports a completion that does not match the fetch
	// in flight.
	ErrStaleCompletion = errors.New("completion does not match the pending fetch")
	// ErrNotPersisted reports an operation that completed in memory but whose
	// result could not be written to the data directory.
	ErrNotPersisted = errors.New("change not saved to disk")
)
