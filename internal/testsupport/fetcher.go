package testsupport

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"seriesapp/internal/fetch"
)

// ErrUnknownURL is returned by FakeFetcher for URLs without a response.
var ErrUnknownURL = errors.New("no canned response for url")

// FakeFetcher serves canned bodies keyed by URL and records every call. When
// gated, each Fetch blocks until Release is called.
type FakeFetcher struct {
	mu        sync.Mutex
	bodies    map[string]string
	failures  map[string]error
	calls     []string
	proxy     fetch.Proxy
	proxySets int
	gate      chan struct{}
}

// NewFakeFetcher returns an ungated fetcher with no responses.
func NewFakeFetcher() *FakeFetcher {
	return &FakeFetcher{
		bodies:   make(map[string]string),
		failures: make(map[string]error),
	}
}

// Respond registers body for url.
func (f *FakeFetcher) Respond(url, body string) *FakeFetcher {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bodies[url] = body
	delete(f.failures, url)
	return f
}

// Fail makes requests for url return err.
func (f *FakeFetcher) Fail(url string, err error) *FakeFetcher {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[url] = err
	return f
}

// Gate makes subsequent fetches block until Release.
func (f *FakeFetcher) Gate() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gate = make(chan struct{})
}

// Release unblocks every fetch waiting on the gate.
func (f *FakeFetcher) Release() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.gate != nil {
		close(f.gate)
		f.gate = nil
	}
}

// Fetch implements the orchestrator's Fetcher.
func (f *FakeFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	f.mu.Lock()
	f.calls = append(f.calls, url)
	gate := f.gate
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failures[url]; ok {
		return nil, err
	}
	body, ok := f.bodies[url]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownURL, url)
	}
	return []byte(body), nil
}

// SetProxy records p after validating it.
func (f *FakeFetcher) SetProxy(p fetch.Proxy) error {
	if err := p.Validate(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.proxy = p
	f.proxySets++
	return nil
}

// Proxy returns the last proxy applied.
func (f *FakeFetcher) Proxy() fetch.Proxy {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.proxy
}

// Calls returns the URLs requested so far.
func (f *FakeFetcher) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}
