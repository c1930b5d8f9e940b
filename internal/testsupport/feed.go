package testsupport

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// FeedServer is an httptest server standing in for the feed host. Routes are
// matched on path plus raw query.
type FeedServer struct {
	*httptest.Server

	mu     sync.Mutex
	routes map[string]string
	hits   map[string]int
}

// NewFeedServer starts a server and registers its shutdown with t.
func NewFeedServer(t testing.TB) *FeedServer {
	t.Helper()

	fs := &FeedServer{routes: make(map[string]string), hits: make(map[string]int)}
	fs.Server = httptest.NewServer(http.HandlerFunc(fs.serve))
	t.Cleanup(fs.Close)
	return fs
}

// Handle registers body for a request URI such as
// "/common/exportToCSVmaze.asp?maze=161".
func (fs *FeedServer) Handle(requestURI, body string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.routes[requestURI] = body
}

// Hits returns how often requestURI was requested.
func (fs *FeedServer) Hits(requestURI string) int {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.hits[requestURI]
}

func (fs *FeedServer) serve(w http.ResponseWriter, r *http.Request) {
	fs.mu.Lock()
	key := r.URL.RequestURI()
	fs.hits[key]++
	body, ok := fs.routes[key]
	fs.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(body))
}
