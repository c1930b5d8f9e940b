// Package orchestrator decides, per request, whether series and episode data
// come from the cache directory or the network, and merges fetch results into
// the catalog store and the cache.
//
// All methods must be called from one goroutine. A fetch runs on its own
// goroutine and hands its result back as a Completion; the owner applies it
// with Apply or Wait, so the store is only ever touched by the owner. At most
// one fetch is in flight and a dispatched fetch is never cancelled.
package orchestrator
