// Package textutil provides small text helpers shared by the storage layer,
// currently file-name sanitisation for values taken from the remote feed.
package textutil
