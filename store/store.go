// Package store defines the document-store port consumed by the
// repositories: a key-path addressed tree with get/set/remove primitives,
// no queries and no multi-key transactions.
package store

import (
	"context"
	"encoding/json"
	"strings"
)

// Client abstracts the remote document store. Paths are slash-delimited
// and rooted at a top-level node, e.g. tasks/{id} or users/{id}.
type Client interface {
	// Get returns the raw document at path. The boolean reports whether
	// a document exists there; an absent path is not an error.
	Get(ctx context.Context, path string) (json.RawMessage, bool, error)

	// Set marshals value and writes it at path, replacing any previous
	// document. Last write wins.
	Set(ctx context.Context, path string, value interface{}) error

	// Remove deletes the document at path. Removing a missing path is a
	// no-op.
	Remove(ctx context.Context, path string) error

	// List returns every document under prefix, keyed by the path
	// segment below it. This is the full-scan primitive; the store has
	// no query support.
	List(ctx context.Context, prefix string) (map[string]json.RawMessage, error)
}

// Join builds a slash-delimited path from segments.
func Join(segments ...string) string {
	return strings.Join(segments, "/")
}

// Split separates a path into its first segment and the remainder.
func Split(path string) (string, string) {
	if i := strings.IndexByte(path, '/'); i >= 0 {
		return path[:i], path[i+1:]
	}
	return path, ""
}
