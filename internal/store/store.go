// Package store abstracts the path-addressed JSON document store that backs
// all NeuroWatch persistence. Paths look like "lifestyle/<userKey>/<date>";
// a GET on an interior path returns the whole subtree as a JSON object keyed
// by child name, the way hosted realtime databases do.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
)

var (
	// ErrNotFound means nothing is stored at the path. Callers that treat
	// absence as "empty" must check for it explicitly.
	ErrNotFound = errors.New("store: not found")
	// ErrUnavailable means the store could not be reached.
	ErrUnavailable = errors.New("store: unavailable")
)

// RecordStore is the minimal contract the hosted document store offers:
// no transactions, no queries beyond path addressing.
type RecordStore interface {
	// Get reads the leaf or subtree at path into out.
	Get(ctx context.Context, path string, out any) error
	// Put replaces the value at path.
	Put(ctx context.Context, path string, value any) error
	// Post appends value under path with a generated key and returns the key.
	Post(ctx context.Context, path string, value any) (string, error)
	// Patch merges fields into the object at path, leaving other fields intact.
	Patch(ctx context.Context, path string, fields map[string]any) error
	// Watch delivers the raw JSON at path whenever it changes, until ctx is
	// done. The latest value wins; intermediate values may be skipped.
	Watch(ctx context.Context, path string) <-chan json.RawMessage
}

func marshal(value any) (json.RawMessage, error) {
	b, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(b), nil
}

// assembleTree builds a nested JSON object from leaves keyed by their path
// relative to the requested root (e.g. "u1/2026-02-01" -> {"u1":{"2026-02-01":...}}).
func assembleTree(leaves map[string]json.RawMessage) (json.RawMessage, error) {
	tree := make(map[string]any)
	for leaf, raw := range leaves {
		parts := splitPath(leaf)
		node := tree
		for _, p := range parts[:len(parts)-1] {
			child, ok := node[p].(map[string]any)
			if !ok {
				child = make(map[string]any)
				node[p] = child
			}
			node = child
		}
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		node[parts[len(parts)-1]] = v
	}
	return json.Marshal(tree)
}

func splitPath(path string) []string {
	return strings.Split(path, "/")
}
