package store

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MemStore is an in-memory RecordStore used by tests and --dev runs.
// Watch delivers real push notifications, so the vitals subscription
// behaves the same way it does against the hosted store.
type MemStore struct {
	mu       sync.RWMutex
	leaves   map[string]json.RawMessage
	watchers map[*memWatcher]struct{}
}

type memWatcher struct {
	path string
	ch   chan json.RawMessage
}

func NewMemStore() *MemStore {
	return &MemStore{
		leaves:   make(map[string]json.RawMessage),
		watchers: make(map[*memWatcher]struct{}),
	}
}

func normalize(path string) string {
	return strings.Trim(path, "/")
}

func (s *MemStore) Get(ctx context.Context, path string, out any) error {
	s.mu.RLock()
	raw, err := s.subtreeLocked(normalize(path))
	s.mu.RUnlock()
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

// subtreeLocked assembles the JSON value at path: the leaf itself, or an
// object built from every leaf below it.
func (s *MemStore) subtreeLocked(path string) (json.RawMessage, error) {
	if raw, ok := s.leaves[path]; ok {
		return raw, nil
	}
	prefix := path + "/"
	if path == "" {
		prefix = ""
	}
	below := make(map[string]json.RawMessage)
	for leaf, raw := range s.leaves {
		if strings.HasPrefix(leaf, prefix) {
			below[strings.TrimPrefix(leaf, prefix)] = raw
		}
	}
	if len(below) == 0 {
		return nil, ErrNotFound
	}
	return assembleTree(below)
}

func (s *MemStore) Put(ctx context.Context, path string, value any) error {
	raw, err := marshal(value)
	if err != nil {
		return err
	}
	path = normalize(path)
	s.mu.Lock()
	for leaf := range s.leaves {
		if strings.HasPrefix(leaf, path+"/") {
			delete(s.leaves, leaf)
		}
	}
	s.leaves[path] = raw
	s.notifyLocked(path)
	s.mu.Unlock()
	return nil
}

func (s *MemStore) Post(ctx context.Context, path string, value any) (string, error) {
	raw, err := marshal(value)
	if err != nil {
		return "", err
	}
	key := uuid.NewString()
	path = normalize(path)
	s.mu.Lock()
	s.leaves[path+"/"+key] = raw
	s.notifyLocked(path)
	s.mu.Unlock()
	return key, nil
}

func (s *MemStore) Patch(ctx context.Context, path string, fields map[string]any) error {
	path = normalize(path)
	s.mu.Lock()
	defer s.mu.Unlock()
	existing := make(map[string]any)
	if raw, ok := s.leaves[path]; ok {
		if err := json.Unmarshal(raw, &existing); err != nil {
			return err
		}
	}
	for k, v := range fields {
		existing[k] = v
	}
	raw, err := marshal(existing)
	if err != nil {
		return err
	}
	s.leaves[path] = raw
	s.notifyLocked(path)
	return nil
}

func (s *MemStore) Watch(ctx context.Context, path string) <-chan json.RawMessage {
	w := &memWatcher{path: normalize(path), ch: make(chan json.RawMessage, 1)}
	s.mu.Lock()
	s.watchers[w] = struct{}{}
	// Deliver what is already stored, so a subscriber that arrives after
	// the writes still sees current state, same as the polling backends'
	// first tick.
	if raw, err := s.subtreeLocked(w.path); err == nil {
		w.ch <- raw
	}
	s.mu.Unlock()
	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.watchers, w)
		s.mu.Unlock()
	}()
	return w.ch
}

// notifyLocked pushes the current subtree to every watcher whose path
// overlaps the changed one. Channels hold one element; a stale value is
// replaced rather than queued (last write wins).
func (s *MemStore) notifyLocked(changed string) {
	for w := range s.watchers {
		if changed != w.path &&
			!strings.HasPrefix(changed, w.path+"/") &&
			!strings.HasPrefix(w.path, changed+"/") {
			continue
		}
		raw, err := s.subtreeLocked(w.path)
		if err != nil {
			continue
		}
		select {
		case w.ch <- raw:
		default:
			select {
			case <-w.ch:
			default:
			}
			w.ch <- raw
		}
	}
}
