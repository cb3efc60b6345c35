package store

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRTDB is just enough of the hosted store's REST surface for tests:
// one JSON document per ".json" path.
type fakeRTDB struct {
	mu   sync.Mutex
	docs map[string]json.RawMessage
}

func newFakeRTDB() *fakeRTDB {
	return &fakeRTDB{docs: make(map[string]json.RawMessage)}
}

func (f *fakeRTDB) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	path := r.URL.Path
	body, _ := io.ReadAll(r.Body)
	switch r.Method {
	case http.MethodGet:
		raw, ok := f.docs[path]
		if !ok {
			w.Write([]byte("null"))
			return
		}
		w.Write(raw)
	case http.MethodPut:
		f.docs[path] = body
		w.Write(body)
	case http.MethodPost:
		w.Write([]byte(`{"name":"-generated-key"}`))
	case http.MethodPatch:
		existing := make(map[string]json.RawMessage)
		if raw, ok := f.docs[path]; ok {
			json.Unmarshal(raw, &existing)
		}
		patch := make(map[string]json.RawMessage)
		json.Unmarshal(body, &patch)
		for k, v := range patch {
			existing[k] = v
		}
		merged, _ := json.Marshal(existing)
		f.docs[path] = merged
		w.Write(merged)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (f *fakeRTDB) set(path string, raw string) {
	f.mu.Lock()
	f.docs[path] = json.RawMessage(raw)
	f.mu.Unlock()
}

func TestHTTPStoreGetMissingIsNotFound(t *testing.T) {
	srv := httptest.NewServer(newFakeRTDB())
	defer srv.Close()

	s := NewHTTPStore(srv.URL, "", 0)
	var out any
	err := s.Get(context.Background(), "users", &out)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHTTPStorePutThenGet(t *testing.T) {
	srv := httptest.NewServer(newFakeRTDB())
	defer srv.Close()

	s := NewHTTPStore(srv.URL, "", 0)
	ctx := context.Background()
	require.NoError(t, s.Put(ctx, "watch_data/u1", map[string]any{"heartRate": 72}))

	var got map[string]float64
	require.NoError(t, s.Get(ctx, "watch_data/u1", &got))
	assert.Equal(t, 72.0, got["heartRate"])
}

func TestHTTPStorePostReturnsGeneratedKey(t *testing.T) {
	srv := httptest.NewServer(newFakeRTDB())
	defer srv.Close()

	s := NewHTTPStore(srv.URL, "", 0)
	key, err := s.Post(context.Background(), "appointments/u1", map[string]any{"doctor": "Dr. Sarah Chen"})
	require.NoError(t, err)
	assert.Equal(t, "-generated-key", key)
}

func TestHTTPStorePatchMerges(t *testing.T) {
	srv := httptest.NewServer(newFakeRTDB())
	defer srv.Close()

	s := NewHTTPStore(srv.URL, "", 0)
	ctx := context.Background()
	require.NoError(t, s.Put(ctx, "watch_data/u1", map[string]any{"heartRate": 72}))
	require.NoError(t, s.Patch(ctx, "watch_data/u1", map[string]any{"voice": 91}))

	var got map[string]float64
	require.NoError(t, s.Get(ctx, "watch_data/u1", &got))
	assert.Equal(t, 72.0, got["heartRate"])
	assert.Equal(t, 91.0, got["voice"])
}

func TestHTTPStoreAppendsJSONSuffixAndAuth(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Write([]byte("null"))
	}))
	defer srv.Close()

	s := NewHTTPStore(srv.URL, "secret", 0)
	var out any
	_ = s.Get(context.Background(), "users", &out)

	assert.Equal(t, "/users.json", gotPath)
	assert.Equal(t, "auth=secret", gotQuery)
}

func TestHTTPStoreWatchForwardsChanges(t *testing.T) {
	db := newFakeRTDB()
	srv := httptest.NewServer(db)
	defer srv.Close()

	db.set("/watch_data.json", `{"u1":{"gait":50}}`)

	s := NewHTTPStore(srv.URL, "", 10*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := s.Watch(ctx, "watch_data")

	select {
	case raw := <-ch:
		assert.JSONEq(t, `{"u1":{"gait":50}}`, string(raw))
	case <-time.After(time.Second):
		t.Fatal("initial value not delivered")
	}

	db.set("/watch_data.json", `{"u1":{"gait":90}}`)

	select {
	case raw := <-ch:
		assert.JSONEq(t, `{"u1":{"gait":90}}`, string(raw))
	case <-time.After(time.Second):
		t.Fatal("changed value not delivered")
	}
}
