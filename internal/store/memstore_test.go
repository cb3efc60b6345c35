package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemStoreLeafRoundTrip(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "watch_data/u1", map[string]any{"heartRate": 72}))

	var got map[string]float64
	require.NoError(t, s.Get(ctx, "watch_data/u1", &got))
	assert.Equal(t, 72.0, got["heartRate"])
}

func TestMemStoreGetMissing(t *testing.T) {
	s := NewMemStore()
	var out any
	err := s.Get(context.Background(), "nowhere", &out)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemStoreInteriorPathAssemblesSubtree(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "lifestyle/u1/2026-02-01", map[string]any{"activity": "Yoga"}))
	require.NoError(t, s.Put(ctx, "lifestyle/u1/2026-02-02", map[string]any{"activity": "Gym"}))

	var got map[string]map[string]string
	require.NoError(t, s.Get(ctx, "lifestyle/u1", &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Yoga", got["2026-02-01"]["activity"])
	assert.Equal(t, "Gym", got["2026-02-02"]["activity"])
}

func TestMemStorePutReplacesDescendants(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "a/b", "old"))
	require.NoError(t, s.Put(ctx, "a", map[string]any{"c": "new"}))

	var got map[string]string
	require.NoError(t, s.Get(ctx, "a", &got))
	assert.Equal(t, map[string]string{"c": "new"}, got)
}

func TestMemStorePatchMergesFields(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "watch_data/u1", map[string]any{"heartRate": 72, "gait": 80}))
	require.NoError(t, s.Patch(ctx, "watch_data/u1", map[string]any{"voice": 91}))

	var got map[string]float64
	require.NoError(t, s.Get(ctx, "watch_data/u1", &got))
	assert.Equal(t, 72.0, got["heartRate"])
	assert.Equal(t, 80.0, got["gait"])
	assert.Equal(t, 91.0, got["voice"])
}

func TestMemStorePostGeneratesKey(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	key, err := s.Post(ctx, "appointments/u1", map[string]any{"doctor": "Dr. Sarah Chen"})
	require.NoError(t, err)
	require.NotEmpty(t, key)

	var got map[string]string
	require.NoError(t, s.Get(ctx, "appointments/u1/"+key, &got))
	assert.Equal(t, "Dr. Sarah Chen", got["doctor"])
}

func TestMemStoreWatchDeliversSubtreeOnChange(t *testing.T) {
	s := NewMemStore()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := s.Watch(ctx, "watch_data")
	require.NoError(t, s.Put(ctx, "watch_data/u1", map[string]any{"tremor": 65}))

	select {
	case raw := <-ch:
		var tree map[string]map[string]float64
		require.NoError(t, json.Unmarshal(raw, &tree))
		assert.Equal(t, 65.0, tree["u1"]["tremor"])
	case <-time.After(time.Second):
		t.Fatal("no notification received")
	}
}

func TestMemStoreWatchLastWriteWins(t *testing.T) {
	s := NewMemStore()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := s.Watch(ctx, "watch_data")
	// Two writes with no reader in between; the channel keeps only the
	// newest value.
	require.NoError(t, s.Put(ctx, "watch_data/u1", map[string]any{"gait": 50}))
	require.NoError(t, s.Put(ctx, "watch_data/u1", map[string]any{"gait": 90}))

	select {
	case raw := <-ch:
		var tree map[string]map[string]float64
		require.NoError(t, json.Unmarshal(raw, &tree))
		assert.Equal(t, 90.0, tree["u1"]["gait"])
	case <-time.After(time.Second):
		t.Fatal("no notification received")
	}
}

func TestMemStoreWatchDeliversExistingValueOnSubscribe(t *testing.T) {
	s := NewMemStore()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Value written before anyone subscribes.
	require.NoError(t, s.Put(ctx, "watch_data/u1", map[string]any{"heartRate": 72}))

	ch := s.Watch(ctx, "watch_data")
	select {
	case raw := <-ch:
		var tree map[string]map[string]float64
		require.NoError(t, json.Unmarshal(raw, &tree))
		assert.Equal(t, 72.0, tree["u1"]["heartRate"])
	case <-time.After(time.Second):
		t.Fatal("pre-existing value not delivered at subscribe time")
	}
}

func TestMemStoreWatchIgnoresUnrelatedPaths(t *testing.T) {
	s := NewMemStore()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := s.Watch(ctx, "watch_data")
	require.NoError(t, s.Put(ctx, "users", []string{}))

	select {
	case <-ch:
		t.Fatal("unexpected notification for unrelated path")
	case <-time.After(50 * time.Millisecond):
	}
}
