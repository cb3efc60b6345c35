// Package vitals holds the latest smartwatch reading per identity. The
// monitor runs one long-lived subscription on the watch_data subtree;
// every delivery replaces the previous snapshots wholesale and recomputes
// risk synchronously. No history is kept in memory.
package vitals

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"neurowatch/internal/models"
	"neurowatch/internal/observability"
	"neurowatch/internal/risk"
	"neurowatch/internal/store"
)

const watchPath = "watch_data"

// Monitor is the read side of the vitals ingestion channel.
type Monitor struct {
	store  store.RecordStore
	logger *zap.Logger

	mu        sync.RWMutex
	snapshots map[string]models.VitalMetricsSnapshot
	levels    map[string]risk.Level
}

func NewMonitor(s store.RecordStore, logger *zap.Logger) *Monitor {
	return &Monitor{
		store:     s,
		logger:    logger,
		snapshots: make(map[string]models.VitalMetricsSnapshot),
		levels:    make(map[string]risk.Level),
	}
}

// Run consumes the subscription until ctx is done. It is the only writer
// of monitor state; callers read through Current.
func (m *Monitor) Run(ctx context.Context) {
	updates := m.store.Watch(ctx, watchPath)
	for {
		select {
		case <-ctx.Done():
			return
		case raw, ok := <-updates:
			if !ok {
				return
			}
			m.apply(raw)
		}
	}
}

func (m *Monitor) apply(raw json.RawMessage) {
	observability.RecordSnapshotReceived()
	var incoming map[string]models.VitalMetricsSnapshot
	if err := json.Unmarshal(raw, &incoming); err != nil {
		observability.RecordSnapshotDecodeFailure()
		m.logger.Warn("dropping undecodable watch_data payload", zap.Error(err))
		return
	}

	levels := make(map[string]risk.Level, len(incoming))
	for id, snap := range incoming {
		levels[id] = risk.Score(snap)
	}

	m.mu.Lock()
	previous := m.levels
	m.snapshots = incoming
	m.levels = levels
	m.mu.Unlock()

	for id := range previous {
		if _, ok := levels[id]; !ok {
			observability.ClearRiskLevel(id)
		}
	}
	for id, level := range levels {
		observability.RecordRiskLevel(id, int(level))
		m.logger.Debug("snapshot applied",
			zap.String("identity", id),
			zap.String("risk", level.String()),
		)
	}
}

// Current returns the newest snapshot and risk level for the identity.
// ok is false when no reading has arrived yet; an empty snapshot scores
// Low, so callers can render placeholders without special-casing.
func (m *Monitor) Current(identityID string) (models.VitalMetricsSnapshot, risk.Level, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	snap, ok := m.snapshots[identityID]
	return snap, m.levels[identityID], ok
}
