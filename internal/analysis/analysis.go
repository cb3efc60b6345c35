// Package analysis produces voice and gait stability scores from uploaded
// media. There is no real signal processing behind it: the scores are
// uniform random values in [80, 99], a stub pending a real analysis
// pipeline, kept because that is exactly what the product ships today.
package analysis

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"neurowatch/internal/store"
)

var ErrNoFile = errors.New("analysis: no file selected")

// Analyzer scores uploads and patches the result into the identity's
// watch_data node so the vitals monitor picks it up like any other reading.
type Analyzer struct {
	store store.RecordStore

	mu  sync.Mutex
	rng *rand.Rand
}

func NewAnalyzer(s store.RecordStore) *Analyzer {
	return NewAnalyzerWithSource(s, rand.NewSource(time.Now().UnixNano()))
}

// NewAnalyzerWithSource exists so tests can pin the score sequence.
func NewAnalyzerWithSource(s store.RecordStore, src rand.Source) *Analyzer {
	return &Analyzer{store: s, rng: rand.New(src)}
}

func (a *Analyzer) score() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return 80 + a.rng.Intn(20)
}

// AnalyzeVoice scores a voice sample and records it as the identity's
// voice reading.
func (a *Analyzer) AnalyzeVoice(ctx context.Context, identityID, filename string) (int, error) {
	return a.analyze(ctx, identityID, filename, "voice")
}

// AnalyzeGait scores a walking video and records it as the identity's
// gait reading.
func (a *Analyzer) AnalyzeGait(ctx context.Context, identityID, filename string) (int, error) {
	return a.analyze(ctx, identityID, filename, "gait")
}

func (a *Analyzer) analyze(ctx context.Context, identityID, filename, field string) (int, error) {
	if filename == "" {
		return 0, ErrNoFile
	}
	score := a.score()
	if err := a.store.Patch(ctx, "watch_data/"+identityID, map[string]any{field: score}); err != nil {
		return 0, err
	}
	return score, nil
}
