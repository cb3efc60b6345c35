// Package lifestyle persists the per-day meal/sleep/activity log. The
// store key is the calendar date, so saving twice on the same day replaces
// the earlier record: one record per user per day, enforced by the key
// rather than by an append that was never cleaned up.
package lifestyle

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"neurowatch/internal/models"
	"neurowatch/internal/store"
)

// ErrInvalidDate means the record's date is not a YYYY-MM-DD calendar day.
var ErrInvalidDate = errors.New("lifestyle: invalid date")

// Log reads and writes LifestyleRecords under /lifestyle/{identityID}.
type Log struct {
	store store.RecordStore
}

func NewLog(s store.RecordStore) *Log {
	return &Log{store: s}
}

func path(identityID string) string {
	return "lifestyle/" + identityID
}

// Save upserts the record keyed by its date. A record with no date gets
// today's, matching the original form's behavior.
func (l *Log) Save(ctx context.Context, identityID string, record models.LifestyleRecord) error {
	if record.Date == "" {
		record.Date = time.Now().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", record.Date); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, record.Date)
	}
	return l.store.Put(ctx, path(identityID)+"/"+record.Date, record)
}

// LoadAll returns every stored record for the identity, ordered by date
// ascending (the store's key order). No records is an empty slice, not an
// error.
func (l *Log) LoadAll(ctx context.Context, identityID string) ([]models.LifestyleRecord, error) {
	byDate := make(map[string]models.LifestyleRecord)
	err := l.store.Get(ctx, path(identityID), &byDate)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	records := make([]models.LifestyleRecord, 0, len(dates))
	for _, d := range dates {
		rec := byDate[d]
		if rec.Date == "" {
			rec.Date = d
		}
		records = append(records, rec)
	}
	return records, nil
}
