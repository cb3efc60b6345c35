package lifestyle

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neurowatch/internal/models"
	"neurowatch/internal/store"
)

func TestSaveAndLoadAll(t *testing.T) {
	l := NewLog(store.NewMemStore())
	ctx := context.Background()

	require.NoError(t, l.Save(ctx, "u1", models.LifestyleRecord{
		Date: "2026-02-01", Breakfast: "Oatmeal with berries", SleepHours: 7.5, Activity: "Walking",
	}))
	require.NoError(t, l.Save(ctx, "u1", models.LifestyleRecord{
		Date: "2026-01-31", Dinner: "Salmon with vegetables", SleepHours: 6.5, Activity: "Yoga",
	}))

	records, err := l.LoadAll(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "2026-01-31", records[0].Date)
	assert.Equal(t, "2026-02-01", records[1].Date)
	assert.Equal(t, "Oatmeal with berries", records[1].Breakfast)
}

func TestSaveUpsertsByDate(t *testing.T) {
	l := NewLog(store.NewMemStore())
	ctx := context.Background()

	require.NoError(t, l.Save(ctx, "u1", models.LifestyleRecord{Date: "2026-02-01", SleepHours: 6}))
	require.NoError(t, l.Save(ctx, "u1", models.LifestyleRecord{Date: "2026-02-01", SleepHours: 8}))

	records, err := l.LoadAll(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, records, 1, "one record per calendar day")
	assert.Equal(t, 8.0, records[0].SleepHours, "later save wins")
}

func TestSaveRejectsBadDate(t *testing.T) {
	l := NewLog(store.NewMemStore())
	err := l.Save(context.Background(), "u1", models.LifestyleRecord{Date: "Feb 1 2026"})
	assert.Error(t, err)
}

func TestLoadAllEmpty(t *testing.T) {
	l := NewLog(store.NewMemStore())
	records, err := l.LoadAll(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, records, "absence of data is not an error")
}

func TestRecordsAreScopedByIdentity(t *testing.T) {
	l := NewLog(store.NewMemStore())
	ctx := context.Background()

	require.NoError(t, l.Save(ctx, "u1", models.LifestyleRecord{Date: "2026-02-01", Snack: "Apple"}))
	records, err := l.LoadAll(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, records)
}
