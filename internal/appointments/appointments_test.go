package appointments

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neurowatch/internal/models"
	"neurowatch/internal/store"
)

func TestScheduleAndUpcoming(t *testing.T) {
	b := NewBook(store.NewMemStore())
	ctx := context.Background()

	later, err := b.Schedule(ctx, "u1", models.Appointment{
		Doctor: Doctors[0], Date: "2026-03-10", Time: "14:00", Reason: "Follow-up",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, later.ID)

	sooner, err := b.Schedule(ctx, "u1", models.Appointment{
		Doctor: Doctors[1], Date: "2026-03-02", Time: "09:30",
	})
	require.NoError(t, err)

	appts, err := b.Upcoming(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, appts, 2)
	assert.Equal(t, sooner.ID, appts[0].ID, "soonest first")
	assert.Equal(t, later.ID, appts[1].ID)
}

func TestScheduleValidation(t *testing.T) {
	b := NewBook(store.NewMemStore())
	ctx := context.Background()

	_, err := b.Schedule(ctx, "u1", models.Appointment{Date: "2026-03-10", Time: "14:00"})
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = b.Schedule(ctx, "u1", models.Appointment{Doctor: Doctors[0], Date: "March 10", Time: "14:00"})
	assert.Error(t, err)
}

func TestUpcomingEmpty(t *testing.T) {
	b := NewBook(store.NewMemStore())
	appts, err := b.Upcoming(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, appts)
}
