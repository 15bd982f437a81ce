package state

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rainditya/tutor-backoffice/internal/model"
)

type stubBookingStore struct {
	createFn   func(ctx context.Context, in model.BookingInput) (model.Booking, error)
	allFn      func(ctx context.Context) ([]model.Booking, error)
	updateFn   func(ctx context.Context, id string, p model.BookingPatch) (string, error)
	deleteFn   func(ctx context.Context, id string) (string, error)
	upcomingFn func(ctx context.Context) ([]model.Booking, error)
	weeklyFn   func(ctx context.Context) ([]model.WeeklyBucket, error)
}

func (s *stubBookingStore) CreateBooking(ctx context.Context, in model.BookingInput) (model.Booking, error) {
	return s.createFn(ctx, in)
}

func (s *stubBookingStore) AllBookings(ctx context.Context) ([]model.Booking, error) {
	return s.allFn(ctx)
}

func (s *stubBookingStore) UpdateBooking(ctx context.Context, id string, p model.BookingPatch) (string, error) {
	return s.updateFn(ctx, id, p)
}

func (s *stubBookingStore) DeleteBooking(ctx context.Context, id string) (string, error) {
	return s.deleteFn(ctx, id)
}

func (s *stubBookingStore) UpcomingBookings(ctx context.Context) ([]model.Booking, error) {
	return s.upcomingFn(ctx)
}

func (s *stubBookingStore) WeeklyBookingsData(ctx context.Context) ([]model.WeeklyBucket, error) {
	return s.weeklyFn(ctx)
}

func scheduledOn(id, date, start string) model.Booking {
	return model.Booking{ID: id, Date: date, StartTime: start, Status: model.BookingStatusScheduled}
}

func TestBookingsFetch_SortsBySchedule(t *testing.T) {
	t.Parallel()

	store := &stubBookingStore{
		allFn: func(context.Context) ([]model.Booking, error) {
			return []model.Booking{
				scheduledOn("late", "2026-03-12", "10:00"),
				scheduledOn("early", "2026-03-10", "09:00"),
				scheduledOn("mid", "2026-03-10", "14:00"),
			}, nil
		},
	}
	c := NewBookings(store, 0)

	require.NoError(t, c.Fetch(context.Background()))

	view := c.View()
	require.Len(t, view.Bookings, 3)
	assert.Equal(t, "early", view.Bookings[0].ID)
	assert.Equal(t, "mid", view.Bookings[1].ID)
	assert.Equal(t, "late", view.Bookings[2].ID)
	assert.False(t, view.InitialLoading)
}

func TestBookingsAdd_InsertsInScheduleOrder(t *testing.T) {
	t.Parallel()

	store := &stubBookingStore{
		allFn: func(context.Context) ([]model.Booking, error) {
			return []model.Booking{
				scheduledOn("b", "2026-03-11", "10:00"),
				scheduledOn("c", "2026-03-12", "10:00"),
			}, nil
		},
		createFn: func(_ context.Context, in model.BookingInput) (model.Booking, error) {
			return scheduledOn("a", in.Date, in.StartTime), nil
		},
	}
	c := NewBookings(store, 0)
	require.NoError(t, c.Fetch(context.Background()))

	created, err := c.Add(context.Background(), model.BookingInput{
		TutorID: "t1", StudentName: "Sam", Date: "2026-03-10", StartTime: "09:00", EndTime: "10:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "a", created.ID)

	view := c.View()
	require.Len(t, view.Bookings, 3)
	assert.Equal(t, "a", view.Bookings[0].ID, "new earliest booking re-sorts to the front")
}

func TestBookingsEdit_DateChangeResorts(t *testing.T) {
	t.Parallel()

	store := &stubBookingStore{
		allFn: func(context.Context) ([]model.Booking, error) {
			return []model.Booking{
				scheduledOn("a", "2026-03-10", "09:00"),
				scheduledOn("b", "2026-03-11", "10:00"),
			}, nil
		},
		updateFn: func(context.Context, string, model.BookingPatch) (string, error) {
			return "2026-03-09T08:00:00Z", nil
		},
	}
	c := NewBookings(store, 0)
	require.NoError(t, c.Fetch(context.Background()))

	newDate := "2026-03-20"
	updated, err := c.Edit(context.Background(), "a", model.BookingPatch{Date: &newDate})
	require.NoError(t, err)
	assert.Equal(t, "2026-03-20", updated.Date)
	assert.Equal(t, "2026-03-09T08:00:00Z", updated.UpdatedAt)

	view := c.View()
	assert.Equal(t, "b", view.Bookings[0].ID)
	assert.Equal(t, "a", view.Bookings[1].ID)
}

func TestBookingsRemove_Filters(t *testing.T) {
	t.Parallel()

	store := &stubBookingStore{
		allFn: func(context.Context) ([]model.Booking, error) {
			return []model.Booking{scheduledOn("a", "2026-03-10", "09:00")}, nil
		},
		deleteFn: func(_ context.Context, id string) (string, error) { return id, nil },
	}
	c := NewBookings(store, 0)
	require.NoError(t, c.Fetch(context.Background()))

	require.NoError(t, c.Remove(context.Background(), "a"))
	assert.Empty(t, c.View().Bookings)
}

func TestBookingsDerivedViews_RefreshIndependently(t *testing.T) {
	t.Parallel()

	store := &stubBookingStore{
		upcomingFn: func(context.Context) ([]model.Booking, error) {
			return []model.Booking{scheduledOn("u1", "2026-03-10", "09:00")}, nil
		},
		weeklyFn: func(context.Context) ([]model.WeeklyBucket, error) {
			return []model.WeeklyBucket{{Day: "Tue", Date: "2026-03-10", Bookings: 1}}, nil
		},
	}
	c := NewBookings(store, 0)

	require.NoError(t, c.FetchUpcoming(context.Background()))
	require.NoError(t, c.FetchWeekly(context.Background()))

	view := c.View()
	require.Len(t, view.Upcoming, 1)
	assert.Equal(t, "u1", view.Upcoming[0].ID)
	require.Len(t, view.Weekly, 1)
	assert.Equal(t, 1, view.Weekly[0].Bookings)
}

func TestBookingsDerivedViews_StaleAfterMutation(t *testing.T) {
	t.Parallel()

	store := &stubBookingStore{
		upcomingFn: func(context.Context) ([]model.Booking, error) {
			return []model.Booking{scheduledOn("u1", "2026-03-10", "09:00")}, nil
		},
		deleteFn: func(_ context.Context, id string) (string, error) { return id, nil },
	}
	c := NewBookings(store, 0)
	require.NoError(t, c.FetchUpcoming(context.Background()))

	// Deleting does not touch the upcoming view; it refreshes only
	// through its own fetch.
	require.NoError(t, c.Remove(context.Background(), "u1"))
	assert.Len(t, c.View().Upcoming, 1)
}

func TestBookingsFetch_ErrorKeepsCache(t *testing.T) {
	t.Parallel()

	calls := 0
	store := &stubBookingStore{
		allFn: func(context.Context) ([]model.Booking, error) {
			calls++
			if calls > 1 {
				return nil, errors.New("store unavailable")
			}
			return []model.Booking{scheduledOn("a", "2026-03-10", "09:00")}, nil
		},
	}
	c := NewBookings(store, 0)

	require.NoError(t, c.Fetch(context.Background()))
	require.Error(t, c.Fetch(context.Background()))

	view := c.View()
	assert.Equal(t, "store unavailable", view.Err)
	require.Len(t, view.Bookings, 1, "failed refresh keeps the last good copy")
}
