package state

import (
	"context"
	"sync"
	"time"

	"github.com/rainditya/tutor-backoffice/internal/model"
	"github.com/rainditya/tutor-backoffice/internal/repository"
)

// BookingStore is the slice of the repository the booking container
// depends on.
type BookingStore interface {
	CreateBooking(ctx context.Context, in model.BookingInput) (model.Booking, error)
	AllBookings(ctx context.Context) ([]model.Booking, error)
	UpdateBooking(ctx context.Context, id string, p model.BookingPatch) (string, error)
	DeleteBooking(ctx context.Context, id string) (string, error)
	UpcomingBookings(ctx context.Context) ([]model.Booking, error)
	WeeklyBookingsData(ctx context.Context) ([]model.WeeklyBucket, error)
}

// BookingsView is a point-in-time copy of the container for rendering.
type BookingsView struct {
	Bookings       []model.Booking
	Upcoming       []model.Booking
	Weekly         []model.WeeklyBucket
	Loading        bool
	InitialLoading bool
	Err            string
}

// Bookings caches the booking collection plus the two derived views.
// The primary collection is kept in deterministic display order (date
// ascending, then start time): a full fetch sorts, and add/edit
// re-sort because either can change the schedule. The upcoming and
// weekly views refresh only through their own fetches, so they go
// stale after a mutation until re-fetched.
type Bookings struct {
	mu            sync.Mutex
	store         BookingStore
	minFetchDelay time.Duration

	bookings       []model.Booking
	upcoming       []model.Booking
	weekly         []model.WeeklyBucket
	loading        bool
	initialLoading bool
	lastErr        string
}

// NewBookings returns an empty container in its initial-loading state.
func NewBookings(store BookingStore, minFetchDelay time.Duration) *Bookings {
	return &Bookings{store: store, minFetchDelay: minFetchDelay, initialLoading: true}
}

// View returns a copy of the current state.
func (c *Bookings) View() BookingsView {
	c.mu.Lock()
	defer c.mu.Unlock()
	bookings := make([]model.Booking, len(c.bookings))
	copy(bookings, c.bookings)
	upcoming := make([]model.Booking, len(c.upcoming))
	copy(upcoming, c.upcoming)
	weekly := make([]model.WeeklyBucket, len(c.weekly))
	copy(weekly, c.weekly)
	return BookingsView{
		Bookings:       bookings,
		Upcoming:       upcoming,
		Weekly:         weekly,
		Loading:        c.loading,
		InitialLoading: c.initialLoading,
		Err:            c.lastErr,
	}
}

// ClearError resets the last stored error message.
func (c *Bookings) ClearError() {
	c.mu.Lock()
	c.lastErr = ""
	c.mu.Unlock()
}

// Fetch replaces the primary collection with a sorted full read,
// holding the loading flag for at least the configured floor.
func (c *Bookings) Fetch(ctx context.Context) error {
	c.mu.Lock()
	c.loading = true
	c.lastErr = ""
	c.mu.Unlock()

	started := time.Now()
	bookings, err := c.store.AllBookings(ctx)
	holdFloor(ctx, started, c.minFetchDelay)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	c.initialLoading = false
	if err != nil {
		c.lastErr = err.Error()
		return err
	}
	repository.SortSchedule(bookings)
	c.bookings = bookings
	return nil
}

// FetchUpcoming refreshes the 3-day upcoming view. No latency floor:
// the widget renders alongside the primary list.
func (c *Bookings) FetchUpcoming(ctx context.Context) error {
	upcoming, err := c.store.UpcomingBookings(ctx)
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.lastErr = err.Error()
		return err
	}
	c.upcoming = upcoming
	return nil
}

// FetchWeekly refreshes the 7-day histogram view.
func (c *Bookings) FetchWeekly(ctx context.Context) error {
	weekly, err := c.store.WeeklyBookingsData(ctx)
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.lastErr = err.Error()
		return err
	}
	c.weekly = weekly
	return nil
}

// Add creates a booking, inserts it into the cached collection and
// re-sorts to keep display order deterministic.
func (c *Bookings) Add(ctx context.Context, in model.BookingInput) (model.Booking, error) {
	c.setLoading()
	created, err := c.store.CreateBooking(ctx, in)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		c.lastErr = err.Error()
		return model.Booking{}, err
	}
	c.bookings = append(c.bookings, created)
	repository.SortSchedule(c.bookings)
	return created, nil
}

// Edit updates a booking, shallow-merges the patch into the cached
// record and re-sorts in case the date or time changed.
func (c *Bookings) Edit(ctx context.Context, id string, p model.BookingPatch) (model.Booking, error) {
	c.setLoading()
	updatedAt, err := c.store.UpdateBooking(ctx, id, p)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		c.lastErr = err.Error()
		return model.Booking{}, err
	}
	merged := p.Apply(model.Booking{ID: id})
	for i := range c.bookings {
		if c.bookings[i].ID == id {
			c.bookings[i] = p.Apply(c.bookings[i])
			c.bookings[i].UpdatedAt = updatedAt
			merged = c.bookings[i]
			break
		}
	}
	repository.SortSchedule(c.bookings)
	merged.UpdatedAt = updatedAt
	return merged, nil
}

// Remove deletes a booking and filters it out of the cache.
func (c *Bookings) Remove(ctx context.Context, id string) error {
	c.setLoading()
	_, err := c.store.DeleteBooking(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		c.lastErr = err.Error()
		return err
	}
	kept := c.bookings[:0]
	for _, b := range c.bookings {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	c.bookings = kept
	return nil
}

func (c *Bookings) setLoading() {
	c.mu.Lock()
	c.loading = true
	c.mu.Unlock()
}
