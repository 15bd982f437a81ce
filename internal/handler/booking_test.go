package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rainditya/tutor-backoffice/internal/model"
	"github.com/rainditya/tutor-backoffice/internal/state"
)

type fakeBookingStore struct {
	bookings []model.Booking
}

func (f *fakeBookingStore) CreateBooking(_ context.Context, in model.BookingInput) (model.Booking, error) {
	return model.Booking{ID: "new", TutorID: in.TutorID, Date: in.Date}, nil
}

func (f *fakeBookingStore) AllBookings(context.Context) ([]model.Booking, error) {
	return f.bookings, nil
}

func (f *fakeBookingStore) UpdateBooking(context.Context, string, model.BookingPatch) (string, error) {
	return "2026-03-10T12:00:00Z", nil
}

func (f *fakeBookingStore) DeleteBooking(_ context.Context, id string) (string, error) {
	return id, nil
}

func (f *fakeBookingStore) UpcomingBookings(context.Context) ([]model.Booking, error) {
	return nil, nil
}

func (f *fakeBookingStore) WeeklyBookingsData(context.Context) ([]model.WeeklyBucket, error) {
	return nil, nil
}

// recordingPublisher captures published actions for assertions.
type recordingPublisher struct {
	actions []string
}

func (p *recordingPublisher) PublishBookingEvent(_ context.Context, action string, _ model.Booking) {
	p.actions = append(p.actions, action)
}

func sampleBookings() []model.Booking {
	return []model.Booking{
		{ID: "b1", Date: "2026-03-10", StartTime: "09:00", Status: model.BookingStatusScheduled},
		{ID: "b2", Date: "2026-03-11", StartTime: "10:00", Status: model.BookingStatusCompleted},
		{ID: "b3", Date: "2026-03-12", StartTime: "11:00", Status: model.BookingStatusScheduled},
	}
}

func TestFilterBookings(t *testing.T) {
	t.Parallel()

	bookings := sampleBookings()

	got := filterBookings(bookings, model.BookingStatusScheduled)
	require.Len(t, got, 2)
	assert.Equal(t, "b1", got[0].ID)

	assert.Len(t, filterBookings(bookings, ""), 3)
	assert.Len(t, filterBookings(bookings, "all"), 3)
	assert.Empty(t, filterBookings(bookings, model.BookingStatusCancelled))
}

func TestBookingList_Next3dPreset(t *testing.T) {
	t.Parallel()

	st := state.NewBookings(&fakeBookingStore{bookings: sampleBookings()}, 0)
	h := NewBookingHandler(st, &recordingPublisher{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/bookings?range=next3d", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, h.List(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp bookingListResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "showing scheduled bookings for the next 3 days", resp.Notice)
	require.Len(t, resp.Items, 2)
	for _, b := range resp.Items {
		assert.Equal(t, model.BookingStatusScheduled, b.Status)
	}
}

func TestBookingList_NoNoticeWithoutPreset(t *testing.T) {
	t.Parallel()

	st := state.NewBookings(&fakeBookingStore{bookings: sampleBookings()}, 0)
	h := NewBookingHandler(st, &recordingPublisher{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/bookings", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, h.List(e.NewContext(req, rec)))

	var resp bookingListResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Notice)
	assert.Equal(t, 3, resp.Total)
}

func TestBookingDelete_PublishesEvent(t *testing.T) {
	t.Parallel()

	st := state.NewBookings(&fakeBookingStore{bookings: sampleBookings()}, 0)
	require.NoError(t, st.Fetch(context.Background()))
	pub := &recordingPublisher{}
	h := NewBookingHandler(st, pub)

	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/v1/bookings/b1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("b1")

	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"deleted"}, pub.actions)
	assert.Len(t, st.View().Bookings, 2)
}
