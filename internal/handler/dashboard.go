package handler

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rainditya/tutor-backoffice/internal/model"
	"github.com/rainditya/tutor-backoffice/internal/state"
)

// bookingCounter is the status summary backing the headline cards.
// *repository.BookingRepo satisfies it.
type bookingCounter interface {
	BookingsStatistics(ctx context.Context) (model.BookingStatistics, error)
}

// DashboardHandler derives the headline numbers from the two state
// containers plus the store's status summary. The route sits behind
// the response cache, which absorbs the fetch latency floor on
// repeated widget refreshes.
type DashboardHandler struct {
	Tutors   *state.Tutors
	Bookings *state.Bookings
	Counts   bookingCounter
}

func NewDashboardHandler(t *state.Tutors, b *state.Bookings, counts bookingCounter) *DashboardHandler {
	return &DashboardHandler{Tutors: t, Bookings: b, Counts: counts}
}

type dashboardStats struct {
	TotalTutors       int    `json:"totalTutors"`
	ActiveTutors      int    `json:"activeTutors"`
	TotalBookings     int    `json:"totalBookings"`
	CompletedBookings int    `json:"completedBookings"`
	WeeklyGrowth      string `json:"weeklyGrowth"`
}

// Stats handles GET /v1/dashboard/stats. The two container fetches run
// concurrently so the page pays the latency floor once, not twice.
func (h *DashboardHandler) Stats(c echo.Context) error {
	ctx := c.Request().Context()

	var (
		wg         sync.WaitGroup
		tErr, bErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		tErr = h.Tutors.Fetch(ctx)
	}()
	go func() {
		defer wg.Done()
		bErr = h.Bookings.Fetch(ctx)
	}()
	wg.Wait()

	if tErr != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load tutors"})
	}
	if bErr != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
	}

	counts, err := h.Counts.BookingsStatistics(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
	}

	tutors := h.Tutors.View().Tutors
	bookings := h.Bookings.View().Bookings

	stats := dashboardStats{
		TotalTutors:       len(tutors),
		TotalBookings:     counts.Total,
		CompletedBookings: counts.Completed,
		WeeklyGrowth:      weeklyGrowth(bookings, time.Now()),
	}
	for _, t := range tutors {
		if t.Status == model.TutorStatusActive {
			stats.ActiveTutors++
		}
	}
	return c.JSON(http.StatusOK, stats)
}

// weeklyGrowth compares bookings dated in the trailing 7-day window
// against the 7 days before it, using calendar-day string ranges. An
// empty previous window reports +100% when the current one is
// non-zero, else 0%.
func weeklyGrowth(bookings []model.Booking, now time.Time) string {
	day := func(offset int) string { return now.AddDate(0, 0, offset).Format("2006-01-02") }
	curFrom, curTo := day(-6), day(0)
	prevFrom, prevTo := day(-13), day(-7)

	var cur, prev int
	for _, b := range bookings {
		switch {
		case b.Date >= curFrom && b.Date <= curTo:
			cur++
		case b.Date >= prevFrom && b.Date <= prevTo:
			prev++
		}
	}

	if prev == 0 {
		if cur > 0 {
			return "+100%"
		}
		return "0%"
	}
	pct := int(math.Round(float64(cur-prev) / float64(prev) * 100))
	if pct > 0 {
		return fmt.Sprintf("+%d%%", pct)
	}
	return fmt.Sprintf("%d%%", pct)
}
