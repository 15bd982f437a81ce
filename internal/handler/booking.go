package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rainditya/tutor-backoffice/internal/model"
	"github.com/rainditya/tutor-backoffice/internal/repository"
	"github.com/rainditya/tutor-backoffice/internal/state"
	"github.com/rainditya/tutor-backoffice/internal/validation"
)

// eventPublisher receives booking lifecycle notifications after the
// store has confirmed a mutation. Publish failures are logged by the
// publisher and never fail the request.
type eventPublisher interface {
	PublishBookingEvent(ctx context.Context, action string, b model.Booking)
}

// BookingHandler serves the bookings page and the dashboard's booking
// widgets.
type BookingHandler struct {
	State  *state.Bookings
	Events eventPublisher
}

func NewBookingHandler(st *state.Bookings, events eventPublisher) *BookingHandler {
	return &BookingHandler{State: st, Events: events}
}

type bookingListResp struct {
	Items      []model.Booking `json:"items"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	PerPage    int             `json:"perPage"`
	TotalPages int             `json:"totalPages"`
	Notice     string          `json:"notice,omitempty"`
}

// List handles GET /v1/bookings. A range=next3d query presets the
// status filter to scheduled and returns a one-time notice; the
// client toasts it and strips the parameter from the URL.
func (h *BookingHandler) List(c echo.Context) error {
	status := c.QueryParam("status")
	notice := ""
	if c.QueryParam("range") == "next3d" {
		status = model.BookingStatusScheduled
		notice = "showing scheduled bookings for the next 3 days"
	}

	if err := h.State.Fetch(c.Request().Context()); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
	}
	view := h.State.View()

	filtered := filterBookings(view.Bookings, status)
	page, perPage := parsePaging(c.QueryParam("page"), c.QueryParam("perPage"))
	start, end, page, totalPages := slicePage(len(filtered), page, perPage)

	return c.JSON(http.StatusOK, bookingListResp{
		Items:      filtered[start:end],
		Total:      len(filtered),
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages,
		Notice:     notice,
	})
}

// Upcoming handles GET /v1/bookings/upcoming: scheduled bookings in
// the next 3 days, soonest first.
func (h *BookingHandler) Upcoming(c echo.Context) error {
	if err := h.State.FetchUpcoming(c.Request().Context()); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load upcoming bookings"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": h.State.View().Upcoming})
}

// Weekly handles GET /v1/bookings/weekly: the 7-day activity chart.
func (h *BookingHandler) Weekly(c echo.Context) error {
	if err := h.State.FetchWeekly(c.Request().Context()); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load weekly data"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": h.State.View().Weekly})
}

// Create handles POST /v1/bookings.
func (h *BookingHandler) Create(c echo.Context) error {
	var in model.BookingInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if errs := validation.Check(in); errs != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"errors": errs})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	created, err := h.State.Add(ctx, in)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"errors": map[string]string{"tutorId": "selected tutor no longer exists"},
			})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to save booking"})
	}
	h.Events.PublishBookingEvent(ctx, "created", created)
	return c.JSON(http.StatusCreated, created)
}

// Update handles PUT /v1/bookings/:id.
func (h *BookingHandler) Update(c echo.Context) error {
	id := c.Param("id")
	var patch model.BookingPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if errs := validation.Check(patch); errs != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"errors": errs})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	updated, err := h.State.Edit(ctx, id, patch)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to save booking"})
	}
	h.Events.PublishBookingEvent(ctx, "updated", updated)
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /v1/bookings/:id.
func (h *BookingHandler) Delete(c echo.Context) error {
	id := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.State.Remove(ctx, id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete booking"})
	}
	h.Events.PublishBookingEvent(ctx, "deleted", model.Booking{ID: id})
	return c.JSON(http.StatusOK, echo.Map{"id": id})
}

// filterBookings applies the exact-status filter; "all" or empty
// passes everything through.
func filterBookings(bookings []model.Booking, status string) []model.Booking {
	if status == "" || status == "all" {
		return bookings
	}
	out := []model.Booking{}
	for _, b := range bookings {
		if b.Status == status {
			out = append(out, b)
		}
	}
	return out
}
