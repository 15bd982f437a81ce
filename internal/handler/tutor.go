package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rainditya/tutor-backoffice/internal/model"
	"github.com/rainditya/tutor-backoffice/internal/repository"
	"github.com/rainditya/tutor-backoffice/internal/state"
	"github.com/rainditya/tutor-backoffice/internal/validation"
)

// tutorGuard is the pre-delete integrity check: a tutor with bookings
// still referencing it must not be removed. *repository.BookingRepo
// satisfies it.
type tutorGuard interface {
	TutorHasBookings(ctx context.Context, tutorID string) (bool, error)
}

// guardMessage is the distinct notification shown for integrity-guard
// rejections, as opposed to generic store failures.
const guardMessage = "tutor still has bookings; delete or complete them first"

// activeLister is the status-filtered scan backing the booking form's
// tutor selector. *repository.TutorRepo satisfies it.
type activeLister interface {
	ActiveTutors(ctx context.Context) ([]model.Tutor, error)
}

// TutorHandler serves the tutor management page.
type TutorHandler struct {
	State   *state.Tutors
	Actives activeLister
	Guard   tutorGuard
}

func NewTutorHandler(st *state.Tutors, actives activeLister, guard tutorGuard) *TutorHandler {
	return &TutorHandler{State: st, Actives: actives, Guard: guard}
}

type tutorListResp struct {
	Items      []model.Tutor `json:"items"`
	Total      int           `json:"total"`
	Page       int           `json:"page"`
	PerPage    int           `json:"perPage"`
	TotalPages int           `json:"totalPages"`
}

// List handles GET /v1/tutors. It refreshes the container, then
// applies the search and status filters before pagination, the same
// order the tutors page uses.
func (h *TutorHandler) List(c echo.Context) error {
	if err := h.State.Fetch(c.Request().Context()); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load tutors"})
	}
	view := h.State.View()

	filtered := filterTutors(view.Tutors, c.QueryParam("search"), c.QueryParam("status"))
	page, perPage := parsePaging(c.QueryParam("page"), c.QueryParam("perPage"))
	start, end, page, totalPages := slicePage(len(filtered), page, perPage)

	return c.JSON(http.StatusOK, tutorListResp{
		Items:      filtered[start:end],
		Total:      len(filtered),
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages,
	})
}

// Active handles GET /v1/tutors/active, backing the booking form's
// tutor selector. It reads the status-filtered scan directly; the
// selector doesn't need the container's latency floor or cache.
func (h *TutorHandler) Active(c echo.Context) error {
	active, err := h.Actives.ActiveTutors(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load tutors"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": active})
}

// Create handles POST /v1/tutors.
func (h *TutorHandler) Create(c echo.Context) error {
	var in model.TutorInput
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
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to save tutor"})
	}
	return c.JSON(http.StatusCreated, created)
}

// Update handles PUT /v1/tutors/:id.
func (h *TutorHandler) Update(c echo.Context) error {
	id := c.Param("id")
	var patch model.TutorPatch
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
			return c.JSON(http.StatusNotFound, echo.Map{"error": "tutor not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to save tutor"})
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /v1/tutors/:id. The has-bookings guard runs
// before the delete and rejects with 409 and the guard message.
func (h *TutorHandler) Delete(c echo.Context) error {
	id := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	hasBookings, err := h.Guard.TutorHasBookings(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to check bookings"})
	}
	if hasBookings {
		return c.JSON(http.StatusConflict, echo.Map{"error": guardMessage})
	}

	if err := h.State.Remove(ctx, id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete tutor"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id})
}

type bulkDeleteReq struct {
	IDs []string `json:"ids"`
}

type bulkDeleteResp struct {
	Deleted     int      `json:"deleted"`
	Failed      int      `json:"failed"`
	FailedNames []string `json:"failedNames"`
}

// BulkDelete handles POST /v1/tutors/bulk-delete. Ids are processed
// sequentially; each one re-runs the booking guard. The summary is
// reported whatever the outcome, and the client clears its selection
// regardless.
func (h *TutorHandler) BulkDelete(c echo.Context) error {
	var req bulkDeleteReq
	if err := c.Bind(&req); err != nil || len(req.IDs) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "ids required"})
	}

	view := h.State.View()
	names := make(map[string]string, len(view.Tutors))
	for _, t := range view.Tutors {
		names[t.ID] = t.Name
	}
	nameOf := func(id string) string {
		if n, ok := names[id]; ok {
			return n
		}
		return id
	}

	resp := bulkDeleteResp{FailedNames: []string{}}
	for _, id := range req.IDs {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
		hasBookings, err := h.Guard.TutorHasBookings(ctx, id)
		if err != nil || hasBookings {
			cancel()
			resp.Failed++
			resp.FailedNames = append(resp.FailedNames, nameOf(id))
			continue
		}
		if err := h.State.Remove(ctx, id); err != nil {
			resp.Failed++
			resp.FailedNames = append(resp.FailedNames, nameOf(id))
		} else {
			resp.Deleted++
		}
		cancel()
	}
	return c.JSON(http.StatusOK, resp)
}

// filterTutors applies the case-insensitive substring search across
// name/email/subject combined with the status filter.
func filterTutors(tutors []model.Tutor, search, status string) []model.Tutor {
	search = strings.ToLower(strings.TrimSpace(search))
	if status == "" {
		status = "all"
	}
	out := []model.Tutor{}
	for _, t := range tutors {
		if status != "all" && t.Status != status {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(t.Name), search) &&
			!strings.Contains(strings.ToLower(t.Email), search) &&
			!strings.Contains(strings.ToLower(t.Subject), search) {
			continue
		}
		out = append(out, t)
	}
	return out
}
