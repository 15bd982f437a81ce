package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rainditya/tutor-backoffice/internal/model"
	"github.com/rainditya/tutor-backoffice/internal/state"
)

type fakeTutorStore struct {
	tutors []model.Tutor
}

func (f *fakeTutorStore) CreateTutor(_ context.Context, in model.TutorInput) (model.Tutor, error) {
	return model.Tutor{ID: "new", Name: in.Name}, nil
}

func (f *fakeTutorStore) AllTutors(context.Context) ([]model.Tutor, error) {
	return f.tutors, nil
}

func (f *fakeTutorStore) ActiveTutors(context.Context) ([]model.Tutor, error) {
	active := []model.Tutor{}
	for _, t := range f.tutors {
		if t.Status == model.TutorStatusActive {
			active = append(active, t)
		}
	}
	return active, nil
}

func (f *fakeTutorStore) UpdateTutor(context.Context, string, model.TutorPatch) (string, error) {
	return "2026-03-10T12:00:00Z", nil
}

func (f *fakeTutorStore) DeleteTutor(_ context.Context, id string) (string, error) {
	return id, nil
}

// fakeGuard reports bookings for a fixed set of tutor ids.
type fakeGuard struct {
	busy map[string]bool
}

func (f *fakeGuard) TutorHasBookings(_ context.Context, id string) (bool, error) {
	return f.busy[id], nil
}

func sampleTutors() []model.Tutor {
	return []model.Tutor{
		{ID: "t1", Name: "Ada Lovelace", Email: "ada@example.com", Subject: "Mathematics", Status: model.TutorStatusActive},
		{ID: "t2", Name: "Grace Hopper", Email: "grace@example.com", Subject: "Computer Science", Status: model.TutorStatusActive},
		{ID: "t3", Name: "Alan Turing", Email: "alan@example.com", Subject: "Mathematics", Status: model.TutorStatusInactive},
	}
}

func TestFilterTutors(t *testing.T) {
	t.Parallel()

	tutors := sampleTutors()

	t.Run("search is case-insensitive across name email subject", func(t *testing.T) {
		got := filterTutors(tutors, "GRACE", "")
		require.Len(t, got, 1)
		assert.Equal(t, "t2", got[0].ID)

		got = filterTutors(tutors, "mathematics", "")
		assert.Len(t, got, 2)

		got = filterTutors(tutors, "example.com", "")
		assert.Len(t, got, 3)
	})

	t.Run("status filter combines with search", func(t *testing.T) {
		got := filterTutors(tutors, "mathematics", model.TutorStatusActive)
		require.Len(t, got, 1)
		assert.Equal(t, "t1", got[0].ID)
	})

	t.Run("all and empty status pass everything", func(t *testing.T) {
		assert.Len(t, filterTutors(tutors, "", "all"), 3)
		assert.Len(t, filterTutors(tutors, "", ""), 3)
	})

	t.Run("no match yields empty not nil", func(t *testing.T) {
		got := filterTutors(tutors, "zzz", "")
		require.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestTutorActive_ListsOnlyActive(t *testing.T) {
	t.Parallel()

	store := &fakeTutorStore{tutors: sampleTutors()}
	h := NewTutorHandler(state.NewTutors(store, 0), store, &fakeGuard{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/tutors/active", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, h.Active(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Items []model.Tutor `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 2)
	for _, tu := range resp.Items {
		assert.Equal(t, model.TutorStatusActive, tu.Status)
	}
}

func TestTutorDelete_GuardRejectsWithConflict(t *testing.T) {
	t.Parallel()

	store := &fakeTutorStore{tutors: sampleTutors()}
	st := state.NewTutors(store, 0)
	require.NoError(t, st.Fetch(context.Background()))
	h := NewTutorHandler(st, store, &fakeGuard{busy: map[string]bool{"t1": true}})

	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/v1/tutors/t1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("t1")

	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusConflict, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, guardMessage, body["error"])

	// The guarded tutor stays cached.
	assert.Len(t, st.View().Tutors, 3)
}

func TestTutorBulkDelete_ReportsSummary(t *testing.T) {
	t.Parallel()

	store := &fakeTutorStore{tutors: sampleTutors()}
	st := state.NewTutors(store, 0)
	require.NoError(t, st.Fetch(context.Background()))
	h := NewTutorHandler(st, store, &fakeGuard{busy: map[string]bool{"t2": true}})

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/tutors/bulk-delete",
		strings.NewReader(`{"ids":["t1","t2","t3"]}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	require.NoError(t, h.BulkDelete(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp bulkDeleteResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Deleted)
	assert.Equal(t, 1, resp.Failed)
	assert.Equal(t, []string{"Grace Hopper"}, resp.FailedNames)

	view := st.View()
	require.Len(t, view.Tutors, 1)
	assert.Equal(t, "t2", view.Tutors[0].ID)
}

func TestTutorBulkDelete_EmptyIDsRejected(t *testing.T) {
	t.Parallel()

	store := &fakeTutorStore{}
	st := state.NewTutors(store, 0)
	h := NewTutorHandler(st, store, &fakeGuard{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/tutors/bulk-delete", strings.NewReader(`{"ids":[]}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	require.NoError(t, h.BulkDelete(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
