package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/rainditya/tutor-backoffice/internal/model"
)

// TutorRepo provides CRUD operations over the `tutors` collection.
// Ids are assigned here (UUID strings) so callers treat them as
// opaque; created_at/updated_at are written by the database and
// normalized to ISO-8601 strings on read.
type TutorRepo struct {
	db *sql.DB
}

// NewTutorRepo returns a TutorRepo bound to the given database.
func NewTutorRepo(db *sql.DB) *TutorRepo { return &TutorRepo{db: db} }

const tutorColumns = "id, name, email, subject, hourly_rate, status, created_at, updated_at"

func scanTutor(row interface{ Scan(...any) error }) (model.Tutor, error) {
	var (
		t                  model.Tutor
		createdAt, updated sql.NullTime
	)
	err := row.Scan(&t.ID, &t.Name, &t.Email, &t.Subject, &t.HourlyRate, &t.Status, &createdAt, &updated)
	if err != nil {
		return model.Tutor{}, err
	}
	t.CreatedAt = isoTimestamp(createdAt)
	t.UpdatedAt = isoTimestamp(updated)
	return t, nil
}

// CreateTutor inserts a new tutor, defaulting status to "active" when
// absent. The returned record substitutes a client-side timestamp for
// the server-computed one; the authoritative value shows up on the
// next full fetch.
func (r *TutorRepo) CreateTutor(ctx context.Context, in model.TutorInput) (model.Tutor, error) {
	status := in.Status
	if status == "" {
		status = model.TutorStatusActive
	}
	id := uuid.NewString()
	const q = `INSERT INTO tutors (id, name, email, subject, hourly_rate, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, UTC_TIMESTAMP(), UTC_TIMESTAMP())`
	if _, err := r.db.ExecContext(ctx, q, id, in.Name, in.Email, in.Subject, in.HourlyRate, status); err != nil {
		return model.Tutor{}, err
	}
	now := nowISO()
	return model.Tutor{
		ID:         id,
		Name:       in.Name,
		Email:      in.Email,
		Subject:    in.Subject,
		HourlyRate: in.HourlyRate,
		Status:     status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// AllTutors returns every tutor, unordered as received from the store.
func (r *TutorRepo) AllTutors(ctx context.Context) ([]model.Tutor, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+tutorColumns+" FROM tutors")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tutors := []model.Tutor{}
	for rows.Next() {
		t, err := scanTutor(rows)
		if err != nil {
			return nil, err
		}
		tutors = append(tutors, t)
	}
	return tutors, rows.Err()
}

// ActiveTutors returns tutors with status "active"; the booking form
// offers only these.
func (r *TutorRepo) ActiveTutors(ctx context.Context) ([]model.Tutor, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+tutorColumns+" FROM tutors WHERE status = ?", model.TutorStatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tutors := []model.Tutor{}
	for rows.Next() {
		t, err := scanTutor(rows)
		if err != nil {
			return nil, err
		}
		tutors = append(tutors, t)
	}
	return tutors, rows.Err()
}

// TutorByID fetches a single tutor. It returns nil with no error when
// the id does not exist.
func (r *TutorRepo) TutorByID(ctx context.Context, id string) (*model.Tutor, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+tutorColumns+" FROM tutors WHERE id = ? LIMIT 1", id)
	t, err := scanTutor(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// UpdateTutor merges the supplied fields into the stored record and
// stamps the update time. It returns the new updated-at string; the
// caller merges the patch into its own view rather than re-reading.
func (r *TutorRepo) UpdateTutor(ctx context.Context, id string, p model.TutorPatch) (string, error) {
	sets := make([]string, 0, 6)
	args := make([]any, 0, 6)
	if p.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *p.Name)
	}
	if p.Email != nil {
		sets = append(sets, "email = ?")
		args = append(args, *p.Email)
	}
	if p.Subject != nil {
		sets = append(sets, "subject = ?")
		args = append(args, *p.Subject)
	}
	if p.HourlyRate != nil {
		sets = append(sets, "hourly_rate = ?")
		args = append(args, *p.HourlyRate)
	}
	if p.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *p.Status)
	}
	sets = append(sets, "updated_at = UTC_TIMESTAMP()")
	args = append(args, id)

	res, err := r.db.ExecContext(ctx, "UPDATE tutors SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return "", err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// MySQL also reports 0 when the values are unchanged, so
		// distinguish a missing row explicitly.
		var one int
		if err := r.db.QueryRowContext(ctx, "SELECT 1 FROM tutors WHERE id = ? LIMIT 1", id).Scan(&one); err == sql.ErrNoRows {
			return "", ErrNotFound
		} else if err != nil {
			return "", err
		}
	}
	return nowISO(), nil
}

// DeleteTutor removes a tutor by id and returns the id. Deleting an
// absent id is not an error, matching the store's semantics. No
// cascade: bookings referencing the tutor are left in place, which is
// why callers run the has-bookings guard first.
func (r *TutorRepo) DeleteTutor(ctx context.Context, id string) (string, error) {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM tutors WHERE id = ?", id); err != nil {
		return "", err
	}
	return id, nil
}
