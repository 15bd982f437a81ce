package repository

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rainditya/tutor-backoffice/internal/model"
)

// BookingRepo provides CRUD operations over the `bookings` collection
// plus the two derived views consumed by the dashboard (upcoming
// window, weekly histogram). Derived views are computed client-side
// over a full fetch, mirroring the store's lack of compound queries.
type BookingRepo struct {
	db     *sql.DB
	tutors *TutorRepo
}

// NewBookingRepo returns a BookingRepo bound to the given database.
// The tutor repo is used to verify references and capture the
// denormalized tutor snapshot at creation time.
func NewBookingRepo(db *sql.DB, tutors *TutorRepo) *BookingRepo {
	return &BookingRepo{db: db, tutors: tutors}
}

const bookingColumns = "id, tutor_id, tutor_name, tutor_email, tutor_subject, student_name, " +
	"booking_date, start_time, end_time, status, created_at, updated_at"

func scanBooking(row interface{ Scan(...any) error }) (model.Booking, error) {
	var (
		b                  model.Booking
		createdAt, updated sql.NullTime
	)
	err := row.Scan(&b.ID, &b.TutorID, &b.TutorName, &b.TutorEmail, &b.TutorSubject,
		&b.StudentName, &b.Date, &b.StartTime, &b.EndTime, &b.Status, &createdAt, &updated)
	if err != nil {
		return model.Booking{}, err
	}
	b.CreatedAt = isoTimestamp(createdAt)
	b.UpdatedAt = isoTimestamp(updated)
	return b, nil
}

// CreateBooking verifies the tutor reference, captures the tutor
// snapshot and inserts the booking, defaulting status to "scheduled".
// Returns ErrNotFound when the tutor id is dangling. As with tutors,
// the returned timestamps are client-side approximations.
func (r *BookingRepo) CreateBooking(ctx context.Context, in model.BookingInput) (model.Booking, error) {
	tutor, err := r.tutors.TutorByID(ctx, in.TutorID)
	if err != nil {
		return model.Booking{}, err
	}
	if tutor == nil {
		return model.Booking{}, ErrNotFound
	}

	status := in.Status
	if status == "" {
		status = model.BookingStatusScheduled
	}
	id := uuid.NewString()
	const q = `INSERT INTO bookings
		(id, tutor_id, tutor_name, tutor_email, tutor_subject, student_name,
		 booking_date, start_time, end_time, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, UTC_TIMESTAMP(), UTC_TIMESTAMP())`
	_, err = r.db.ExecContext(ctx, q, id, tutor.ID, tutor.Name, tutor.Email, tutor.Subject,
		in.StudentName, in.Date, in.StartTime, in.EndTime, status)
	if err != nil {
		return model.Booking{}, err
	}
	now := nowISO()
	return model.Booking{
		ID:           id,
		TutorID:      tutor.ID,
		TutorName:    tutor.Name,
		TutorEmail:   tutor.Email,
		TutorSubject: tutor.Subject,
		StudentName:  in.StudentName,
		Date:         in.Date,
		StartTime:    in.StartTime,
		EndTime:      in.EndTime,
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func (r *BookingRepo) queryBookings(ctx context.Context, q string, args ...any) ([]model.Booking, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := []model.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// AllBookings returns every booking, unordered as received from the store.
func (r *BookingRepo) AllBookings(ctx context.Context) ([]model.Booking, error) {
	return r.queryBookings(ctx, "SELECT "+bookingColumns+" FROM bookings")
}

// BookingByID fetches a single booking; nil with no error when absent.
func (r *BookingRepo) BookingByID(ctx context.Context, id string) (*model.Booking, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+bookingColumns+" FROM bookings WHERE id = ? LIMIT 1", id)
	b, err := scanBooking(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// BookingsByStatus returns bookings with the given status.
func (r *BookingRepo) BookingsByStatus(ctx context.Context, status string) ([]model.Booking, error) {
	return r.queryBookings(ctx, "SELECT "+bookingColumns+" FROM bookings WHERE status = ?", status)
}

// BookingsByTutor returns bookings whose live tutor reference equals
// the given id.
func (r *BookingRepo) BookingsByTutor(ctx context.Context, tutorID string) ([]model.Booking, error) {
	return r.queryBookings(ctx, "SELECT "+bookingColumns+" FROM bookings WHERE tutor_id = ?", tutorID)
}

// TutorHasBookings reports whether any booking references the tutor.
// It backs the pre-delete integrity guard. The check is read-then-act:
// a booking created between this check and the delete slips through,
// which is accepted for a single-admin back office.
func (r *BookingRepo) TutorHasBookings(ctx context.Context, tutorID string) (bool, error) {
	refs, err := r.BookingsByTutor(ctx, tutorID)
	if err != nil {
		return false, err
	}
	return len(refs) > 0, nil
}

// UpdateBooking merges the supplied fields and stamps the update time,
// returning the new updated-at string without a read-back.
func (r *BookingRepo) UpdateBooking(ctx context.Context, id string, p model.BookingPatch) (string, error) {
	sets := make([]string, 0, 6)
	args := make([]any, 0, 6)
	if p.StudentName != nil {
		sets = append(sets, "student_name = ?")
		args = append(args, *p.StudentName)
	}
	if p.Date != nil {
		sets = append(sets, "booking_date = ?")
		args = append(args, *p.Date)
	}
	if p.StartTime != nil {
		sets = append(sets, "start_time = ?")
		args = append(args, *p.StartTime)
	}
	if p.EndTime != nil {
		sets = append(sets, "end_time = ?")
		args = append(args, *p.EndTime)
	}
	if p.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *p.Status)
	}
	sets = append(sets, "updated_at = UTC_TIMESTAMP()")
	args = append(args, id)

	res, err := r.db.ExecContext(ctx, "UPDATE bookings SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return "", err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// MySQL also reports 0 when the values are unchanged, so
		// distinguish a missing row explicitly.
		existing, err := r.BookingByID(ctx, id)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return "", ErrNotFound
		}
	}
	return nowISO(), nil
}

// DeleteBooking removes a booking by id and returns the id. Deleting
// an absent id is not an error.
func (r *BookingRepo) DeleteBooking(ctx context.Context, id string) (string, error) {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM bookings WHERE id = ?", id); err != nil {
		return "", err
	}
	return id, nil
}

// UpcomingBookings returns scheduled bookings whose date falls in the
// inclusive window [today, today+3 days], sorted ascending by date and
// tie-broken by start time. Filtering happens over the fetched set
// using calendar-day string comparison, with no time-zone conversion.
func (r *BookingRepo) UpcomingBookings(ctx context.Context) ([]model.Booking, error) {
	scheduled, err := r.BookingsByStatus(ctx, model.BookingStatusScheduled)
	if err != nil {
		return nil, err
	}
	return filterUpcoming(scheduled, time.Now()), nil
}

// filterUpcoming applies the 3-day window and schedule sort to an
// already-fetched scheduled set. Split out for testability.
func filterUpcoming(scheduled []model.Booking, now time.Time) []model.Booking {
	from := dateString(now)
	to := dateString(now.AddDate(0, 0, 3))

	upcoming := []model.Booking{}
	for _, b := range scheduled {
		if b.Date >= from && b.Date <= to {
			upcoming = append(upcoming, b)
		}
	}
	SortSchedule(upcoming)
	return upcoming
}

// SortSchedule orders bookings ascending by date, tie-broken by start
// time (both lexicographic). It is the single display order used by
// the list page and the upcoming view.
func SortSchedule(bookings []model.Booking) {
	sort.SliceStable(bookings, func(i, j int) bool {
		if bookings[i].Date != bookings[j].Date {
			return bookings[i].Date < bookings[j].Date
		}
		return bookings[i].StartTime < bookings[j].StartTime
	})
}

// WeeklyBookingsData builds the 7-point booking histogram for the
// dashboard chart.
func (r *BookingRepo) WeeklyBookingsData(ctx context.Context) ([]model.WeeklyBucket, error) {
	all, err := r.AllBookings(ctx)
	if err != nil {
		return nil, err
	}
	return weeklyBuckets(all, time.Now()), nil
}

// weeklyBuckets computes the histogram over an already-fetched set.
// The reference end day is the most recent date seen across all
// bookings regardless of status; with no bookings at all, the window
// is anchored on today and every count is zero.
func weeklyBuckets(all []model.Booking, now time.Time) []model.WeeklyBucket {
	ref := now
	if len(all) > 0 {
		latest := ""
		for _, b := range all {
			if len(b.Date) < len(dateLayout) {
				continue
			}
			if d := b.Date[:len(dateLayout)]; d > latest {
				latest = d
			}
		}
		if parsed, err := time.Parse(dateLayout, latest); err == nil {
			ref = parsed
		}
	}

	counts := make(map[string]int, len(all))
	for _, b := range all {
		if len(b.Date) >= len(dateLayout) {
			counts[b.Date[:len(dateLayout)]]++
		}
	}

	buckets := make([]model.WeeklyBucket, 0, 7)
	for i := 6; i >= 0; i-- {
		day := ref.AddDate(0, 0, -i)
		date := dateString(day)
		buckets = append(buckets, model.WeeklyBucket{
			Day:      day.Weekday().String()[:3],
			Date:     date,
			Bookings: counts[date],
		})
	}
	return buckets
}

// BookingsStatistics summarizes the collection by status for the
// dashboard headline cards.
func (r *BookingRepo) BookingsStatistics(ctx context.Context) (model.BookingStatistics, error) {
	all, err := r.AllBookings(ctx)
	if err != nil {
		return model.BookingStatistics{}, err
	}
	stats := model.BookingStatistics{Total: len(all)}
	for _, b := range all {
		switch b.Status {
		case model.BookingStatusScheduled:
			stats.Scheduled++
		case model.BookingStatusCompleted:
			stats.Completed++
		case model.BookingStatusCancelled:
			stats.Cancelled++
		}
	}
	return stats, nil
}
