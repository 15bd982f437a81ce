package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rainditya/tutor-backoffice/internal/model"
)

func futureDate(days int) string {
	return time.Now().AddDate(0, 0, days).Format("2006-01-02")
}

func validTutor() model.TutorInput {
	return model.TutorInput{
		Name:       "Ada Lovelace",
		Email:      "ada@example.com",
		Subject:    "Mathematics",
		HourlyRate: 45,
	}
}

func validBooking() model.BookingInput {
	return model.BookingInput{
		TutorID:     "t1",
		StudentName: "Sam",
		Date:        futureDate(1),
		StartTime:   "09:00",
		EndTime:     "10:00",
	}
}

func TestCheck_ValidTutor(t *testing.T) {
	assert.Nil(t, Check(validTutor()))
}

func TestCheck_TutorFieldErrors(t *testing.T) {
	in := model.TutorInput{
		Email:      "not-an-email",
		Subject:    "Astrology",
		HourlyRate: 0,
	}
	errs := Check(in)
	require.NotNil(t, errs)

	// Errors are keyed by JSON field names for inline form display.
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "hourlyRate")
	assert.Equal(t, "must be one of the registered subjects", errs["subject"])
}

func TestCheck_TutorBadStatus(t *testing.T) {
	in := validTutor()
	in.Status = "retired"
	errs := Check(in)
	require.NotNil(t, errs)
	assert.Contains(t, errs, "status")
}

func TestCheck_TutorPatchPartial(t *testing.T) {
	rate := 60.0
	assert.Nil(t, Check(model.TutorPatch{HourlyRate: &rate}))

	bad := "nope"
	errs := Check(model.TutorPatch{Email: &bad})
	require.NotNil(t, errs)
	assert.Contains(t, errs, "email")
}

func TestCheck_ValidBooking(t *testing.T) {
	assert.Nil(t, Check(validBooking()))
}

func TestCheck_BookingPastDate(t *testing.T) {
	in := validBooking()
	in.Date = "2020-01-15"
	errs := Check(in)
	require.NotNil(t, errs)
	assert.Equal(t, "date must not be in the past", errs["date"])
}

func TestCheck_BookingTodayAccepted(t *testing.T) {
	in := validBooking()
	in.Date = futureDate(0)
	assert.Nil(t, Check(in))
}

func TestCheck_BookingMalformedDate(t *testing.T) {
	in := validBooking()
	in.Date = "15/03/2026"
	errs := Check(in)
	require.NotNil(t, errs)
	assert.Equal(t, "must be a date in YYYY-MM-DD form", errs["date"])
}

func TestCheck_BookingMalformedClock(t *testing.T) {
	in := validBooking()
	in.StartTime = "9am"
	errs := Check(in)
	require.NotNil(t, errs)
	assert.Equal(t, "must be a time in HH:MM form", errs["startTime"])
}

func TestCheck_BookingEndNotAfterStart(t *testing.T) {
	in := validBooking()
	in.StartTime = "10:00"
	in.EndTime = "10:00"
	errs := Check(in)
	require.NotNil(t, errs)
	assert.Equal(t, "end time must be after start time", errs["endTime"])

	in.EndTime = "09:30"
	errs = Check(in)
	require.NotNil(t, errs)
	assert.Contains(t, errs, "endTime")

	// One minute later is enough.
	in.EndTime = "10:01"
	assert.Nil(t, Check(in))
}

func TestCheck_BookingPatchCrossField(t *testing.T) {
	start, end := "10:00", "09:00"
	errs := Check(model.BookingPatch{StartTime: &start, EndTime: &end})
	require.NotNil(t, errs)
	assert.Equal(t, "end time must be after start time", errs["endTime"])

	// The cross-field rule only fires when both sides are present.
	assert.Nil(t, Check(model.BookingPatch{EndTime: &end}))
}
