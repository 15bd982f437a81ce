package model

// Booking statuses.  Status never transitions automatically; a
// scheduled booking whose date has passed stays scheduled until an
// admin edits it.
const (
	BookingStatusScheduled = "scheduled"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"
)

// BookingStatuses lists the valid booking statuses in display order.
var BookingStatuses = []string{
	BookingStatusScheduled,
	BookingStatusCompleted,
	BookingStatusCancelled,
}

// Booking represents a booking record as held in the `bookings`
// collection.  The tutor name/email/subject fields are a snapshot
// taken at creation time and are not kept in sync with later tutor
// edits; TutorID is the live reference used only by the pre-delete
// integrity check.
//
// Fields:
//  ID           – store-assigned opaque identifier (UUID string).
//  TutorID      – id of the referenced tutor.
//  TutorName    – tutor name snapshot from creation time.
//  TutorEmail   – tutor email snapshot from creation time.
//  TutorSubject – tutor subject snapshot from creation time.
//  StudentName  – name of the student being tutored.
//  Date         – calendar day, "YYYY-MM-DD", no time zone.
//  StartTime    – local wall-clock start, "HH:MM".
//  EndTime      – local wall-clock end, "HH:MM"; must exceed StartTime.
//  Status       – "scheduled", "completed" or "cancelled".
//  CreatedAt    – creation timestamp, ISO-8601 string.
//  UpdatedAt    – last update timestamp, ISO-8601 string.
type Booking struct {
	ID           string `json:"id"`
	TutorID      string `json:"tutorId"`
	TutorName    string `json:"tutorName"`
	TutorEmail   string `json:"tutorEmail"`
	TutorSubject string `json:"tutorSubject"`
	StudentName  string `json:"studentName"`
	Date         string `json:"date"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	Status       string `json:"status"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`
}

// BookingInput is the payload accepted when creating a booking.  The
// tutor snapshot is derived server-side from the referenced tutor, so
// callers supply only the live reference.  Status defaults to
// "scheduled" at the repository.
type BookingInput struct {
	TutorID     string `json:"tutorId" validate:"required"`
	StudentName string `json:"studentName" validate:"required"`
	Date        string `json:"date" validate:"required,calendardate,notpast"`
	StartTime   string `json:"startTime" validate:"required,clock"`
	EndTime     string `json:"endTime" validate:"required,clock"`
	Status      string `json:"status" validate:"omitempty,oneof=scheduled completed cancelled"`
}

// BookingPatch carries a partial update; nil fields are left untouched.
type BookingPatch struct {
	StudentName *string `json:"studentName" validate:"omitempty,min=1"`
	Date        *string `json:"date" validate:"omitempty,calendardate"`
	StartTime   *string `json:"startTime" validate:"omitempty,clock"`
	EndTime     *string `json:"endTime" validate:"omitempty,clock"`
	Status      *string `json:"status" validate:"omitempty,oneof=scheduled completed cancelled"`
}

// Apply merges the patch into b, returning the merged view.
func (p BookingPatch) Apply(b Booking) Booking {
	if p.StudentName != nil {
		b.StudentName = *p.StudentName
	}
	if p.Date != nil {
		b.Date = *p.Date
	}
	if p.StartTime != nil {
		b.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		b.EndTime = *p.EndTime
	}
	if p.Status != nil {
		b.Status = *p.Status
	}
	return b
}
