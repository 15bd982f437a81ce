package model

// Tutor statuses.  A tutor is either accepting bookings (active) or
// hidden from the booking form (inactive).
const (
	TutorStatusActive   = "active"
	TutorStatusInactive = "inactive"
)

// Subjects lists the subjects a tutor can be registered for.  The
// booking form and the tutor form both render this fixed set; the
// validation layer rejects anything outside of it.
var Subjects = []string{
	"Mathematics",
	"Physics",
	"Chemistry",
	"Biology",
	"English",
	"Computer Science",
}

// ValidSubject reports whether s is one of the registered subjects.
func ValidSubject(s string) bool {
	for _, sub := range Subjects {
		if sub == s {
			return true
		}
	}
	return false
}

// Tutor represents a tutor record as held in the `tutors` collection.
// Timestamps are kept in their portable ISO-8601 string form; the
// repository converts the store's native DATETIME values on read.
//
// Fields:
//  ID         – store-assigned opaque identifier (UUID string).
//  Name       – full name of the tutor.
//  Email      – contact email address.
//  Subject    – one of the Subjects list.
//  HourlyRate – rate charged per hour; the form enforces > 0.
//  Status     – "active" or "inactive".
//  CreatedAt  – creation timestamp, ISO-8601 string.
//  UpdatedAt  – last update timestamp, ISO-8601 string.
type Tutor struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Subject    string  `json:"subject"`
	HourlyRate float64 `json:"hourlyRate"`
	Status     string  `json:"status"`
	CreatedAt  string  `json:"createdAt"`
	UpdatedAt  string  `json:"updatedAt"`
}

// TutorInput is the payload accepted when creating a tutor.  Status is
// optional and defaults to "active" at the repository.
type TutorInput struct {
	Name       string  `json:"name" validate:"required"`
	Email      string  `json:"email" validate:"required,email"`
	Subject    string  `json:"subject" validate:"required,subject"`
	HourlyRate float64 `json:"hourlyRate" validate:"required,gt=0"`
	Status     string  `json:"status" validate:"omitempty,oneof=active inactive"`
}

// TutorPatch carries a partial update.  Nil fields are left untouched;
// the state container shallow-merges the patch into its cached record
// once the store confirms the write.
type TutorPatch struct {
	Name       *string  `json:"name" validate:"omitempty,min=1"`
	Email      *string  `json:"email" validate:"omitempty,email"`
	Subject    *string  `json:"subject" validate:"omitempty,subject"`
	HourlyRate *float64 `json:"hourlyRate" validate:"omitempty,gt=0"`
	Status     *string  `json:"status" validate:"omitempty,oneof=active inactive"`
}

// Apply merges the patch into t, returning the merged view.
func (p TutorPatch) Apply(t Tutor) Tutor {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Email != nil {
		t.Email = *p.Email
	}
	if p.Subject != nil {
		t.Subject = *p.Subject
	}
	if p.HourlyRate != nil {
		t.HourlyRate = *p.HourlyRate
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	return t
}
