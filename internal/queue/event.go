// Package queue defines message payloads exchanged over the message
// broker and the background consumer that records them.
package queue

// BookingEvent is published after the store confirms a booking
// mutation. It carries enough context for downstream consumers
// (audit log, notifications) without a database round trip.
type BookingEvent struct {
	Action      string `json:"action"` // created | updated | deleted
	BookingID   string `json:"booking_id"`
	TutorID     string `json:"tutor_id"`
	TutorName   string `json:"tutor_name"`
	StudentName string `json:"student_name"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Status      string `json:"status"`
	OccurredAt  string `json:"occurred_at"`
}
