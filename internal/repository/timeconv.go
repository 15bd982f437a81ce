package repository

import (
	"database/sql"
	"time"
)

// dateLayout is the calendar-day form used for booking dates and all
// string date comparisons. Comparing these lexicographically orders
// them chronologically, which the upcoming/weekly queries rely on.
const dateLayout = "2006-01-02"

// isoTimestamp converts a store DATETIME into the portable ISO-8601
// string form carried on records. NULL (a row written before the
// column existed, or a pending server timestamp) becomes the empty
// string and is passed through unchanged downstream.
func isoTimestamp(t sql.NullTime) string {
	if !t.Valid {
		return ""
	}
	return t.Time.UTC().Format(time.RFC3339)
}

// nowISO is the client-side approximation substituted for the
// server-computed timestamp on create/update responses. The
// authoritative stored value is only seen on the next full fetch.
func nowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// dateString renders t as a calendar day.
func dateString(t time.Time) string {
	return t.Format(dateLayout)
}
