package model

// WeeklyBucket is one point of the 7-day activity histogram rendered
// on the dashboard chart.
//
// Fields:
//  Day      – localized short day-of-week name ("Sun".."Sat").
//  Date     – calendar day, "YYYY-MM-DD".
//  Bookings – number of bookings on that day, regardless of status.
type WeeklyBucket struct {
	Day      string `json:"day"`
	Date     string `json:"date"`
	Bookings int    `json:"bookings"`
}

// BookingStatistics summarizes the bookings collection by status.
type BookingStatistics struct {
	Total     int `json:"total"`
	Scheduled int `json:"scheduled"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
}
