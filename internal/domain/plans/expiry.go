package plans

import "time"

// ExpiryFrom adds a plan duration to a start date using calendar-month
// arithmetic. Day-of-month overflow rolls forward into the following month
// (Jan 31 + 1 month = Mar 2 or Mar 3), matching time.AddDate normalization.
// The result is truncated to a date in UTC.
func ExpiryFrom(start time.Time, durationMonths int) time.Time {
	d := start.AddDate(0, durationMonths, 0)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}
