package domain

import "time"

// DayBounds returns the half-open interval [start, end) of the calendar
// day containing t, in t's own location. All "created today" and
// "reviewed today" counts use these bounds so that a single instant
// threaded through a request yields one consistent day.
func DayBounds(t time.Time) (start, end time.Time) {
	y, m, d := t.Date()
	start = time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}
