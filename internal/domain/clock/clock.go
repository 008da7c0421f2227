package clock

import (
	"time"
)

// DefaultOffset is the fixed local offset from UTC used by the front desk.
const DefaultOffset = 2 * time.Hour

// DateLayout is the storage and display format for calendar dates.
const DateLayout = "2006-01-02"

// Clock converts stored UTC instants to the gym's fixed local offset.
// There is no daylight saving and no timezone database: the offset is a constant.
type Clock struct {
	Zone *time.Location
	Now  func() time.Time
}

// New creates a Clock for the given fixed offset, reading wall time from time.Now.
// PRE: offset is a whole number of seconds
// POST: Returns a Clock whose Zone is a fixed zone at offset
func New(offset time.Duration) Clock {
	return Clock{
		Zone: time.FixedZone("LOCAL", int(offset/time.Second)),
		Now:  time.Now,
	}
}

// Fixed returns a Clock frozen at the given instant. Intended for tests and seeding.
func Fixed(offset time.Duration, now time.Time) Clock {
	c := New(offset)
	c.Now = func() time.Time { return now }
	return c
}

// ToLocal expresses a UTC instant at the fixed local offset.
// INVARIANT: the instant is unchanged, only its presentation moves
func (c Clock) ToLocal(utc time.Time) time.Time {
	return utc.In(c.Zone)
}

// LocalNow returns the current instant at the local offset.
func (c Clock) LocalNow() time.Time {
	return c.ToLocal(c.Now())
}

// LocalToday returns the current local calendar date.
// POST: result is at midnight UTC (date carrier), see DateOf
func (c Clock) LocalToday() time.Time {
	return DateOf(c.LocalNow())
}

// LocalDateOf returns the local calendar date of a stored UTC instant.
func (c Clock) LocalDateOf(utc time.Time) time.Time {
	return DateOf(c.ToLocal(utc))
}

// At combines a local calendar date with a local time of day into an instant.
func (c Clock) At(date time.Time, hour, minute int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, c.Zone)
}

// DateOf drops the time of day from t, keeping the calendar date as seen in t's own location.
// Dates are carried as midnight UTC so that equality and subtraction are exact.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a date carrier.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// FormatDate renders a date carrier as YYYY-MM-DD.
func FormatDate(d time.Time) string {
	return d.Format(DateLayout)
}

// DaysBetween returns the whole number of days from one date to another (to - from).
// PRE: both arguments are date carriers (see DateOf)
func DaysBetween(from, to time.Time) int {
	return int(DateOf(to).Sub(DateOf(from)).Hours() / 24)
}

// AddDays shifts a date carrier by n calendar days.
func AddDays(d time.Time, n int) time.Time {
	return DateOf(d).AddDate(0, 0, n)
}
