// Package clock provides the store wall clock. All times it hands out carry the
// store's local wall-clock reading in the UTC location, which is also how dates
// and timestamps are stored in PostgreSQL (DATE and TIMESTAMP without zone).
package clock

import (
	"time"
)

const DateLayout = "2006-01-02"

type Clock interface {
	Now() time.Time
}

// StoreClock reads the system clock in the store's timezone.
type StoreClock struct {
	loc *time.Location
}

func New(timezone string) (*StoreClock, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, err
	}
	return &StoreClock{loc: loc}, nil
}

func (c *StoreClock) Now() time.Time {
	return Wall(time.Now().In(c.loc))
}

// Fixed always returns the same instant. Used by tests.
type Fixed time.Time

func (f Fixed) Now() time.Time {
	return time.Time(f)
}

// Wall re-expresses t's wall-clock reading in UTC, dropping the monotonic reading.
func Wall(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// DateOf truncates t to its calendar date.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar date of c.
func Today(c Clock) time.Time {
	return DateOf(c.Now())
}

// ParseDate parses a YYYY-MM-DD string into a calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// MonthRange returns the first and last calendar date of the month.
func MonthRange(year int, month time.Month) (time.Time, time.Time) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return first, first.AddDate(0, 1, -1)
}

// At combines a calendar date with an HH:mm time of day.
func At(date time.Time, hhmm string) (time.Time, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC), nil
}
