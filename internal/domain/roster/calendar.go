package roster

import (
	"time"

	"github.com/grocerymart/backoffice-go/internal/domain/attendance"
)

type DayStatus string

const (
	DayEmpty        DayStatus = "EMPTY"
	DayOK           DayStatus = "OK"
	DayWarning      DayStatus = "WARNING"
	DayAcknowledged DayStatus = "ACKNOWLEDGED"
)

// GridDay is one cell of a Sunday-first month grid.
type GridDay struct {
	Date           time.Time
	DayNumber      int
	IsCurrentMonth bool
}

// MonthGrid lays out the month padded with the trailing days of the previous
// month and the leading days of the next one so that every week is complete.
func MonthGrid(year int, month time.Month) []GridDay {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	var days []GridDay
	for i := int(first.Weekday()); i > 0; i-- {
		d := first.AddDate(0, 0, -i)
		days = append(days, GridDay{Date: d, DayNumber: d.Day()})
	}
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		days = append(days, GridDay{Date: d, DayNumber: d.Day(), IsCurrentMonth: true})
	}
	for i := 1; i <= 6-int(last.Weekday()); i++ {
		d := last.AddDate(0, 0, i)
		days = append(days, GridDay{Date: d, DayNumber: d.Day()})
	}
	return days
}

// HasUnavailable reports whether any allocated staff member is not ATTEND on
// the day. A missing attendance record counts as unavailable.
func HasUnavailable(allocations []Allocation, day attendance.StatusMap) bool {
	for _, a := range allocations {
		if !day.Of(a.StaffID).IsAvailable() {
			return true
		}
	}
	return false
}

// DeriveDayStatus computes the calendar status of one date. day is nil when
// nobody has any attendance recorded for the date yet.
func DeriveDayStatus(schedule *DaySchedule, allocations []Allocation, day attendance.StatusMap) DayStatus {
	switch {
	case schedule == nil:
		return DayEmpty
	case schedule.HasUnavailableStaff && schedule.IsAcknowledged:
		return DayAcknowledged
	case schedule.HasUnavailableStaff:
		return DayWarning
	case day == nil:
		return DayOK
	case HasUnavailable(allocations, day):
		return DayWarning
	default:
		return DayOK
	}
}
