package attendance

import (
	"time"
)

type Status string

const (
	StatusAttend Status = "ATTEND"
	StatusAbsent Status = "ABSENT"
	StatusLate   Status = "LATE"
	StatusLeave  Status = "LEAVE"
	// StatusUnknown is never stored; it stands for "no record for that day".
	StatusUnknown Status = "UNKNOWN"
)

var StatusValues = []string{string(StatusAttend), string(StatusAbsent), string(StatusLate), string(StatusLeave)}

// IsAvailable reports whether the status makes a staff member available for work.
func (s Status) IsAvailable() bool {
	return s == StatusAttend
}

// Record is one staff member's attendance for one calendar date. CheckIn and
// CheckOut are store wall-clock timestamps.
type Record struct {
	ID        string
	StaffID   string
	Date      time.Time
	CheckIn   *time.Time
	CheckOut  *time.Time
	Status    Status
	CreatedAt time.Time

	// DTO / Join
	StaffName *string
}

// StatusMap is a day's attendance keyed by staff id.
type StatusMap map[string]Status

// Of returns the staff member's status, StatusUnknown when no record exists.
func (m StatusMap) Of(staffID string) Status {
	if s, ok := m[staffID]; ok {
		return s
	}
	return StatusUnknown
}

// DateKey formats a calendar date the way range lookups key their results.
func DateKey(date time.Time) string {
	return date.Format("2006-01-02")
}
