package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in errors
	ErrAlreadyCheckedIn      = errors.New("already checked in for this date")
	ErrCheckInTooEarly       = errors.New("check-in is only allowed from 08:00")
	ErrNotCheckedIn          = errors.New("no check-in record found for this date")
	ErrCheckOutBeforeCheckIn = errors.New("check-out time must be after check-in time")

	// General errors
	ErrAttendanceNotFound    = errors.New("attendance record not found")
	ErrStatusLockedByCheckIn = errors.New("attendance already recorded by a check-in")
)
