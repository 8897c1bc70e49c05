package roster

import "errors"

var (
	// Not found
	ErrTemplateNotFound   = errors.New("roster template not found")
	ErrScheduleNotFound   = errors.New("no schedule found for this date")
	ErrAllocationNotFound = errors.New("allocation not found")

	// Conflicts
	ErrTemplateNameExists    = errors.New("a template with this name already exists")
	ErrTemplateInUse         = errors.New("template is in use by a day schedule and cannot be deleted")
	ErrDateAlreadyScheduled  = errors.New("this date already has a schedule")
	ErrStaffAlreadyAllocated = errors.New("this staff member is already assigned on this day")
	// ErrAllocationIDTaken means a concurrent request minted the same id; the call can be retried.
	ErrAllocationIDTaken = errors.New("allocation id was taken by a concurrent request, please retry")

	// Rule violations
	ErrPastDate          = errors.New("cannot schedule a date in the past")
	ErrInvalidTransition = errors.New("task is not in pending status")
	ErrAlreadyCompleted  = errors.New("task is already completed")
)
