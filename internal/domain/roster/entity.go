package roster

import (
	"fmt"
	"strings"
	"time"
)

type AllocationStatus string

const (
	AllocationPending    AllocationStatus = "PENDING"
	AllocationInProgress AllocationStatus = "IN_PROGRESS"
	AllocationCompleted  AllocationStatus = "COMPLETED"
)

// RosterTemplate is a named, reusable day plan of staff to task pairings.
type RosterTemplate struct {
	ID          string
	Name        string
	ManagerID   string
	CreatedAt   time.Time
	Allocations []TemplateAllocation
}

// TemplateAllocation pairs one staff member with a task inside a template.
// TaskName is a snapshot of the catalog entry, not a reference to it.
type TemplateAllocation struct {
	ID         int64
	TemplateID string
	StaffID    string
	TaskName   string
	SortOrder  int

	// DTO / Join
	StaffName *string
}

// DaySchedule records that a template was applied to a calendar date.
type DaySchedule struct {
	ID                  int64
	ScheduleDate        time.Time
	TemplateID          string
	AppliedBy           string
	AppliedAt           time.Time
	HasUnavailableStaff bool
	IsAcknowledged      bool

	// DTO / Join
	TemplateName *string
}

// Allocation is one staff member's task for one date.
type Allocation struct {
	ID             string
	TemplateID     *string
	StaffID        string
	TaskName       string
	AssignedDate   time.Time
	Status         AllocationStatus
	StartTime      *time.Time
	CompletionDate *time.Time
	Notes          *string

	// DTO / Join
	StaffName *string
}

// Start moves a PENDING allocation to IN_PROGRESS.
func (a *Allocation) Start(now time.Time) error {
	if a.Status != AllocationPending {
		return ErrInvalidTransition
	}
	a.Status = AllocationInProgress
	a.StartTime = &now
	return nil
}

// Complete finishes the allocation from any state but COMPLETED. A skipped
// start is backfilled and a blank comment keeps the existing notes.
func (a *Allocation) Complete(now time.Time, comment string) error {
	if a.Status == AllocationCompleted {
		return ErrAlreadyCompleted
	}
	a.Status = AllocationCompleted
	a.CompletionDate = &now
	if a.StartTime == nil {
		a.StartTime = &now
	}
	if strings.TrimSpace(comment) != "" {
		a.Notes = &comment
	}
	return nil
}

// Reassign hands the allocation to another staff member, resetting progress
// and appending an audit line to the notes.
func (a *Allocation) Reassign(newStaffID string, now time.Time) {
	previous := a.StaffID
	a.StaffID = newStaffID
	a.Status = AllocationPending
	a.StartTime = nil
	a.CompletionDate = nil

	notes := ""
	if a.Notes != nil {
		notes = *a.Notes
	}
	notes += fmt.Sprintf("\n[Reassigned from %s on %s]", previous, now.Format("2006-01-02 15:04"))
	a.Notes = &notes
	a.StaffName = nil
}
