package roster

import (
	"fmt"
	"strings"
	"time"

	"github.com/grocerymart/backoffice-go/internal/domain/attendance"
	"github.com/grocerymart/backoffice-go/internal/pkg/validator"
)

// Outcome separates a clean mutation from one that left unavailable staff on the day.
type Outcome string

const (
	OutcomeApplied Outcome = "APPLIED"
	OutcomeWarning Outcome = "WARNING"
)

func OutcomeOf(hasUnavailable bool) Outcome {
	if hasUnavailable {
		return OutcomeWarning
	}
	return OutcomeApplied
}

// ========== TEMPLATES ==========

type TemplateAllocationRequest struct {
	StaffID  string `json:"staff_id"`
	TaskName string `json:"task_name"`
}

type TemplateRequest struct {
	Name        string                      `json:"name"`
	Allocations []TemplateAllocationRequest `json:"allocations"`
}

// Validate checks the request shape. Name uniqueness, staff existence and task
// catalog membership need the store and are checked by the service.
func (r *TemplateRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "template name is required",
		})
	}
	if len(r.Allocations) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "allocations",
			Message: "at least one staff allocation is required",
		})
	}

	seen := make(map[string]bool, len(r.Allocations))
	for i := range r.Allocations {
		a := &r.Allocations[i]
		a.StaffID = strings.TrimSpace(a.StaffID)
		a.TaskName = strings.TrimSpace(a.TaskName)

		if a.StaffID == "" {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("allocations[%d].staff_id", i),
				Message: "staff_id is required",
			})
		} else if seen[a.StaffID] {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("allocations[%d].staff_id", i),
				Message: "each staff member can only be assigned once per template",
			})
		}
		seen[a.StaffID] = true

		if a.TaskName == "" {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("allocations[%d].task_name", i),
				Message: "task_name is required",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type TemplateAllocationResponse struct {
	StaffID   string  `json:"staff_id"`
	StaffName *string `json:"staff_name,omitempty"`
	TaskName  string  `json:"task_name"`
	SortOrder int     `json:"sort_order"`
}

type TemplateResponse struct {
	ID          string                       `json:"id"`
	Name        string                       `json:"name"`
	ManagerID   string                       `json:"manager_id"`
	CreatedAt   string                       `json:"created_at"`
	Allocations []TemplateAllocationResponse `json:"allocations"`
}

func NewTemplateResponse(t RosterTemplate) TemplateResponse {
	allocations := make([]TemplateAllocationResponse, 0, len(t.Allocations))
	for _, a := range t.Allocations {
		allocations = append(allocations, TemplateAllocationResponse{
			StaffID:   a.StaffID,
			StaffName: a.StaffName,
			TaskName:  a.TaskName,
			SortOrder: a.SortOrder,
		})
	}
	return TemplateResponse{
		ID:          t.ID,
		Name:        t.Name,
		ManagerID:   t.ManagerID,
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
		Allocations: allocations,
	}
}

// ========== DAY SCHEDULES ==========

type ApplyTemplateRequest struct {
	TemplateID string `json:"template_id"`
}

func (r *ApplyTemplateRequest) Validate() error {
	r.TemplateID = strings.TrimSpace(r.TemplateID)
	if r.TemplateID == "" {
		return validator.Single("template_id", "please select a template")
	}
	return nil
}

type AddStaffRequest struct {
	StaffID  string `json:"staff_id"`
	TaskName string `json:"task_name"`
}

func (r *AddStaffRequest) Validate() error {
	var errs validator.ValidationErrors

	r.StaffID = strings.TrimSpace(r.StaffID)
	r.TaskName = strings.TrimSpace(r.TaskName)
	if r.StaffID == "" {
		errs = append(errs, validator.ValidationError{
			Field:   "staff_id",
			Message: "staff_id is required",
		})
	}
	if r.TaskName == "" {
		errs = append(errs, validator.ValidationError{
			Field:   "task_name",
			Message: "task_name is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EditTaskNameRequest struct {
	TaskName string `json:"task_name"`
}

func (r *EditTaskNameRequest) Validate() error {
	r.TaskName = strings.TrimSpace(r.TaskName)
	if r.TaskName == "" {
		return validator.Single("task_name", "task name cannot be empty")
	}
	return nil
}

type ReassignRequest struct {
	StaffID string `json:"staff_id"`
}

func (r *ReassignRequest) Validate() error {
	r.StaffID = strings.TrimSpace(r.StaffID)
	if r.StaffID == "" {
		return validator.Single("staff_id", "please select a staff member")
	}
	return nil
}

type AllocationResponse struct {
	ID               string            `json:"id"`
	TemplateID       *string           `json:"template_id,omitempty"`
	StaffID          string            `json:"staff_id"`
	StaffName        *string           `json:"staff_name,omitempty"`
	TaskName         string            `json:"task_name"`
	AssignedDate     string            `json:"assigned_date"`
	Status           AllocationStatus  `json:"status"`
	StartTime        *string           `json:"start_time,omitempty"`
	CompletionDate   *string           `json:"completion_date,omitempty"`
	Notes            *string           `json:"notes,omitempty"`
	AttendanceStatus attendance.Status `json:"attendance_status,omitempty"`
	IsUnavailable    bool              `json:"is_unavailable"`
}

func formatTimestamp(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02 15:04")
	return &s
}

func NewAllocationResponse(a Allocation) AllocationResponse {
	return AllocationResponse{
		ID:             a.ID,
		TemplateID:     a.TemplateID,
		StaffID:        a.StaffID,
		StaffName:      a.StaffName,
		TaskName:       a.TaskName,
		AssignedDate:   attendance.DateKey(a.AssignedDate),
		Status:         a.Status,
		StartTime:      formatTimestamp(a.StartTime),
		CompletionDate: formatTimestamp(a.CompletionDate),
		Notes:          a.Notes,
	}
}

// NewDayAllocationResponse annotates the allocation with the staff member's attendance.
func NewDayAllocationResponse(a Allocation, day attendance.StatusMap) AllocationResponse {
	resp := NewAllocationResponse(a)
	resp.AttendanceStatus = day.Of(a.StaffID)
	resp.IsUnavailable = !resp.AttendanceStatus.IsAvailable()
	return resp
}

type ApplyTemplateResponse struct {
	Date                string               `json:"date"`
	TemplateID          string               `json:"template_id"`
	Outcome             Outcome              `json:"outcome"`
	HasUnavailableStaff bool                 `json:"has_unavailable_staff"`
	Allocations         []AllocationResponse `json:"allocations"`
}

// DayEditResponse is returned by ad hoc day edits.
type DayEditResponse struct {
	Date                string              `json:"date"`
	Outcome             Outcome             `json:"outcome"`
	HasUnavailableStaff bool                `json:"has_unavailable_staff"`
	Allocation          *AllocationResponse `json:"allocation,omitempty"`
}

func NewDayEditResponse(date time.Time, hasUnavailable bool, a *Allocation) DayEditResponse {
	resp := DayEditResponse{
		Date:                attendance.DateKey(date),
		Outcome:             OutcomeOf(hasUnavailable),
		HasUnavailableStaff: hasUnavailable,
	}
	if a != nil {
		ar := NewAllocationResponse(*a)
		resp.Allocation = &ar
	}
	return resp
}

type StaffAttendance struct {
	StaffID          string            `json:"staff_id"`
	StaffName        string            `json:"staff_name"`
	AttendanceStatus attendance.Status `json:"attendance_status"`
}

type DayDetailsResponse struct {
	Date                string               `json:"date"`
	TemplateID          string               `json:"template_id"`
	TemplateName        *string              `json:"template_name,omitempty"`
	HasUnavailableStaff bool                 `json:"has_unavailable_staff"`
	IsAcknowledged      bool                 `json:"is_acknowledged"`
	Allocations         []AllocationResponse `json:"allocations"`
	AvailableStaff      []StaffAttendance    `json:"available_staff"`
}

type DayManagementResponse struct {
	Date        string             `json:"date"`
	HasSchedule bool               `json:"has_schedule"`
	Templates   []TemplateResponse `json:"templates"`
	Staff       []StaffAttendance  `json:"staff"`
}

type CalendarDay struct {
	Date           string    `json:"date"`
	DayNumber      int       `json:"day_number"`
	IsCurrentMonth bool      `json:"is_current_month"`
	HasSchedule    bool      `json:"has_schedule"`
	TemplateName   *string   `json:"template_name,omitempty"`
	Status         DayStatus `json:"status,omitempty"`
}

type CalendarResponse struct {
	Year      int           `json:"year"`
	Month     int           `json:"month"`
	MonthName string        `json:"month_name"`
	Days      []CalendarDay `json:"days"`
}

// ========== STAFF SELF-SERVICE ==========

type CompleteTaskRequest struct {
	Notes string `json:"notes"`
}

type MyCalendarDay struct {
	Date           string           `json:"date"`
	DayNumber      int              `json:"day_number"`
	IsCurrentMonth bool             `json:"is_current_month"`
	HasAssignment  bool             `json:"has_assignment"`
	AllocationID   *string          `json:"allocation_id,omitempty"`
	TaskName       *string          `json:"task_name,omitempty"`
	Status         AllocationStatus `json:"status,omitempty"`
}

type MyScheduleResponse struct {
	Year      int             `json:"year"`
	Month     int             `json:"month"`
	MonthName string          `json:"month_name"`
	StaffID   string          `json:"staff_id"`
	StaffName string          `json:"staff_name"`
	Days      []MyCalendarDay `json:"days"`
}

type Teammate struct {
	StaffID          string            `json:"staff_id"`
	StaffName        *string           `json:"staff_name,omitempty"`
	AttendanceStatus attendance.Status `json:"attendance_status"`
}

type MyDayTaskResponse struct {
	Date           string           `json:"date"`
	AllocationID   string           `json:"allocation_id"`
	TaskName       string           `json:"task_name"`
	Status         AllocationStatus `json:"status"`
	StartTime      *string          `json:"start_time,omitempty"`
	CompletionDate *string          `json:"completion_date,omitempty"`
	Notes          *string          `json:"notes,omitempty"`
	Teammates      []Teammate       `json:"teammates"`
}
