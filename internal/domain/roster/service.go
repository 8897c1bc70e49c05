package roster

import (
	"context"
	"time"

	"github.com/grocerymart/backoffice-go/internal/domain/staff"
)

// RosterService is the manager-facing template engine and day editor.
type RosterService interface {
	// Templates
	ListTemplates(ctx context.Context, caller staff.Manager) ([]TemplateResponse, error)
	GetTemplate(ctx context.Context, caller staff.Manager, id string) (TemplateResponse, error)
	CreateTemplate(ctx context.Context, caller staff.Manager, req TemplateRequest) (TemplateResponse, error)
	EditTemplate(ctx context.Context, caller staff.Manager, id string, req TemplateRequest) (TemplateResponse, error)
	DeleteTemplate(ctx context.Context, caller staff.Manager, id string) error

	// Day schedules
	ApplyTemplate(ctx context.Context, caller staff.Manager, date time.Time, req ApplyTemplateRequest) (ApplyTemplateResponse, error)
	Calendar(ctx context.Context, caller staff.Manager, year int, month time.Month) (CalendarResponse, error)
	DayManagement(ctx context.Context, caller staff.Manager, date time.Time) (DayManagementResponse, error)
	DayDetails(ctx context.Context, caller staff.Manager, date time.Time) (DayDetailsResponse, error)
	AcknowledgeDay(ctx context.Context, caller staff.Manager, date time.Time) error
	DeleteSchedule(ctx context.Context, caller staff.Manager, date time.Time) error

	// Ad hoc allocation edits
	AddStaffToDay(ctx context.Context, caller staff.Manager, date time.Time, req AddStaffRequest) (DayEditResponse, error)
	DeleteStaffAllocation(ctx context.Context, caller staff.Manager, allocationID string) (DayEditResponse, error)
	EditTaskName(ctx context.Context, caller staff.Manager, allocationID string, req EditTaskNameRequest) (DayEditResponse, error)
	ReassignTask(ctx context.Context, caller staff.Manager, allocationID string, req ReassignRequest) (DayEditResponse, error)
}

// AllocationService is the staff-facing side of allocations.
type AllocationService interface {
	MySchedule(ctx context.Context, caller staff.Member, year int, month time.Month) (MyScheduleResponse, error)
	MyDayTask(ctx context.Context, caller staff.Member, date time.Time) (MyDayTaskResponse, error)
	StartTask(ctx context.Context, caller staff.Member, allocationID string) (AllocationResponse, error)
	CompleteTask(ctx context.Context, caller staff.Member, allocationID string, req CompleteTaskRequest) (AllocationResponse, error)
}

// CalendarCache stores computed month calendars.
type CalendarCache interface {
	Get(ctx context.Context, year int, month time.Month) (CalendarResponse, bool, error)
	Set(ctx context.Context, cal CalendarResponse) error
	// Invalidate drops the month containing date.
	Invalidate(ctx context.Context, date time.Time) error
	// InvalidateAll drops every cached month, used when template names change.
	InvalidateAll(ctx context.Context) error
}
