package roster

import (
	"context"
	"time"
)

type TemplateRepository interface {
	// Create inserts the template together with its allocations.
	Create(ctx context.Context, t RosterTemplate) (RosterTemplate, error)
	UpdateName(ctx context.Context, id, name string) error
	// ReplaceAllocations removes every allocation of the template and inserts the given set.
	ReplaceAllocations(ctx context.Context, templateID string, allocations []TemplateAllocation) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (RosterTemplate, error)
	List(ctx context.Context) ([]RosterTemplate, error)
	ExistsByName(ctx context.Context, name string, excludeID string) (bool, error)
	MaxID(ctx context.Context) (string, error)
}

type DayScheduleRepository interface {
	Create(ctx context.Context, ds DaySchedule) (DaySchedule, error)
	GetByDate(ctx context.Context, date time.Time) (DaySchedule, error)
	ListByRange(ctx context.Context, from, to time.Time) ([]DaySchedule, error)
	ExistsByTemplateID(ctx context.Context, templateID string) (bool, error)
	SetUnavailable(ctx context.Context, date time.Time, hasUnavailable bool) error
	Acknowledge(ctx context.Context, date time.Time) error
	DeleteByDate(ctx context.Context, date time.Time) error
}

type AllocationRepository interface {
	Create(ctx context.Context, a Allocation) (Allocation, error)
	// CreateBatch inserts allocations in the given order within one round trip.
	CreateBatch(ctx context.Context, allocations []Allocation) error
	GetByID(ctx context.Context, id string) (Allocation, error)
	GetByIDAndStaff(ctx context.Context, id, staffID string) (Allocation, error)
	GetByStaffAndDate(ctx context.Context, staffID string, date time.Time) (Allocation, error)
	ListByDate(ctx context.Context, date time.Time) ([]Allocation, error)
	ListByRange(ctx context.Context, from, to time.Time) ([]Allocation, error)
	ListByStaffRange(ctx context.Context, staffID string, from, to time.Time) ([]Allocation, error)
	// ListTeammates returns the other allocations sharing the date and exact task name.
	ListTeammates(ctx context.Context, date time.Time, taskName, excludeStaffID string) ([]Allocation, error)
	Update(ctx context.Context, a Allocation) error
	Delete(ctx context.Context, id string) error
	DeleteByDate(ctx context.Context, date time.Time) error
	MaxID(ctx context.Context) (string, error)
}
