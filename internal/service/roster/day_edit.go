package roster

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/grocerymart/backoffice-go/internal/domain/roster"
	"github.com/grocerymart/backoffice-go/internal/domain/staff"
	"github.com/grocerymart/backoffice-go/internal/pkg/clock"
	"github.com/grocerymart/backoffice-go/internal/pkg/idgen"
	"github.com/grocerymart/backoffice-go/internal/pkg/validator"
)

func validateMonth(year int, month time.Month) error {
	if !validator.IsValidMonth(int(month), year) {
		return validator.Single("month", "month must be between 1 and 12 of a valid year")
	}
	return nil
}

// allocatable loads a staff member that can hold an allocation.
func (s *RosterServiceImpl) allocatable(ctx context.Context, staffID string) (staff.Staff, error) {
	member, err := s.staff.GetByID(ctx, staffID)
	if err != nil {
		return staff.Staff{}, err
	}
	if member.Role != staff.RoleStaff {
		return staff.Staff{}, validator.Single("staff_id", member.Name+" is not a staff member")
	}
	return member, nil
}

// AddStaffToDay implements roster.RosterService.
func (s *RosterServiceImpl) AddStaffToDay(ctx context.Context, caller staff.Manager, date time.Time, req roster.AddStaffRequest) (roster.DayEditResponse, error) {
	if err := req.Validate(); err != nil {
		return roster.DayEditResponse{}, err
	}
	date = clock.DateOf(date)

	member, err := s.allocatable(ctx, req.StaffID)
	if err != nil {
		return roster.DayEditResponse{}, err
	}

	activeTasks, err := s.taskTypes.ActiveNames(ctx)
	if err != nil {
		return roster.DayEditResponse{}, fmt.Errorf("failed to load task catalog: %w", err)
	}
	if !activeTasks[req.TaskName] {
		return roster.DayEditResponse{}, validator.Single("task_name", fmt.Sprintf("task %q is not an active task type", req.TaskName))
	}

	if _, err := s.allocations.GetByStaffAndDate(ctx, member.ID, date); err == nil {
		return roster.DayEditResponse{}, roster.ErrStaffAlreadyAllocated
	} else if !errors.Is(err, roster.ErrAllocationNotFound) {
		return roster.DayEditResponse{}, fmt.Errorf("failed to check allocation: %w", err)
	}

	var (
		created        roster.Allocation
		hasUnavailable bool
	)
	err = s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		maxID, err := s.allocations.MaxID(txCtx)
		if err != nil {
			return fmt.Errorf("failed to read allocation id sequence: %w", err)
		}
		created, err = s.allocations.Create(txCtx, roster.Allocation{
			ID:           idgen.Allocation.NextID(maxID),
			StaffID:      member.ID,
			TaskName:     req.TaskName,
			AssignedDate: date,
			Status:       roster.AllocationPending,
		})
		if err != nil {
			return err
		}
		hasUnavailable, err = s.recomputeFlag(txCtx, date)
		return err
	})
	if err != nil {
		return roster.DayEditResponse{}, err
	}
	s.invalidate(ctx, date)

	created.StaffName = &member.Name
	return roster.NewDayEditResponse(date, hasUnavailable, &created), nil
}

// DeleteStaffAllocation implements roster.RosterService.
func (s *RosterServiceImpl) DeleteStaffAllocation(ctx context.Context, caller staff.Manager, allocationID string) (roster.DayEditResponse, error) {
	allocation, err := s.allocations.GetByID(ctx, allocationID)
	if err != nil {
		return roster.DayEditResponse{}, err
	}

	var hasUnavailable bool
	err = s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		if err := s.allocations.Delete(txCtx, allocation.ID); err != nil {
			return err
		}
		hasUnavailable, err = s.recomputeFlag(txCtx, allocation.AssignedDate)
		return err
	})
	if err != nil {
		return roster.DayEditResponse{}, err
	}
	s.invalidate(ctx, allocation.AssignedDate)

	return roster.NewDayEditResponse(allocation.AssignedDate, hasUnavailable, nil), nil
}

// EditTaskName implements roster.RosterService.
func (s *RosterServiceImpl) EditTaskName(ctx context.Context, caller staff.Manager, allocationID string, req roster.EditTaskNameRequest) (roster.DayEditResponse, error) {
	if err := req.Validate(); err != nil {
		return roster.DayEditResponse{}, err
	}

	allocation, err := s.allocations.GetByID(ctx, allocationID)
	if err != nil {
		return roster.DayEditResponse{}, err
	}
	allocation.TaskName = req.TaskName
	if err := s.allocations.Update(ctx, allocation); err != nil {
		return roster.DayEditResponse{}, err
	}

	schedule, err := s.findSchedule(ctx, allocation.AssignedDate)
	if err != nil {
		return roster.DayEditResponse{}, err
	}
	hasUnavailable := schedule != nil && schedule.HasUnavailableStaff
	return roster.NewDayEditResponse(allocation.AssignedDate, hasUnavailable, &allocation), nil
}

// ReassignTask implements roster.RosterService.
func (s *RosterServiceImpl) ReassignTask(ctx context.Context, caller staff.Manager, allocationID string, req roster.ReassignRequest) (roster.DayEditResponse, error) {
	if err := req.Validate(); err != nil {
		return roster.DayEditResponse{}, err
	}

	allocation, err := s.allocations.GetByID(ctx, allocationID)
	if err != nil {
		return roster.DayEditResponse{}, err
	}
	member, err := s.allocatable(ctx, req.StaffID)
	if err != nil {
		return roster.DayEditResponse{}, err
	}

	other, err := s.allocations.GetByStaffAndDate(ctx, member.ID, allocation.AssignedDate)
	switch {
	case err == nil && other.ID != allocation.ID:
		return roster.DayEditResponse{}, roster.ErrStaffAlreadyAllocated
	case err != nil && !errors.Is(err, roster.ErrAllocationNotFound):
		return roster.DayEditResponse{}, fmt.Errorf("failed to check allocation: %w", err)
	}

	allocation.Reassign(member.ID, s.clock.Now())

	var hasUnavailable bool
	err = s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		if err := s.allocations.Update(txCtx, allocation); err != nil {
			return err
		}
		hasUnavailable, err = s.recomputeFlag(txCtx, allocation.AssignedDate)
		return err
	})
	if err != nil {
		return roster.DayEditResponse{}, err
	}
	s.invalidate(ctx, allocation.AssignedDate)

	allocation.StaffName = &member.Name
	return roster.NewDayEditResponse(allocation.AssignedDate, hasUnavailable, &allocation), nil
}
