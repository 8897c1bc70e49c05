package roster

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/grocerymart/backoffice-go/internal/domain/attendance"
	"github.com/grocerymart/backoffice-go/internal/domain/roster"
	"github.com/grocerymart/backoffice-go/internal/domain/staff"
	"github.com/grocerymart/backoffice-go/internal/pkg/clock"
	"github.com/grocerymart/backoffice-go/internal/pkg/idgen"
)

// ApplyTemplate implements roster.RosterService.
func (s *RosterServiceImpl) ApplyTemplate(ctx context.Context, caller staff.Manager, date time.Time, req roster.ApplyTemplateRequest) (roster.ApplyTemplateResponse, error) {
	if err := req.Validate(); err != nil {
		return roster.ApplyTemplateResponse{}, err
	}
	date = clock.DateOf(date)
	if date.Before(clock.Today(s.clock)) {
		return roster.ApplyTemplateResponse{}, roster.ErrPastDate
	}

	template, err := s.templates.GetByID(ctx, req.TemplateID)
	if err != nil {
		return roster.ApplyTemplateResponse{}, err
	}

	existing, err := s.findSchedule(ctx, date)
	if err != nil {
		return roster.ApplyTemplateResponse{}, err
	}
	if existing != nil {
		return roster.ApplyTemplateResponse{}, roster.ErrDateAlreadyScheduled
	}

	day, err := s.attendance.StatusByDate(ctx, date)
	if err != nil {
		return roster.ApplyTemplateResponse{}, fmt.Errorf("failed to load attendance: %w", err)
	}

	allocations := make([]roster.Allocation, 0, len(template.Allocations))
	for _, ta := range template.Allocations {
		templateID := template.ID
		allocations = append(allocations, roster.Allocation{
			TemplateID:   &templateID,
			StaffID:      ta.StaffID,
			TaskName:     ta.TaskName,
			AssignedDate: date,
			Status:       roster.AllocationPending,
			StaffName:    ta.StaffName,
		})
	}
	hasUnavailable := roster.HasUnavailable(allocations, day)

	err = s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		if _, err := s.schedules.Create(txCtx, roster.DaySchedule{
			ScheduleDate:        date,
			TemplateID:          template.ID,
			AppliedBy:           caller.ID,
			AppliedAt:           s.clock.Now(),
			HasUnavailableStaff: hasUnavailable,
		}); err != nil {
			return err
		}

		maxID, err := s.allocations.MaxID(txCtx)
		if err != nil {
			return fmt.Errorf("failed to read allocation id sequence: %w", err)
		}
		ids := idgen.Allocation.Block(maxID, len(allocations))
		for i := range allocations {
			allocations[i].ID = ids[i]
		}
		return s.allocations.CreateBatch(txCtx, allocations)
	})
	if err != nil {
		return roster.ApplyTemplateResponse{}, err
	}
	s.invalidate(ctx, date)

	if hasUnavailable {
		slog.Warn("template applied with unavailable staff", "date", attendance.DateKey(date), "template_id", template.ID, "manager_id", caller.ID)
	}

	responses := make([]roster.AllocationResponse, 0, len(allocations))
	for _, a := range allocations {
		responses = append(responses, roster.NewDayAllocationResponse(a, day))
	}
	return roster.ApplyTemplateResponse{
		Date:                attendance.DateKey(date),
		TemplateID:          template.ID,
		Outcome:             roster.OutcomeOf(hasUnavailable),
		HasUnavailableStaff: hasUnavailable,
		Allocations:         responses,
	}, nil
}

// Calendar implements roster.RosterService.
func (s *RosterServiceImpl) Calendar(ctx context.Context, caller staff.Manager, year int, month time.Month) (roster.CalendarResponse, error) {
	if err := validateMonth(year, month); err != nil {
		return roster.CalendarResponse{}, err
	}

	if cached, ok, err := s.cache.Get(ctx, year, month); err != nil {
		slog.Warn("calendar cache read failed", "year", year, "month", int(month), "error", err)
	} else if ok {
		return cached, nil
	}

	first, last := clock.MonthRange(year, month)
	schedules, err := s.schedules.ListByRange(ctx, first, last)
	if err != nil {
		return roster.CalendarResponse{}, fmt.Errorf("failed to list day schedules: %w", err)
	}
	allocations, err := s.allocations.ListByRange(ctx, first, last)
	if err != nil {
		return roster.CalendarResponse{}, fmt.Errorf("failed to list allocations: %w", err)
	}
	statuses, err := s.attendance.StatusByRange(ctx, first, last)
	if err != nil {
		return roster.CalendarResponse{}, fmt.Errorf("failed to load attendance: %w", err)
	}

	scheduleByDate := make(map[string]roster.DaySchedule, len(schedules))
	for _, ds := range schedules {
		scheduleByDate[attendance.DateKey(ds.ScheduleDate)] = ds
	}
	allocationsByDate := make(map[string][]roster.Allocation)
	for _, a := range allocations {
		key := attendance.DateKey(a.AssignedDate)
		allocationsByDate[key] = append(allocationsByDate[key], a)
	}

	grid := roster.MonthGrid(year, month)
	days := make([]roster.CalendarDay, 0, len(grid))
	for _, g := range grid {
		key := attendance.DateKey(g.Date)
		day := roster.CalendarDay{
			Date:           key,
			DayNumber:      g.DayNumber,
			IsCurrentMonth: g.IsCurrentMonth,
		}
		if g.IsCurrentMonth {
			var schedule *roster.DaySchedule
			if ds, ok := scheduleByDate[key]; ok {
				schedule = &ds
				day.HasSchedule = true
				day.TemplateName = ds.TemplateName
			}
			day.Status = roster.DeriveDayStatus(schedule, allocationsByDate[key], statuses[key])
		}
		days = append(days, day)
	}

	cal := roster.CalendarResponse{
		Year:      year,
		Month:     int(month),
		MonthName: month.String(),
		Days:      days,
	}
	if err := s.cache.Set(ctx, cal); err != nil {
		slog.Warn("calendar cache write failed", "year", year, "month", int(month), "error", err)
	}
	return cal, nil
}

// DayManagement implements roster.RosterService.
func (s *RosterServiceImpl) DayManagement(ctx context.Context, caller staff.Manager, date time.Time) (roster.DayManagementResponse, error) {
	date = clock.DateOf(date)

	schedule, err := s.findSchedule(ctx, date)
	if err != nil {
		return roster.DayManagementResponse{}, err
	}
	templates, err := s.ListTemplates(ctx, caller)
	if err != nil {
		return roster.DayManagementResponse{}, err
	}
	day, err := s.attendance.StatusByDate(ctx, date)
	if err != nil {
		return roster.DayManagementResponse{}, fmt.Errorf("failed to load attendance: %w", err)
	}
	members, err := s.staffAttendance(ctx, day, false)
	if err != nil {
		return roster.DayManagementResponse{}, err
	}

	return roster.DayManagementResponse{
		Date:        attendance.DateKey(date),
		HasSchedule: schedule != nil,
		Templates:   templates,
		Staff:       members,
	}, nil
}

// DayDetails implements roster.RosterService.
func (s *RosterServiceImpl) DayDetails(ctx context.Context, caller staff.Manager, date time.Time) (roster.DayDetailsResponse, error) {
	date = clock.DateOf(date)

	schedule, err := s.schedules.GetByDate(ctx, date)
	if err != nil {
		return roster.DayDetailsResponse{}, err
	}
	allocations, err := s.allocations.ListByDate(ctx, date)
	if err != nil {
		return roster.DayDetailsResponse{}, fmt.Errorf("failed to list allocations: %w", err)
	}
	day, err := s.attendance.StatusByDate(ctx, date)
	if err != nil {
		return roster.DayDetailsResponse{}, fmt.Errorf("failed to load attendance: %w", err)
	}
	available, err := s.staffAttendance(ctx, day, true)
	if err != nil {
		return roster.DayDetailsResponse{}, err
	}

	slices.SortStableFunc(allocations, func(a, b roster.Allocation) int {
		return strings.Compare(a.TaskName, b.TaskName)
	})
	responses := make([]roster.AllocationResponse, 0, len(allocations))
	for _, a := range allocations {
		responses = append(responses, roster.NewDayAllocationResponse(a, day))
	}

	return roster.DayDetailsResponse{
		Date:                attendance.DateKey(date),
		TemplateID:          schedule.TemplateID,
		TemplateName:        schedule.TemplateName,
		HasUnavailableStaff: schedule.HasUnavailableStaff,
		IsAcknowledged:      schedule.IsAcknowledged,
		Allocations:         responses,
		AvailableStaff:      available,
	}, nil
}

// AcknowledgeDay implements roster.RosterService.
func (s *RosterServiceImpl) AcknowledgeDay(ctx context.Context, caller staff.Manager, date time.Time) error {
	date = clock.DateOf(date)
	if err := s.schedules.Acknowledge(ctx, date); err != nil {
		return err
	}
	s.invalidate(ctx, date)
	slog.Info("day schedule acknowledged", "date", attendance.DateKey(date), "manager_id", caller.ID)
	return nil
}

// DeleteSchedule implements roster.RosterService.
func (s *RosterServiceImpl) DeleteSchedule(ctx context.Context, caller staff.Manager, date time.Time) error {
	date = clock.DateOf(date)
	err := s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		if err := s.allocations.DeleteByDate(txCtx, date); err != nil {
			return fmt.Errorf("failed to delete allocations: %w", err)
		}
		if err := s.schedules.DeleteByDate(txCtx, date); err != nil {
			return fmt.Errorf("failed to delete day schedule: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.invalidate(ctx, date)
	return nil
}
