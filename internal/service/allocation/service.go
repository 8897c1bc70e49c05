package allocation

import (
	"context"
	"fmt"
	"time"

	"github.com/grocerymart/backoffice-go/internal/domain/attendance"
	"github.com/grocerymart/backoffice-go/internal/domain/roster"
	"github.com/grocerymart/backoffice-go/internal/domain/staff"
	"github.com/grocerymart/backoffice-go/internal/pkg/clock"
	"github.com/grocerymart/backoffice-go/internal/pkg/validator"
)

type AllocationServiceImpl struct {
	clock       clock.Clock
	allocations roster.AllocationRepository
	attendance  attendance.AttendanceRepository
}

func NewAllocationService(clk clock.Clock, allocationRepository roster.AllocationRepository, attendanceRepository attendance.AttendanceRepository) roster.AllocationService {
	return &AllocationServiceImpl{
		clock:       clk,
		allocations: allocationRepository,
		attendance:  attendanceRepository,
	}
}

// MySchedule implements roster.AllocationService.
func (s *AllocationServiceImpl) MySchedule(ctx context.Context, caller staff.Member, year int, month time.Month) (roster.MyScheduleResponse, error) {
	if !validator.IsValidMonth(int(month), year) {
		return roster.MyScheduleResponse{}, validator.Single("month", "month must be between 1 and 12 of a valid year")
	}

	first, last := clock.MonthRange(year, month)
	allocations, err := s.allocations.ListByStaffRange(ctx, caller.ID, first, last)
	if err != nil {
		return roster.MyScheduleResponse{}, fmt.Errorf("failed to list allocations: %w", err)
	}
	byDate := make(map[string]roster.Allocation, len(allocations))
	for _, a := range allocations {
		byDate[attendance.DateKey(a.AssignedDate)] = a
	}

	grid := roster.MonthGrid(year, month)
	days := make([]roster.MyCalendarDay, 0, len(grid))
	for _, g := range grid {
		day := roster.MyCalendarDay{
			Date:           attendance.DateKey(g.Date),
			DayNumber:      g.DayNumber,
			IsCurrentMonth: g.IsCurrentMonth,
		}
		if a, ok := byDate[day.Date]; ok && g.IsCurrentMonth {
			day.HasAssignment = true
			day.AllocationID = &a.ID
			day.TaskName = &a.TaskName
			day.Status = a.Status
		}
		days = append(days, day)
	}

	return roster.MyScheduleResponse{
		Year:      year,
		Month:     int(month),
		MonthName: month.String(),
		StaffID:   caller.ID,
		StaffName: caller.Name,
		Days:      days,
	}, nil
}

// MyDayTask implements roster.AllocationService.
func (s *AllocationServiceImpl) MyDayTask(ctx context.Context, caller staff.Member, date time.Time) (roster.MyDayTaskResponse, error) {
	date = clock.DateOf(date)

	mine, err := s.allocations.GetByStaffAndDate(ctx, caller.ID, date)
	if err != nil {
		return roster.MyDayTaskResponse{}, err
	}
	others, err := s.allocations.ListTeammates(ctx, date, mine.TaskName, caller.ID)
	if err != nil {
		return roster.MyDayTaskResponse{}, fmt.Errorf("failed to list teammates: %w", err)
	}
	day, err := s.attendance.StatusByDate(ctx, date)
	if err != nil {
		return roster.MyDayTaskResponse{}, fmt.Errorf("failed to load attendance: %w", err)
	}

	teammates := make([]roster.Teammate, 0, len(others))
	for _, o := range others {
		teammates = append(teammates, roster.Teammate{
			StaffID:          o.StaffID,
			StaffName:        o.StaffName,
			AttendanceStatus: day.Of(o.StaffID),
		})
	}

	resp := roster.NewAllocationResponse(mine)
	return roster.MyDayTaskResponse{
		Date:           resp.AssignedDate,
		AllocationID:   mine.ID,
		TaskName:       mine.TaskName,
		Status:         mine.Status,
		StartTime:      resp.StartTime,
		CompletionDate: resp.CompletionDate,
		Notes:          mine.Notes,
		Teammates:      teammates,
	}, nil
}

// StartTask implements roster.AllocationService.
func (s *AllocationServiceImpl) StartTask(ctx context.Context, caller staff.Member, allocationID string) (roster.AllocationResponse, error) {
	a, err := s.allocations.GetByIDAndStaff(ctx, allocationID, caller.ID)
	if err != nil {
		return roster.AllocationResponse{}, err
	}
	if err := a.Start(s.clock.Now()); err != nil {
		return roster.AllocationResponse{}, err
	}
	if err := s.allocations.Update(ctx, a); err != nil {
		return roster.AllocationResponse{}, err
	}
	return roster.NewAllocationResponse(a), nil
}

// CompleteTask implements roster.AllocationService.
func (s *AllocationServiceImpl) CompleteTask(ctx context.Context, caller staff.Member, allocationID string, req roster.CompleteTaskRequest) (roster.AllocationResponse, error) {
	a, err := s.allocations.GetByIDAndStaff(ctx, allocationID, caller.ID)
	if err != nil {
		return roster.AllocationResponse{}, err
	}
	if err := a.Complete(s.clock.Now(), req.Notes); err != nil {
		return roster.AllocationResponse{}, err
	}
	if err := s.allocations.Update(ctx, a); err != nil {
		return roster.AllocationResponse{}, err
	}
	return roster.NewAllocationResponse(a), nil
}
