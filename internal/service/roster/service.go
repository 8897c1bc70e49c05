package roster

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/grocerymart/backoffice-go/internal/domain/attendance"
	"github.com/grocerymart/backoffice-go/internal/domain/roster"
	"github.com/grocerymart/backoffice-go/internal/domain/staff"
	"github.com/grocerymart/backoffice-go/internal/domain/tasktype"
	"github.com/grocerymart/backoffice-go/internal/pkg/clock"
	"github.com/grocerymart/backoffice-go/internal/pkg/database"
)

type RosterServiceImpl struct {
	tx          database.Transactor
	clock       clock.Clock
	templates   roster.TemplateRepository
	schedules   roster.DayScheduleRepository
	allocations roster.AllocationRepository
	staff       staff.StaffRepository
	taskTypes   tasktype.TaskTypeRepository
	attendance  attendance.AttendanceRepository
	cache       roster.CalendarCache
}

func NewRosterService(
	tx database.Transactor,
	clk clock.Clock,
	templateRepository roster.TemplateRepository,
	dayScheduleRepository roster.DayScheduleRepository,
	allocationRepository roster.AllocationRepository,
	staffRepository staff.StaffRepository,
	taskTypeRepository tasktype.TaskTypeRepository,
	attendanceRepository attendance.AttendanceRepository,
	cache roster.CalendarCache,
) roster.RosterService {
	return &RosterServiceImpl{
		tx:          tx,
		clock:       clk,
		templates:   templateRepository,
		schedules:   dayScheduleRepository,
		allocations: allocationRepository,
		staff:       staffRepository,
		taskTypes:   taskTypeRepository,
		attendance:  attendanceRepository,
		cache:       cache,
	}
}

// findSchedule returns nil when the date has no schedule.
func (s *RosterServiceImpl) findSchedule(ctx context.Context, date time.Time) (*roster.DaySchedule, error) {
	schedule, err := s.schedules.GetByDate(ctx, date)
	if err != nil {
		if errors.Is(err, roster.ErrScheduleNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get day schedule: %w", err)
	}
	return &schedule, nil
}

// recomputeFlag re-evaluates the day's unavailable flag from its current
// allocations and attendance, persisting it when the date has a schedule.
func (s *RosterServiceImpl) recomputeFlag(ctx context.Context, date time.Time) (bool, error) {
	allocations, err := s.allocations.ListByDate(ctx, date)
	if err != nil {
		return false, fmt.Errorf("failed to list allocations: %w", err)
	}
	day, err := s.attendance.StatusByDate(ctx, date)
	if err != nil {
		return false, fmt.Errorf("failed to load attendance: %w", err)
	}

	hasUnavailable := roster.HasUnavailable(allocations, day)
	if err := s.schedules.SetUnavailable(ctx, date, hasUnavailable); err != nil && !errors.Is(err, roster.ErrScheduleNotFound) {
		return false, fmt.Errorf("failed to update day schedule: %w", err)
	}
	return hasUnavailable, nil
}

func (s *RosterServiceImpl) invalidate(ctx context.Context, date time.Time) {
	if err := s.cache.Invalidate(ctx, date); err != nil {
		slog.Warn("failed to invalidate calendar cache", "date", attendance.DateKey(date), "error", err)
	}
}

func (s *RosterServiceImpl) invalidateAll(ctx context.Context) {
	if err := s.cache.InvalidateAll(ctx); err != nil {
		slog.Warn("failed to flush calendar cache", "error", err)
	}
}

// staffAttendance lists every STAFF member with their attendance status of the day.
func (s *RosterServiceImpl) staffAttendance(ctx context.Context, day attendance.StatusMap, onlyAvailable bool) ([]roster.StaffAttendance, error) {
	role := staff.RoleStaff
	members, err := s.staff.List(ctx, &role)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}

	result := make([]roster.StaffAttendance, 0, len(members))
	for _, m := range members {
		status := day.Of(m.ID)
		if onlyAvailable && !status.IsAvailable() {
			continue
		}
		result = append(result, roster.StaffAttendance{
			StaffID:          m.ID,
			StaffName:        m.Name,
			AttendanceStatus: status,
		})
	}
	return result, nil
}
