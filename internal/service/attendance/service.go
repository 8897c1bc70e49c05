package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/grocerymart/backoffice-go/internal/domain/attendance"
	"github.com/grocerymart/backoffice-go/internal/domain/roster"
	"github.com/grocerymart/backoffice-go/internal/domain/staff"
	"github.com/grocerymart/backoffice-go/internal/pkg/clock"
	"github.com/grocerymart/backoffice-go/internal/pkg/database"
	"github.com/grocerymart/backoffice-go/internal/pkg/idgen"
)

// EarliestCheckIn is the store opening time.
const EarliestCheckIn = 8

type AttendanceServiceImpl struct {
	tx    database.Transactor
	clock clock.Clock
	attendance.AttendanceRepository
	staff.StaffRepository
	cache roster.CalendarCache
}

func NewAttendanceService(tx database.Transactor, clk clock.Clock, attendanceRepository attendance.AttendanceRepository, staffRepository staff.StaffRepository, cache roster.CalendarCache) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		tx:                   tx,
		clock:                clk,
		AttendanceRepository: attendanceRepository,
		StaffRepository:      staffRepository,
		cache:                cache,
	}
}

// resolve applies the request overrides on top of the store clock.
func (a *AttendanceServiceImpl) resolve(req attendance.CheckRequest) (date time.Time, at time.Time, err error) {
	now := a.clock.Now()
	date = clock.DateOf(now)
	if req.Date != nil && *req.Date != "" {
		if date, err = clock.ParseDate(*req.Date); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}

	hhmm := now.Format("15:04")
	if req.Time != nil && *req.Time != "" {
		hhmm = *req.Time
	}
	at, err = clock.At(date, hhmm)
	return date, at, err
}

func (a *AttendanceServiceImpl) invalidate(ctx context.Context, date time.Time) {
	if err := a.cache.Invalidate(ctx, date); err != nil {
		slog.Warn("failed to invalidate calendar cache", "date", attendance.DateKey(date), "error", err)
	}
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, caller staff.Member, req attendance.CheckRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	date, checkIn, err := a.resolve(req)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if checkIn.Hour() < EarliestCheckIn {
		return attendance.AttendanceResponse{}, attendance.ErrCheckInTooEarly
	}

	existing, err := a.AttendanceRepository.GetByStaffAndDate(ctx, caller.ID, date)
	switch {
	case err == nil && existing.CheckIn != nil:
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
	case err != nil && !errors.Is(err, attendance.ErrAttendanceNotFound):
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	var record attendance.Record
	err = a.tx.WithinTx(ctx, func(txCtx context.Context) error {
		if existing.ID != "" {
			// A manager already marked the day; a late arrival keeps its LATE mark.
			status := attendance.StatusAttend
			if existing.Status == attendance.StatusLate {
				status = attendance.StatusLate
			}
			if err := a.AttendanceRepository.UpdateCheckIn(txCtx, existing.ID, checkIn, status); err != nil {
				return err
			}
			record = existing
			record.CheckIn = &checkIn
			record.Status = status
			return nil
		}

		maxID, err := a.AttendanceRepository.MaxID(txCtx)
		if err != nil {
			return fmt.Errorf("failed to read attendance id sequence: %w", err)
		}
		record, err = a.AttendanceRepository.Create(txCtx, attendance.Record{
			ID:        idgen.Attendance.NextID(maxID),
			StaffID:   caller.ID,
			Date:      date,
			CheckIn:   &checkIn,
			Status:    attendance.StatusAttend,
			CreatedAt: a.clock.Now(),
		})
		return err
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	a.invalidate(ctx, date)

	return attendance.NewAttendanceResponse(record), nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, caller staff.Member, req attendance.CheckRequest) (attendance.CheckOutResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.CheckOutResponse{}, err
	}
	date, checkOut, err := a.resolve(req)
	if err != nil {
		return attendance.CheckOutResponse{}, err
	}

	record, err := a.AttendanceRepository.GetByStaffAndDate(ctx, caller.ID, date)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.CheckOutResponse{}, attendance.ErrNotCheckedIn
		}
		return attendance.CheckOutResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	if record.CheckIn == nil {
		return attendance.CheckOutResponse{}, attendance.ErrNotCheckedIn
	}
	if !checkOut.After(*record.CheckIn) {
		return attendance.CheckOutResponse{}, attendance.ErrCheckOutBeforeCheckIn
	}

	if err := a.AttendanceRepository.UpdateCheckOut(ctx, record.ID, checkOut); err != nil {
		return attendance.CheckOutResponse{}, err
	}

	previous := record.CheckOut
	record.CheckOut = &checkOut
	resp := attendance.CheckOutResponse{AttendanceResponse: attendance.NewAttendanceResponse(record)}
	if previous != nil {
		p := previous.Format("15:04")
		resp.PreviousCheckOut = &p
		slog.Info("check-out overwritten", "attendance_id", record.ID, "previous", p, "staff_id", caller.ID)
	}
	return resp, nil
}

// History implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) History(ctx context.Context, caller staff.Member, filter attendance.HistoryFilter) (attendance.HistoryResponse, error) {
	filter.StaffID = caller.ID
	filter.Normalize()

	records, total, err := a.AttendanceRepository.History(ctx, filter)
	if err != nil {
		return attendance.HistoryResponse{}, fmt.Errorf("failed to get attendance history: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, attendance.NewAttendanceResponse(r))
	}

	return attendance.HistoryResponse{
		Records:    responses,
		TotalCount: total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.PageSize))),
	}, nil
}

// MarkStatus implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) MarkStatus(ctx context.Context, caller staff.Manager, req attendance.MarkStatusRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	date, err := clock.ParseDate(req.Date)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if _, err := a.StaffRepository.GetByID(ctx, req.StaffID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	existing, err := a.AttendanceRepository.GetByStaffAndDate(ctx, req.StaffID, date)
	switch {
	case err == nil && existing.CheckIn != nil:
		return attendance.AttendanceResponse{}, attendance.ErrStatusLockedByCheckIn
	case err != nil && !errors.Is(err, attendance.ErrAttendanceNotFound):
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	var record attendance.Record
	err = a.tx.WithinTx(ctx, func(txCtx context.Context) error {
		maxID, err := a.AttendanceRepository.MaxID(txCtx)
		if err != nil {
			return fmt.Errorf("failed to read attendance id sequence: %w", err)
		}
		record, err = a.AttendanceRepository.UpsertStatus(txCtx, attendance.Record{
			ID:        idgen.Attendance.NextID(maxID),
			StaffID:   req.StaffID,
			Date:      date,
			Status:    attendance.Status(req.Status),
			CreatedAt: a.clock.Now(),
		})
		return err
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	a.invalidate(ctx, date)

	slog.Info("attendance status marked", "staff_id", req.StaffID, "date", req.Date, "status", req.Status, "manager_id", caller.ID)
	return attendance.NewAttendanceResponse(record), nil
}
