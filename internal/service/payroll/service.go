package payroll

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/grocerymart/backoffice-go/internal/domain/attendance"
	"github.com/grocerymart/backoffice-go/internal/domain/payroll"
	"github.com/grocerymart/backoffice-go/internal/domain/staff"
	"github.com/grocerymart/backoffice-go/internal/pkg/clock"
	"github.com/grocerymart/backoffice-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type PayrollServiceImpl struct {
	tx    database.Transactor
	clock clock.Clock
	payroll.ExpenseRepository
	staff      staff.StaffRepository
	attendance attendance.AttendanceRepository
}

func NewPayrollService(tx database.Transactor, clk clock.Clock, expenseRepository payroll.ExpenseRepository, staffRepository staff.StaffRepository, attendanceRepository attendance.AttendanceRepository) payroll.PayrollService {
	return &PayrollServiceImpl{
		tx:                tx,
		clock:             clk,
		ExpenseRepository: expenseRepository,
		staff:             staffRepository,
		attendance:        attendanceRepository,
	}
}

// period defaults an unset month or year to the current one.
func (s *PayrollServiceImpl) period(p payroll.Period) (payroll.Period, error) {
	now := s.clock.Now()
	if p.Month == 0 {
		p.Month = int(now.Month())
	}
	if p.Year == 0 {
		p.Year = now.Year()
	}
	return p, p.Validate()
}

// settle folds every staff member through the calculator and records the
// new expenses, all inside one transaction.
func (s *PayrollServiceImpl) settle(ctx context.Context, caller staff.Manager, from, to time.Time, members []staff.Staff, records map[string][]attendance.Record) ([]payroll.StaffPay, int, error) {
	var (
		pays    []payroll.StaffPay
		created int
	)
	err := s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		invoiced, err := s.ExpenseRepository.SalaryByRange(txCtx, from, to)
		if err != nil {
			return fmt.Errorf("failed to load salary expenses: %w", err)
		}
		maxID, err := s.ExpenseRepository.MaxID(txCtx)
		if err != nil {
			return fmt.Errorf("failed to read expense id sequence: %w", err)
		}

		now := s.clock.Now()
		seq := payroll.SequenceAfter(maxID)
		var queued []payroll.Expense
		pays = make([]payroll.StaffPay, 0, len(members))
		for _, m := range members {
			var (
				pay      payroll.StaffPay
				expenses []payroll.Expense
			)
			pay, expenses, seq = CalculateStaffPay(m, records[m.ID], invoiced, caller.ID, seq, now)
			pays = append(pays, pay)
			queued = append(queued, expenses...)
		}

		if len(queued) == 0 {
			return nil
		}
		created = len(queued)
		return s.ExpenseRepository.CreateBatch(txCtx, queued)
	})
	if err != nil {
		return nil, 0, err
	}
	return pays, created, nil
}

// PayRun implements payroll.PayrollService.
func (s *PayrollServiceImpl) PayRun(ctx context.Context, caller staff.Manager, period payroll.Period) (payroll.PayRunResponse, error) {
	period, err := s.period(period)
	if err != nil {
		return payroll.PayRunResponse{}, err
	}
	from, to := period.Range()

	records, err := s.attendance.ListByRange(ctx, from, to)
	if err != nil {
		return payroll.PayRunResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}
	byStaff := make(map[string][]attendance.Record)
	var ids []string
	for _, r := range records {
		if _, seen := byStaff[r.StaffID]; !seen {
			ids = append(ids, r.StaffID)
		}
		byStaff[r.StaffID] = append(byStaff[r.StaffID], r)
	}

	found, err := s.staff.GetByIDs(ctx, ids)
	if err != nil {
		return payroll.PayRunResponse{}, fmt.Errorf("failed to load staff: %w", err)
	}
	members := make([]staff.Staff, 0, len(found))
	for _, m := range found {
		members = append(members, m)
	}
	slices.SortFunc(members, func(a, b staff.Staff) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})

	pays, created, err := s.settle(ctx, caller, from, to, members, byStaff)
	if err != nil {
		return payroll.PayRunResponse{}, err
	}

	grandTotal := decimal.Zero
	responses := make([]payroll.StaffPayResponse, 0, len(pays))
	for _, p := range pays {
		grandTotal = grandTotal.Add(p.TotalSalary)
		responses = append(responses, payroll.NewStaffPayResponse(p))
	}

	slog.Info("pay run completed",
		"month", period.Month,
		"year", period.Year,
		"staff", len(pays),
		"expenses_created", created,
		"manager_id", caller.ID,
	)

	return payroll.PayRunResponse{
		Month:           period.Month,
		Year:            period.Year,
		Staff:           responses,
		GrandTotal:      grandTotal.StringFixed(2),
		ExpensesCreated: created,
	}, nil
}

// PayDetails implements payroll.PayrollService.
func (s *PayrollServiceImpl) PayDetails(ctx context.Context, caller staff.Manager, staffID string, period payroll.Period) (payroll.StaffPayResponse, error) {
	period, err := s.period(period)
	if err != nil {
		return payroll.StaffPayResponse{}, err
	}
	from, to := period.Range()

	member, err := s.staff.GetByID(ctx, staffID)
	if err != nil {
		return payroll.StaffPayResponse{}, err
	}
	records, err := s.attendance.ListByStaffRange(ctx, member.ID, from, to)
	if err != nil {
		return payroll.StaffPayResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	pays, _, err := s.settle(ctx, caller, from, to, []staff.Staff{member}, map[string][]attendance.Record{member.ID: records})
	if err != nil {
		return payroll.StaffPayResponse{}, err
	}
	return payroll.NewStaffPayResponse(pays[0]), nil
}

// ListExpenses implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListExpenses(ctx context.Context, caller staff.Manager, filter payroll.ExpenseFilter) ([]payroll.ExpenseResponse, error) {
	period, err := s.period(filter.Period)
	if err != nil {
		return nil, err
	}
	filter.Period = period

	expenses, err := s.ExpenseRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	responses := make([]payroll.ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		responses = append(responses, payroll.NewExpenseResponse(e))
	}
	return responses, nil
}
