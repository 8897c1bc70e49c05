package payroll

import (
	"context"
	"testing"
	"time"

	"github.com/grocerymart/backoffice-go/internal/domain/attendance"
	"github.com/grocerymart/backoffice-go/internal/domain/payroll"
	"github.com/grocerymart/backoffice-go/internal/domain/staff"
	"github.com/grocerymart/backoffice-go/internal/pkg/clock"
	"github.com/grocerymart/backoffice-go/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var manager = staff.Manager{ID: "S001", Name: "Farid"}

func newTestPayrollService(t *testing.T) (payroll.PayrollService, *memory.Store) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	cashier := "Cashier"
	for _, m := range []staff.Staff{
		{ID: "S001", Name: "Farid", Email: "farid@grocery.test", Role: staff.RoleManager, Salary: decimal.RequireFromString("20.00")},
		{ID: "S002", Name: "Aina", Email: "aina@grocery.test", Role: staff.RoleStaff, AuthorizationLevel: &cashier, Salary: decimal.RequireFromString("10.00")},
		{ID: "S003", Name: "Ben", Email: "ben@grocery.test", Role: staff.RoleStaff, Salary: decimal.RequireFromString("12.00")},
	} {
		_, err := store.Staff().Create(ctx, m)
		require.NoError(t, err)
	}

	records := []attendance.Record{
		{ID: "ATT00001", StaffID: "S002", Date: date(2), CheckIn: at(2, 8, 0), CheckOut: at(2, 18, 36), Status: attendance.StatusAttend},
		{ID: "ATT00002", StaffID: "S002", Date: date(3), CheckIn: at(3, 9, 0), CheckOut: at(3, 16, 45), Status: attendance.StatusAttend},
		{ID: "ATT00003", StaffID: "S002", Date: date(10), CheckIn: at(10, 9, 0), Status: attendance.StatusAttend},
		{ID: "ATT00004", StaffID: "S002", Date: date(12), CheckIn: at(12, 8, 30), Status: attendance.StatusAttend},
		{ID: "ATT00005", StaffID: "S003", Date: date(3), CheckIn: at(3, 9, 0), CheckOut: at(3, 13, 0), Status: attendance.StatusAttend},
		{ID: "ATT00006", StaffID: "S003", Date: date(4), Status: attendance.StatusAbsent},
	}
	for _, r := range records {
		_, err := store.Attendance().Create(ctx, r)
		require.NoError(t, err)
	}

	require.NoError(t, store.Expenses().CreateBatch(ctx, []payroll.Expense{{
		ID:        "EX0007",
		Type:      "Utilities",
		Details:   "Electricity",
		Date:      date(1),
		Amount:    decimal.RequireFromString("300.00"),
		ManagerID: "S001",
	}}))

	svc := NewPayrollService(store, clock.Fixed(calcNow), store.Expenses(), store.Staff(), store.Attendance())
	return svc, store
}

func date(day int) time.Time {
	return time.Date(2026, time.March, day, 0, 0, 0, 0, time.UTC)
}

func TestPayrollService_PayRun(t *testing.T) {
	svc, _ := newTestPayrollService(t)

	run, err := svc.PayRun(context.Background(), manager, payroll.Period{Month: 3, Year: 2026})
	require.NoError(t, err)

	assert.Equal(t, 4, run.ExpensesCreated)
	require.Len(t, run.Staff, 2)

	aina := run.Staff[0]
	assert.Equal(t, "S002", aina.StaffID)
	assert.Equal(t, "235.00", aina.TotalSalary)
	assert.Equal(t, 26.0, aina.TotalHours)
	assert.Equal(t, 1, aina.MissingCheckouts)
	require.NotNil(t, aina.Role)
	assert.Equal(t, "Cashier", *aina.Role)

	ben := run.Staff[1]
	assert.Equal(t, "48.00", ben.TotalSalary)
	assert.Len(t, ben.DailyDetails, 2)

	assert.Equal(t, "283.00", run.GrandTotal)
}

func TestPayrollService_PayRun_Idempotent(t *testing.T) {
	svc, store := newTestPayrollService(t)
	ctx := context.Background()
	period := payroll.Period{Month: 3, Year: 2026}

	first, err := svc.PayRun(ctx, manager, period)
	require.NoError(t, err)

	second, err := svc.PayRun(ctx, manager, period)
	require.NoError(t, err)

	assert.Equal(t, 0, second.ExpensesCreated)
	assert.Equal(t, first.GrandTotal, second.GrandTotal)
	for _, d := range second.Staff[0].DailyDetails {
		if d.Date == "2026-03-12" {
			assert.Equal(t, payroll.NoteOnShift, d.Note)
			continue
		}
		assert.Equal(t, payroll.NotePaidLocked, d.Note)
	}

	salaries, err := store.Expenses().List(ctx, payroll.ExpenseFilter{Period: period, Type: payroll.ExpenseTypeSalary})
	require.NoError(t, err)
	assert.Len(t, salaries, 4)
}

func TestPayrollService_ExpenseIDsContinue(t *testing.T) {
	svc, _ := newTestPayrollService(t)
	ctx := context.Background()

	_, err := svc.PayRun(ctx, manager, payroll.Period{Month: 3, Year: 2026})
	require.NoError(t, err)

	expenses, err := svc.ListExpenses(ctx, manager, payroll.ExpenseFilter{Period: payroll.Period{Month: 3, Year: 2026}})
	require.NoError(t, err)
	require.Len(t, expenses, 5)

	ids := make([]string, 0, len(expenses))
	for _, e := range expenses {
		ids = append(ids, e.ID)
	}
	assert.ElementsMatch(t, []string{"EX0007", "EX0008", "EX0009", "EX0010", "EX0011"}, ids)
	assert.Equal(t, "EX0007", expenses[0].ID)
}

func TestPayrollService_PayDetails(t *testing.T) {
	svc, store := newTestPayrollService(t)
	ctx := context.Background()

	details, err := svc.PayDetails(ctx, manager, "S003", payroll.Period{})
	require.NoError(t, err)

	assert.Equal(t, "Ben", details.StaffName)
	assert.Equal(t, "12.00", details.Salary)
	assert.Equal(t, "48.00", details.TotalSalary)

	salaries, err := store.Expenses().SalaryByRange(ctx, date(1), date(31))
	require.NoError(t, err)
	assert.Len(t, salaries, 1)
	assert.Contains(t, salaries, payroll.InvoiceKey("S003", date(3)))

	_, err = svc.PayDetails(ctx, manager, "S404", payroll.Period{})
	assert.ErrorIs(t, err, staff.ErrStaffNotFound)
}

func TestPayrollService_InvalidPeriod(t *testing.T) {
	svc, _ := newTestPayrollService(t)

	_, err := svc.PayRun(context.Background(), manager, payroll.Period{Month: 13, Year: 2026})
	assert.ErrorIs(t, err, payroll.ErrInvalidPeriod)
}
