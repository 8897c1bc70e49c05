package payroll

import (
	"testing"
	"time"

	"github.com/grocerymart/backoffice-go/internal/domain/attendance"
	"github.com/grocerymart/backoffice-go/internal/domain/payroll"
	"github.com/grocerymart/backoffice-go/internal/domain/staff"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var calcNow = time.Date(2026, time.March, 12, 10, 0, 0, 0, time.UTC)

func at(day, hour, minute int) *time.Time {
	t := time.Date(2026, time.March, day, hour, minute, 0, 0, time.UTC)
	return &t
}

func shift(day int, in, out *time.Time) attendance.Record {
	return attendance.Record{
		StaffID:  "S002",
		Date:     time.Date(2026, time.March, day, 0, 0, 0, 0, time.UTC),
		CheckIn:  in,
		CheckOut: out,
		Status:   attendance.StatusAttend,
	}
}

func ten() staff.Staff {
	return staff.Staff{ID: "S002", Name: "Aina", Role: staff.RoleStaff, Salary: decimal.RequireFromString("10.00")}
}

func TestCalculateStaffPay_Overtime(t *testing.T) {
	pay, expenses, seq := CalculateStaffPay(ten(), []attendance.Record{shift(2, at(2, 8, 0), at(2, 18, 36))}, nil, "S001", payroll.Sequence(1), calcNow)

	require.Len(t, pay.DailyDetails, 1)
	assert.Equal(t, 11.0, pay.DailyDetails[0].HoursWorked)
	assert.Equal(t, "125.00", pay.DailyDetails[0].DailyPay.StringFixed(2))
	require.Len(t, expenses, 1)
	assert.Equal(t, "EX0001", expenses[0].ID)
	assert.Equal(t, payroll.ExpenseTypeSalary, expenses[0].Type)
	assert.Equal(t, "S001", expenses[0].ManagerID)
	assert.Equal(t, payroll.Sequence(2), seq)
}

func TestCalculateStaffPay_StandardDay(t *testing.T) {
	pay, expenses, _ := CalculateStaffPay(ten(), []attendance.Record{shift(3, at(3, 9, 0), at(3, 16, 45))}, nil, "S001", payroll.Sequence(1), calcNow)

	assert.Equal(t, 7.0, pay.TotalHours)
	assert.Equal(t, "70.00", pay.TotalSalary.StringFixed(2))
	assert.Equal(t, "09:00", pay.DailyDetails[0].CheckIn)
	assert.Equal(t, "16:45", pay.DailyDetails[0].CheckOut)
	assert.Len(t, expenses, 1)
}

func TestCalculateStaffPay_MissingCheckout(t *testing.T) {
	pay, expenses, _ := CalculateStaffPay(ten(), []attendance.Record{shift(10, at(10, 9, 0), nil)}, nil, "S001", payroll.Sequence(1), calcNow)

	detail := pay.DailyDetails[0]
	assert.Equal(t, "40.00", detail.DailyPay.StringFixed(2))
	assert.Equal(t, payroll.NoteMissingCheckout, detail.Note)
	assert.Equal(t, "Missing", detail.CheckOut)
	assert.Equal(t, 1, pay.MissingCheckouts)
	require.Len(t, expenses, 1)
	assert.Equal(t, "40.00", expenses[0].Amount.StringFixed(2))
}

func TestCalculateStaffPay_OnShiftAndUnpaidDays(t *testing.T) {
	records := []attendance.Record{
		shift(11, at(11, 12, 0), nil),
		shift(12, at(12, 8, 30), nil),
		{StaffID: "S002", Date: time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC), Status: attendance.StatusAbsent},
	}

	pay, expenses, seq := CalculateStaffPay(ten(), records, nil, "S001", payroll.Sequence(5), calcNow)

	assert.Empty(t, expenses)
	assert.Equal(t, payroll.Sequence(5), seq)
	assert.True(t, pay.TotalSalary.IsZero())
	assert.Equal(t, "Pending", pay.DailyDetails[0].CheckOut)
	assert.Empty(t, pay.DailyDetails[0].Note)
	assert.Equal(t, payroll.NoteOnShift, pay.DailyDetails[1].Note)
	assert.Equal(t, "-", pay.DailyDetails[2].CheckIn)
}

func TestCalculateStaffPay_ReusesInvoicedAmount(t *testing.T) {
	record := shift(3, at(3, 9, 0), at(3, 16, 45))
	staffID := "S002"
	invoiced := map[string]payroll.Expense{
		payroll.InvoiceKey("S002", record.Date): {
			ID:      "EX0004",
			Type:    payroll.ExpenseTypeSalary,
			Date:    record.Date,
			Amount:  decimal.RequireFromString("65.50"),
			StaffID: &staffID,
		},
	}

	pay, expenses, _ := CalculateStaffPay(ten(), []attendance.Record{record}, invoiced, "S001", payroll.Sequence(5), calcNow)

	assert.Empty(t, expenses)
	assert.Equal(t, payroll.NotePaidLocked, pay.DailyDetails[0].Note)
	assert.Equal(t, "65.50", pay.TotalSalary.StringFixed(2))
	assert.Equal(t, 7.0, pay.TotalHours)
}

func TestCalculateStaffPay_Boundaries(t *testing.T) {
	tests := []struct {
		name        string
		record      attendance.Record
		wantHours   float64
		wantPay     string
		wantNote    string
		wantOut     string
		wantMissing int
		wantExpense bool
	}{
		{
			name:        "half hour of overtime rounds up",
			record:      shift(4, at(4, 8, 0), at(4, 16, 30)),
			wantHours:   9,
			wantPay:     "95.00",
			wantOut:     "16:30",
			wantExpense: true,
		},
		{
			name:        "just under half an hour of overtime rounds down",
			record:      shift(4, at(4, 8, 0), at(4, 16, 29)),
			wantHours:   8,
			wantPay:     "80.00",
			wantOut:     "16:29",
			wantExpense: true,
		},
		{
			name:      "exactly 24 hours since check-in is not yet missing",
			record:    shift(11, at(11, 10, 0), nil),
			wantHours: 0,
			wantPay:   "0.00",
			wantOut:   "Pending",
		},
		{
			name:        "past 24 hours since check-in is missing",
			record:      shift(11, at(11, 9, 59), nil),
			wantHours:   8,
			wantPay:     "40.00",
			wantNote:    payroll.NoteMissingCheckout,
			wantOut:     "Missing",
			wantMissing: 1,
			wantExpense: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pay, expenses, _ := CalculateStaffPay(ten(), []attendance.Record{tt.record}, nil, "S001", payroll.Sequence(1), calcNow)

			require.Len(t, pay.DailyDetails, 1)
			detail := pay.DailyDetails[0]
			assert.Equal(t, tt.wantHours, detail.HoursWorked)
			assert.Equal(t, tt.wantPay, detail.DailyPay.StringFixed(2))
			assert.Equal(t, tt.wantNote, detail.Note)
			assert.Equal(t, tt.wantOut, detail.CheckOut)
			assert.Equal(t, tt.wantMissing, pay.MissingCheckouts)
			if tt.wantExpense {
				require.Len(t, expenses, 1)
				assert.Equal(t, tt.wantPay, expenses[0].Amount.StringFixed(2))
			} else {
				assert.Empty(t, expenses)
			}
		})
	}
}
