package payroll

import (
	"fmt"
	"math"
	"time"

	"github.com/grocerymart/backoffice-go/internal/domain/attendance"
	"github.com/grocerymart/backoffice-go/internal/domain/payroll"
	"github.com/grocerymart/backoffice-go/internal/domain/staff"
	"github.com/grocerymart/backoffice-go/internal/pkg/clock"
	"github.com/shopspring/decimal"
)

const (
	StandardHours     = 8
	MissingCheckoutAt = 24 * time.Hour
)

var (
	overtimeMultiplier = decimal.NewFromFloat(1.5)
	halfDayHours       = decimal.NewFromInt(4)
)

// CalculateStaffPay computes one staff member's pay over records, which must be
// ordered by date. invoiced holds already recorded Salary expenses keyed by
// payroll.InvoiceKey; those days reuse the stored amount. Every newly paid day
// yields an expense minted from seq, and the advanced sequence is returned.
func CalculateStaffPay(member staff.Staff, records []attendance.Record, invoiced map[string]payroll.Expense, managerID string, seq payroll.Sequence, now time.Time) (payroll.StaffPay, []payroll.Expense, payroll.Sequence) {
	pay := payroll.StaffPay{
		StaffID:      member.ID,
		StaffName:    member.Name,
		Role:         member.AuthorizationLevel,
		Salary:       member.Salary,
		TotalSalary:  decimal.Zero,
		DailyDetails: make([]payroll.DailyPayDetail, 0, len(records)),
	}
	today := clock.DateOf(now)
	rate := member.Salary

	var expenses []payroll.Expense
	for _, r := range records {
		detail := payroll.DailyPayDetail{
			Date:     r.Date,
			CheckIn:  displayClock(r.CheckIn, "-"),
			CheckOut: displayClock(r.CheckOut, "Pending"),
			DailyPay: decimal.Zero,
		}

		if existing, ok := invoiced[payroll.InvoiceKey(member.ID, r.Date)]; ok {
			if r.CheckIn != nil && r.CheckOut != nil {
				detail.HoursWorked = math.Floor(r.CheckOut.Sub(*r.CheckIn).Hours())
			}
			detail.DailyPay = existing.Amount
			detail.Note = payroll.NotePaidLocked
			pay.Add(detail)
			continue
		}

		payable := false
		switch {
		case r.CheckIn != nil && r.CheckOut != nil:
			raw := r.CheckOut.Sub(*r.CheckIn).Hours()
			if raw <= StandardHours {
				detail.HoursWorked = math.Floor(raw)
				detail.DailyPay = rate.Mul(decimal.NewFromFloat(detail.HoursWorked))
			} else {
				extra := math.Round(raw - StandardHours)
				detail.HoursWorked = StandardHours + extra
				detail.DailyPay = rate.Mul(decimal.NewFromInt(StandardHours)).
					Add(rate.Mul(overtimeMultiplier).Mul(decimal.NewFromFloat(extra)))
			}
			payable = true
		case r.CheckIn != nil && r.Date.Equal(today):
			detail.Note = payroll.NoteOnShift
		case r.CheckIn != nil && r.Date.Before(today) && now.Sub(*r.CheckIn) > MissingCheckoutAt:
			detail.HoursWorked = StandardHours
			detail.DailyPay = rate.Mul(halfDayHours)
			detail.Note = payroll.NoteMissingCheckout
			detail.CheckOut = "Missing"
			pay.MissingCheckouts++
			payable = true
		}
		detail.DailyPay = detail.DailyPay.Round(2)

		if payable && detail.DailyPay.IsPositive() {
			var id string
			id, seq = seq.Take()
			staffID := member.ID
			expenses = append(expenses, payroll.Expense{
				ID:        id,
				Type:      payroll.ExpenseTypeSalary,
				Details:   fmt.Sprintf("Daily Pay (RM): %s (%s)", member.Name, detail.Note),
				Date:      r.Date,
				Amount:    detail.DailyPay,
				StaffID:   &staffID,
				ManagerID: managerID,
			})
		}
		pay.Add(detail)
	}

	return pay, expenses, seq
}

func displayClock(t *time.Time, fallback string) string {
	if t == nil {
		return fallback
	}
	return t.Format("15:04")
}
