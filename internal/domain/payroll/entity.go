package payroll

import (
	"time"

	"github.com/grocerymart/backoffice-go/internal/pkg/idgen"
	"github.com/shopspring/decimal"
)

const ExpenseTypeSalary = "Salary"

// Notes written on daily pay rows and into salary expense details.
const (
	NotePaidLocked      = "Paid (Locked)"
	NoteOnShift         = "Currently on Shift..."
	NoteMissingCheckout = "Missing Checkout (Half Pay)."
)

// Expense is a row of the store's expense ledger.
type Expense struct {
	ID        string
	Type      string
	Details   string
	Date      time.Time
	Amount    decimal.Decimal
	StaffID   *string
	ManagerID string
}

// InvoiceKey identifies the salary expense of one staff-day.
func InvoiceKey(staffID string, date time.Time) string {
	return staffID + "|" + date.Format("2006-01-02")
}

// Sequence is the next expense number of a pay run. It is passed by value and
// every consumer returns the advanced sequence.
type Sequence int64

// SequenceAfter starts a run after the ledger's current maximum expense id.
func SequenceAfter(maxID string) Sequence {
	return Sequence(idgen.Expense.Next(maxID))
}

// Take mints the next expense id.
func (s Sequence) Take() (string, Sequence) {
	return idgen.Expense.Format(int64(s)), s + 1
}

// DailyPayDetail is one attendance day of a staff pay statement.
type DailyPayDetail struct {
	Date        time.Time
	CheckIn     string
	CheckOut    string
	HoursWorked float64
	DailyPay    decimal.Decimal
	Note        string
}

// StaffPay aggregates a staff member's pay for the processed days.
type StaffPay struct {
	StaffID          string
	StaffName        string
	Role             *string
	Salary           decimal.Decimal
	TotalHours       float64
	TotalSalary      decimal.Decimal
	MissingCheckouts int
	DailyDetails     []DailyPayDetail
}

// Add appends a day and accumulates it into the totals.
func (p *StaffPay) Add(d DailyPayDetail) {
	p.DailyDetails = append(p.DailyDetails, d)
	p.TotalHours += d.HoursWorked
	p.TotalSalary = p.TotalSalary.Add(d.DailyPay)
}
