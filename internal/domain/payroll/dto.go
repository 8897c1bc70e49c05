package payroll

import (
	"fmt"
	"time"

	"github.com/grocerymart/backoffice-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// Period is a payroll month.
type Period struct {
	Month int
	Year  int
}

func (p Period) Validate() error {
	if !validator.IsValidMonth(p.Month, p.Year) {
		return ErrInvalidPeriod
	}
	return nil
}

// Range returns the first and last date of the period.
func (p Period) Range() (time.Time, time.Time) {
	first := time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
	return first, first.AddDate(0, 1, -1)
}

type ExpenseFilter struct {
	Period Period
	Type   string
}

type DailyPayResponse struct {
	Date         string  `json:"date"`
	CheckIn      string  `json:"check_in"`
	CheckOut     string  `json:"check_out"`
	HoursWorked  float64 `json:"hours_worked"`
	HoursDisplay string  `json:"hours_display"`
	DailyPay     string  `json:"daily_pay"`
	Note         string  `json:"note,omitempty"`
}

type StaffPayResponse struct {
	StaffID          string             `json:"staff_id"`
	StaffName        string             `json:"staff_name"`
	Role             *string            `json:"role,omitempty"`
	Salary           string             `json:"salary"`
	TotalHours       float64            `json:"total_hours"`
	TotalHoursText   string             `json:"total_hours_display"`
	TotalSalary      string             `json:"total_salary"`
	MissingCheckouts int                `json:"missing_checkouts"`
	DailyDetails     []DailyPayResponse `json:"daily_details"`
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func NewStaffPayResponse(p StaffPay) StaffPayResponse {
	details := make([]DailyPayResponse, 0, len(p.DailyDetails))
	for _, d := range p.DailyDetails {
		details = append(details, DailyPayResponse{
			Date:         d.Date.Format("2006-01-02"),
			CheckIn:      d.CheckIn,
			CheckOut:     d.CheckOut,
			HoursWorked:  d.HoursWorked,
			HoursDisplay: fmt.Sprintf("%.1f", d.HoursWorked),
			DailyPay:     money(d.DailyPay),
			Note:         d.Note,
		})
	}
	return StaffPayResponse{
		StaffID:          p.StaffID,
		StaffName:        p.StaffName,
		Role:             p.Role,
		Salary:           money(p.Salary),
		TotalHours:       p.TotalHours,
		TotalHoursText:   fmt.Sprintf("%.1f", p.TotalHours),
		TotalSalary:      money(p.TotalSalary),
		MissingCheckouts: p.MissingCheckouts,
		DailyDetails:     details,
	}
}

type PayRunResponse struct {
	Month           int                `json:"month"`
	Year            int                `json:"year"`
	Staff           []StaffPayResponse `json:"staff"`
	GrandTotal      string             `json:"grand_total"`
	ExpensesCreated int                `json:"expenses_created"`
}

type ExpenseResponse struct {
	ID        string  `json:"id"`
	Type      string  `json:"type"`
	Details   string  `json:"details"`
	Date      string  `json:"date"`
	Amount    string  `json:"amount"`
	StaffID   *string `json:"staff_id,omitempty"`
	ManagerID string  `json:"manager_id"`
}

func NewExpenseResponse(e Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:        e.ID,
		Type:      e.Type,
		Details:   e.Details,
		Date:      e.Date.Format("2006-01-02"),
		Amount:    money(e.Amount),
		StaffID:   e.StaffID,
		ManagerID: e.ManagerID,
	}
}
