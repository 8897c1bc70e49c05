package memory

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/grocerymart/backoffice-go/internal/domain/payroll"
)

type expenseRepository struct{ *Store }

func (s *Store) Expenses() payroll.ExpenseRepository { return expenseRepository{s} }

func isSalaryFor(e payroll.Expense, staffID string, date time.Time) bool {
	return e.Type == payroll.ExpenseTypeSalary && e.StaffID != nil && *e.StaffID == staffID && e.Date.Equal(date)
}

func (r expenseRepository) CreateBatch(ctx context.Context, expenses []payroll.Expense) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	added := make(map[string]payroll.Expense, len(expenses))
	for _, e := range expenses {
		if _, exists := r.expenses[e.ID]; exists {
			return payroll.ErrPayRunConflict
		}
		if _, exists := added[e.ID]; exists {
			return payroll.ErrPayRunConflict
		}
		if e.Type == payroll.ExpenseTypeSalary && e.StaffID != nil {
			for _, other := range r.expenses {
				if isSalaryFor(other, *e.StaffID, e.Date) {
					return payroll.ErrPayRunConflict
				}
			}
			for _, other := range added {
				if isSalaryFor(other, *e.StaffID, e.Date) {
					return payroll.ErrPayRunConflict
				}
			}
		}
		added[e.ID] = e
	}
	for id, e := range added {
		r.expenses[id] = e
	}
	return nil
}

func (r expenseRepository) SalaryByRange(ctx context.Context, from, to time.Time) (map[string]payroll.Expense, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make(map[string]payroll.Expense)
	for _, e := range r.expenses {
		if e.Type == payroll.ExpenseTypeSalary && e.StaffID != nil && inRange(e.Date, from, to) {
			result[payroll.InvoiceKey(*e.StaffID, e.Date)] = e
		}
	}
	return result, nil
}

func (r expenseRepository) List(ctx context.Context, filter payroll.ExpenseFilter) ([]payroll.Expense, error) {
	from, to := filter.Period.Range()
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []payroll.Expense
	for _, e := range r.expenses {
		if inRange(e.Date, from, to) && (filter.Type == "" || e.Type == filter.Type) {
			result = append(result, e)
		}
	}
	slices.SortFunc(result, func(a, b payroll.Expense) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return result, nil
}

func (r expenseRepository) MaxID(ctx context.Context) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return maxID(r.expenses, "EX"), nil
}
