package payroll

import (
	"context"
	"time"
)

type ExpenseRepository interface {
	// CreateBatch inserts all expenses within one round trip.
	CreateBatch(ctx context.Context, expenses []Expense) error
	// SalaryByRange returns Salary expenses dated within the range keyed by InvoiceKey.
	SalaryByRange(ctx context.Context, from, to time.Time) (map[string]Expense, error)
	List(ctx context.Context, filter ExpenseFilter) ([]Expense, error)
	MaxID(ctx context.Context) (string, error)
}
