package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/grocerymart/backoffice-go/internal/domain/payroll"
	"github.com/grocerymart/backoffice-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type expenseRepositoryImpl struct {
	db *database.DB
}

func NewExpenseRepository(db *database.DB) payroll.ExpenseRepository {
	return &expenseRepositoryImpl{db: db}
}

func scanExpense(row pgx.Row) (payroll.Expense, error) {
	var e payroll.Expense
	err := row.Scan(&e.ID, &e.Type, &e.Details, &e.Date, &e.Amount, &e.StaffID, &e.ManagerID)
	return e, err
}

// CreateBatch implements payroll.ExpenseRepository.
func (r *expenseRepositoryImpl) CreateBatch(ctx context.Context, expenses []payroll.Expense) error {
	if len(expenses) == 0 {
		return nil
	}

	q := GetQuerier(ctx, r.db)
	batch := &pgx.Batch{}
	for _, e := range expenses {
		batch.Queue(`
			INSERT INTO expenses (id, type, details, date, amount, staff_id, manager_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, e.ID, e.Type, e.Details, e.Date, e.Amount, e.StaffID, e.ManagerID)
	}

	br := q.SendBatch(ctx, batch)
	defer br.Close()
	for range expenses {
		if _, err := br.Exec(); err != nil {
			if isUniqueViolation(err, "") {
				return payroll.ErrPayRunConflict
			}
			return fmt.Errorf("failed to insert expense: %w", err)
		}
	}
	return br.Close()
}

// SalaryByRange implements payroll.ExpenseRepository.
func (r *expenseRepositoryImpl) SalaryByRange(ctx context.Context, from, to time.Time) (map[string]payroll.Expense, error) {
	q := GetQuerier(ctx, r.db)
	rows, err := q.Query(ctx, `
		SELECT id, type, details, date, amount, staff_id, manager_id
		FROM expenses
		WHERE type = $1 AND staff_id IS NOT NULL AND date BETWEEN $2 AND $3
	`, payroll.ExpenseTypeSalary, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string]payroll.Expense)
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		result[payroll.InvoiceKey(*e.StaffID, e.Date)] = e
	}
	return result, rows.Err()
}

// List implements payroll.ExpenseRepository.
func (r *expenseRepositoryImpl) List(ctx context.Context, filter payroll.ExpenseFilter) ([]payroll.Expense, error) {
	from, to := filter.Period.Range()
	q := GetQuerier(ctx, r.db)
	rows, err := q.Query(ctx, `
		SELECT id, type, details, date, amount, staff_id, manager_id
		FROM expenses
		WHERE date BETWEEN $1 AND $2 AND ($3::varchar = '' OR type = $3)
		ORDER BY date, id
	`, from, to, filter.Type)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []payroll.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

// MaxID implements payroll.ExpenseRepository.
func (r *expenseRepositoryImpl) MaxID(ctx context.Context) (string, error) {
	return maxID(ctx, r.db, "expenses", "EX")
}
