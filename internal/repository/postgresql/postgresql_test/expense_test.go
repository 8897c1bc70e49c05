package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/grocerymart/backoffice-go/internal/domain/payroll"
	"github.com/grocerymart/backoffice-go/internal/domain/staff"
	"github.com/grocerymart/backoffice-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpenseRepository_OneSalaryPerStaffDay(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()
	createStaff(t, db, "S002", "Aina", staff.RoleStaff)

	repo := postgresql.NewExpenseRepository(db)
	staffID := "S002"
	day := date(2030, time.January, 6)
	salary := payroll.Expense{
		ID:        "EX0001",
		Type:      payroll.ExpenseTypeSalary,
		Details:   "Daily Pay (RM): 80.00 (Aina)",
		Date:      day,
		Amount:    decimal.RequireFromString("80.00"),
		StaffID:   &staffID,
		ManagerID: "S001",
	}
	require.NoError(t, repo.CreateBatch(ctx, []payroll.Expense{salary}))

	salary.ID = "EX0002"
	assert.ErrorIs(t, repo.CreateBatch(ctx, []payroll.Expense{salary}), payroll.ErrPayRunConflict)

	invoiced, err := repo.SalaryByRange(ctx, date(2030, time.January, 1), date(2030, time.January, 31))
	require.NoError(t, err)
	require.Contains(t, invoiced, payroll.InvoiceKey("S002", day))
	assert.True(t, decimal.RequireFromString("80").Equal(invoiced[payroll.InvoiceKey("S002", day)].Amount))

	listed, err := repo.List(ctx, payroll.ExpenseFilter{Period: payroll.Period{Month: 1, Year: 2030}})
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}
