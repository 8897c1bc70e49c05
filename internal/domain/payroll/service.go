package payroll

import (
	"context"

	"github.com/grocerymart/backoffice-go/internal/domain/staff"
)

type PayrollService interface {
	PayRun(ctx context.Context, caller staff.Manager, period Period) (PayRunResponse, error)
	PayDetails(ctx context.Context, caller staff.Manager, staffID string, period Period) (StaffPayResponse, error)
	ListExpenses(ctx context.Context, caller staff.Manager, filter ExpenseFilter) ([]ExpenseResponse, error)
}
