package tasktype

import (
	"context"

	"github.com/grocerymart/backoffice-go/internal/domain/staff"
)

type TaskTypeService interface {
	List(ctx context.Context, activeOnly bool) ([]TaskTypeResponse, error)
	Add(ctx context.Context, caller staff.Manager, req CreateTaskTypeRequest) (TaskTypeResponse, error)
	Toggle(ctx context.Context, caller staff.Manager, id int64) (TaskTypeResponse, error)
}
