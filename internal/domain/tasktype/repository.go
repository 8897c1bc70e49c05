package tasktype

import "context"

type TaskTypeRepository interface {
	List(ctx context.Context, activeOnly bool) ([]TaskType, error)
	GetByID(ctx context.Context, id int64) (TaskType, error)
	// ActiveNames returns the names of all active task types.
	ActiveNames(ctx context.Context) (map[string]bool, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, t TaskType) (TaskType, error)
	SetActive(ctx context.Context, id int64, active bool) error
}
