package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/grocerymart/backoffice-go/internal/domain/tasktype"
)

type taskTypeRepository struct{ *Store }

func (s *Store) TaskTypes() tasktype.TaskTypeRepository { return taskTypeRepository{s} }

func (r taskTypeRepository) List(ctx context.Context, activeOnly bool) ([]tasktype.TaskType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []tasktype.TaskType
	for _, t := range r.taskTypes {
		if !activeOnly || t.IsActive {
			result = append(result, t)
		}
	}
	slices.SortFunc(result, func(a, b tasktype.TaskType) int {
		return strings.Compare(a.Name, b.Name)
	})
	return result, nil
}

func (r taskTypeRepository) GetByID(ctx context.Context, id int64) (tasktype.TaskType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.taskTypes[id]
	if !ok {
		return tasktype.TaskType{}, tasktype.ErrTaskTypeNotFound
	}
	return t, nil
}

func (r taskTypeRepository) ActiveNames(ctx context.Context) (map[string]bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make(map[string]bool)
	for _, t := range r.taskTypes {
		if t.IsActive {
			names[t.Name] = true
		}
	}
	return names, nil
}

func (r taskTypeRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, t := range r.taskTypes {
		if strings.EqualFold(t.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (r taskTypeRepository) Create(ctx context.Context, t tasktype.TaskType) (tasktype.TaskType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.taskTypes {
		if strings.EqualFold(existing.Name, t.Name) {
			return tasktype.TaskType{}, tasktype.ErrTaskTypeNameExists
		}
	}
	r.nextTaskTypeID++
	t.ID = r.nextTaskTypeID
	r.taskTypes[t.ID] = t
	return t, nil
}

func (r taskTypeRepository) SetActive(ctx context.Context, id int64, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.taskTypes[id]
	if !ok {
		return tasktype.ErrTaskTypeNotFound
	}
	t.IsActive = active
	r.taskTypes[id] = t
	return nil
}
