package tasktype

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/grocerymart/backoffice-go/internal/domain/staff"
	"github.com/grocerymart/backoffice-go/internal/domain/tasktype"
)

type TaskTypeServiceImpl struct {
	tasktype.TaskTypeRepository
}

func NewTaskTypeService(taskTypeRepository tasktype.TaskTypeRepository) tasktype.TaskTypeService {
	return &TaskTypeServiceImpl{
		TaskTypeRepository: taskTypeRepository,
	}
}

// List implements tasktype.TaskTypeService.
func (s *TaskTypeServiceImpl) List(ctx context.Context, activeOnly bool) ([]tasktype.TaskTypeResponse, error) {
	types, err := s.TaskTypeRepository.List(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list task types: %w", err)
	}

	responses := make([]tasktype.TaskTypeResponse, 0, len(types))
	for _, t := range types {
		responses = append(responses, tasktype.NewTaskTypeResponse(t))
	}
	return responses, nil
}

// Add implements tasktype.TaskTypeService.
func (s *TaskTypeServiceImpl) Add(ctx context.Context, caller staff.Manager, req tasktype.CreateTaskTypeRequest) (tasktype.TaskTypeResponse, error) {
	if err := req.Validate(); err != nil {
		return tasktype.TaskTypeResponse{}, err
	}

	exists, err := s.TaskTypeRepository.ExistsByName(ctx, req.Name)
	if err != nil {
		return tasktype.TaskTypeResponse{}, fmt.Errorf("failed to check task type name: %w", err)
	}
	if exists {
		return tasktype.TaskTypeResponse{}, tasktype.ErrTaskTypeNameExists
	}

	created, err := s.TaskTypeRepository.Create(ctx, tasktype.TaskType{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
	})
	if err != nil {
		return tasktype.TaskTypeResponse{}, err
	}

	slog.Info("task type added", "task_type_id", created.ID, "name", created.Name, "manager_id", caller.ID)
	return tasktype.NewTaskTypeResponse(created), nil
}

// Toggle implements tasktype.TaskTypeService.
func (s *TaskTypeServiceImpl) Toggle(ctx context.Context, caller staff.Manager, id int64) (tasktype.TaskTypeResponse, error) {
	t, err := s.TaskTypeRepository.GetByID(ctx, id)
	if err != nil {
		return tasktype.TaskTypeResponse{}, err
	}

	t.IsActive = !t.IsActive
	if err := s.TaskTypeRepository.SetActive(ctx, t.ID, t.IsActive); err != nil {
		return tasktype.TaskTypeResponse{}, fmt.Errorf("failed to toggle task type: %w", err)
	}
	return tasktype.NewTaskTypeResponse(t), nil
}
