package tasktype

import (
	"strings"

	"github.com/grocerymart/backoffice-go/internal/pkg/validator"
)

type CreateTaskTypeRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func (r *CreateTaskTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "task type name is required",
		})
	}
	if len(r.Name) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "task type name must not exceed 100 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type TaskTypeResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	IsActive    bool    `json:"is_active"`
}

func NewTaskTypeResponse(t TaskType) TaskTypeResponse {
	return TaskTypeResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		IsActive:    t.IsActive,
	}
}
