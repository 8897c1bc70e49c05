package roster

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/grocerymart/backoffice-go/internal/domain/roster"
	"github.com/grocerymart/backoffice-go/internal/domain/staff"
	"github.com/grocerymart/backoffice-go/internal/pkg/idgen"
	"github.com/grocerymart/backoffice-go/internal/pkg/validator"
)

// validateTemplate runs the request checks followed by the catalog and staff
// checks. It returns the referenced staff keyed by id.
func (s *RosterServiceImpl) validateTemplate(ctx context.Context, req *roster.TemplateRequest) (map[string]staff.Staff, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	activeTasks, err := s.taskTypes.ActiveNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load task catalog: %w", err)
	}

	ids := make([]string, 0, len(req.Allocations))
	for _, a := range req.Allocations {
		ids = append(ids, a.StaffID)
	}
	members, err := s.staff.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load staff: %w", err)
	}

	var errs validator.ValidationErrors
	for i, a := range req.Allocations {
		if !activeTasks[a.TaskName] {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("allocations[%d].task_name", i),
				Message: fmt.Sprintf("task %q is not an active task type", a.TaskName),
			})
		}
		member, ok := members[a.StaffID]
		switch {
		case !ok:
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("allocations[%d].staff_id", i),
				Message: fmt.Sprintf("staff %s not found", a.StaffID),
			})
		case member.Role != staff.RoleStaff:
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("allocations[%d].staff_id", i),
				Message: fmt.Sprintf("%s is not a staff member", member.Name),
			})
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}

	return members, nil
}

func templateAllocations(templateID string, req roster.TemplateRequest, members map[string]staff.Staff) []roster.TemplateAllocation {
	allocations := make([]roster.TemplateAllocation, 0, len(req.Allocations))
	for i, a := range req.Allocations {
		name := members[a.StaffID].Name
		allocations = append(allocations, roster.TemplateAllocation{
			TemplateID: templateID,
			StaffID:    a.StaffID,
			TaskName:   a.TaskName,
			SortOrder:  i,
			StaffName:  &name,
		})
	}
	return allocations
}

// ListTemplates implements roster.RosterService.
func (s *RosterServiceImpl) ListTemplates(ctx context.Context, caller staff.Manager) ([]roster.TemplateResponse, error) {
	templates, err := s.templates.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	responses := make([]roster.TemplateResponse, 0, len(templates))
	for _, t := range templates {
		responses = append(responses, roster.NewTemplateResponse(t))
	}
	return responses, nil
}

// GetTemplate implements roster.RosterService.
func (s *RosterServiceImpl) GetTemplate(ctx context.Context, caller staff.Manager, id string) (roster.TemplateResponse, error) {
	t, err := s.templates.GetByID(ctx, id)
	if err != nil {
		return roster.TemplateResponse{}, err
	}
	return roster.NewTemplateResponse(t), nil
}

// CreateTemplate implements roster.RosterService.
func (s *RosterServiceImpl) CreateTemplate(ctx context.Context, caller staff.Manager, req roster.TemplateRequest) (roster.TemplateResponse, error) {
	members, err := s.validateTemplate(ctx, &req)
	if err != nil {
		return roster.TemplateResponse{}, err
	}

	exists, err := s.templates.ExistsByName(ctx, req.Name, "")
	if err != nil {
		return roster.TemplateResponse{}, fmt.Errorf("failed to check template name: %w", err)
	}
	if exists {
		return roster.TemplateResponse{}, roster.ErrTemplateNameExists
	}

	var created roster.RosterTemplate
	err = s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		maxID, err := s.templates.MaxID(txCtx)
		if err != nil {
			return fmt.Errorf("failed to read template id sequence: %w", err)
		}
		id := idgen.RosterTemplate.NextID(maxID)

		created, err = s.templates.Create(txCtx, roster.RosterTemplate{
			ID:          id,
			Name:        req.Name,
			ManagerID:   caller.ID,
			CreatedAt:   s.clock.Now(),
			Allocations: templateAllocations(id, req, members),
		})
		return err
	})
	if err != nil {
		return roster.TemplateResponse{}, err
	}

	slog.Info("roster template created", "template_id", created.ID, "allocations", len(created.Allocations), "manager_id", caller.ID)
	return roster.NewTemplateResponse(created), nil
}

// EditTemplate implements roster.RosterService.
func (s *RosterServiceImpl) EditTemplate(ctx context.Context, caller staff.Manager, id string, req roster.TemplateRequest) (roster.TemplateResponse, error) {
	if _, err := s.templates.GetByID(ctx, id); err != nil {
		return roster.TemplateResponse{}, err
	}

	members, err := s.validateTemplate(ctx, &req)
	if err != nil {
		return roster.TemplateResponse{}, err
	}

	exists, err := s.templates.ExistsByName(ctx, req.Name, id)
	if err != nil {
		return roster.TemplateResponse{}, fmt.Errorf("failed to check template name: %w", err)
	}
	if exists {
		return roster.TemplateResponse{}, roster.ErrTemplateNameExists
	}

	err = s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		if err := s.templates.UpdateName(txCtx, id, req.Name); err != nil {
			return err
		}
		return s.templates.ReplaceAllocations(txCtx, id, templateAllocations(id, req, members))
	})
	if err != nil {
		return roster.TemplateResponse{}, err
	}

	// Calendars show template names.
	s.invalidateAll(ctx)

	updated, err := s.templates.GetByID(ctx, id)
	if err != nil {
		return roster.TemplateResponse{}, fmt.Errorf("failed to reload template: %w", err)
	}
	return roster.NewTemplateResponse(updated), nil
}

// DeleteTemplate implements roster.RosterService.
func (s *RosterServiceImpl) DeleteTemplate(ctx context.Context, caller staff.Manager, id string) error {
	if _, err := s.templates.GetByID(ctx, id); err != nil {
		return err
	}

	inUse, err := s.schedules.ExistsByTemplateID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check template usage: %w", err)
	}
	if inUse {
		return roster.ErrTemplateInUse
	}

	return s.templates.Delete(ctx, id)
}
